// Package registry keeps the set of sub-images that will be written to the
// output container, one per (width, height, bit depth).
package registry

import (
	"io"
	"sort"
)

// Source locates the payload of one sub-image and carries the directory
// fields that pass through unchanged.
type Source struct {
	File     io.ReadSeeker // shared, not owned
	Path     string
	Size     uint32
	Offset   uint32 // payload offset within File
	Target   uint32 // payload offset within the output, set by the assembler
	Planes   uint16
	Colors   uint8
	Reserved uint8
}

// Entry pairs a key with its source.
type Entry struct {
	Key    IconKey
	Source *Source
}

// Registry maps icon keys to the most recently seen source.
type Registry struct {
	sources map[IconKey]*Source
	order   []IconKey
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		sources: make(map[IconKey]*Source),
	}
}

// Upsert stores src under key. An existing source for the same key is
// replaced and its file is left alone.
func (r *Registry) Upsert(key IconKey, src *Source) {
	if _, ok := r.sources[key]; !ok {
		r.order = append(r.order, key)
	}
	r.sources[key] = src
}

// Get returns the source registered for key.
func (r *Registry) Get(key IconKey) (*Source, bool) {
	src, ok := r.sources[key]
	return src, ok
}

// Len returns the number of distinct keys.
func (r *Registry) Len() int {
	return len(r.sources)
}

// Sorted returns the entries by ascending weight.
func (r *Registry) Sorted() []Entry {
	entries := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		entries = append(entries, Entry{Key: key, Source: r.sources[key]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Key.Weight() < entries[j].Key.Weight()
	})
	return entries
}

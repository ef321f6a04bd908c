package assembler

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/user/icomerge/internal/ico"
	"github.com/user/icomerge/internal/registry"
)

func source(path string, payload []byte) *registry.Source {
	return &registry.Source{
		File: bytes.NewReader(payload),
		Path: path,
		Size: uint32(len(payload)),
	}
}

func TestLayoutOffsets(t *testing.T) {
	reg := registry.New()
	reg.Upsert(registry.IconKey{Width: 16, Height: 16, BitDepth: 32}, source("a", make([]byte, 100)))
	reg.Upsert(registry.IconKey{Width: 32, Height: 32, BitDepth: 32}, source("b", make([]byte, 200)))
	reg.Upsert(registry.IconKey{Width: 48, Height: 48, BitDepth: 32}, source("c", make([]byte, 300)))

	entries, err := Layout(reg)
	if err != nil {
		t.Fatal(err)
	}

	base := uint32(ico.HeaderSize + 3*ico.EntrySize)
	want := []struct {
		size   uint32
		target uint32
	}{
		{48, base},
		{32, base + 300},
		{16, base + 500},
	}
	for i, w := range want {
		if entries[i].Key.Width != w.size || entries[i].Source.Target != w.target {
			t.Errorf("entry %d = %s at %d, want %d at %d", i, entries[i].Key,
				entries[i].Source.Target, w.size, w.target)
		}
	}
}

func TestLayoutTooLarge(t *testing.T) {
	reg := registry.New()
	reg.Upsert(registry.IconKey{Width: 16, Height: 16, BitDepth: 32}, &registry.Source{Size: 0xFFFFFFF0})
	reg.Upsert(registry.IconKey{Width: 32, Height: 32, BitDepth: 32}, &registry.Source{Size: 0x100})

	if _, err := Layout(reg); !errors.Is(err, ErrTooLarge) {
		t.Errorf("err = %v, want %v", err, ErrTooLarge)
	}
}

func TestEmit(t *testing.T) {
	pngPayload := append(append([]byte{}, ico.PNGSignature...), "rest of png"...)
	dibPayload := []byte{40, 0, 0, 0, 1, 2, 3, 4, 5, 6}

	reg := registry.New()
	dib := source("app.ico", append([]byte("junk"), dibPayload...))
	dib.Offset = 4
	dib.Size = uint32(len(dibPayload))
	dib.Planes = 1
	dib.Colors = 16
	reg.Upsert(registry.IconKey{Width: 256, Height: 256, BitDepth: 4}, dib)
	reg.Upsert(registry.IconKey{Width: 16, Height: 16, BitDepth: 32}, source("a.png", pngPayload))

	entries, err := Layout(reg)
	if err != nil {
		t.Fatal(err)
	}

	var labels []string
	asm := New(4) // rounded up to 8, still several chunks
	asm.Progress = func(e registry.Entry, label string) {
		labels = append(labels, label)
	}

	var out bytes.Buffer
	if err := asm.Emit(&out, entries); err != nil {
		t.Fatal(err)
	}

	var want bytes.Buffer
	want.Write([]byte{0, 0, 1, 0, 2, 0})
	dir := make([]byte, 2*ico.EntrySize)
	ico.Entry{Width: 16, Height: 16, BitCount: 32, Size: uint32(len(pngPayload)), Offset: 38}.Encode(dir)
	ico.Entry{Colors: 16, Planes: 1, BitCount: 4, Size: uint32(len(dibPayload)),
		Offset: 38 + uint32(len(pngPayload))}.Encode(dir[ico.EntrySize:])
	want.Write(dir)
	want.Write(pngPayload)
	want.Write(dibPayload)

	if !bytes.Equal(out.Bytes(), want.Bytes()) {
		t.Errorf("output mismatch\ngot  % x\nwant % x", out.Bytes(), want.Bytes())
	}
	if len(labels) != 2 || labels[0] != "PNG" || labels[1] != "ICO" {
		t.Errorf("labels = %v", labels)
	}
}

func TestEmitEmptyPayload(t *testing.T) {
	reg := registry.New()
	reg.Upsert(registry.IconKey{Width: 16, Height: 16, BitDepth: 32}, source("empty", nil))
	entries, err := Layout(reg)
	if err != nil {
		t.Fatal(err)
	}

	var label string
	asm := New(0)
	asm.Progress = func(e registry.Entry, l string) { label = l }

	var out bytes.Buffer
	if err := asm.Emit(&out, entries); err != nil {
		t.Fatal(err)
	}
	if out.Len() != ico.HeaderSize+ico.EntrySize {
		t.Errorf("wrote %d bytes", out.Len())
	}
	if label != "UNK" {
		t.Errorf("label = %q, want UNK", label)
	}
}

func TestEmitShortRead(t *testing.T) {
	src := source("short.ico", make([]byte, 64))
	src.Size = 128

	reg := registry.New()
	reg.Upsert(registry.IconKey{Width: 16, Height: 16, BitDepth: 32}, src)
	entries, err := Layout(reg)
	if err != nil {
		t.Fatal(err)
	}

	err = New(16).Emit(io.Discard, entries)
	if !errors.Is(err, ErrShortRead) {
		t.Errorf("err = %v, want %v", err, ErrShortRead)
	}
}

// failWriter accepts n bytes and then fails.
type failWriter struct {
	n int
}

var errDiskFull = errors.New("disk full")

func (w *failWriter) Write(p []byte) (int, error) {
	if len(p) > w.n {
		k := w.n
		w.n = 0
		return k, errDiskFull
	}
	w.n -= len(p)
	return len(p), nil
}

func TestEmitWriteFailure(t *testing.T) {
	reg := registry.New()
	reg.Upsert(registry.IconKey{Width: 16, Height: 16, BitDepth: 32}, source("a", make([]byte, 1000)))
	entries, err := Layout(reg)
	if err != nil {
		t.Fatal(err)
	}

	for _, limit := range []int{0, 30, 100} {
		err := New(64).Emit(&failWriter{n: limit}, entries)
		if !errors.Is(err, errDiskFull) {
			t.Errorf("limit %d: err = %v, want %v", limit, err, errDiskFull)
		}
	}
}

// Package assembler lays out and writes the merged ICO container.
package assembler

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/user/icomerge/internal/ico"
	"github.com/user/icomerge/internal/registry"
)

// DefaultBufferSize is the size of the payload copy buffer.
const DefaultBufferSize = 64 * 1024

var (
	ErrTooManyEntries = errors.New("too many icons for one container")
	ErrTooLarge       = errors.New("container exceeds 4 GiB")
	ErrShortRead      = errors.New("short read from source")
)

// Layout orders the registered icons and assigns every payload its offset in
// the output. It must run after all inputs are registered.
func Layout(reg *registry.Registry) ([]registry.Entry, error) {
	entries := reg.Sorted()
	if len(entries) > ico.MaxEntries {
		return nil, fmt.Errorf("%d icons: %w", len(entries), ErrTooManyEntries)
	}

	offset := uint64(ico.HeaderSize + len(entries)*ico.EntrySize)
	for _, e := range entries {
		if offset > math.MaxUint32 {
			return nil, ErrTooLarge
		}
		e.Source.Target = uint32(offset)
		offset += uint64(e.Source.Size)
	}
	if offset > math.MaxUint32+1 {
		return nil, ErrTooLarge
	}
	return entries, nil
}

// Assembler writes laid-out entries to an output stream.
type Assembler struct {
	// BufferSize is the payload copy buffer size, DefaultBufferSize if zero.
	// It never goes below the length of the PNG signature.
	BufferSize int
	// Progress, if set, is called for every entry right before its payload is
	// copied, with the payload label ("PNG", "ICO" or "UNK").
	Progress func(e registry.Entry, label string)
}

// New creates an assembler with the given copy buffer size.
func New(bufferSize int) *Assembler {
	return &Assembler{BufferSize: bufferSize}
}

// Emit writes the header, the directory and every payload, in entry order.
// Entries must come from Layout. The first failure aborts the whole emission;
// whatever was already written stays in w.
func (a *Assembler) Emit(w io.Writer, entries []registry.Entry) error {
	if err := writeDirectory(w, entries); err != nil {
		return err
	}

	size := a.BufferSize
	if size <= 0 {
		size = DefaultBufferSize
	}
	buf := make([]byte, max(size, len(ico.PNGSignature)))

	for _, e := range entries {
		if err := a.copyPayload(w, e, buf); err != nil {
			return fmt.Errorf("copy %s from %s: %w", e.Key, e.Source.Path, err)
		}
	}
	return nil
}

func writeDirectory(w io.Writer, entries []registry.Entry) error {
	dir := make([]byte, ico.HeaderSize+len(entries)*ico.EntrySize)
	ico.Header{Type: ico.TypeIcon, Count: uint16(len(entries))}.Encode(dir)

	for i, e := range entries {
		ico.Entry{
			Width:    ico.DimensionByte(e.Key.Width),
			Height:   ico.DimensionByte(e.Key.Height),
			Colors:   e.Source.Colors,
			Reserved: e.Source.Reserved,
			Planes:   e.Source.Planes,
			BitCount: uint16(e.Key.BitDepth),
			Size:     e.Source.Size,
			Offset:   e.Source.Target,
		}.Encode(dir[ico.HeaderSize+i*ico.EntrySize:])
	}

	if _, err := w.Write(dir); err != nil {
		return fmt.Errorf("write directory: %w", err)
	}
	return nil
}

// copyPayload streams exactly Size bytes from the entry's source into w.
// The first bytes are peeked to label the payload before the copy starts.
func (a *Assembler) copyPayload(w io.Writer, e registry.Entry, buf []byte) error {
	src := e.Source
	if _, err := src.File.Seek(int64(src.Offset), io.SeekStart); err != nil {
		return fmt.Errorf("seek: %w", err)
	}

	peek := len(ico.PNGSignature)
	if src.Size < uint32(peek) {
		peek = int(src.Size)
	}
	n, err := io.ReadFull(src.File, buf[:peek])
	if err != nil {
		return fmt.Errorf("%w: %w", ErrShortRead, err)
	}

	if a.Progress != nil {
		a.Progress(e, ico.PayloadLabel(buf[:n]))
	}

	if _, err := w.Write(buf[:n]); err != nil {
		return fmt.Errorf("write: %w", err)
	}

	remaining := int64(src.Size) - int64(n)
	written, err := io.CopyBuffer(writerOnly{w}, io.LimitReader(src.File, remaining), buf)
	if err != nil {
		return fmt.Errorf("copy: %w", err)
	}
	if written != remaining {
		return fmt.Errorf("%w: %d of %d bytes", ErrShortRead, int64(n)+written, src.Size)
	}
	return nil
}

// writerOnly hides ReadFrom so io.CopyBuffer really goes through buf.
type writerOnly struct {
	io.Writer
}

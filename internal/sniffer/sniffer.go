// Package sniffer classifies input files as PNG images or ICO containers and
// extracts the sub-image metadata without decoding any pixel data.
package sniffer

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/user/icomerge/internal/ico"
	"github.com/user/icomerge/internal/registry"
)

// headerLen is how much of a file is read to classify it.
const headerLen = 32

// Kind is the detected input format.
type Kind int

const (
	KindUnknown Kind = iota
	KindPNG
	KindICO
)

func (k Kind) String() string {
	switch k {
	case KindPNG:
		return "PNG"
	case KindICO:
		return "ICO"
	default:
		return "UNK"
	}
}

// RejectError is returned for inputs that were read fine but can't be used.
type RejectError struct {
	Reason string
}

func (e *RejectError) Error() string {
	return e.Reason
}

var (
	ErrUnsupported  = &RejectError{Reason: "unsupported type"}
	ErrNotTrueColor = &RejectError{Reason: "unsupported, use only true color PNGs"}
	ErrTooBig       = &RejectError{Reason: "image too big, max 256x256"}
	ErrTruncated    = &RejectError{Reason: "truncated!"}
)

// IsRejection reports whether err means the input was skipped for its content.
func IsRejection(err error) bool {
	var rej *RejectError
	return errors.As(err, &rej)
}

// Result describes what was found in one input.
type Result struct {
	Kind Kind

	// PNG header values, for display.
	Width    uint32
	Height   uint32
	BitDepth uint32

	// Count is the number of directory entries an ICO declares.
	Count int

	// Entries are the sub-images to register. Empty unless Sniff succeeds.
	Entries []registry.Entry
}

// Sniff reads the start of src and classifies it. The returned result is
// non-nil whenever the format was recognised, even if the input is rejected,
// so the caller can print what it saw. Rejections are *RejectError values;
// any other error is an I/O failure.
//
// Entries reference src directly; the caller keeps it open until the output
// has been written.
func Sniff(src io.ReadSeeker, path string) (*Result, error) {
	header := make([]byte, headerLen)
	n, err := io.ReadFull(src, header)
	if n == 0 {
		if err == io.EOF {
			err = io.ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	header = header[:n]

	switch {
	case ico.HasIHDR(header):
		return sniffPNG(src, path, header)
	case len(header) >= ico.HeaderSize && ico.IsICO(header):
		return sniffICO(src, path, header)
	default:
		return &Result{Kind: KindUnknown}, ErrUnsupported
	}
}

func sniffPNG(src io.ReadSeeker, path string, header []byte) (*Result, error) {
	ihdr := ico.DecodeIHDR(header)
	res := &Result{
		Kind:     KindPNG,
		Width:    ihdr.Width,
		Height:   ihdr.Height,
		BitDepth: uint32(ihdr.BitDepth) * 4,
	}

	if ihdr.ColorType != ico.PNGColorRGBA {
		return res, ErrNotTrueColor
	}
	if ihdr.Width == 0 || ihdr.Height == 0 {
		return res, ErrUnsupported
	}
	if ihdr.Width > 256 || ihdr.Height > 256 {
		return res, ErrTooBig
	}

	size, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return res, fmt.Errorf("seek end: %w", err)
	}
	if size > math.MaxUint32 {
		return res, ErrTooBig
	}

	res.Entries = []registry.Entry{{
		Key: registry.IconKey{Width: ihdr.Width, Height: ihdr.Height, BitDepth: 32},
		Source: &registry.Source{
			File: src,
			Path: path,
			Size: uint32(size),
		},
	}}
	return res, nil
}

func sniffICO(src io.ReadSeeker, path string, header []byte) (*Result, error) {
	count := int(ico.DecodeHeader(header).Count)
	res := &Result{Kind: KindICO, Count: count}
	if count == 0 {
		return res, ErrTruncated
	}

	fileSize, err := src.Seek(0, io.SeekEnd)
	if err != nil {
		return res, fmt.Errorf("seek end: %w", err)
	}
	dirEnd := int64(ico.HeaderSize + count*ico.EntrySize)
	if dirEnd > fileSize {
		return res, ErrTruncated
	}

	if _, err := src.Seek(ico.HeaderSize, io.SeekStart); err != nil {
		return res, fmt.Errorf("seek directory: %w", err)
	}
	dir := make([]byte, count*ico.EntrySize)
	if _, err := io.ReadFull(src, dir); err != nil {
		return res, ErrTruncated
	}

	entries := make([]registry.Entry, 0, count)
	for i := 0; i < count; i++ {
		e := ico.DecodeEntry(dir[i*ico.EntrySize:])
		entries = append(entries, registry.Entry{
			Key: registry.IconKey{
				Width:    e.PixelWidth(),
				Height:   e.PixelHeight(),
				BitDepth: uint32(e.BitCount),
			},
			Source: &registry.Source{
				File:     src,
				Path:     path,
				Size:     e.Size,
				Offset:   e.Offset,
				Planes:   e.Planes,
				Colors:   e.Colors,
				Reserved: e.Reserved,
			},
		})
	}

	res.Entries = entries
	return res, nil
}

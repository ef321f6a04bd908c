// Package ico describes the on-disk layout of ICO containers and the PNG
// header fields needed to embed a PNG as an icon image.
package ico

import (
	"bytes"
	"encoding/binary"
)

const (
	// HeaderSize is the size of the ICONDIR header.
	HeaderSize = 6
	// EntrySize is the size of one ICONDIRENTRY record.
	EntrySize = 16
	// TypeIcon is the ICONDIR type for .ico files (2 is .cur).
	TypeIcon = 1
	// MaxEntries is the largest count the u16 header field can hold.
	MaxEntries = 0xFFFF
)

var (
	// Magic is the reserved word plus the icon type, as it appears on disk.
	Magic = []byte{0x00, 0x00, 0x01, 0x00}
	// PNGSignature starts every PNG stream.
	PNGSignature = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
)

// Header represents the ICONDIR header.
type Header struct {
	Reserved uint16 // always 0
	Type     uint16 // 1 for icons
	Count    uint16
}

// Entry represents one ICONDIRENTRY.
type Entry struct {
	Width    uint8 // 0 means 256
	Height   uint8 // 0 means 256
	Colors   uint8 // palette size, 0 if >= 8bpp
	Reserved uint8
	Planes   uint16 // 0 or 1
	BitCount uint16
	Size     uint32 // bytes of image data
	Offset   uint32 // from the beginning of the file
}

// DecodeHeader reads an ICONDIR from the first HeaderSize bytes of b.
func DecodeHeader(b []byte) Header {
	_ = b[HeaderSize-1]
	return Header{
		Reserved: binary.LittleEndian.Uint16(b[0:2]),
		Type:     binary.LittleEndian.Uint16(b[2:4]),
		Count:    binary.LittleEndian.Uint16(b[4:6]),
	}
}

// Encode writes h into the first HeaderSize bytes of b.
func (h Header) Encode(b []byte) {
	_ = b[HeaderSize-1]
	binary.LittleEndian.PutUint16(b[0:2], h.Reserved)
	binary.LittleEndian.PutUint16(b[2:4], h.Type)
	binary.LittleEndian.PutUint16(b[4:6], h.Count)
}

// DecodeEntry reads an ICONDIRENTRY from the first EntrySize bytes of b.
func DecodeEntry(b []byte) Entry {
	_ = b[EntrySize-1]
	return Entry{
		Width:    b[0],
		Height:   b[1],
		Colors:   b[2],
		Reserved: b[3],
		Planes:   binary.LittleEndian.Uint16(b[4:6]),
		BitCount: binary.LittleEndian.Uint16(b[6:8]),
		Size:     binary.LittleEndian.Uint32(b[8:12]),
		Offset:   binary.LittleEndian.Uint32(b[12:16]),
	}
}

// Encode writes e into the first EntrySize bytes of b.
func (e Entry) Encode(b []byte) {
	_ = b[EntrySize-1]
	b[0] = e.Width
	b[1] = e.Height
	b[2] = e.Colors
	b[3] = e.Reserved
	binary.LittleEndian.PutUint16(b[4:6], e.Planes)
	binary.LittleEndian.PutUint16(b[6:8], e.BitCount)
	binary.LittleEndian.PutUint32(b[8:12], e.Size)
	binary.LittleEndian.PutUint32(b[12:16], e.Offset)
}

// PixelWidth returns the width in pixels, handling the 0 == 256 case.
func (e Entry) PixelWidth() uint32 {
	if e.Width == 0 {
		return 256
	}
	return uint32(e.Width)
}

// PixelHeight returns the height in pixels, handling the 0 == 256 case.
func (e Entry) PixelHeight() uint32 {
	if e.Height == 0 {
		return 256
	}
	return uint32(e.Height)
}

// DimensionByte folds a pixel dimension back into the directory byte.
func DimensionByte(n uint32) uint8 {
	if n == 256 {
		return 0
	}
	return uint8(n)
}

// IsPNG reports whether b starts with the PNG signature.
func IsPNG(b []byte) bool {
	return bytes.HasPrefix(b, PNGSignature)
}

// IsICO reports whether b starts with an icon ICONDIR.
func IsICO(b []byte) bool {
	return bytes.HasPrefix(b, Magic)
}

// PayloadLabel names the encoding of an image payload from its first bytes:
// "PNG" for embedded PNG streams, "ICO" for anything else (a DIB), and "UNK"
// when nothing could be read.
func PayloadLabel(head []byte) string {
	switch {
	case len(head) == 0:
		return "UNK"
	case IsPNG(head):
		return "PNG"
	default:
		return "ICO"
	}
}

// PNG IHDR layout within the first bytes of a PNG stream (big-endian).
const (
	PNGChunkTypeOffset = 12
	PNGWidthOffset     = 16
	PNGHeightOffset    = 20
	PNGDepthOffset     = 24
	PNGColorOffset     = 25
	// PNGMinHeader is the least number of bytes that holds the IHDR fields.
	PNGMinHeader = 29
	// PNGColorRGBA is the IHDR color type for truecolor with alpha.
	PNGColorRGBA = 6
)

// IHDR holds the image header fields the merger cares about.
type IHDR struct {
	Width     uint32
	Height    uint32
	BitDepth  uint8
	ColorType uint8
}

// DecodeIHDR reads the IHDR fields out of a PNG header. The caller checks the
// signature and length first.
func DecodeIHDR(b []byte) IHDR {
	_ = b[PNGMinHeader-1]
	return IHDR{
		Width:     binary.BigEndian.Uint32(b[PNGWidthOffset:]),
		Height:    binary.BigEndian.Uint32(b[PNGHeightOffset:]),
		BitDepth:  b[PNGDepthOffset],
		ColorType: b[PNGColorOffset],
	}
}

// HasIHDR reports whether b carries a PNG signature followed by an IHDR chunk.
func HasIHDR(b []byte) bool {
	return len(b) >= PNGMinHeader && IsPNG(b) &&
		string(b[PNGChunkTypeOffset:PNGChunkTypeOffset+4]) == "IHDR"
}

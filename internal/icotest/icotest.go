// Package icotest builds PNG and ICO fixtures for tests.
package icotest

import (
	"bytes"
	"encoding/binary"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// Image is one sub-image of a fixture ICO.
type Image struct {
	Width    int // 256 is stored as 0
	Height   int
	BitCount uint16
	Colors   uint8
	Planes   uint16
	Data     []byte
}

// BuildICO creates an .ico file holding images in the given order.
func BuildICO(images []Image) []byte {
	var buf bytes.Buffer
	n := len(images)

	// ICONDIR header: 6 bytes
	binary.Write(&buf, binary.LittleEndian, uint16(0)) // reserved
	binary.Write(&buf, binary.LittleEndian, uint16(1)) // type: icon
	binary.Write(&buf, binary.LittleEndian, uint16(n)) // count

	offset := 6 + n*16

	// ICONDIRENTRY for each image
	for _, img := range images {
		w, h := byte(img.Width), byte(img.Height)
		if img.Width == 256 {
			w = 0
		}
		if img.Height == 256 {
			h = 0
		}

		buf.WriteByte(w)
		buf.WriteByte(h)
		buf.WriteByte(img.Colors)
		buf.WriteByte(0) // reserved
		binary.Write(&buf, binary.LittleEndian, img.Planes)
		binary.Write(&buf, binary.LittleEndian, img.BitCount)
		binary.Write(&buf, binary.LittleEndian, uint32(len(img.Data)))
		binary.Write(&buf, binary.LittleEndian, uint32(offset))

		offset += len(img.Data)
	}

	for _, img := range images {
		buf.Write(img.Data)
	}

	return buf.Bytes()
}

// DIB renders a disc of fg on a transparent background as icon bitmap data
// at the given bit depth (1, 4, 8, 24 or 32): a BITMAPINFOHEADER, a palette
// for indexed depths, bottom-up XOR rows and the 1bpp AND mask. Rows are
// padded to 4 bytes.
func DIB(size int, bitCount uint16, fg color.RGBA) []byte {
	bpp := int(bitCount)
	stride := (size*bpp + 31) / 32 * 4
	maskStride := (size + 31) / 32 * 4

	var palette int
	if bpp <= 8 {
		palette = 1 << bpp
	}

	b := binary.LittleEndian.AppendUint32(nil, 40)
	b = binary.LittleEndian.AppendUint32(b, uint32(size))
	b = binary.LittleEndian.AppendUint32(b, uint32(size*2)) // XOR + AND
	b = binary.LittleEndian.AppendUint16(b, 1)
	b = binary.LittleEndian.AppendUint16(b, bitCount)
	b = binary.LittleEndian.AppendUint32(b, 0) // BI_RGB
	b = binary.LittleEndian.AppendUint32(b, uint32((stride+maskStride)*size))
	b = append(b, make([]byte, 8)...) // pixels per meter
	b = binary.LittleEndian.AppendUint32(b, uint32(palette))
	b = binary.LittleEndian.AppendUint32(b, 0)

	// Index 0 is the background, index 1 the disc.
	for i := 0; i < palette; i++ {
		if i == 1 {
			b = append(b, fg.B, fg.G, fg.R, 0)
		} else {
			b = append(b, 0, 0, 0, 0)
		}
	}

	r := float64(size) * 0.4
	inside := func(x, y int) bool {
		dx := float64(x) + 0.5 - float64(size)/2
		dy := float64(y) + 0.5 - float64(size)/2
		return dx*dx+dy*dy < r*r
	}

	for y := size - 1; y >= 0; y-- {
		row := make([]byte, stride)
		for x := 0; x < size; x++ {
			if !inside(x, y) {
				continue
			}
			switch bpp {
			case 32:
				copy(row[x*4:], []byte{fg.B, fg.G, fg.R, 0xFF})
			case 24:
				copy(row[x*3:], []byte{fg.B, fg.G, fg.R})
			default:
				bit := x * bpp
				row[bit/8] |= 1 << (8 - bpp - bit%8)
			}
		}
		b = append(b, row...)
	}

	for y := size - 1; y >= 0; y-- {
		mask := make([]byte, maskStride)
		for x := 0; x < size; x++ {
			if !inside(x, y) {
				mask[x/8] |= 0x80 >> (x % 8)
			}
		}
		b = append(b, mask...)
	}

	return b
}

// PNG encodes a w×h truecolor-with-alpha PNG. One pixel is translucent so
// the encoder keeps the alpha channel.
func PNG(t testing.TB, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x), G: uint8(y), B: uint8(w), A: 255})
		}
	}
	img.SetNRGBA(0, 0, color.NRGBA{A: 0x80})

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// GrayPNG encodes a w×h grayscale PNG.
func GrayPNG(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// PNGHeader returns just the signature and IHDR chunk of a PNG declaring
// the given size and color type, enough for header sniffing.
func PNGHeader(w, h uint32, colorType byte) []byte {
	b := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 13, 'I', 'H', 'D', 'R'}
	b = binary.BigEndian.AppendUint32(b, w)
	b = binary.BigEndian.AppendUint32(b, h)
	b = append(b, 8, colorType, 0, 0, 0)
	return append(b, 0, 0, 0, 0) // CRC, not checked
}

// WriteFile writes data to name inside dir and returns the full path.
func WriteFile(t testing.TB, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

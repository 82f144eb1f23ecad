// Package bitmap provides the pixel buffer compared by pixsnap.
//
// A Bitmap is a contiguous byte slice with a width, height, stride and
// pixel format. Raw pixel bytes are reached through a scoped read lock
// (see [Bitmap.Lock]) so that comparisons never observe a half-written
// buffer.
package bitmap

import (
	"errors"
	"sync"
)

// Common errors for bitmap operations.
var (
	// ErrInvalidDimensions is returned when width or height is non-positive.
	ErrInvalidDimensions = errors.New("bitmap: invalid dimensions")

	// ErrInvalidFormat is returned when the format is not recognized.
	ErrInvalidFormat = errors.New("bitmap: invalid format")

	// ErrInvalidStride is returned when stride is less than the packed row size.
	ErrInvalidStride = errors.New("bitmap: stride too small for width")

	// ErrDataTooSmall is returned when provided data is smaller than required.
	ErrDataTooSmall = errors.New("bitmap: data buffer too small")

	// ErrOutOfBounds is returned when pixel coordinates are outside the bitmap.
	ErrOutOfBounds = errors.New("bitmap: coordinates out of bounds")
)

// Bitmap is an image buffer owned by its creator.
//
// Thread safety: reads through Lock may run concurrently. Set, Fill and
// Clear take the write lock.
type Bitmap struct {
	mu     sync.RWMutex
	data   []byte
	width  int
	height int
	stride int
	format Format
}

// New creates a zeroed bitmap with the given dimensions and format.
func New(width, height int, format Format) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}

	stride := format.RowBytes(width)
	return &Bitmap{
		data:   make([]byte, stride*height),
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// FromRaw wraps existing pixel data without copying.
// The caller must not modify data while the Bitmap is in use.
func FromRaw(data []byte, width, height int, format Format, stride int) (*Bitmap, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrInvalidDimensions
	}
	if !format.IsValid() {
		return nil, ErrInvalidFormat
	}
	if stride < format.RowBytes(width) {
		return nil, ErrInvalidStride
	}

	size := stride * height
	if len(data) < size {
		return nil, ErrDataTooSmall
	}

	return &Bitmap{
		data:   data[:size],
		width:  width,
		height: height,
		stride: stride,
		format: format,
	}, nil
}

// Clone returns a deep copy of b.
func (b *Bitmap) Clone() *Bitmap {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data := make([]byte, len(b.data))
	copy(data, b.data)
	return &Bitmap{
		data:   data,
		width:  b.width,
		height: b.height,
		stride: b.stride,
		format: b.format,
	}
}

// Width returns the bitmap width in pixels.
func (b *Bitmap) Width() int { return b.width }

// Height returns the bitmap height in pixels.
func (b *Bitmap) Height() int { return b.height }

// Stride returns the number of bytes per row, including padding.
func (b *Bitmap) Stride() int { return b.stride }

// Format returns the pixel format.
func (b *Bitmap) Format() Format { return b.format }

// pixelOffset returns the byte offset of (x, y), or -1 when out of bounds.
func (b *Bitmap) pixelOffset(x, y int) int {
	if x < 0 || x >= b.width || y < 0 || y >= b.height {
		return -1
	}
	return y*b.stride + x*b.format.BytesPerPixel()
}

// row returns the packed pixel bytes of row y. Caller holds mu.
func (b *Bitmap) row(y int) []byte {
	start := y * b.stride
	return b.data[start : start+b.format.RowBytes(b.width)]
}

// At returns the stored channels at (x, y) in RGBA order.
// Grayscale and RGB formats report a=255.
// Out-of-bounds coordinates return (0, 0, 0, 0).
func (b *Bitmap) At(x, y int) (r, g, bl, a uint8) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	off := b.pixelOffset(x, y)
	if off < 0 {
		return 0, 0, 0, 0
	}
	p := b.data[off:]
	switch b.format {
	case FormatGray8:
		return p[0], p[0], p[0], 255
	case FormatRGB8:
		return p[0], p[1], p[2], 255
	case FormatRGBA8, FormatRGBAPremul:
		return p[0], p[1], p[2], p[3]
	case FormatBGRA8:
		return p[2], p[1], p[0], p[3]
	}
	return 0, 0, 0, 0
}

// Set stores the color at (x, y). Grayscale uses standard luminance weights.
func (b *Bitmap) Set(x, y int, r, g, bl, a uint8) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	off := b.pixelOffset(x, y)
	if off < 0 {
		return ErrOutOfBounds
	}
	b.setAt(off, r, g, bl, a)
	return nil
}

func (b *Bitmap) setAt(off int, r, g, bl, a uint8) {
	p := b.data[off:]
	switch b.format {
	case FormatGray8:
		// 0.299*R + 0.587*G + 0.114*B
		p[0] = byte((int(r)*299 + int(g)*587 + int(bl)*114) / 1000)
	case FormatRGB8:
		p[0], p[1], p[2] = r, g, bl
	case FormatRGBA8, FormatRGBAPremul:
		p[0], p[1], p[2], p[3] = r, g, bl, a
	case FormatBGRA8:
		p[0], p[1], p[2], p[3] = bl, g, r, a
	}
}

// Fill sets every pixel to the given color.
func (b *Bitmap) Fill(r, g, bl, a uint8) {
	b.mu.Lock()
	defer b.mu.Unlock()

	bpp := b.format.BytesPerPixel()
	for y := range b.height {
		for x := range b.width {
			b.setAt(y*b.stride+x*bpp, r, g, bl, a)
		}
	}
}

// Clear sets all bytes to zero.
func (b *Bitmap) Clear() {
	b.mu.Lock()
	clear(b.data)
	b.mu.Unlock()
}

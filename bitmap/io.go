package bitmap

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/draw"
)

// LoadPNG loads a PNG file.
func LoadPNG(path string) (*Bitmap, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("bitmap: open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return DecodePNG(f)
}

// DecodePNG decodes a PNG stream. Grayscale PNGs become FormatGray8,
// everything else FormatRGBA8.
func DecodePNG(r io.Reader) (*Bitmap, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("bitmap: decode PNG: %w", err)
	}
	return FromImage(img), nil
}

// SavePNG writes b as a PNG file, replacing any existing file.
func (b *Bitmap) SavePNG(path string) error {
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("bitmap: create file: %w", err)
	}

	if err := b.EncodePNG(f); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}

// EncodePNG encodes b as PNG to w.
func (b *Bitmap) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, b.ToImage()); err != nil {
		return fmt.Errorf("bitmap: encode PNG: %w", err)
	}
	return nil
}

// FromImage copies a standard library image into a new Bitmap.
// *image.Gray keeps its format; any other image is converted to
// non-premultiplied FormatRGBA8.
func FromImage(img image.Image) *Bitmap {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	if gray, ok := img.(*image.Gray); ok {
		b, _ := New(width, height, FormatGray8)
		for y := range height {
			start := y * gray.Stride
			copy(b.row(y), gray.Pix[start:start+width])
		}
		return b
	}

	b, _ := New(width, height, FormatRGBA8)

	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Rect.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, width, height))
		draw.Draw(nrgba, nrgba.Bounds(), img, bounds.Min, draw.Src)
	}
	for y := range height {
		start := y * nrgba.Stride
		copy(b.row(y), nrgba.Pix[start:start+width*4])
	}
	return b
}

// ToImage converts b to a standard library image.
// Returns *image.Gray for FormatGray8, *image.RGBA for FormatRGBAPremul
// and *image.NRGBA otherwise.
func (b *Bitmap) ToImage() image.Image {
	b.mu.RLock()
	defer b.mu.RUnlock()

	rect := image.Rect(0, 0, b.width, b.height)

	switch b.format {
	case FormatGray8:
		gray := image.NewGray(rect)
		for y := range b.height {
			copy(gray.Pix[y*gray.Stride:], b.row(y))
		}
		return gray

	case FormatRGBAPremul:
		rgba := image.NewRGBA(rect)
		for y := range b.height {
			copy(rgba.Pix[y*rgba.Stride:], b.row(y))
		}
		return rgba

	case FormatRGBA8:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			copy(nrgba.Pix[y*nrgba.Stride:], b.row(y))
		}
		return nrgba

	case FormatBGRA8:
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			src := b.row(y)
			dst := nrgba.Pix[y*nrgba.Stride:]
			for x := range b.width {
				o := x * 4
				dst[o], dst[o+1], dst[o+2], dst[o+3] = src[o+2], src[o+1], src[o], src[o+3]
			}
		}
		return nrgba

	default: // FormatRGB8
		nrgba := image.NewNRGBA(rect)
		for y := range b.height {
			src := b.row(y)
			dst := nrgba.Pix[y*nrgba.Stride:]
			for x := range b.width {
				dst[x*4] = src[x*3]
				dst[x*4+1] = src[x*3+1]
				dst[x*4+2] = src[x*3+2]
				dst[x*4+3] = 255
			}
		}
		return nrgba
	}
}

// nrgba returns b as packed FormatRGBA8. Each pixel goes through
// color.NRGBAModel, the conversion the PNG encoder applies, so the result
// matches what LoadPNG returns for a saved b.
func (b *Bitmap) nrgba() *Bitmap {
	if b.Format() == FormatRGBA8 {
		return b
	}
	img := b.ToImage()
	out, _ := New(b.width, b.height, FormatRGBA8)
	for y := range b.height {
		row := out.row(y)
		for x := range b.width {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			row[x*4], row[x*4+1], row[x*4+2], row[x*4+3] = c.R, c.G, c.B, c.A
		}
	}
	return out
}

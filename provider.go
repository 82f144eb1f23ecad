package pixsnap

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/pixsnap/bitmap"
)

// Provider turns a snapshot target into a bitmap.
//
// Implementations exist per kind of target: a widget renderer, a scene
// renderer, or a passthrough for targets that already are images.
// GenerateBitmap must return a non-nil bitmap or an error.
type Provider[T any] interface {
	GenerateBitmap(target T) (*bitmap.Bitmap, error)
}

// ProviderFunc adapts a render function to [Provider].
//
//	scene := pixsnap.ProviderFunc[*Scene](func(s *Scene) (*bitmap.Bitmap, error) {
//		return s.Render(256, 256)
//	})
type ProviderFunc[T any] func(target T) (*bitmap.Bitmap, error)

// GenerateBitmap calls f(target).
func (f ProviderFunc[T]) GenerateBitmap(target T) (*bitmap.Bitmap, error) {
	return f(target)
}

// Passthrough is the identity provider for targets that already are bitmaps.
type Passthrough struct{}

// GenerateBitmap returns b unchanged.
func (Passthrough) GenerateBitmap(b *bitmap.Bitmap) (*bitmap.Bitmap, error) {
	return b, nil
}

// StdImage converts any [image.Image] to an RGBA8 bitmap, or Gray8 for
// *image.Gray, matching how references are decoded from PNG.
type StdImage struct{}

// GenerateBitmap copies img into a new bitmap. A nil image yields a nil
// bitmap, which [Snapshot] rejects with [ErrNilImage].
func (StdImage) GenerateBitmap(img image.Image) (*bitmap.Bitmap, error) {
	if img == nil {
		return nil, nil
	}
	return bitmap.FromImage(img), nil
}

// Label renders a single line of text with the 7x13 fixed font.
// It is a minimal widget renderer, useful for snapshotting formatted output.
type Label struct {
	// Width and Height of the bitmap. Zero means fit the text.
	Width, Height int

	// Padding around the text in pixels.
	Padding int

	// Foreground is the text color (default black).
	Foreground color.Color

	// Background is the fill color (default white).
	Background color.Color
}

// GenerateBitmap draws text and returns the result as an RGBA8 bitmap.
func (l Label) GenerateBitmap(text string) (*bitmap.Bitmap, error) {
	face := basicfont.Face7x13
	fg, bg := l.Foreground, l.Background
	if fg == nil {
		fg = color.Black
	}
	if bg == nil {
		bg = color.White
	}

	d := &font.Drawer{Src: image.NewUniform(fg), Face: face}

	w, h := l.Width, l.Height
	if w == 0 {
		w = d.MeasureString(text).Ceil() + 2*l.Padding
	}
	if h == 0 {
		h = face.Height + 2*l.Padding
	}
	if w <= 0 || h <= 0 {
		return nil, bitmap.ErrInvalidDimensions
	}

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)

	d.Dst = dst
	d.Dot = fixed.P(l.Padding, l.Padding+face.Ascent)
	d.DrawString(text)

	return bitmap.FromImage(dst), nil
}

package bitmap

// Format represents a pixel storage format.
type Format uint8

const (
	// FormatGray8 is 8-bit grayscale (1 byte per pixel).
	FormatGray8 Format = iota

	// FormatRGB8 is 24-bit RGB (3 bytes per pixel, no alpha).
	FormatRGB8

	// FormatRGBA8 is 32-bit non-premultiplied RGBA (4 bytes per pixel).
	// PNG references are decoded into this format.
	FormatRGBA8

	// FormatRGBAPremul is 32-bit RGBA with premultiplied alpha.
	FormatRGBAPremul

	// FormatBGRA8 is 32-bit non-premultiplied BGRA.
	// Common for GPU readback and Windows surfaces.
	FormatBGRA8

	formatCount
)

var bytesPerPixel = [formatCount]int{
	FormatGray8:      1,
	FormatRGB8:       3,
	FormatRGBA8:      4,
	FormatRGBAPremul: 4,
	FormatBGRA8:      4,
}

// BytesPerPixel returns the number of bytes per pixel, or 0 for an unknown format.
func (f Format) BytesPerPixel() int {
	if !f.IsValid() {
		return 0
	}
	return bytesPerPixel[f]
}

// IsValid reports whether f is a known format.
func (f Format) IsValid() bool {
	return f < formatCount
}

// RowBytes returns the number of bytes in a tightly packed row of the given width.
func (f Format) RowBytes(width int) int {
	return width * f.BytesPerPixel()
}

// String returns a string representation of the format.
func (f Format) String() string {
	switch f {
	case FormatGray8:
		return "Gray8"
	case FormatRGB8:
		return "RGB8"
	case FormatRGBA8:
		return "RGBA8"
	case FormatRGBAPremul:
		return "RGBAPremul"
	case FormatBGRA8:
		return "BGRA8"
	default:
		return "Unknown"
	}
}

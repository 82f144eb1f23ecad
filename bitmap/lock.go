package bitmap

import "bytes"

// Lock is a scoped read view of a Bitmap's pixel bytes.
// Writers are blocked until Unlock is called.
//
//	l := b.Lock()
//	defer l.Unlock()
//	process(l.Data())
type Lock struct {
	b        *Bitmap
	released bool
}

// Lock acquires a read lock on b and returns a view of its pixels.
func (b *Bitmap) Lock() *Lock {
	b.mu.RLock()
	return &Lock{b: b}
}

// Unlock releases the view. Calling it more than once is a no-op.
func (l *Lock) Unlock() {
	if l.released {
		return
	}
	l.released = true
	l.b.mu.RUnlock()
}

// Width returns the width of the locked bitmap.
func (l *Lock) Width() int { return l.b.width }

// Height returns the height of the locked bitmap.
func (l *Lock) Height() int { return l.b.height }

// Stride returns the row stride of the locked bitmap.
func (l *Lock) Stride() int { return l.b.stride }

// Format returns the pixel format of the locked bitmap.
func (l *Lock) Format() Format { return l.b.format }

// Data returns the raw pixel bytes, including any row padding.
// The slice must not be retained or modified after Unlock.
func (l *Lock) Data() []byte { return l.b.data }

// Row returns the packed pixel bytes of row y, or nil when out of range.
func (l *Lock) Row(y int) []byte {
	if y < 0 || y >= l.b.height {
		return nil
	}
	return l.b.row(y)
}

// packed reports whether rows follow each other without padding.
func (l *Lock) packed() bool {
	return l.b.stride == l.b.format.RowBytes(l.b.width)
}

// Equal reports whether a and b hold the same picture: equal width, equal
// height and identical pixels, compared element by element in order.
// Row padding is never compared.
//
// Bitmaps of the same format are compared byte for byte. When the formats
// differ both sides are converted to non-premultiplied RGBA8 first, the
// form a PNG reference is loaded in, so a BGRA8 bitmap equals its recorded
// RGBA8 reference while identical bytes with swapped channels do not.
func Equal(a, b *Bitmap) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if a.Width() != b.Width() || a.Height() != b.Height() {
		return false
	}
	if a.Format() != b.Format() {
		a, b = a.nrgba(), b.nrgba()
	}

	la := a.Lock()
	defer la.Unlock()
	lb := b.Lock()
	defer lb.Unlock()

	if la.Width() != lb.Width() || la.Height() != lb.Height() {
		return false
	}
	if la.packed() && lb.packed() {
		return bytes.Equal(la.Data(), lb.Data())
	}
	for y := range la.Height() {
		if !bytes.Equal(la.Row(y), lb.Row(y)) {
			return false
		}
	}
	return true
}

package bitmap

import "testing"

func TestFormat_BytesPerPixel(t *testing.T) {
	tests := []struct {
		format   Format
		expected int
	}{
		{FormatGray8, 1},
		{FormatRGB8, 3},
		{FormatRGBA8, 4},
		{FormatRGBAPremul, 4},
		{FormatBGRA8, 4},
		{Format(99), 0},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			if got := tt.format.BytesPerPixel(); got != tt.expected {
				t.Errorf("BytesPerPixel() = %d, want %d", got, tt.expected)
			}
		})
	}
}

func TestFormat_RowBytes(t *testing.T) {
	if got := FormatRGB8.RowBytes(10); got != 30 {
		t.Errorf("RowBytes(10) = %d, want 30", got)
	}
}

func TestFormat_IsValid(t *testing.T) {
	if !FormatBGRA8.IsValid() {
		t.Error("FormatBGRA8 should be valid")
	}
	if formatCount.IsValid() {
		t.Error("formatCount should not be valid")
	}
	if got := formatCount.String(); got != "Unknown" {
		t.Errorf("String() = %q, want %q", got, "Unknown")
	}
}

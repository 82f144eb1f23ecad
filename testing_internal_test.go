package pixsnap

import "testing"

func TestPackageClass(t *testing.T) {
	tests := []struct {
		pkg  string
		want string
	}{
		{"example.com/ui/widgets", "widgets"},
		{"example.com/ui/widgets_test", "widgets"},
		{"example.com/x/v2", "x"},
		{"example.com/x/v2_test", "x"},
		{"example.com/x/v2/render", "render"},
		{"gopkg.in/foo%2ev3", "foo"},
		{"gopkg.in/foo.v3_test", "foo"},
		{"example.com/tools/go%2enet", "go.net"},
		{"v2", "v2"},
		{"main", "main"},
	}

	for _, tt := range tests {
		t.Run(tt.pkg, func(t *testing.T) {
			if got := packageClass(tt.pkg); got != tt.want {
				t.Errorf("packageClass(%q) = %q, want %q", tt.pkg, got, tt.want)
			}
		})
	}
}

func TestFuncPackage(t *testing.T) {
	tests := []struct {
		fn   string
		want string
	}{
		{"example.com/a/b.TestX.func1", "example.com/a/b"},
		{"example.com/x/v2.TestX", "example.com/x/v2"},
		{"gopkg.in/foo%2ev3.TestX", "gopkg.in/foo%2ev3"},
		{"example.com/a.Assert[go.shape.*example.com/a/bitmap.Bitmap]", "example.com/a"},
		{"example.com/a.(*Snapshotter).Image", "example.com/a"},
		{"main", ""},
	}

	for _, tt := range tests {
		t.Run(tt.fn, func(t *testing.T) {
			if got := funcPackage(tt.fn); got != tt.want {
				t.Errorf("funcPackage(%q) = %q, want %q", tt.fn, got, tt.want)
			}
		})
	}
}

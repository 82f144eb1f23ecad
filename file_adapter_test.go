package pixsnap

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/pixsnap/bitmap"
)

// failures collects reported messages.
type failures struct {
	mu   sync.Mutex
	msgs []string
}

func (f *failures) Fail(message string) {
	f.mu.Lock()
	f.msgs = append(f.msgs, message)
	f.mu.Unlock()
}

func (f *failures) take() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := f.msgs
	f.msgs = nil
	return msgs
}

func TestFileAdapter_SaveLoad(t *testing.T) {
	root := t.TempDir()
	a := NewFileAdapter(root, &failures{})
	path := filepath.Join(root, "a", "b", "img.png")

	if a.ReferenceImageExists(path) {
		t.Fatal("ReferenceImageExists() = true before save")
	}

	b, _ := bitmap.New(5, 3, bitmap.FormatRGBA8)
	_ = b.Set(4, 2, 10, 20, 30, 255)
	if err := a.SaveBitmapFile(b, path); err != nil {
		t.Fatalf("SaveBitmapFile() error = %v", err)
	}
	if !a.ReferenceImageExists(path) {
		t.Fatal("ReferenceImageExists() = false after save")
	}

	got, err := a.LoadReferenceImage(path)
	if err != nil {
		t.Fatalf("LoadReferenceImage() error = %v", err)
	}
	if !bitmap.Equal(b, got) {
		t.Error("loaded reference differs from saved bitmap")
	}
}

func TestFileAdapter_DirectoryIsNotReference(t *testing.T) {
	root := t.TempDir()
	a := NewFileAdapter(root, &failures{})
	if a.ReferenceImageExists(root) {
		t.Error("ReferenceImageExists(dir) = true, want false")
	}
}

func TestFileAdapter_AssertFailure(t *testing.T) {
	f := &failures{}
	NewFileAdapter(t.TempDir(), f).AssertFailure("boom")
	if got := f.take(); len(got) != 1 || got[0] != "boom" {
		t.Errorf("reported = %q, want [boom]", got)
	}
}

func TestFileAdapter_ConcurrentSaves(t *testing.T) {
	root := t.TempDir()
	a := NewFileAdapter(root, &failures{})

	var wg sync.WaitGroup
	for i := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			b, _ := bitmap.New(4, 4, bitmap.FormatRGBA8)
			b.Fill(uint8(i), 0, 0, 255)
			if err := a.SaveBitmapFile(b, filepath.Join(root, "same", "img.png")); err != nil {
				t.Errorf("SaveBitmapFile() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if _, err := bitmap.LoadPNG(filepath.Join(root, "same", "img.png")); err != nil {
		t.Errorf("LoadPNG() after concurrent saves error = %v", err)
	}
}

// End to end: record, pass, then mismatch against real files.
func TestFileAdapter_RecordThenCompare(t *testing.T) {
	refs, runs := t.TempDir(), t.TempDir()
	f := &failures{}
	a := NewFileAdapter(refs, f)
	id := &Identity{Name: "Button", RunDir: runs, ClassName: "ui.widgets.ButtonTests"}

	img, _ := bitmap.New(16, 16, bitmap.FormatRGBA8)
	img.Fill(0, 128, 255, 255)

	// Missing reference.
	if err := SnapshotBitmap(img, a, id, Config{}); err != nil {
		t.Fatal(err)
	}
	if got := f.take(); len(got) != 1 || !strings.HasPrefix(got[0], "Could not find reference image file") {
		t.Fatalf("missing reference: reported %q", got)
	}

	// Record.
	if err := SnapshotBitmap(img, a, id, Config{RecordMode: true}); err != nil {
		t.Fatal(err)
	}
	if got := f.take(); len(got) != 1 || !strings.HasPrefix(got[0], "Saved image to path") {
		t.Fatalf("record: reported %q", got)
	}
	refPath := filepath.Join(refs, "ui.widgets.ButtonTests", "Button.png")
	if _, err := os.Stat(refPath); err != nil {
		t.Fatalf("reference not written: %v", err)
	}

	// Compare against the same image.
	if err := SnapshotBitmap(img.Clone(), a, id, Config{}); err != nil {
		t.Fatal(err)
	}
	if got := f.take(); len(got) != 0 {
		t.Fatalf("compare same: reported %q, want nothing", got)
	}
	if entries, _ := os.ReadDir(runs); len(entries) != 0 {
		t.Errorf("passing compare wrote %d artifacts", len(entries))
	}

	// Single pixel change.
	changed := img.Clone()
	_ = changed.Set(7, 7, 0, 128, 254, 255)
	if err := SnapshotBitmap(changed, a, id, Config{}); err != nil {
		t.Fatal(err)
	}
	if got := f.take(); len(got) != 1 || !strings.HasPrefix(got[0], "Resulted image did not match") {
		t.Fatalf("compare changed: reported %q", got)
	}

	dir := filepath.Join(runs, "ui.widgets.ButtonTests")
	expected, err := bitmap.LoadPNG(filepath.Join(dir, "Button-expected.png"))
	if err != nil {
		t.Fatalf("expected artifact: %v", err)
	}
	actual, err := bitmap.LoadPNG(filepath.Join(dir, "Button-actual.png"))
	if err != nil {
		t.Fatalf("actual artifact: %v", err)
	}
	if !bitmap.Equal(expected, img) || !bitmap.Equal(actual, changed) {
		t.Error("artifacts do not hold the reference and actual images")
	}
	if got := id.ResultFiles(); len(got) != 1 || got[0] != filepath.Join(dir, "Button-actual.png") {
		t.Errorf("ResultFiles() = %q", got)
	}
}

func TestFileAdapter_RecordThenCompareEveryFormat(t *testing.T) {
	formats := []bitmap.Format{
		bitmap.FormatGray8,
		bitmap.FormatRGB8,
		bitmap.FormatRGBA8,
		bitmap.FormatRGBAPremul,
		bitmap.FormatBGRA8,
	}

	for _, format := range formats {
		t.Run(format.String(), func(t *testing.T) {
			f := &failures{}
			a := NewFileAdapter(t.TempDir(), f)
			id := &Identity{Name: "Fill", RunDir: t.TempDir(), ClassName: "formats.Tests"}

			img, _ := bitmap.New(4, 4, format)
			img.Fill(10, 20, 30, 128)

			if err := SnapshotBitmap(img, a, id, Config{RecordMode: true}); err != nil {
				t.Fatal(err)
			}
			if got := f.take(); len(got) != 1 || !strings.HasPrefix(got[0], "Saved image to path") {
				t.Fatalf("record: reported %q", got)
			}

			if err := SnapshotBitmap(img, a, id, Config{}); err != nil {
				t.Fatal(err)
			}
			if got := f.take(); len(got) != 0 {
				t.Errorf("compare after record: reported %q, want nothing", got)
			}
			if got := id.ResultFiles(); len(got) != 0 {
				t.Errorf("ResultFiles() = %q, want none", got)
			}
		})
	}
}

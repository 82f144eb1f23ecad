package pixsnap

import (
	"sync"

	"github.com/gogpu/pixsnap/bitmap"
)

// TestContext identifies the running test.
type TestContext interface {
	// TestName is the name of the test, used as the image file name.
	TestName() string

	// TestRunDirectory is where failure artifacts of this run are written.
	TestRunDirectory() string

	// FullyQualifiedTestClassName is the dot-separated namespace and class
	// path of the test, used to derive storage directories.
	FullyQualifiedTestClassName() string

	// AddResultFile registers a file with the host framework for
	// post-run inspection.
	AddResultFile(path string)
}

// Adapter is the I/O and failure-reporting capability used by [Snapshot].
//
// Each method is called at most once per snapshot.
type Adapter interface {
	// TestResultsSavePath is the base directory of reference images.
	TestResultsSavePath() string

	// ReferenceImageExists reports whether a reference exists at path.
	ReferenceImageExists(path string) bool

	// LoadReferenceImage loads the reference image at path.
	LoadReferenceImage(path string) (*bitmap.Bitmap, error)

	// SaveBitmapFile writes b to path.
	SaveBitmapFile(b *bitmap.Bitmap, path string) error

	// SaveComparisonBitmapFiles writes the expected and actual images of a
	// failed comparison.
	SaveComparisonBitmapFiles(expected *bitmap.Bitmap, expectedPath string, actual *bitmap.Bitmap, actualPath string) error

	// AssertFailure reports a test failure to the host framework.
	AssertFailure(message string)
}

// Reporter receives failure messages.
type Reporter interface {
	Fail(message string)
}

// ReporterFunc adapts a function to [Reporter].
type ReporterFunc func(message string)

// Fail calls f(message).
func (f ReporterFunc) Fail(message string) { f(message) }

// Identity is a fixed [TestContext]. Result files registered through
// AddResultFile are kept and returned by ResultFiles.
type Identity struct {
	Name      string
	RunDir    string
	ClassName string

	mu      sync.Mutex
	results []string
}

// TestName implements [TestContext].
func (id *Identity) TestName() string { return id.Name }

// TestRunDirectory implements [TestContext].
func (id *Identity) TestRunDirectory() string { return id.RunDir }

// FullyQualifiedTestClassName implements [TestContext].
func (id *Identity) FullyQualifiedTestClassName() string { return id.ClassName }

// AddResultFile implements [TestContext].
func (id *Identity) AddResultFile(path string) {
	id.mu.Lock()
	id.results = append(id.results, path)
	id.mu.Unlock()
}

// ResultFiles returns the registered result files in registration order.
func (id *Identity) ResultFiles() []string {
	id.mu.Lock()
	defer id.mu.Unlock()
	return append([]string(nil), id.results...)
}

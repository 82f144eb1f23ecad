package pixsnap

import (
	"image"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/gogpu/pixsnap/bitmap"
)

// selfPkg is skipped when looking for the calling test's package.
const selfPkg = "github.com/gogpu/pixsnap"

// TBReporter reports failures with tb.Error, so the test keeps running
// and fails at the end.
type TBReporter struct {
	TB testing.TB
}

// Fail implements [Reporter].
func (r TBReporter) Fail(message string) {
	r.TB.Helper()
	r.TB.Error(message)
}

// TBContext is the [TestContext] of a testing.TB.
//
// For tb.Name() "TestButton/hover" in package widgets the class is
// "widgets.TestButton" and the test name "hover". A top-level test
// "TestButton" has class "widgets" and test name "TestButton".
// The package part is the last import path element, skipping a major
// version suffix; use [WithClassName] to choose it explicitly.
type TBContext struct {
	tb     testing.TB
	class  string
	name   string
	runDir string

	mu      sync.Mutex
	results []string
}

// NewTBContext returns the context of tb with artifacts under runDir.
// An empty className derives the class from the calling package and the
// test name hierarchy.
func NewTBContext(tb testing.TB, runDir, className string) *TBContext {
	parts := strings.Split(tb.Name(), "/")
	name := parts[len(parts)-1]

	if className == "" {
		className = strings.Join(append([]string{callerPackage()}, parts[:len(parts)-1]...), ".")
	} else if len(parts) > 1 {
		className = strings.Join(append([]string{className}, parts[:len(parts)-1]...), ".")
	}

	return &TBContext{tb: tb, class: className, name: name, runDir: runDir}
}

// TestName implements [TestContext].
func (c *TBContext) TestName() string { return c.name }

// TestRunDirectory implements [TestContext].
func (c *TBContext) TestRunDirectory() string { return c.runDir }

// FullyQualifiedTestClassName implements [TestContext].
func (c *TBContext) FullyQualifiedTestClassName() string { return c.class }

// AddResultFile logs path on tb and records it.
func (c *TBContext) AddResultFile(path string) {
	c.tb.Logf("pixsnap: result file %s", path)
	c.mu.Lock()
	c.results = append(c.results, path)
	c.mu.Unlock()
}

// ResultFiles returns the registered result files.
func (c *TBContext) ResultFiles() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.results...)
}

// callerPackage returns the class name of the first caller outside pixsnap,
// as computed by packageClass.
func callerPackage() string {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(2, pcs)
	frames := runtime.CallersFrames(pcs[:n])
	for {
		f, more := frames.Next()
		if pkg := funcPackage(f.Function); pkg != "" && pkg != selfPkg {
			return packageClass(pkg)
		}
		if !more {
			return "test"
		}
	}
}

// packageClass names a package by the last element of its import path,
// without a _test suffix. A major version element ("example.com/x/v2")
// gives way to the element before it, and a gopkg.in style ".vN" suffix
// ("gopkg.in/yaml.v3") is dropped.
func packageClass(pkg string) string {
	// The runtime escapes dots in the last element of function names.
	pkg = strings.ReplaceAll(pkg, "%2e", ".")
	elems := strings.Split(strings.TrimSuffix(pkg, "_test"), "/")

	name := elems[len(elems)-1]
	if isMajorVersion(name) && len(elems) > 1 {
		name = elems[len(elems)-2]
	}
	if i := strings.LastIndexByte(name, '.'); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	return name
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for _, c := range s[1:] {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// funcPackage extracts the import path from a runtime function name such
// as "example.com/a/b.TestX.func1". Dots in the last path element are
// escaped as %2e by the runtime, so the first dot after the last slash
// ends the path.
func funcPackage(fn string) string {
	if i := strings.IndexByte(fn, '['); i >= 0 {
		fn = fn[:i]
	}
	slash := strings.LastIndexByte(fn, '/')
	dot := strings.IndexByte(fn[slash+1:], '.')
	if dot < 0 {
		return ""
	}
	return fn[:slash+1+dot]
}

// Option configures a Snapshotter.
type Option func(*snapshotterOptions)

type snapshotterOptions struct {
	adapter   func(tb testing.TB, referenceDir string) Adapter
	className string
}

// WithAdapter replaces the default [FileAdapter].
func WithAdapter(fn func(tb testing.TB, referenceDir string) Adapter) Option {
	return func(o *snapshotterOptions) {
		o.adapter = fn
	}
}

// WithClassName fixes the class name instead of deriving it from the
// calling package.
func WithClassName(name string) Option {
	return func(o *snapshotterOptions) {
		o.className = name
	}
}

// Snapshotter runs snapshots from tests with a fixed Config.
//
// Example:
//
//	var snap = pixsnap.New(pixsnap.DefaultConfig().FromEnv(),
//		pixsnap.WithClassName("charts"))
//
//	func TestChart(t *testing.T) {
//		snap.Image(t, renderChart())
//	}
type Snapshotter struct {
	cfg  Config
	opts snapshotterOptions
}

// New returns a Snapshotter using cfg.
func New(cfg Config, opts ...Option) *Snapshotter {
	o := snapshotterOptions{
		adapter: func(tb testing.TB, referenceDir string) Adapter {
			return NewFileAdapter(referenceDir, TBReporter{TB: tb})
		},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return &Snapshotter{cfg: cfg, opts: o}
}

// Config returns the configuration in use.
func (s *Snapshotter) Config() Config { return s.cfg }

// Bitmap snapshots b for tb.
func (s *Snapshotter) Bitmap(tb testing.TB, b *bitmap.Bitmap) {
	tb.Helper()
	Assert[*bitmap.Bitmap](s, tb, Passthrough{}, b)
}

// Image snapshots img for tb.
func (s *Snapshotter) Image(tb testing.TB, img image.Image) {
	tb.Helper()
	Assert[image.Image](s, tb, StdImage{}, img)
}

// Assert snapshots the bitmap p generates from target for tb.
// Provider and adapter errors stop the test with tb.Fatal.
func Assert[T any](s *Snapshotter, tb testing.TB, p Provider[T], target T) {
	tb.Helper()

	tc := NewTBContext(tb, s.cfg.RunDir, s.opts.className)
	a := s.opts.adapter(tb, s.cfg.ReferenceDir)
	if err := Snapshot(p, target, a, tc, s.cfg); err != nil {
		tb.Fatalf("pixsnap: %v", err)
	}
}

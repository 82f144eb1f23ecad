// Package pixsnap provides bitmap snapshot testing for Go.
//
// # Overview
//
// A snapshot test renders something into a bitmap and compares it
// byte-for-byte with a reference PNG recorded earlier. In record mode the
// bitmap is written as the new reference and the test fails on purpose, so
// a forgotten record flag can never leave a suite green.
//
// # Quick Start
//
//	var snap = pixsnap.New(pixsnap.DefaultConfig().FromEnv())
//
//	func TestButton(t *testing.T) {
//		img := renderButton()
//		snap.Image(t, img)
//	}
//
// Run once with PIXSNAP_RECORD=1 to record testdata/snapshots/..., then
// run normally to compare.
//
// # Layout
//
// References live at
//
//	{ReferenceDir}/{class}/{test}.png
//
// and mismatches leave
//
//	{RunDir}/{class}/{test}-expected.png
//	{RunDir}/{class}/{test}-actual.png
//
// where {class} is the dotted class name as one directory, or one
// directory per dot-separated segment when SeparateDirectoriesPerNamespace
// is set.
//
// # Architecture
//
// [Snapshot] is the decision procedure. It talks to the outside world only
// through a [Provider] (turns a target into a bitmap), an [Adapter]
// (file I/O and failure reporting) and a [TestContext] (test identity).
// [FileAdapter] and [TBContext] are the stock implementations for the
// filesystem and the testing package.
package pixsnap

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"

	// VersionMajor is the major version
	VersionMajor = 0

	// VersionMinor is the minor version
	VersionMinor = 1

	// VersionPatch is the patch version
	VersionPatch = 0
)

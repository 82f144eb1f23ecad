package pixsnap

import (
	"path/filepath"
	"strings"
)

// Reference and artifact file naming.
const (
	pngExt         = ".png"
	expectedSuffix = "-expected"
	actualSuffix   = "-actual"
)

// BuildPath returns the directory for tc's artifacts under basePath.
//
// With separateDirectoriesPerNamespace false the fully-qualified class name
// is used as a single directory, dots included. With it true each
// dot-separated segment becomes a nested directory.
//
// BuildPath does not touch the filesystem.
func BuildPath(basePath string, tc TestContext, separateDirectoriesPerNamespace bool) string {
	class := tc.FullyQualifiedTestClassName()
	if !separateDirectoriesPerNamespace {
		return filepath.Join(basePath, class)
	}

	segments := strings.Split(class, ".")
	return filepath.Join(append([]string{basePath}, segments...)...)
}

// ReferencePath returns where the reference image of tc lives:
// {basePath}/{class}/{test}.png.
func ReferencePath(basePath string, tc TestContext, separateDirectoriesPerNamespace bool) string {
	return filepath.Join(BuildPath(basePath, tc, separateDirectoriesPerNamespace), tc.TestName()+pngExt)
}

// ArtifactPaths returns the results directory and the expected/actual image
// paths written under runDir when a comparison fails.
func ArtifactPaths(runDir string, tc TestContext, separateDirectoriesPerNamespace bool) (dir, expected, actual string) {
	dir = BuildPath(runDir, tc, separateDirectoriesPerNamespace)
	name := tc.TestName()
	expected = filepath.Join(dir, name+expectedSuffix+pngExt)
	actual = filepath.Join(dir, name+actualSuffix+pngExt)
	return dir, expected, actual
}

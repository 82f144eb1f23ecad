package pixsnap

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/pixsnap/bitmap"
)

// Failure message templates. Log scrapers match on these; do not reword.
const (
	// MsgMissingReference takes the reference path.
	MsgMissingReference = "Could not find reference image file %s to compare. Please re-run the test with recordMode set to true to record a test result to compare later."

	// MsgRecorded takes the reference path.
	MsgRecorded = "Saved image to path %s. Re-run test mode with recordMode set to false to start comparing with record test result."

	// MsgMismatch takes the results directory.
	MsgMismatch = "Resulted image did not match expected image. Inspect results under directory %s for info about results"
)

// ErrNilImage is returned when a provider yields no bitmap.
var ErrNilImage = errors.New("pixsnap: provider returned nil bitmap")

// Snapshot records or compares the bitmap generated from target.
//
// In record mode the bitmap is saved as the reference for tc and a failure
// is always reported. In compare mode a missing reference is reported
// without generating the bitmap; otherwise the bitmap is compared with the
// reference and, on mismatch, both images are saved under tc's run
// directory, the actual image is registered as a result file, and a
// failure is reported. A match has no side effects beyond loading the
// reference.
//
// Expected outcomes are reported only through a.AssertFailure. The returned
// error is non-nil only when p or a fail, and is their error unchanged, or
// ErrNilImage.
func Snapshot[T any](p Provider[T], target T, a Adapter, tc TestContext, cfg Config) error {
	log := Logger()
	targetPath := ReferencePath(a.TestResultsSavePath(), tc, cfg.SeparateDirectoriesPerNamespace)

	if !cfg.RecordMode && !a.ReferenceImageExists(targetPath) {
		log.Info("pixsnap: reference missing", slog.String("path", targetPath))
		a.AssertFailure(fmt.Sprintf(MsgMissingReference, targetPath))
		return nil
	}

	actual, err := p.GenerateBitmap(target)
	if err != nil {
		return err
	}
	if actual == nil {
		return ErrNilImage
	}

	if cfg.RecordMode {
		if err := a.SaveBitmapFile(actual, targetPath); err != nil {
			return err
		}
		log.Info("pixsnap: reference recorded", slog.String("path", targetPath))
		a.AssertFailure(fmt.Sprintf(MsgRecorded, targetPath))
		return nil
	}

	expected, err := a.LoadReferenceImage(targetPath)
	if err != nil {
		return err
	}

	if bitmap.Equal(expected, actual) {
		log.Debug("pixsnap: snapshot matched", slog.String("path", targetPath))
		return nil
	}

	dir, expectedPath, actualPath := ArtifactPaths(tc.TestRunDirectory(), tc, cfg.SeparateDirectoriesPerNamespace)
	if err := a.SaveComparisonBitmapFiles(expected, expectedPath, actual, actualPath); err != nil {
		return err
	}
	tc.AddResultFile(actualPath)

	log.Info("pixsnap: snapshot mismatch",
		slog.String("reference", targetPath),
		slog.String("actual", actualPath))
	a.AssertFailure(fmt.Sprintf(MsgMismatch, dir))
	return nil
}

// SnapshotBitmap is [Snapshot] for a target that already is a bitmap.
func SnapshotBitmap(b *bitmap.Bitmap, a Adapter, tc TestContext, cfg Config) error {
	return Snapshot[*bitmap.Bitmap](Passthrough{}, b, a, tc, cfg)
}

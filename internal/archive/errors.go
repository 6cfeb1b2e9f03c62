package archive

import (
	"errors"
	"fmt"

	"github.com/yeka/zip"
)

// Stage errors returned by the pipeline. Each failure wraps the underlying
// cause, so callers can test both the stage and the reason with errors.Is.
var (
	// ErrSourceNotFound is returned when the source path does not exist at
	// pipeline start.
	ErrSourceNotFound = errors.New("source path not found")

	// ErrBuild is returned when writing the staging artifact fails.
	ErrBuild = errors.New("archive build failed")

	// ErrCommit is returned when promoting the staging artifact onto the
	// final path fails.
	ErrCommit = errors.New("archive commit failed")

	// ErrIntegrity is returned when the post-commit structural check fails.
	ErrIntegrity = errors.New("integrity check failed")

	// ErrExtraction is returned when the post-commit extraction test fails.
	ErrExtraction = errors.New("extraction test failed")

	// ErrOutputConflict is returned when no collision-free output name could
	// be allocated.
	ErrOutputConflict = errors.New("cannot allocate output path")
)

// Verification causes, surfaced by the Verifier underneath the stage errors.
var (
	// ErrBadPassword indicates the codec rejected the supplied password.
	ErrBadPassword = errors.New("wrong archive password")

	// ErrCorruptData indicates a checksum or authentication failure on
	// otherwise readable archive structure.
	ErrCorruptData = errors.New("corrupt archive data")

	// ErrEmptyArchive indicates the archive holds no entries. An empty
	// archive is treated as invalid rather than trivially verified.
	ErrEmptyArchive = errors.New("archive contains no entries")
)

// classify maps the zip codec's typed errors onto the verifier's taxonomy.
// The distinction between a rejected password and corrupt data comes from the
// codec's sentinel errors, never from message inspection.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, zip.ErrPassword):
		return fmt.Errorf("%w: %w", ErrBadPassword, err)
	case errors.Is(err, zip.ErrAuthentication),
		errors.Is(err, zip.ErrChecksum),
		errors.Is(err, zip.ErrDecryption):
		return fmt.Errorf("%w: %w", ErrCorruptData, err)
	default:
		return err
	}
}

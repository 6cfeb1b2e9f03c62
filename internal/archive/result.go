package archive

import "time"

// Result is the outcome of a pipeline run. On failure the fields populated so
// far are kept, so callers can point at a committed-but-unverified artifact.
type Result struct {
	// Source is the resolved absolute source path.
	Source string

	// Archive is the final artifact path. Set once the commit succeeded.
	Archive string

	// Password protects the archive. Only trustworthy when Run returned nil.
	Password string

	// Entries is the number of files written into the archive.
	Entries int

	// Scanned is the number of regular files seen under the source.
	Scanned int

	// Excluded is the number of files removed by exclude patterns.
	Excluded int

	// Extracted is the number of files recovered by the extraction test.
	Extracted int

	// Size is the final artifact size in bytes.
	Size int64

	// Verified reports whether both verification stages passed.
	Verified bool

	// Duration is the wall-clock time of the whole run.
	Duration time.Duration
}

// Report describes the outcome of a single verification stage.
type Report struct {
	// Entries is the number of entries the stage touched.
	Entries int

	// Detail is a human-readable summary for display.
	Detail string
}

package archive

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/yeka/zip"

	"github.com/idelchi/seczip/internal/filter"
)

// Builder writes encrypted archives. It only ever touches the staging path it
// is given; promoting the result to a final name is the pipeline's job.
type Builder struct {
	filter *filter.Filter
	log    Logger
}

// NewBuilder returns a Builder. The filter may be nil.
func NewBuilder(flt *filter.Filter, log Logger) *Builder {
	if log == nil {
		log = nopLogger{}
	}

	return &Builder{filter: flt, log: log}
}

// Build creates a new archive at stagingPath containing the source file, or
// every regular file under the source directory, each entry encrypted with
// the password using WinZip AES-256. Entries are deflate-compressed at the
// codec's default level.
//
// Entry names are relative to the source itself: archiving a directory D
// containing D/a.txt and D/sub/b.txt yields entries a.txt and sub/b.txt, so
// the archive root never leaks the containing directory name. Symlinks and
// other non-regular files are skipped.
//
// On error the staging file may be left partially written; the caller owns
// its cleanup.
func (b *Builder) Build(source, stagingPath, password string) (entries, scanned int, err error) {
	info, err := os.Stat(source)
	if err != nil {
		return 0, 0, fmt.Errorf("stat source %q: %w", source, err)
	}

	out, err := os.Create(stagingPath) //nolint:gosec // staging path is pipeline-owned
	if err != nil {
		return 0, 0, fmt.Errorf("creating staging file: %w", err)
	}

	defer func() {
		if err != nil {
			_ = out.Close()
		}
	}()

	zw := zip.NewWriter(out)

	switch {
	case info.Mode().IsRegular():
		scanned = 1

		if err := b.add(zw, source, filepath.Base(source), password); err != nil {
			return 0, scanned, err
		}

		entries = 1
	case info.IsDir():
		entries, scanned, err = b.addTree(zw, source, password)
		if err != nil {
			return entries, scanned, err
		}
	default:
		return 0, 0, fmt.Errorf("source %q is neither a regular file nor a directory", source)
	}

	if err := zw.Close(); err != nil {
		return entries, scanned, fmt.Errorf("finalizing archive: %w", err)
	}

	if err := out.Sync(); err != nil {
		return entries, scanned, fmt.Errorf("syncing staging file: %w", err)
	}

	if err := out.Close(); err != nil {
		return entries, scanned, fmt.Errorf("closing staging file: %w", err)
	}

	b.log.Debug("staging artifact written", "path", stagingPath, "entries", entries)

	return entries, scanned, nil
}

// addTree walks root and adds every regular file under its root-relative
// name. The walk is exhaustive; only the exclude filter removes candidates.
func (b *Builder) addTree(zw *zip.Writer, root, password string) (entries, scanned int, err error) {
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, werr error) error {
		if werr != nil {
			return werr
		}

		if d.IsDir() {
			return nil
		}

		if !d.Type().IsRegular() {
			b.log.Debug("skipping non-regular file", "path", path)

			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return fmt.Errorf("relativizing %q: %w", path, err)
		}

		name := filepath.ToSlash(rel)
		scanned++

		if b.filter.Excluded(name) {
			b.log.Debug("excluded by pattern", "entry", name)

			return nil
		}

		if err := b.add(zw, path, name, password); err != nil {
			return err
		}

		entries++

		return nil
	})
	if err != nil {
		return entries, scanned, fmt.Errorf("walking %q: %w", root, err)
	}

	return entries, scanned, nil
}

// add streams a single file into the archive under the given entry name.
// Encrypt pins the entry to AES-256; creating a header with a bare password
// would fall back to legacy ZipCrypto, which must never happen here.
func (b *Builder) add(zw *zip.Writer, path, name, password string) error {
	w, err := zw.Encrypt(name, password, zip.AES256Encryption)
	if err != nil {
		return fmt.Errorf("creating entry %q: %w", name, err)
	}

	in, err := os.Open(filepath.Clean(path))
	if err != nil {
		return fmt.Errorf("opening %q: %w", path, err)
	}

	if _, err := io.Copy(w, in); err != nil {
		_ = in.Close()

		return fmt.Errorf("writing entry %q: %w", name, err)
	}

	if err := in.Close(); err != nil {
		return fmt.Errorf("closing %q: %w", path, err)
	}

	b.log.Debug("entry added", "entry", name)

	return nil
}

package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/idelchi/seczip/internal/config"
	"github.com/idelchi/seczip/internal/fileutil"
	"github.com/idelchi/seczip/internal/filter"
	"github.com/idelchi/seczip/internal/password"
)

const (
	// timestampLayout names archives down to the second.
	timestampLayout = "20060102_150405"

	// outputSuffix marks artifacts produced by the pipeline.
	outputSuffix = "_secured.zip"

	// maxNameAttempts bounds the collision disambiguation loop.
	maxNameAttempts = 100
)

// Pipeline orchestrates a full run: generate a password, build the archive
// into a staging file beside the output, commit it atomically with a rename,
// then verify the committed artifact.
type Pipeline struct {
	cfg      config.Config
	log      Logger
	builder  *Builder
	verifier *Verifier

	// now is swapped out by tests to pin output names.
	now func() time.Time
}

// NewPipeline wires a Pipeline from the configuration. The filter and logger
// may be nil.
func NewPipeline(cfg config.Config, flt *filter.Filter, log Logger) *Pipeline {
	if log == nil {
		log = nopLogger{}
	}

	return &Pipeline{
		cfg:      cfg,
		log:      log,
		builder:  NewBuilder(flt, log),
		verifier: NewVerifier(cfg.Parallel, log),
		now:      time.Now,
	}
}

// Run archives source into a freshly named, password-protected artifact next
// to it. The returned Result carries whatever was established before a
// failure, so a committed-but-unverified artifact stays addressable: when err
// wraps ErrIntegrity or ErrExtraction the archive named in the Result exists
// on disk and is kept.
func (p *Pipeline) Run(source string) (Result, error) {
	start := p.now()

	res := Result{}

	source, err := filepath.Abs(source)
	if err != nil {
		return res, fmt.Errorf("resolving source path: %w", err)
	}

	res.Source = source

	if _, err := os.Stat(source); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return res, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
		}

		return res, fmt.Errorf("stat source %q: %w", source, err)
	}

	final, err := p.outputPath(source, start)
	if err != nil {
		return res, err
	}

	pw, err := password.Generate(p.cfg.PasswordLength)
	if err != nil {
		return res, fmt.Errorf("generating password: %w", err)
	}

	staging, err := fileutil.TempPath(final)
	if err != nil {
		return res, fmt.Errorf("creating staging file: %w", err)
	}

	p.log.Debug("staging next to output", "staging", staging)

	entries, scanned, err := p.builder.Build(source, staging, pw)
	if err != nil {
		p.discard(staging)

		return res, fmt.Errorf("%w: %w", ErrBuild, err)
	}

	res.Entries = entries
	res.Scanned = scanned
	res.Excluded = scanned - entries

	if err := os.Rename(staging, final); err != nil {
		p.discard(staging)

		return res, fmt.Errorf("%w: %w", ErrCommit, err)
	}

	res.Archive = final
	res.Password = pw

	if res.Size, err = fileutil.Size(final); err != nil {
		p.log.Error("sizing artifact", "path", final, "error", err)
	}

	p.log.Info("archive committed", "path", final, "entries", entries)

	if p.cfg.Verify {
		if _, err := p.verifier.VerifyIntegrity(final, pw); err != nil {
			return res, fmt.Errorf("%w: %w", ErrIntegrity, err)
		}

		report, err := p.verifier.TestExtraction(final, pw)
		if err != nil {
			return res, fmt.Errorf("%w: %w", ErrExtraction, err)
		}

		res.Extracted = report.Entries
		res.Verified = true
	}

	res.Duration = p.now().Sub(start)

	return res, nil
}

// outputPath allocates a collision-free artifact name beside the source.
// Existing files are never overwritten; on collision a numeric disambiguator
// is inserted before the extension.
func (p *Pipeline) outputPath(source string, at time.Time) (string, error) {
	dir := filepath.Dir(source)
	base := filepath.Base(source)

	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		stem = base
	}

	prefix := strings.TrimSuffix(
		fmt.Sprintf("%s_%s%s", stem, at.Format(timestampLayout), outputSuffix),
		".zip",
	)

	for attempt := 0; attempt < maxNameAttempts; attempt++ {
		name := prefix + ".zip"
		if attempt > 0 {
			name = fmt.Sprintf("%s_%d.zip", prefix, attempt)
		}

		candidate := filepath.Join(dir, name)

		_, err := os.Stat(candidate)

		switch {
		case errors.Is(err, fs.ErrNotExist):
			return candidate, nil
		case err != nil:
			return "", fmt.Errorf("probing output path %q: %w", candidate, err)
		}

		p.log.Debug("output name taken", "path", candidate)
	}

	return "", fmt.Errorf("%w: %d candidates already exist", ErrOutputConflict, maxNameAttempts)
}

// discard removes a staging artifact, logging failures other than the file
// already being gone.
func (p *Pipeline) discard(path string) {
	if err := fileutil.Discard(path); err != nil {
		p.log.Error("removing staging file", "path", path, "error", err)
	}
}

package commands

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"

	"github.com/idelchi/seczip/internal/config"
)

// newLogger builds the run logger from the configuration. Logs go to stderr;
// with file logging enabled they are mirrored into an append-only log file,
// by default a date-stamped file under the XDG state directory. The returned
// closer releases the log file, if any.
func newLogger(cfg config.Config) (*slog.Logger, func(), error) {
	level := slog.LevelInfo

	switch {
	case cfg.Quiet:
		level = slog.LevelError
	case cfg.Verbose:
		level = slog.LevelDebug
	}

	var out io.Writer = os.Stderr

	closer := func() {}

	if cfg.LogToFile || cfg.LogFile != "" {
		path := cfg.LogFile
		if path == "" {
			name := fmt.Sprintf("seczip_%s.log", time.Now().Format("20060102"))
			path = filepath.Join(xdg.StateHome, "seczip", name)
		}

		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}

		f, err := os.OpenFile(filepath.Clean(path), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}

		out = io.MultiWriter(os.Stderr, f)
		closer = func() { _ = f.Close() }
	}

	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})

	return slog.New(handler), closer, nil
}

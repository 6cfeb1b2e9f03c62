// Package config holds the runtime configuration for the seczip tool.
package config

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/go-playground/validator/v10"
)

// DefaultPasswordLength is the generated password length.
const DefaultPasswordLength = 16

// Config carries the options for a single run. It is handed to the pipeline
// by value, so flag mutation after construction cannot affect a run in flight.
//
// Compression is not configurable: the codec's exported encryption API always
// deflates at its default level.
type Config struct {
	// Verify enables the post-commit verification stages.
	Verify bool

	// PasswordLength is the length of the generated password.
	PasswordLength int `validate:"min=3,max=128"`

	// Parallel bounds the verifier's worker pool.
	Parallel int `validate:"min=1"`

	// Exclude holds find -path style patterns removed from directory walks.
	Exclude []string

	// ExcludeFrom names a JSONC file with additional exclude patterns.
	ExcludeFrom string

	// Quiet suppresses everything except the archive path, the password and
	// errors.
	Quiet bool

	// Verbose lowers the log level to debug.
	Verbose bool

	// Stats prints a run summary to stderr.
	Stats bool

	// LogToFile enables the date-stamped log file under the XDG state
	// directory.
	LogToFile bool

	// LogFile overrides the log file location and implies LogToFile.
	LogFile string
}

// Default returns the documented default configuration: verification
// enabled, password length 16.
func Default() Config {
	return Config{
		Verify:         true,
		PasswordLength: DefaultPasswordLength,
		Parallel:       runtime.NumCPU(),
	}
}

// Validate validates the configuration against the struct tags plus the
// cross-field rules the tags cannot express.
func (c Config) Validate() error {
	if c.Quiet && c.Verbose {
		return errors.New("--quiet and --verbose are mutually exclusive")
	}

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validating configuration: %w", err)
	}

	return nil
}

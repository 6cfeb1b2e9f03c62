package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/idelchi/seczip/internal/archive"
	"github.com/idelchi/seczip/internal/config"
	"github.com/idelchi/seczip/internal/filter"
)

// NewLockCommand creates the cobra command for the lock subcommand.
func NewLockCommand(cfg *config.Config) *cobra.Command {
	var noVerify bool

	cmd := &cobra.Command{
		Use:     "lock [flags] <path>",
		Aliases: []string{"zip"},
		Short:   "Archive and encrypt a file or directory",
		Long: `Packs the given file or directory into an encrypted archive next to it,
named <stem>_<timestamp>_secured.zip, under a freshly generated password.
The password is printed exactly once; it is never logged or written to disk.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			cfg.Verify = !noVerify

			if cfg.LogFile != "" {
				cfg.LogToFile = true
			}

			return cfg.Validate()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runLock(cfg, args[0])
		},
	}

	cmd.Flags().BoolVar(&noVerify, "no-verify", false, "Skip the post-commit verification stages")
	cmd.Flags().IntVar(&cfg.PasswordLength, "password-length", cfg.PasswordLength,
		"Length of the generated password")
	cmd.Flags().StringArrayVarP(&cfg.Exclude, "exclude", "e", nil,
		"Exclude entries matching this find -path style pattern (repeatable)")
	cmd.Flags().StringVar(&cfg.ExcludeFrom, "exclude-from", "",
		"Read additional exclude patterns from a JSONC file")
	cmd.Flags().BoolVar(&cfg.Stats, "stats", false, "Print a run summary to stderr")

	return cmd
}

// runLock wires the filter, logger and pipeline together and presents the
// outcome.
func runLock(cfg *config.Config, source string) error {
	log, closeLog, err := newLogger(*cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	flt, err := filter.New(cfg.Exclude, cfg.ExcludeFrom)
	if err != nil {
		return fmt.Errorf("compiling exclude patterns: %w", err)
	}

	res, err := archive.NewPipeline(*cfg, flt, log).Run(source)
	if err != nil {
		// A committed artifact that failed verification is kept on disk so
		// the failure can be inspected; the run still fails.
		if res.Archive != "" {
			fmt.Fprintf(os.Stderr, "Archive kept for inspection at %s\n", res.Archive)
		}

		return err
	}

	printResult(*cfg, res)

	if cfg.Stats {
		printStats(res)
	}

	return nil
}

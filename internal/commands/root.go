package commands

import (
	"github.com/spf13/cobra"

	"github.com/idelchi/seczip/internal/config"
)

// NewRootCommand creates the root command with the flags shared by all
// subcommands.
func NewRootCommand(cfg *config.Config, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "seczip [flags] command [flags]",
		Short: "Password-protected archive utility",
		Long: `A utility that packs a file or directory into an AES-256 encrypted zip
archive under a generated password, then proves the artifact is readable
before reporting success.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().BoolVarP(&cfg.Quiet, "quiet", "q", false, "Print only the archive path and password")
	root.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	root.PersistentFlags().IntVarP(&cfg.Parallel, "parallel", "j", cfg.Parallel,
		"Number of parallel verification workers, defaults to number of CPUs")
	root.PersistentFlags().BoolVar(&cfg.LogToFile, "log", false,
		"Also log to a date-stamped file under the XDG state directory")
	root.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "Log to this file instead (implies --log)")

	root.AddCommand(NewLockCommand(cfg), NewVerifyCommand(cfg))

	return root
}

package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/idelchi/seczip/internal/archive"
	"github.com/idelchi/seczip/internal/config"
)

// NewVerifyCommand creates the cobra command for the verify subcommand.
func NewVerifyCommand(cfg *config.Config) *cobra.Command {
	var password string

	cmd := &cobra.Command{
		Use:   "verify [flags] <archive>",
		Short: "Check an existing archive's integrity and extractability",
		Long: `Runs the same two verification stages the lock command applies to a fresh
archive: a full integrity pass over every entry, then a complete extraction
into a scratch directory that is removed afterwards.`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(_ *cobra.Command, _ []string) error {
			if cfg.LogFile != "" {
				cfg.LogToFile = true
			}

			return cfg.Validate()
		},
		RunE: func(_ *cobra.Command, args []string) error {
			return runVerify(cfg, args[0], password)
		},
	}

	cmd.Flags().StringVarP(&password, "password", "p", "", "Archive password (prompted for when omitted)")

	return cmd
}

func runVerify(cfg *config.Config, path, password string) error {
	log, closeLog, err := newLogger(*cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	if password == "" {
		if password, err = promptPassword(); err != nil {
			return err
		}
	}

	verifier := archive.NewVerifier(cfg.Parallel, log)

	report, err := verifier.VerifyIntegrity(path, password)
	if err != nil {
		return err
	}

	fmt.Printf("Integrity:  %s\n", report.Detail)

	report, err = verifier.TestExtraction(path, password)
	if err != nil {
		return err
	}

	fmt.Printf("Extraction: %s\n", report.Detail)

	return nil
}

// promptPassword reads a password without echo when stdin is a terminal, and
// falls back to a plain line read otherwise so the command stays scriptable.
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())

	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")

		raw, err := term.ReadPassword(fd)

		fmt.Fprintln(os.Stderr)

		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}

		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

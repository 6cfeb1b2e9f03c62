package commands

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/idelchi/seczip/internal/archive"
	"github.com/idelchi/seczip/internal/config"
)

// printResult shows the run outcome. Quiet mode prints exactly two lines,
// the archive path and the password, for easy consumption by scripts. The
// password appears here and nowhere else.
func printResult(cfg config.Config, res archive.Result) {
	if cfg.Quiet {
		fmt.Println(res.Archive)
		fmt.Println(res.Password)

		return
	}

	verification := "skipped"
	if res.Verified {
		verification = fmt.Sprintf("passed (%d entries checked, %d extracted)", res.Entries, res.Extracted)
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)

	t.AppendRows([]table.Row{
		{"Archive", res.Archive},
		{"Entries", res.Entries},
		{"Size", humanize.IBytes(uint64(res.Size))}, //nolint:gosec // sizes are non-negative
		{"Verification", verification},
		{"Password", res.Password},
	})

	t.Render()

	fmt.Println("Store the password now. It is not saved anywhere and cannot be recovered.")
}

// printStats writes a run summary to stderr, keeping stdout clean for the
// result itself.
func printStats(res archive.Result) {
	fmt.Fprintf(os.Stderr, "Scanned:  %d files\n", res.Scanned)
	fmt.Fprintf(os.Stderr, "Archived: %d files\n", res.Entries)
	fmt.Fprintf(os.Stderr, "Excluded: %d files\n", res.Excluded)
	fmt.Fprintf(os.Stderr, "Size:     %s\n", humanize.IBytes(uint64(res.Size))) //nolint:gosec // non-negative
	fmt.Fprintf(os.Stderr, "Duration: %s\n", res.Duration)
}

// Command seczip packs files into password-protected, verified archives.
package main

import (
	"fmt"
	"os"

	"github.com/idelchi/seczip/internal/commands"
	"github.com/idelchi/seczip/internal/config"
)

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cfg := config.Default()

	if err := commands.NewRootCommand(&cfg, version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

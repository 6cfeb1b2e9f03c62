// Package filter decides which files under a directory source are skipped,
// based on exclude patterns with find -path semantics.
package filter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/tidwall/jsonc"

	"github.com/idelchi/seczip/pkg/globmatch"
)

// Filter holds compiled exclude patterns. Patterns are matched against the
// slash-separated path of each candidate relative to the archive root.
type Filter struct {
	excludes *globmatch.Set
}

// New compiles the given patterns, plus any loaded from the optional JSONC
// patterns file, into a reusable filter.
func New(patterns []string, fromFile string) (*Filter, error) {
	merged := append([]string{}, patterns...)

	if fromFile != "" {
		loaded, err := loadPatterns(fromFile)
		if err != nil {
			return nil, fmt.Errorf("loading exclude patterns: %w", err)
		}

		merged = append(merged, loaded...)
	}

	// Strip leading "./" so patterns match cleaned relative paths.
	for i, p := range merged {
		merged[i] = strings.TrimPrefix(p, "./")
	}

	set, err := globmatch.Compile(merged)
	if err != nil {
		return nil, fmt.Errorf("compiling exclude patterns: %w", err)
	}

	return &Filter{excludes: set}, nil
}

// Excluded reports whether the relative path matches any exclude pattern.
func (f *Filter) Excluded(rel string) bool {
	if f == nil || f.excludes.Len() == 0 {
		return false
	}

	return f.excludes.MatchAny(rel)
}

// loadPatterns reads a JSONC file holding an array of glob patterns. Blank
// entries are rejected here, before compilation would silently accept them.
func loadPatterns(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from user-supplied config
	if err != nil {
		return nil, fmt.Errorf("reading patterns file %q: %w", path, err)
	}

	var patterns []string
	if err := json.Unmarshal(jsonc.ToJSONInPlace(data), &patterns); err != nil {
		return nil, fmt.Errorf("parsing patterns file %q: %w", path, err)
	}

	for i, p := range patterns {
		if strings.TrimSpace(p) == "" {
			return nil, fmt.Errorf("patterns file %q: entry %d is blank", path, i)
		}
	}

	return patterns, nil
}

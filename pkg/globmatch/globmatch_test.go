package globmatch_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/idelchi/seczip/pkg/globmatch"
)

// Case is a single test case from a YAML golden file.
type Case struct {
	Pattern     string `yaml:"pattern"`
	Path        string `yaml:"path"`
	Match       bool   `yaml:"match"`
	Description string `yaml:"description,omitempty"`
}

// Group is a named collection of test cases.
type Group struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description,omitempty"`
	Cases       []Case `yaml:"cases"`
}

func loadSpecs(t *testing.T) map[string][]Group {
	t.Helper()

	files, err := filepath.Glob("testdata/*.yml")
	if err != nil {
		t.Fatalf("globbing testdata: %v", err)
	}

	if len(files) == 0 {
		t.Fatal("no testdata/*.yml files found")
	}

	specs := make(map[string][]Group)

	for _, f := range files {
		data, err := os.ReadFile(f) //nolint:gosec // test helper reads known testdata files
		if err != nil {
			t.Fatalf("reading %s: %v", f, err)
		}

		var groups []Group
		if err := yaml.Unmarshal(data, &groups); err != nil {
			t.Fatalf("parsing %s: %v", f, err)
		}

		specs[filepath.Base(f)] = groups
	}

	return specs
}

// forEachCase iterates file→group→case from the golden specs and calls fn per case.
func forEachCase(t *testing.T, fn func(t *testing.T, tc Case)) {
	t.Helper()

	for file, groups := range loadSpecs(t) {
		groups := groups

		t.Run(file, func(t *testing.T) {
			t.Parallel()

			for _, g := range groups {
				g := g

				t.Run(g.Name, func(t *testing.T) {
					t.Parallel()

					for i, tc := range g.Cases {
						tc := tc

						desc := tc.Description
						if desc == "" {
							desc = fmt.Sprintf("case_%d", i)
						}

						t.Run(desc, func(t *testing.T) {
							t.Parallel()
							fn(t, tc)
						})
					}
				})
			}
		})
	}
}

// TestMatch runs all golden test cases against globmatch.Match.
func TestMatch(t *testing.T) {
	t.Parallel()

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		got, err := globmatch.Match(tc.Pattern, tc.Path)
		if err != nil {
			t.Fatalf("Match(%q, %q) error: %v", tc.Pattern, tc.Path, err)
		}

		if got != tc.Match {
			t.Errorf("Match(%q, %q) = %v, want %v", tc.Pattern, tc.Path, got, tc.Match)
		}
	})
}

// TestSet tests the pre-validated Set API against the same golden cases.
func TestSet(t *testing.T) {
	t.Parallel()

	forEachCase(t, func(t *testing.T, tc Case) {
		t.Helper()

		set, err := globmatch.Compile([]string{tc.Pattern})
		if err != nil {
			t.Fatalf("Compile(%q) error: %v", tc.Pattern, err)
		}

		if got := set.MatchAny(tc.Path); got != tc.Match {
			t.Errorf("Set(%q).MatchAny(%q) = %v, want %v", tc.Pattern, tc.Path, got, tc.Match)
		}
	})
}

// TestInvalidPatterns checks that malformed patterns are rejected up front.
func TestInvalidPatterns(t *testing.T) {
	t.Parallel()

	for _, pattern := range []string{"trailing\\", "[unclosed", "a[!"} {
		if _, err := globmatch.Match(pattern, "x"); err == nil {
			t.Errorf("Match(%q) expected an error", pattern)
		}

		if _, err := globmatch.Compile([]string{pattern}); err == nil {
			t.Errorf("Compile(%q) expected an error", pattern)
		}
	}
}

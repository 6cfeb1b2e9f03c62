// Package globmatch implements find -path matching semantics.
//
// It follows fnmatch(3) without FNM_PATHNAME:
//   - * matches any characters including /
//   - ? matches exactly one character including /
//   - [...] matches one character from the set including /
//   - \ escapes the next character outside character classes
//
// This differs from Go's path.Match where * does not cross directory
// separators. Matching is done with a direct backtracking scan rather than a
// regexp translation, so patterns do not need to be precompiled.
package globmatch

import "fmt"

// Match reports whether path matches the pattern using find -path semantics.
func Match(pattern, path string) (bool, error) {
	if err := validate(pattern); err != nil {
		return false, err
	}

	return match(pattern, path), nil
}

// Set holds pre-validated patterns for reuse across many paths.
type Set struct {
	patterns []string
}

// Compile validates the given patterns and returns a reusable Set.
func Compile(patterns []string) (*Set, error) {
	for _, p := range patterns {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", p, err)
		}
	}

	set := &Set{patterns: make([]string, len(patterns))}
	copy(set.patterns, patterns)

	return set, nil
}

// MatchAny reports whether path matches any pattern in the set.
func (s *Set) MatchAny(path string) bool {
	for _, p := range s.patterns {
		if match(p, path) {
			return true
		}
	}

	return false
}

// Len returns the number of patterns in the set.
func (s *Set) Len() int { return len(s.patterns) }

// validate rejects patterns that can never be matched safely:
// a trailing backslash and an unclosed character class.
func validate(pattern string) error {
	pos := 0

	for pos < len(pattern) {
		switch pattern[pos] {
		case '\\':
			if pos+1 >= len(pattern) {
				return fmt.Errorf("trailing backslash in pattern %q", pattern)
			}

			pos += 2

		case '[':
			end, err := closingBracket(pattern, pos)
			if err != nil {
				return err
			}

			pos = end + 1

		default:
			pos++
		}
	}

	return nil
}

// match runs an iterative backtracking scan of path against pattern.
// Only the most recent * needs to be remembered: if a later literal fails,
// the star absorbs one more byte and the scan resumes after it.
func match(pattern, path string) bool {
	p, n := 0, 0
	starP, starN := -1, 0

	for n < len(path) {
		if p < len(pattern) {
			switch pattern[p] {
			case '*':
				starP, starN = p, n
				p++

				continue

			case '?':
				p++
				n++

				continue

			case '[':
				end, _ := closingBracket(pattern, p)
				if matchClass(pattern[p+1:end], path[n]) {
					p = end + 1
					n++

					continue
				}

			case '\\':
				if pattern[p+1] == path[n] {
					p += 2
					n++

					continue
				}

			default:
				if pattern[p] == path[n] {
					p++
					n++

					continue
				}
			}
		}

		if starP < 0 {
			return false
		}

		starN++
		n = starN
		p = starP + 1
	}

	// Any trailing stars match the empty remainder.
	for p < len(pattern) && pattern[p] == '*' {
		p++
	}

	return p == len(pattern)
}

// matchClass reports whether c is matched by the class body (the text between
// the brackets). A leading ! negates the class; a-b denotes an inclusive range.
func matchClass(class string, c byte) bool {
	negated := false
	if len(class) > 0 && class[0] == '!' {
		negated = true
		class = class[1:]
	}

	matched := false

	for i := 0; i < len(class); i++ {
		if i+2 < len(class) && class[i+1] == '-' {
			if class[i] <= c && c <= class[i+2] {
				matched = true
			}

			i += 2

			continue
		}

		if class[i] == c {
			matched = true
		}
	}

	return matched != negated
}

// closingBracket finds the index of the ] terminating the class at pos.
// A ] directly after the opening bracket (or after !) is a literal member.
func closingBracket(pattern string, pos int) (int, error) {
	idx := pos + 1

	if idx < len(pattern) && pattern[idx] == '!' {
		idx++
	}

	if idx < len(pattern) && pattern[idx] == ']' {
		idx++
	}

	for idx < len(pattern) {
		if pattern[idx] == ']' {
			return idx, nil
		}

		idx++
	}

	return 0, fmt.Errorf("unclosed character class in pattern %q", pattern)
}

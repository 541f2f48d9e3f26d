package syntax

import (
	"path/filepath"
	"regexp"
	"strings"
)

// compileWildcard turns a file pattern into an anchored regexp: '*' matches
// any run, '?' a single rune, everything else is literal.
func compileWildcard(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString(`(?s)^`)
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString(`$`)
	return regexp.Compile(b.String())
}

// Match reports whether the base name of filename matches pattern.
func Match(pattern, filename string) bool {
	if filename == "" {
		return false
	}
	re, err := compileWildcard(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(filepath.Base(filename))
}

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// RuleGroup is one element of a pattern's rule list. A category whose color
// is ColorNone was not present in the file and is not highlighted.
type RuleGroup struct {
	Keywords     Color
	KeywordsList []string
	Strings      Color
	Numbers      Color
	Comments     Color
	Import       Color
}

// Entry binds a wildcard file pattern to its rule groups.
type Entry struct {
	Pattern string
	Groups  []RuleGroup
}

// Config holds the rule file in document order.
type Config struct {
	Path    string
	Entries []Entry
}

// Empty returns a config with no entries; highlighting is disabled.
func Empty() *Config {
	return &Config{}
}

// ConfigError reports a rule file that could not be found or parsed.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return e.Err.Error()
	}
	return e.Path + ": " + e.Err.Error()
}

func (e *ConfigError) Unwrap() error { return e.Err }

type rawGroup struct {
	Keywords     *string  `json:"keywords"`
	KeywordsList []string `json:"keywords_list"`
	Strings      *string  `json:"strings"`
	Numbers      *string  `json:"numbers"`
	Comments     *string  `json:"comments"`
	Import       *string  `json:"import"`
}

func (g rawGroup) resolve() RuleGroup {
	color := func(s *string) Color {
		if s == nil {
			return ColorNone
		}
		return ParseColor(*s)
	}
	return RuleGroup{
		Keywords:     color(g.Keywords),
		KeywordsList: g.KeywordsList,
		Strings:      color(g.Strings),
		Numbers:      color(g.Numbers),
		Comments:     color(g.Comments),
		Import:       color(g.Import),
	}
}

// Parse decodes a rule file. Patterns keep the order they appear in the
// document, which a plain map decode would lose.
func Parse(r io.Reader) (*Config, error) {
	dec := json.NewDecoder(r)
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, errors.New("rule file must be a JSON object")
	}
	cfg := &Config{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		pattern, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		var groups []rawGroup
		if err := dec.Decode(&groups); err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pattern, err)
		}
		e := Entry{Pattern: pattern}
		for _, g := range groups {
			e.Groups = append(e.Groups, g.resolve())
		}
		cfg.Entries = append(cfg.Entries, e)
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the rule file at path. On any failure it returns an empty
// config together with a *ConfigError, so callers can keep going without
// highlighting.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Empty(), &ConfigError{Path: path, Err: err}
	}
	defer f.Close()
	cfg, err := Parse(f)
	if err != nil {
		return Empty(), &ConfigError{Path: path, Err: err}
	}
	cfg.Path = path
	return cfg, nil
}

// SearchPaths lists the rule file locations in priority order:
// $TED_CONFIG, ~/.ted.conf, /etc/ted.conf.
func SearchPaths() []string {
	var paths []string
	if p := os.Getenv("TED_CONFIG"); p != "" {
		paths = append(paths, p)
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".ted.conf"))
	}
	return append(paths, filepath.Join(string(filepath.Separator), "etc", "ted.conf"))
}

// LoadDefault loads the first rule file found in SearchPaths.
func LoadDefault() (*Config, error) {
	return loadFirst(SearchPaths())
}

func loadFirst(paths []string) (*Config, error) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		return Load(p)
	}
	return Empty(), &ConfigError{
		Path: strings.Join(paths, ", "),
		Err:  fmt.Errorf("no rule file found: %w", fs.ErrNotExist),
	}
}

package syntax

import (
	"path/filepath"
	"regexp"
	"strings"

	"example.com/ted/pkg/config"
)

// DefaultKeywords is used when a group enables keywords without a list.
var DefaultKeywords = []string{"def", "class", "if", "else", "for", "while", "return"}

// hashCommentExts are the languages whose line comments start with '#'.
var hashCommentExts = map[string]bool{
	".py":   true,
	".sh":   true,
	".bash": true,
	".zsh":  true,
	".rb":   true,
	".pl":   true,
	".yaml": true,
	".yml":  true,
	".toml": true,
	".conf": true,
}

var (
	reStrings     = regexp.MustCompile(`(".*?")|('.*?')`)
	reNumbers     = regexp.MustCompile(`\b\d+\b`)
	reHashComment = regexp.MustCompile(`#.*$`)
	reLineComment = regexp.MustCompile(`//.*$`)
	rePyImport    = regexp.MustCompile(`\b(import|from)\b`)
	reImport      = regexp.MustCompile(`\b(import|require)\b`)
)

// Rule pairs a compiled matcher with the color its matches are drawn in.
type Rule struct {
	Category string
	Re       *regexp.Regexp
	Color    config.Color
}

// RuleSet is the ordered list of rules selected for one file.
type RuleSet struct {
	Pattern string
	Rules   []Rule
}

// Empty reports whether highlighting is disabled.
func (rs RuleSet) Empty() bool { return len(rs.Rules) == 0 }

// Compile selects the first config entry whose pattern matches the base
// name of filename and compiles its groups. Without a match the set is empty.
func Compile(cfg *config.Config, filename string) RuleSet {
	if cfg == nil || filename == "" {
		return RuleSet{}
	}
	for _, e := range cfg.Entries {
		if !Match(e.Pattern, filename) {
			continue
		}
		rs := RuleSet{Pattern: e.Pattern}
		for _, g := range e.Groups {
			rs.Rules = append(rs.Rules, compileGroup(e.Pattern, g)...)
		}
		return rs
	}
	return RuleSet{}
}

func compileGroup(pattern string, g config.RuleGroup) []Rule {
	ext := strings.ToLower(filepath.Ext(pattern))
	var rules []Rule
	if g.Keywords != config.ColorNone {
		if re := keywordMatcher(g.KeywordsList); re != nil {
			rules = append(rules, Rule{Category: "keywords", Re: re, Color: g.Keywords})
		}
	}
	if g.Strings != config.ColorNone {
		rules = append(rules, Rule{Category: "strings", Re: reStrings, Color: g.Strings})
	}
	if g.Numbers != config.ColorNone {
		rules = append(rules, Rule{Category: "numbers", Re: reNumbers, Color: g.Numbers})
	}
	if g.Comments != config.ColorNone {
		re := reLineComment
		if hashCommentExts[ext] {
			re = reHashComment
		}
		rules = append(rules, Rule{Category: "comments", Re: re, Color: g.Comments})
	}
	if g.Import != config.ColorNone {
		re := reImport
		if ext == ".py" {
			re = rePyImport
		}
		rules = append(rules, Rule{Category: "import", Re: re, Color: g.Import})
	}
	return rules
}

// keywordMatcher builds a whole-word alternation. Empty entries are dropped;
// an explicitly empty list yields no matcher.
func keywordMatcher(list []string) *regexp.Regexp {
	if list == nil {
		list = DefaultKeywords
	}
	var quoted []string
	for _, kw := range list {
		if kw == "" {
			continue
		}
		quoted = append(quoted, regexp.QuoteMeta(kw))
	}
	if len(quoted) == 0 {
		return nil
	}
	return regexp.MustCompile(`\b(` + strings.Join(quoted, "|") + `)\b`)
}

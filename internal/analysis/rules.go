package analysis

import (
	_ "embed"
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed rules.yaml
var embeddedRules []byte

// RuleSet is the per-locale heuristic policy table: classification cues,
// keyword vocabulary, and table/figure detection vocabulary. Rules are data,
// not code, so they can be unit-tested and extended per language.
type RuleSet struct {
	Locale          string
	ChapterPattern  *regexp.Regexp
	ListPattern     *regexp.Regexp
	ContactCues     []string
	TableCues       []string
	FigureKeywords  map[string][]string
	Keywords        []string
	KeywordFallback []string
	RootTitle       string
}

type rawRuleSet struct {
	ChapterPattern  string              `yaml:"chapter_pattern"`
	ListPattern     string              `yaml:"list_pattern"`
	ContactCues     []string            `yaml:"contact_cues"`
	TableCues       []string            `yaml:"table_cues"`
	FigureKeywords  map[string][]string `yaml:"figure_keywords"`
	Keywords        []string            `yaml:"keywords"`
	KeywordFallback []string            `yaml:"keyword_fallback"`
	RootTitle       string              `yaml:"root_title"`
}

type rawRulesFile struct {
	Locales map[string]rawRuleSet `yaml:"locales"`
}

// LoadRules parses the embedded rule tables and returns the rule set for
// the given locale, falling back to "zh" for unknown locales.
func LoadRules(locale string) (*RuleSet, error) {
	var file rawRulesFile
	if err := yaml.Unmarshal(embeddedRules, &file); err != nil {
		return nil, fmt.Errorf("parse rule tables: %w", err)
	}

	key := strings.ToLower(strings.TrimSpace(locale))
	raw, ok := file.Locales[key]
	if !ok {
		key = "zh"
		raw, ok = file.Locales[key]
		if !ok {
			return nil, fmt.Errorf("rule tables missing default locale %q", key)
		}
	}

	chapter, err := regexp.Compile(raw.ChapterPattern)
	if err != nil {
		return nil, fmt.Errorf("compile chapter pattern for %q: %w", key, err)
	}
	list, err := regexp.Compile(raw.ListPattern)
	if err != nil {
		return nil, fmt.Errorf("compile list pattern for %q: %w", key, err)
	}

	return &RuleSet{
		Locale:          key,
		ChapterPattern:  chapter,
		ListPattern:     list,
		ContactCues:     raw.ContactCues,
		TableCues:       raw.TableCues,
		FigureKeywords:  raw.FigureKeywords,
		Keywords:        raw.Keywords,
		KeywordFallback: raw.KeywordFallback,
		RootTitle:       raw.RootTitle,
	}, nil
}

func containsAny(line string, cues []string) bool {
	lower := strings.ToLower(line)
	for _, cue := range cues {
		if strings.Contains(lower, strings.ToLower(cue)) {
			return true
		}
	}
	return false
}

package util

import (
	"fmt"
	"regexp"
	"sort"
	"unicode"
	"unicode/utf8"
)

type ReplacePair struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// ReplaceTable applies an ordered list of literal fix-ups in a single pass:
// every occurrence is replaced at most once and replacement text is never
// rescanned. A pattern ending in a letter only matches at a word boundary,
// so " Ii" does not fire inside " Iii".
type ReplaceTable struct {
	re *regexp.Regexp
	to map[string]string
}

func NewReplaceTable(pairs []ReplacePair) (*ReplaceTable, error) {
	t := &ReplaceTable{to: map[string]string{}}
	if len(pairs) == 0 {
		return t, nil
	}

	single := make([]*regexp.Regexp, len(pairs))
	for i, p := range pairs {
		if p.From == "" {
			return nil, fmt.Errorf("replace table: entry %d has empty pattern", i)
		}
		if _, dup := t.to[p.From]; dup {
			return nil, fmt.Errorf("replace table: duplicate pattern %q", p.From)
		}
		t.to[p.From] = p.To
		single[i] = regexp.MustCompile(patternFor(p.From))
	}

	for i, a := range pairs {
		for j, b := range pairs {
			if i != j && single[i].MatchString(b.From) {
				return nil, fmt.Errorf("replace table: pattern %q overlaps %q", a.From, b.From)
			}
			if single[i].MatchString(b.To) {
				return nil, fmt.Errorf("replace table: pattern %q matches replacement %q", a.From, b.To)
			}
		}
	}

	ordered := append([]ReplacePair(nil), pairs...)
	sort.SliceStable(ordered, func(i, j int) bool { return len(ordered[i].From) > len(ordered[j].From) })
	alt := ""
	for i, p := range ordered {
		if i > 0 {
			alt += "|"
		}
		alt += patternFor(p.From)
	}
	t.re = regexp.MustCompile(alt)
	return t, nil
}

func (t *ReplaceTable) Apply(input string) string {
	if t == nil || t.re == nil {
		return input
	}
	return t.re.ReplaceAllStringFunc(input, func(m string) string {
		return t.to[m]
	})
}

func (t *ReplaceTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.to)
}

func patternFor(from string) string {
	p := regexp.QuoteMeta(from)
	if r, _ := utf8.DecodeLastRuneInString(from); r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
		p += `\b`
	}
	return p
}

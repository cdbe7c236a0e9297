// Package policy holds the lookup tables that drive eligibility and field
// normalization. A default policy is embedded; a YAML file may replace any
// top-level section of it.
package policy

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"etdbatch/internal/util"
)

//go:embed default.yaml
var defaultYAML []byte

const uidPlaceholder = "{uid}"

type Range struct {
	First int64 `yaml:"first"`
	Last  int64 `yaml:"last"`
}

type IDSet struct {
	Name string  `yaml:"name"`
	IDs  []int64 `yaml:"ids"`
}

type Restricted struct {
	Ranges     []Range `yaml:"ranges"`
	Sets       []IDSet `yaml:"sets"`
	Exceptions []int64 `yaml:"exceptions"`
}

type Advisors struct {
	Separator string   `yaml:"separator"`
	Labels    []string `yaml:"labels"`
}

type Policy struct {
	UIDPrefix          string             `yaml:"uid_prefix"`
	DuplicateExtension string             `yaml:"duplicate_extension"`
	AssetExtension     string             `yaml:"asset_extension"`
	FulltextURL        string             `yaml:"fulltext_url"`
	Restricted         Restricted         `yaml:"restricted"`
	Roman              []util.ReplacePair `yaml:"roman"`
	Suffixes           map[string]string  `yaml:"suffixes"`
	Advisors           Advisors           `yaml:"advisors"`
	ReviewLastName     []string           `yaml:"review_last_name"`
	Columns            []string           `yaml:"columns"`
	Static             map[string]string  `yaml:"static"`

	// StripAbstractMarkup removes known HTML elements from 520 values.
	// Off by default.
	StripAbstractMarkup bool `yaml:"strip_abstract_markup"`

	roman    *util.ReplaceTable
	suffixes map[string]string
}

func Default() (*Policy, error) {
	p, err := parse(defaultYAML)
	if err != nil {
		return nil, fmt.Errorf("policy: embedded default: %w", err)
	}
	return p, p.Validate()
}

// Load reads a policy file. Sections the file leaves out keep their
// embedded defaults. An empty path yields the default policy.
func Load(path string) (*Policy, error) {
	def, err := Default()
	if err != nil {
		return nil, err
	}
	if path == "" {
		return def, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("policy: read %s: %w", path, err)
	}
	p, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("policy: parse %s: %w", path, err)
	}
	p.fillFrom(def)
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func parse(data []byte) (*Policy, error) {
	var p Policy
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (p *Policy) fillFrom(def *Policy) {
	if p.UIDPrefix == "" {
		p.UIDPrefix = def.UIDPrefix
	}
	if p.DuplicateExtension == "" {
		p.DuplicateExtension = def.DuplicateExtension
	}
	if p.AssetExtension == "" {
		p.AssetExtension = def.AssetExtension
	}
	if p.FulltextURL == "" {
		p.FulltextURL = def.FulltextURL
	}
	if len(p.Restricted.Ranges) == 0 && len(p.Restricted.Sets) == 0 && len(p.Restricted.Exceptions) == 0 {
		p.Restricted = def.Restricted
	}
	if p.Roman == nil {
		p.Roman = def.Roman
	}
	if p.Suffixes == nil {
		p.Suffixes = def.Suffixes
	}
	if p.Advisors.Separator == "" {
		p.Advisors.Separator = def.Advisors.Separator
	}
	if p.Advisors.Labels == nil {
		p.Advisors.Labels = def.Advisors.Labels
	}
	if p.ReviewLastName == nil {
		p.ReviewLastName = def.ReviewLastName
	}
	if len(p.Columns) == 0 {
		p.Columns = def.Columns
	}
	if p.Static == nil {
		p.Static = def.Static
	}
}

func (p *Policy) Validate() error {
	if !strings.Contains(p.FulltextURL, uidPlaceholder) {
		return fmt.Errorf("policy: fulltext_url %q has no %s placeholder", p.FulltextURL, uidPlaceholder)
	}
	for i, r := range p.Restricted.Ranges {
		if r.First > r.Last {
			return fmt.Errorf("policy: restricted range %d: first %d > last %d", i, r.First, r.Last)
		}
	}
	for i, s := range p.Restricted.Sets {
		if s.Name == "" {
			return fmt.Errorf("policy: restricted set %d has no name", i)
		}
	}
	if p.Advisors.Separator == "" {
		return fmt.Errorf("policy: advisors.separator is empty")
	}
	for i, l := range p.Advisors.Labels {
		if strings.TrimSpace(l) == "" {
			return fmt.Errorf("policy: advisor label %d is empty", i)
		}
	}
	if len(p.Columns) == 0 {
		return fmt.Errorf("policy: no columns")
	}
	seen := map[string]bool{}
	for _, c := range p.Columns {
		if seen[c] {
			return fmt.Errorf("policy: duplicate column %q", c)
		}
		seen[c] = true
	}

	roman, err := util.NewReplaceTable(p.Roman)
	if err != nil {
		return fmt.Errorf("policy: roman: %w", err)
	}
	p.roman = roman

	p.suffixes = make(map[string]string, len(p.Suffixes))
	for k, v := range p.Suffixes {
		p.suffixes[suffixKey(k)] = v
	}
	return nil
}

func (p *Policy) RomanTable() *util.ReplaceTable {
	return p.roman
}

// CanonicalSuffix maps each comma-separated suffix through the suffix
// table: exact key first, then the upper-cased key without periods.
// Unknown suffixes pass through unchanged.
func (p *Policy) CanonicalSuffix(raw string) string {
	if raw == "" {
		return ""
	}
	parts := strings.Split(raw, ",")
	out := parts[:0]
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if v, ok := p.Suffixes[part]; ok {
			out = append(out, v)
		} else if v, ok := p.suffixes[suffixKey(part)]; ok {
			out = append(out, v)
		} else {
			out = append(out, part)
		}
	}
	return strings.Join(out, ", ")
}

func (p *Policy) FulltextURLFor(uid string) string {
	return strings.ReplaceAll(p.FulltextURL, uidPlaceholder, uid)
}

// NeedsReview reports whether a last name contains one of the configured
// review fragments, ignoring case.
func (p *Policy) NeedsReview(last string) bool {
	l := strings.ToLower(last)
	for _, frag := range p.ReviewLastName {
		if frag != "" && strings.Contains(l, strings.ToLower(frag)) {
			return true
		}
	}
	return false
}

func suffixKey(s string) string {
	return strings.ToUpper(strings.ReplaceAll(s, ".", ""))
}

package policy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(p.Columns) != 29 || p.Columns[0] != "urn" || p.Columns[28] != "host_url" {
		t.Fatalf("columns=%v", p.Columns)
	}
	if p.UIDPrefix != "AAI" || p.DuplicateExtension != ".pdf" || p.AssetExtension != ".pdf" {
		t.Fatalf("prefix=%q dup ext=%q asset ext=%q", p.UIDPrefix, p.DuplicateExtension, p.AssetExtension)
	}
	if p.StripAbstractMarkup {
		t.Fatalf("abstract markup stripping should be off by default")
	}
	if p.RomanTable().Len() != len(p.Roman) {
		t.Fatalf("roman table not compiled")
	}
	if got := p.Static["document_type"]; got != "dissertation" {
		t.Fatalf("document_type=%q", got)
	}
	if got := p.FulltextURLFor("3136164"); !strings.HasSuffix(got, "/3136164.pdf") {
		t.Fatalf("url=%q", got)
	}
}

func TestCanonicalSuffix(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	cases := map[string]string{
		"JR":      "Jr",
		"Jr.":     "Jr",
		"jr":      "Jr",
		"3RD":     "III",
		"Ph.D.":   "PhD",
		"Jr, PhD": "Jr, PhD",
		"MBA":     "MBA",
		"":        "",
	}
	for in, want := range cases {
		if got := p.CanonicalSuffix(in); got != want {
			t.Fatalf("CanonicalSuffix(%q)=%q want %q", in, got, want)
		}
	}
}

func TestNeedsReview(t *testing.T) {
	p, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if !p.NeedsReview("Starcher") || !p.NeedsReview("ARCHER") {
		t.Fatalf("expected review for names containing arch")
	}
	if p.NeedsReview("Smith") {
		t.Fatalf("unexpected review for Smith")
	}
}

func TestLoadOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "policy.yaml")
	body := `
fulltext_url: https://example.org/pdf/{uid}
duplicate_extension: .txt
strip_abstract_markup: true
columns: [urn, title]
static:
  season: Spring
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	p, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := p.FulltextURLFor("42"); got != "https://example.org/pdf/42" {
		t.Fatalf("url=%q", got)
	}
	if len(p.Columns) != 2 {
		t.Fatalf("columns=%v", p.Columns)
	}
	if p.Static["season"] != "Spring" || p.Static["document_type"] != "" {
		t.Fatalf("static=%v", p.Static)
	}
	if p.DuplicateExtension != ".txt" || p.AssetExtension != ".pdf" {
		t.Fatalf("dup ext=%q asset ext=%q", p.DuplicateExtension, p.AssetExtension)
	}
	if !p.StripAbstractMarkup {
		t.Fatalf("strip_abstract_markup not read")
	}
	if p.UIDPrefix != "AAI" || len(p.Advisors.Labels) != 9 {
		t.Fatalf("defaults not kept: prefix=%q labels=%d", p.UIDPrefix, len(p.Advisors.Labels))
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := []struct {
		name, body, want string
	}{
		{"no placeholder", "fulltext_url: https://example.org/x.pdf\n", "placeholder"},
		{"bad range", "restricted:\n  ranges:\n    - {first: 10, last: 1}\n", "first 10 > last 1"},
		{"duplicate column", "columns: [urn, urn]\n", "duplicate column"},
		{"overlapping roman", "roman:\n  - {from: \" Ii\", to: \" II\"}\n  - {from: \" Ii\", to: \" 2\"}\n", "roman"},
		{"bad yaml", "columns: [urn\n", "parse"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "policy.yaml")
			if err := os.WriteFile(path, []byte(c.body), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), c.want) {
				t.Fatalf("got %v want error containing %q", err, c.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected error")
	}
}

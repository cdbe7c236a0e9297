package pipeline

import (
	"fmt"

	"etdbatch/internal"
	"etdbatch/internal/policy"
)

var columnValues = map[string]func(t *internal.Thesis) string{
	"urn":                 func(t *internal.Thesis) string { return t.UID },
	"title":               func(t *internal.Thesis) string { return t.Title },
	"fulltext_url":        func(t *internal.Thesis) string { return t.FulltextURL },
	"keywords":            func(t *internal.Thesis) string { return t.Keywords },
	"abstract":            func(t *internal.Thesis) string { return t.Abstract },
	"author1_fname":       func(t *internal.Thesis) string { return t.Author.First },
	"author1_mname":       func(t *internal.Thesis) string { return t.Author.Middle },
	"author1_lname":       func(t *internal.Thesis) string { return t.Author.Last },
	"author1_suffix":      func(t *internal.Thesis) string { return t.Author.Suffix },
	"author1_institution": func(t *internal.Thesis) string { return t.Institution },
	"advisor1":            func(t *internal.Thesis) string { return t.Advisors[0] },
	"advisor2":            func(t *internal.Thesis) string { return t.Advisors[1] },
	"advisor3":            func(t *internal.Thesis) string { return t.Advisors[2] },
	"degree_name":         func(t *internal.Thesis) string { return t.DegreeName },
	"publication_date":    func(t *internal.Thesis) string { return t.PubDate },
	"ISBN":                func(t *internal.Thesis) string { return t.ISBN },
	"pagelength":          func(t *internal.Thesis) string { return t.PageLength },
	"source":              func(t *internal.Thesis) string { return t.Source },
	"diss_note":           func(t *internal.Thesis) string { return t.DissNote },
	"host_item":           func(t *internal.Thesis) string { return t.HostItem },
	"language":            func(t *internal.Thesis) string { return t.Language },
	"host_url":            func(t *internal.Thesis) string { return t.HostURL },
}

// Columns filled from policy rather than from the record.
var staticColumns = map[string]bool{
	"author1_email": true,
	"disciplines":   true,
	"comments":      true,
	"department":    true,
	"document_type": true,
	"season":        true,
	"release_date":  true,
}

// Assembler lays theses out as rows in the configured column order.
type Assembler struct {
	columns []string
	cells   []func(t *internal.Thesis) string
}

func NewAssembler(pol *policy.Policy) (*Assembler, error) {
	for k := range pol.Static {
		if !staticColumns[k] {
			return nil, fmt.Errorf("static value for non-static column %q", k)
		}
	}

	a := &Assembler{columns: append([]string(nil), pol.Columns...)}
	for _, c := range pol.Columns {
		if get, ok := columnValues[c]; ok {
			a.cells = append(a.cells, get)
			continue
		}
		if !staticColumns[c] {
			return nil, fmt.Errorf("unknown column %q", c)
		}
		v := pol.Static[c]
		a.cells = append(a.cells, func(*internal.Thesis) string { return v })
	}
	return a, nil
}

func (a *Assembler) Header() []string {
	return append([]string(nil), a.columns...)
}

func (a *Assembler) Row(t internal.Thesis) []string {
	row := make([]string, len(a.cells))
	for i, get := range a.cells {
		row[i] = get(&t)
	}
	return row
}

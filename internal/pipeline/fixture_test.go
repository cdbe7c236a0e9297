package pipeline

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"etdbatch/internal/marc"
	"etdbatch/internal/policy"
)

func df(tag, value string) marc.Field {
	return marc.Field{Tag: tag, Ind1: ' ', Ind2: ' ', Subfields: []marc.Subfield{{Code: 'a', Value: value}}}
}

func thesisRecord(uid string) *marc.Record {
	return &marc.Record{Fields: []marc.Field{
		{Tag: "001", Data: "AAI" + uid},
		df("020", "9780496123456"),
		df("100", "Smith, John Robert Jr."),
		df("245", "ESSAYS ON TRADE :  THEORY AND EVIDENCE, PART II"),
		df("300", "245 p."),
		df("500", "Source: Dissertation Abstracts International, Volume: 66-02, Section: A, page: 0567."),
		df("500", "Directors: Smith, J.; Doe, A."),
		df("502", "Thesis (Ph.D.)--Harvard University, 2005."),
		df("520", "We show that x <y and y> z holds for all n."),
		df("520", "Second part."),
		df("650", "ECONOMICS, GENERAL."),
		df("650", "History."),
		df("710", "Harvard University."),
		df("773", "Dissertation Abstracts International 66-02A."),
		df("791", "Ph.D."),
		df("792", "2005"),
		df("793", "English"),
		df("856", "http://gateway.proquest.com/openurl?rft_dat=xri:pqdiss:"+uid),
	}}
}

func without(rec *marc.Record, tag string) *marc.Record {
	out := &marc.Record{Leader: rec.Leader}
	for _, f := range rec.Fields {
		if f.Tag != tag {
			out.Fields = append(out.Fields, f)
		}
	}
	return out
}

func writeMARC(t *testing.T, records ...*marc.Record) string {
	t.Helper()
	var buf bytes.Buffer
	for _, rec := range records {
		raw, err := marc.Marshal(rec)
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(raw)
	}
	path := filepath.Join(t.TempDir(), "MARCDATA.MRC")
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func defaultPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	p, err := policy.Default()
	if err != nil {
		t.Fatalf("policy.Default: %v", err)
	}
	return p
}

package marc

import (
	"bytes"
	"strings"
	"testing"
)

func sampleRecord(uid string) *Record {
	return &Record{Fields: []Field{
		{Tag: "001", Data: "AAI" + uid},
		{Tag: "245", Ind1: '1', Ind2: '0', Subfields: []Subfield{
			{Code: 'a', Value: "Essays on trade :"},
			{Code: 'b', Value: " theory and evidence"},
		}},
		{Tag: "500", Subfields: []Subfield{{Code: 'a', Value: "Source: DAI-A 66/02."}}},
		{Tag: "500", Subfields: []Subfield{{Code: 'a', Value: "Adviser: Lee."}}},
	}}
}

func TestMarshalDecodeRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	for _, uid := range []string{"3048322", "3136164"} {
		raw, err := Marshal(sampleRecord(uid))
		if err != nil {
			t.Fatal(err)
		}
		buf.Write(raw)
	}

	recs, err := ReadAll(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 2 {
		t.Fatalf("len=%d", len(recs))
	}

	cn, ok := recs[1].ControlNumber()
	if !ok || cn != "AAI3136164" {
		t.Fatalf("control number=%q ok=%v", cn, ok)
	}
	title, ok := recs[0].FirstValue("245")
	if !ok {
		t.Fatal("245 missing")
	}
	if title != "Essays on trade :  theory and evidence" {
		t.Fatalf("title=%q", title)
	}
	f, _ := recs[0].First("245")
	if f.Ind1 != '1' || f.Ind2 != '0' {
		t.Fatalf("indicators=%q%q", f.Ind1, f.Ind2)
	}
	if len(f.Subfields) != 2 || f.Subfields[1].Code != 'b' || f.Subfields[1].Value != " theory and evidence" {
		t.Fatalf("245 subfields=%+v", f.Subfields)
	}
	notes := recs[0].Values("500")
	if len(notes) != 2 || notes[1] != "Adviser: Lee." {
		t.Fatalf("notes=%v", notes)
	}
}

func TestFirstValueMissing(t *testing.T) {
	rec := sampleRecord("1")
	if _, ok := rec.FirstValue("100"); ok {
		t.Fatal("expected missing 100")
	}
	if got := rec.Values("650"); len(got) != 0 {
		t.Fatalf("values=%v", got)
	}
}

func TestReadAllEmptyStream(t *testing.T) {
	recs, err := ReadAll(bytes.NewReader(nil))
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 0 {
		t.Fatalf("len=%d", len(recs))
	}
}

func TestMarshalRejectsBadTag(t *testing.T) {
	rec := &Record{Fields: []Field{{Tag: "24", Data: "x"}}}
	if _, err := Marshal(rec); err == nil || !strings.Contains(err.Error(), "invalid tag") {
		t.Fatalf("err=%v", err)
	}
}

func TestFieldValueJoinsSubfields(t *testing.T) {
	f := Field{Tag: "650", Subfields: []Subfield{{Code: 'a', Value: "Economics"}, {Code: 'x', Value: "History. "}}}
	if got := f.Value(); got != "Economics History." {
		t.Fatalf("value=%q", got)
	}
	cf := Field{Tag: "008", Data: "  050301s2004  "}
	if got := cf.Value(); got != "  050301s2004  " {
		t.Fatalf("control value=%q", got)
	}
}

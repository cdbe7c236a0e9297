package marc

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	iso "github.com/boutros/marc"
)

const defaultLeader = "00000nam a2200000   4500"

// ReadAll decodes every ISO 2709 record in r.
func ReadAll(r io.Reader) ([]*Record, error) {
	dec := iso.NewDecoder(r, iso.MARC)
	var out []*Record
	for {
		rec, err := dec.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, fmt.Errorf("marc: record %d: %w", len(out)+1, err)
		}
		out = append(out, fromISO(rec))
	}
}

// Marshal encodes rec as an ISO 2709 record.
func Marshal(rec *Record) ([]byte, error) {
	for _, f := range rec.Fields {
		if len(f.Tag) != 3 {
			return nil, fmt.Errorf("marc: invalid tag %q", f.Tag)
		}
	}
	var buf bytes.Buffer
	enc := iso.NewEncoder(&buf, iso.MARC)
	if err := enc.Encode(toISO(rec)); err != nil {
		return nil, fmt.Errorf("marc: encode: %w", err)
	}
	enc.Flush()
	return buf.Bytes(), nil
}

func fromISO(r *iso.Record) *Record {
	rec := &Record{Leader: r.Leader}
	for _, cf := range r.CtrlFields {
		rec.Fields = append(rec.Fields, Field{Tag: cf.Tag, Data: cf.Value})
	}
	for _, df := range r.DataFields {
		f := Field{Tag: df.Tag, Ind1: indicator(df.Ind1), Ind2: indicator(df.Ind2)}
		for _, sf := range df.SubFields {
			if sf.Code == "" {
				continue
			}
			f.Subfields = append(f.Subfields, Subfield{Code: sf.Code[0], Value: toText(sf.Value)})
		}
		rec.Fields = append(rec.Fields, f)
	}
	return rec
}

func toISO(rec *Record) *iso.Record {
	r := &iso.Record{Leader: rec.Leader}
	if len(r.Leader) != len(defaultLeader) {
		r.Leader = defaultLeader
	}
	for _, f := range rec.Fields {
		if f.IsControl() {
			r.CtrlFields = append(r.CtrlFields, iso.CField{Tag: f.Tag, Value: f.Data})
			continue
		}
		df := iso.DField{Tag: f.Tag, Ind1: string(orBlank(f.Ind1)), Ind2: string(orBlank(f.Ind2))}
		for _, sf := range f.Subfields {
			df.SubFields = append(df.SubFields, iso.SubField{Code: string(sf.Code), Value: sf.Value})
		}
		r.DataFields = append(r.DataFields, df)
	}
	return r
}

func indicator(s string) byte {
	if s == "" {
		return ' '
	}
	return s[0]
}

func orBlank(b byte) byte {
	if b == 0 {
		return ' '
	}
	return b
}

// toText replaces invalid UTF-8 sequences so exported values stay valid text.
func toText(s string) string {
	return strings.ToValidUTF8(s, "�")
}

// Package marc adapts github.com/boutros/marc records to the field lookups
// the pipeline uses.
//
// Records expose their fields by tag. Every field carries a single string
// value: the data of a control field, or the subfield values of a data field
// joined by one space.
package marc

import "strings"

// Subfield is one coded value inside a data field.
type Subfield struct {
	Code  byte
	Value string
}

// Field is a control field (tag < 010) or a data field with indicators and
// subfields.
type Field struct {
	Tag       string
	Ind1      byte
	Ind2      byte
	Data      string
	Subfields []Subfield
}

// IsControl reports whether f is a control field.
func (f Field) IsControl() bool {
	return f.Tag < "010"
}

// Value returns the field's string value.
func (f Field) Value() string {
	if f.IsControl() {
		return f.Data
	}
	parts := make([]string, 0, len(f.Subfields))
	for _, sf := range f.Subfields {
		parts = append(parts, sf.Value)
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Record is a decoded bibliographic record. Control fields come first, then
// data fields in their source order.
type Record struct {
	Leader string
	Fields []Field
}

// First returns the first field with the given tag.
func (r *Record) First(tag string) (Field, bool) {
	for _, f := range r.Fields {
		if f.Tag == tag {
			return f, true
		}
	}
	return Field{}, false
}

// FirstValue returns the value of the first field with the given tag.
func (r *Record) FirstValue(tag string) (string, bool) {
	f, ok := r.First(tag)
	if !ok {
		return "", false
	}
	return f.Value(), true
}

// Values returns the values of every field with the given tag, in order.
func (r *Record) Values(tag string) []string {
	var out []string
	for _, f := range r.Fields {
		if f.Tag == tag {
			out = append(out, f.Value())
		}
	}
	return out
}

// ControlNumber returns the 001 control field.
func (r *Record) ControlNumber() (string, bool) {
	return r.FirstValue("001")
}

package util

import "testing"

func TestTitleCase(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"ESSAYS ON TRADE AND GROWTH", "Essays on Trade and Growth"},
		{"a study of the mcdonald family", "A Study of the McDonald Family"},
		{"what is it for", "What Is It For"},
		{"the role of iPhone use", "The Role of iPhone Use"},
		{"self-esteem in o'neil's work", "Self-Esteem in O'Neil's Work"},
		{"hiv: a review", "Hiv: A Review"},
		{"Essays on trade :  theory and evidence", "Essays on Trade :  Theory and Evidence"},
		{"input/output models", "Input/Output Models"},
		{"world war ii", "World War Ii"},
		{"", ""},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := TitleCase(c.in); got != c.want {
				t.Fatalf("got %q want %q", got, c.want)
			}
		})
	}
}

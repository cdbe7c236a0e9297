package util

import "testing"

func TestParseName(t *testing.T) {
	cases := []struct {
		in   string
		want ParsedName
	}{
		{"Smith, John Robert", ParsedName{First: "John", Middle: "Robert", Last: "Smith"}},
		{"John Robert Smith, Jr.", ParsedName{First: "John", Middle: "Robert", Last: "Smith", Suffix: "Jr."}},
		{"Smith, John Robert III", ParsedName{First: "John", Middle: "Robert", Last: "Smith", Suffix: "III"}},
		{"Garcia, Maria, PhD", ParsedName{First: "Maria", Last: "Garcia", Suffix: "PhD"}},
		{"Ludwig van Beethoven", ParsedName{First: "Ludwig", Last: "van Beethoven"}},
		{"Dr. Jane Doe", ParsedName{Title: "Dr.", First: "Jane", Last: "Doe"}},
		{`Smith, William "Bill" Henry`, ParsedName{First: "William", Middle: "Henry", Last: "Smith", Nickname: "Bill"}},
		{"Doe, Jane (Janie)", ParsedName{First: "Jane", Last: "Doe", Nickname: "Janie"}},
		{"Smith, A. B.", ParsedName{First: "A.", Middle: "B.", Last: "Smith"}},
		{"Cher", ParsedName{First: "Cher"}},
		{"", ParsedName{}},
	}
	for _, c := range cases {
		t.Run(c.in, func(t *testing.T) {
			if got := ParseName(c.in); got != c.want {
				t.Fatalf("got %+v want %+v", got, c.want)
			}
		})
	}
}

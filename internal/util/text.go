package util

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

var (
	reSpaces = regexp.MustCompile(`\s+`)
	reMarkup = regexp.MustCompile(`(?i)</?(?:p|br|div|span|i|b|u|em|strong|sup|sub|tt|a|li|ul|ol|h[1-6]|table|tr|td|th)(?:\s[^<>]*)?/?>`)
)

func NormalizeSpaces(input string) string {
	return strings.TrimSpace(reSpaces.ReplaceAllString(input, " "))
}

// Unperiod drops one trailing period unless it closes an initial or an
// acronym ("Doe, A.", "U.S.", "Ph.D.").
func Unperiod(input string) string {
	s := strings.TrimSpace(input)
	if !strings.HasSuffix(s, ".") {
		return s
	}
	stem := strings.TrimSuffix(s, ".")
	token := stem[strings.LastIndexAny(stem, " \t")+1:]
	seg := token[strings.LastIndex(token, ".")+1:]
	if r, size := utf8.DecodeRuneInString(seg); size == len(seg) && size > 0 && unicode.IsLetter(r) {
		return s
	}
	return stem
}

// Capitalize upper-cases the first letter and lower-cases the rest.
func Capitalize(input string) string {
	r, size := utf8.DecodeRuneInString(input)
	if size == 0 {
		return input
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(input[size:])
}

func StripPeriods(input string) string {
	return strings.ReplaceAll(input, ".", "")
}

// HasMarkup reports whether input contains a common inline or block HTML
// element. Comparison signs in running text are not markup.
func HasMarkup(input string) bool {
	return reMarkup.MatchString(input)
}

// StripMarkup reduces an HTML fragment to its text, keeping block elements
// apart with a space. Input without markup is returned unchanged.
func StripMarkup(input string) string {
	if !HasMarkup(input) {
		return input
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return NormalizeSpaces(reMarkup.ReplaceAllString(input, " "))
	}
	doc.Find("p,div,br,li,tr,td,th,h1,h2,h3,h4,h5,h6").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})
	return NormalizeSpaces(doc.Text())
}

package util

import (
	"regexp"
	"strings"
)

type ParsedName struct {
	Title    string
	First    string
	Middle   string
	Last     string
	Suffix   string
	Nickname string
}

var (
	reNickQuoted = regexp.MustCompile(`\s*["“]([^"”]+)["”]`)
	reNickParen  = regexp.MustCompile(`\s*\(([^)]+)\)`)
)

var nameTitles = set("dr", "mr", "mrs", "ms", "miss", "prof", "professor", "rev", "reverend", "fr", "father", "sister", "brother", "hon", "sir", "dame")

// Single letters like "I" and "V" are left out so initials survive.
var nameSuffixes = set("jr", "jnr", "junior", "sr", "snr", "senior", "ii", "iii", "iv", "2nd", "3rd", "4th", "esq", "esquire", "phd", "md", "dds", "dvm", "edd", "jd")

var lastParticles = set("van", "von", "de", "del", "della", "der", "den", "da", "di", "du", "la", "le", "st", "ste", "ter", "ten", "bin", "ibn", "al", "dos", "das")

func set(items ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(items))
	for _, it := range items {
		m[it] = struct{}{}
	}
	return m
}

func in(m map[string]struct{}, token string) bool {
	_, ok := m[strings.ToLower(strings.Trim(token, ".,"))]
	return ok
}

// ParseName splits a personal name written as "Last, First Middle Suffix",
// "First Middle Last, Suffix" or "First Middle Last".
func ParseName(full string) ParsedName {
	var pn ParsedName
	s := NormalizeSpaces(full)
	s, pn.Nickname = extractNickname(s)

	var parts []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return pn
	}

	var suffixes []string
	if len(parts) == 1 || (len(strings.Fields(parts[0])) > 1 && allSuffixes(parts[1:])) {
		natural := parseNatural(strings.Fields(parts[0]))
		natural.Nickname = pn.Nickname
		pn = natural
		if pn.Suffix != "" {
			suffixes = append(suffixes, pn.Suffix)
		}
		suffixes = append(suffixes, parts[1:]...)
		pn.Suffix = strings.Join(suffixes, ", ")
		return pn
	}

	pn.Last = parts[0]
	toks := strings.Fields(parts[1])
	for len(toks) > 1 && in(nameTitles, toks[0]) {
		pn.Title = joinNonEmpty(pn.Title, toks[0])
		toks = toks[1:]
	}
	for len(toks) > 1 && in(nameSuffixes, toks[len(toks)-1]) {
		suffixes = append([]string{toks[len(toks)-1]}, suffixes...)
		toks = toks[:len(toks)-1]
	}
	if len(toks) > 0 {
		pn.First = toks[0]
		pn.Middle = strings.Join(toks[1:], " ")
	}
	suffixes = append(suffixes, parts[2:]...)
	pn.Suffix = strings.Join(suffixes, ", ")
	return pn
}

func parseNatural(toks []string) ParsedName {
	var pn ParsedName
	for len(toks) > 1 && in(nameTitles, toks[0]) {
		pn.Title = joinNonEmpty(pn.Title, toks[0])
		toks = toks[1:]
	}
	var suffixes []string
	for len(toks) > 2 && in(nameSuffixes, toks[len(toks)-1]) {
		suffixes = append([]string{toks[len(toks)-1]}, suffixes...)
		toks = toks[:len(toks)-1]
	}
	pn.Suffix = strings.Join(suffixes, ", ")

	switch len(toks) {
	case 0:
		return pn
	case 1:
		pn.First = toks[0]
		return pn
	}

	i := len(toks) - 2
	pn.Last = toks[len(toks)-1]
	for i >= 1 && in(lastParticles, toks[i]) {
		pn.Last = toks[i] + " " + pn.Last
		i--
	}
	pn.First = toks[0]
	pn.Middle = strings.Join(toks[1:i+1], " ")
	return pn
}

func allSuffixes(parts []string) bool {
	for _, p := range parts {
		for _, tok := range strings.Fields(p) {
			if !in(nameSuffixes, tok) {
				return false
			}
		}
	}
	return true
}

func extractNickname(s string) (string, string) {
	for _, re := range []*regexp.Regexp{reNickQuoted, reNickParen} {
		if m := re.FindStringSubmatch(s); m != nil {
			return NormalizeSpaces(strings.Replace(s, m[0], "", 1)), strings.TrimSpace(m[1])
		}
	}
	return s, ""
}

func joinNonEmpty(a, b string) string {
	if a == "" {
		return b
	}
	return a + " " + b
}

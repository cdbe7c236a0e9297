package util

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	punct = `!"“#$%&'‘()*+,\-–‒—―./:;?@\[\\\]_` + "`" + `{|}~`
	small = `a|an|and|as|at|but|by|en|for|if|in|of|on|or|the|to|v\.?|via|vs\.?`
)

var (
	reLineBreaks   = regexp.MustCompile(`[\r\n]+`)
	reWordSplit    = regexp.MustCompile(`[\t ]`)
	reSmallWords   = regexp.MustCompile(`(?i)^(?:` + small + `)$`)
	reSmallFirst   = regexp.MustCompile(`(?i)^([` + punct + `]*)(` + small + `)\b`)
	reSmallLast    = regexp.MustCompile(`(?i)\b(?:` + small + `)[` + punct + `]?$`)
	reSubphrase    = regexp.MustCompile(`([:.;?!\-–‒—―] )(` + small + `)`)
	reInlinePeriod = regexp.MustCompile(`(?i)[a-z][.][a-z]`)
	reUCElsewhere  = regexp.MustCompile(`^[` + punct + `]*?[a-zA-Z]+[A-Z]+?`)
	reCapFirst     = regexp.MustCompile(`^[` + punct + `]*?[\pL\pN]`)
	reAposSecond   = regexp.MustCompile(`(?i)^[dol]['‘][a-z]+(?:['s]{2})?$`)
	reUCInitials   = regexp.MustCompile(`^(?:[A-Z]\.|[A-Z]\.[A-Z])+$`)
	reMacMc        = regexp.MustCompile(`^([Mm]c|MC)(\w.+)`)
)

// TitleCase applies English headline capitalization: small words stay
// lower case except at the start, the end and after subphrase punctuation;
// words with inner capitals or inner periods are left alone; lines written
// entirely in capitals are lowered first.
func TitleCase(text string) string {
	lines := reLineBreaks.Split(text, -1)
	for i, line := range lines {
		lines[i] = titleLine(line, true)
	}
	return strings.Join(lines, "\n")
}

func titleLine(line string, smallFirstLast bool) string {
	allCaps := strings.ToUpper(line) == line
	words := reWordSplit.Split(line, -1)
	for i, word := range words {
		words[i] = titleWord(word, allCaps, smallFirstLast)
	}

	if smallFirstLast && len(words) > 0 {
		words[0] = reSmallFirst.ReplaceAllStringFunc(words[0], func(m string) string {
			sub := reSmallFirst.FindStringSubmatch(m)
			return sub[1] + Capitalize(sub[2])
		})
		last := len(words) - 1
		words[last] = reSmallLast.ReplaceAllStringFunc(words[last], Capitalize)
	}

	result := strings.Join(words, " ")
	return reSubphrase.ReplaceAllStringFunc(result, func(m string) string {
		sub := reSubphrase.FindStringSubmatch(m)
		return sub[1] + Capitalize(sub[2])
	})
}

func titleWord(word string, allCaps, smallFirstLast bool) string {
	if allCaps && reUCInitials.MatchString(word) {
		return word
	}

	if reAposSecond.MatchString(word) {
		first, n := utf8.DecodeRuneInString(word)
		apos, m := utf8.DecodeRuneInString(word[n:])
		head := strings.ToUpper(string(first))
		if !strings.ContainsRune("aeiouAEIOU", first) {
			head = strings.ToLower(string(first))
		}
		return head + string(apos) + Capitalize(word[n+m:])[:1] + word[n+m+1:]
	}

	if m := reMacMc.FindStringSubmatch(word); m != nil {
		return Capitalize(m[1]) + titleLine(m[2], smallFirstLast)
	}

	if reInlinePeriod.MatchString(word) || (!allCaps && reUCElsewhere.MatchString(word)) {
		return word
	}

	if reSmallWords.MatchString(word) {
		return strings.ToLower(word)
	}

	if strings.Contains(word, "/") && !strings.Contains(word, "//") {
		parts := strings.Split(word, "/")
		for i, p := range parts {
			parts[i] = titleLine(p, false)
		}
		return strings.Join(parts, "/")
	}

	if strings.Contains(word, "-") {
		parts := strings.Split(word, "-")
		for i, p := range parts {
			parts[i] = titleLine(p, smallFirstLast)
		}
		return strings.Join(parts, "-")
	}

	if allCaps {
		word = strings.ToLower(word)
	}
	return reCapFirst.ReplaceAllStringFunc(word, strings.ToUpper)
}

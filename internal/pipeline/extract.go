package pipeline

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"etdbatch/internal"
	"etdbatch/internal/marc"
	"etdbatch/internal/policy"
	"etdbatch/internal/util"
)

const (
	tagControl     = "001"
	tagISBN        = "020"
	tagAuthor      = "100"
	tagTitle       = "245"
	tagPages       = "300"
	tagNote        = "500"
	tagDissNote    = "502"
	tagAbstract    = "520"
	tagSubject     = "650"
	tagInstitution = "710"
	tagHostItem    = "773"
	tagDegree      = "791"
	tagPubDate     = "792"
	tagLanguage    = "793"
	tagHostURL     = "856"
)

// Extractor turns decoded records into normalized theses.
type Extractor struct {
	pol *policy.Policy
	log zerolog.Logger
}

func NewExtractor(pol *policy.Policy, log zerolog.Logger) *Extractor {
	return &Extractor{pol: pol, log: log}
}

// ExtractUID strips prefix from a raw control number. Applying it to its
// own output returns the same UID.
func ExtractUID(raw, prefix string) (string, error) {
	uid := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), prefix))
	if uid == "" || strings.ContainsAny(uid, " \t\r\n/\\") {
		return "", fmt.Errorf("%w: %q", ErrMalformedUID, raw)
	}
	return uid, nil
}

func (e *Extractor) UID(rec *marc.Record) (string, error) {
	raw, ok := rec.FirstValue(tagControl)
	if !ok {
		return "", missing("", tagControl, "urn")
	}
	return ExtractUID(raw, e.pol.UIDPrefix)
}

func (e *Extractor) Thesis(rec *marc.Record, uid string) (internal.Thesis, error) {
	th := internal.Thesis{UID: uid, FulltextURL: e.pol.FulltextURLFor(uid)}

	required := []struct {
		tag, column string
		dst         *string
		clean       func(string) string
	}{
		{tagTitle, "title", &th.Title, func(s string) string { return NormalizeTitle(s, e.pol.RomanTable()) }},
		{tagInstitution, "author1_institution", &th.Institution, util.Unperiod},
		{tagPages, "pagelength", &th.PageLength, NormalizePageLength},
		{tagDissNote, "diss_note", &th.DissNote, util.Unperiod},
		{tagHostItem, "host_item", &th.HostItem, util.Unperiod},
		{tagLanguage, "language", &th.Language, nil},
		{tagDegree, "degree_name", &th.DegreeName, nil},
		{tagPubDate, "publication_date", &th.PubDate, nil},
		{tagHostURL, "host_url", &th.HostURL, nil},
	}
	for _, r := range required {
		v, ok := rec.FirstValue(r.tag)
		if !ok {
			return internal.Thesis{}, missing(uid, r.tag, r.column)
		}
		if r.clean != nil {
			v = r.clean(v)
		}
		*r.dst = v
	}

	raw, ok := rec.FirstValue(tagAuthor)
	if !ok {
		return internal.Thesis{}, missing(uid, tagAuthor, "author1_lname")
	}
	th.Author = NormalizeName(raw, e.pol)
	if e.pol.NeedsReview(th.Author.Last) {
		e.log.Warn().Str("uid", uid).Str("last", th.Author.Last).Str("raw", raw).Msg("author last name flagged for review")
	}

	notes := rec.Values(tagNote)
	src, ok := NormalizeSource(notes)
	if !ok {
		return internal.Thesis{}, missing(uid, tagNote, "source")
	}
	th.Source = src

	var advisorNote string
	if len(notes) > 1 {
		advisorNote = notes[1]
	}
	var dropped []string
	th.Advisors, dropped = ParseAdvisors(advisorNote, e.pol.Advisors)
	if len(dropped) > 0 {
		e.log.Warn().Str("uid", uid).Strs("dropped", dropped).Msg("more than three advisors, extra names dropped")
	}

	th.ISBN, _ = rec.FirstValue(tagISBN)
	th.Keywords = NormalizeKeywords(rec.Values(tagSubject))
	th.Abstract = NormalizeAbstract(rec.Values(tagAbstract), e.pol.StripAbstractMarkup)
	return th, nil
}

func NormalizeTitle(raw string, roman *util.ReplaceTable) string {
	t := util.TitleCase(raw)
	t = strings.ReplaceAll(t, " :  ", ": ")
	return roman.Apply(t)
}

func NormalizeName(raw string, pol *policy.Policy) internal.Name {
	pn := util.ParseName(util.Unperiod(raw))
	first := pn.First
	if pn.Nickname != "" {
		first = strings.TrimSpace(first + " " + pn.Nickname)
	}
	return internal.Name{
		First:  util.TitleCase(first),
		Middle: util.TitleCase(pn.Middle),
		Last:   util.TitleCase(pn.Last),
		Suffix: pol.CanonicalSuffix(pn.Suffix),
	}
}

// ParseAdvisors reads up to three names from a labelled note. A note with
// no known label yields no advisors. Names past the third are returned as
// dropped.
func ParseAdvisors(note string, cfg policy.Advisors) (slots [3]string, dropped []string) {
	var rest string
	found := false
	for _, label := range cfg.Labels {
		if strings.HasPrefix(note, label) {
			rest = strings.TrimPrefix(note, label)
			found = true
			break
		}
	}
	if !found {
		return slots, nil
	}

	rest = util.Unperiod(rest)
	if rest == "" {
		return slots, nil
	}
	names := strings.Split(rest, cfg.Separator)
	for i, n := range names {
		if i < len(slots) {
			slots[i] = n
		} else {
			dropped = append(dropped, n)
		}
	}
	return slots, dropped
}

func NormalizeKeywords(subjects []string) string {
	out := make([]string, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, util.StripPeriods(util.Capitalize(s)))
	}
	return strings.Join(out, "; ")
}

// NormalizeAbstract joins 520 values with one space. Values are kept as
// catalogued unless stripMarkup is set.
func NormalizeAbstract(parts []string, stripMarkup bool) string {
	if !stripMarkup {
		return strings.Join(parts, " ")
	}
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, util.StripMarkup(p))
	}
	return strings.Join(out, " ")
}

func NormalizePageLength(raw string) string {
	return strings.TrimSuffix(strings.TrimSpace(raw), " p.")
}

// NormalizeSource picks the first note mentioning "Source".
func NormalizeSource(notes []string) (string, bool) {
	for _, n := range notes {
		if strings.Contains(n, "Source") {
			return strings.TrimPrefix(util.Unperiod(n), "Source: "), true
		}
	}
	return "", false
}

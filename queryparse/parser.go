// Package queryparse turns raw natural-language queries into structured
// filters plus residual free text. Parsing is pure: every extractor scans
// the original input independently, and a separate cleaning pass removes
// the recognized phrases to produce the residual query.
package queryparse

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fwojciec/relgraph"
)

// boundary terminates a company or location capture: the phrase runs until
// the next filter keyword, a comma, or end of string.
const boundary = `(?:\s+(?:in|with|who|that|and|or)\b|\s*,|$)`

// Company patterns, tried in order; the first successful pattern wins.
// "at X" subsumes "works at X" for the captured value, but the longer
// prefixes are listed so the cleaning pass consumes the whole phrase.
var companyPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bwork(?:s|ing)?\s+at\s+(.+?)` + boundary),
	regexp.MustCompile(`(?i)\bat\s+(.+?)` + boundary),
	regexp.MustCompile(`(?i)\bfrom\s+(.+?)` + boundary),
}

// Location patterns, most specific prefix first so "based in X" is
// consumed whole rather than leaving "based" dangling.
var locationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\bbased\s+in\s+(.+?)` + boundary),
	regexp.MustCompile(`(?i)\blocated\s+in\s+(.+?)` + boundary),
	regexp.MustCompile(`(?i)\bin\s+(.+?)` + boundary),
}

// Years-of-experience patterns: "N+ years" (min only), "N-M years" and
// "N to M years" (range), then "N years" (exact).
var (
	yearsMinPattern   = regexp.MustCompile(`(?i)\b(\d+)\s*\+\s*years?\b`)
	yearsRangePattern = regexp.MustCompile(`(?i)\b(\d+)\s*(?:[-–—]|to)\s*(\d+)\s*years?\b`)
	yearsExactPattern = regexp.MustCompile(`(?i)\b(\d+)\s*years?\b`)
)

// Degree patterns: ordinal words or digits combined with "degree" or
// "connections". All matches accumulate into a set.
var (
	degreeConnPattern   = regexp.MustCompile(`(?i)\b(1st|first|2nd|second|3rd|third|[1-3])(?:\s+degree)?\s+connections?\b`)
	degreeWordPattern   = regexp.MustCompile(`(?i)\b(1st|first|2nd|second|3rd|third)\s+degree\b`)
	directConnPattern   = regexp.MustCompile(`(?i)\bdirect\s+connections?\b`)
)

// roleVocabulary is the closed role/seniority vocabulary in priority
// order; the first hit wins.
var roleVocabulary = []string{
	"senior", "junior", "lead", "principal", "staff", "manager",
	"director", "vp", "chief", "head of", "associate", "entry level",
	"mid level", "executive",
}

var rolePatterns = buildRolePatterns()

func buildRolePatterns() []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(roleVocabulary))
	for i, term := range roleVocabulary {
		expr := `(?i)\b` + strings.ReplaceAll(regexp.QuoteMeta(term), ` `, `\s+`) + `\b`
		patterns[i] = regexp.MustCompile(expr)
	}
	return patterns
}

// span marks a half-open byte range of the original query consumed by an
// extractor.
type span struct {
	start, end int
}

// Parse maps raw query text to residual free text plus recognized filters.
func Parse(raw string) relgraph.ParsedQuery {
	var filters relgraph.QueryFilters
	var consumed []span

	if company, sp, ok := extractPhrase(raw, companyPatterns); ok {
		name := Capitalize(company)
		filters.Company = &name
		consumed = append(consumed, sp)
	}

	if location, sp, ok := extractPhrase(raw, locationPatterns); ok {
		name := Capitalize(location)
		filters.Location = &name
		consumed = append(consumed, sp)
	}

	if years, sp, ok := extractYears(raw); ok {
		filters.Years = years
		consumed = append(consumed, sp)
	}

	degrees, degreeSpans := extractDegrees(raw)
	filters.Degrees = degrees
	consumed = append(consumed, degreeSpans...)

	if role, sp, ok := extractRole(raw); ok {
		filters.Role = &role
		consumed = append(consumed, sp)
	}

	return relgraph.ParsedQuery{
		FreeText: clean(raw, consumed),
		Filters:  filters,
	}
}

// extractPhrase tries the patterns in order and returns the first
// captured phrase with the span covering prefix plus value.
func extractPhrase(raw string, patterns []*regexp.Regexp) (string, span, bool) {
	for _, pattern := range patterns {
		m := pattern.FindStringSubmatchIndex(raw)
		if m == nil {
			continue
		}
		value := strings.TrimSpace(raw[m[2]:m[3]])
		if value == "" {
			continue
		}
		// The span runs to the end of the capture, not the boundary word.
		return value, span{start: m[0], end: m[3]}, true
	}
	return "", span{}, false
}

func extractYears(raw string) (*relgraph.YearsRange, span, bool) {
	if m := yearsMinPattern.FindStringSubmatchIndex(raw); m != nil {
		min := atoi(raw[m[2]:m[3]])
		return &relgraph.YearsRange{Min: &min}, span{m[0], m[1]}, true
	}
	if m := yearsRangePattern.FindStringSubmatchIndex(raw); m != nil {
		min := atoi(raw[m[2]:m[3]])
		max := atoi(raw[m[4]:m[5]])
		return &relgraph.YearsRange{Min: &min, Max: &max}, span{m[0], m[1]}, true
	}
	if m := yearsExactPattern.FindStringSubmatchIndex(raw); m != nil {
		n := atoi(raw[m[2]:m[3]])
		return &relgraph.YearsRange{Min: &n, Max: &n}, span{m[0], m[1]}, true
	}
	return nil, span{}, false
}

func extractDegrees(raw string) ([]int, []span) {
	set := map[int]bool{}
	var spans []span

	for _, pattern := range []*regexp.Regexp{degreeConnPattern, degreeWordPattern} {
		for _, m := range pattern.FindAllStringSubmatchIndex(raw, -1) {
			if d, ok := ordinalToDegree(raw[m[2]:m[3]]); ok {
				set[d] = true
				spans = append(spans, span{m[0], m[1]})
			}
		}
	}
	for _, m := range directConnPattern.FindAllStringIndex(raw, -1) {
		set[1] = true
		spans = append(spans, span{m[0], m[1]})
	}

	if len(set) == 0 {
		return nil, nil
	}
	degrees := make([]int, 0, len(set))
	for d := range set {
		degrees = append(degrees, d)
	}
	sort.Ints(degrees)
	return degrees, spans
}

func ordinalToDegree(word string) (int, bool) {
	switch strings.ToLower(word) {
	case "1st", "first", "1":
		return 1, true
	case "2nd", "second", "2":
		return 2, true
	case "3rd", "third", "3":
		return 3, true
	}
	return 0, false
}

func extractRole(raw string) (string, span, bool) {
	for i, pattern := range rolePatterns {
		if m := pattern.FindStringIndex(raw); m != nil {
			return roleVocabulary[i], span{m[0], m[1]}, true
		}
	}
	return "", span{}, false
}

// clean removes every consumed span left to right and tidies the residue.
func clean(raw string, consumed []span) string {
	if len(consumed) == 0 {
		return strings.TrimSpace(raw)
	}

	merged := mergeSpans(consumed)

	var sb strings.Builder
	prev := 0
	for _, sp := range merged {
		sb.WriteString(raw[prev:sp.start])
		sb.WriteByte(' ')
		prev = sp.end
	}
	sb.WriteString(raw[prev:])

	text := strings.Join(strings.Fields(strings.ReplaceAll(sb.String(), ",", " ")), " ")
	return trimConnectors(text)
}

// mergeSpans sorts spans by start and merges overlaps; degree patterns in
// particular can match overlapping phrases.
func mergeSpans(spans []span) []span {
	sorted := make([]span, len(spans))
	copy(sorted, spans)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].start < sorted[j].start })

	merged := sorted[:1]
	for _, sp := range sorted[1:] {
		last := &merged[len(merged)-1]
		if sp.start <= last.end {
			if sp.end > last.end {
				last.end = sp.end
			}
			continue
		}
		merged = append(merged, sp)
	}
	return merged
}

// trimConnectors strips boundary keywords left dangling at either end of
// the residual query after phrase removal.
func trimConnectors(text string) string {
	words := strings.Fields(text)
	connectors := map[string]bool{"with": true, "and": true, "or": true, "who": true, "that": true, "in": true, "at": true, "from": true}

	for len(words) > 0 && connectors[strings.ToLower(words[len(words)-1])] {
		words = words[:len(words)-1]
	}
	for len(words) > 0 && connectors[strings.ToLower(words[0])] {
		words = words[1:]
	}
	return strings.Join(words, " ")
}

// atoi converts a digits-only string already validated by a regexp.
func atoi(s string) int {
	n := 0
	for _, r := range s {
		n = n*10 + int(r-'0')
	}
	return n
}

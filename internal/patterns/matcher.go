package patterns

import (
	"regexp"
	"strings"
)

// contextWindow is how many characters of surrounding text each match carries.
const contextWindow = 30

type compiledPhrase struct {
	phrase string
	re     *regexp.Regexp
}

// compileCatalog builds the per-phrase matchers once, at detector
// construction. Each phrase matches case-insensitively as a whole word or
// whole phrase: both ends must sit on a word boundary, so "however" never
// fires inside a longer token.
func compileCatalog(catalog []Category) [][]compiledPhrase {
	compiled := make([][]compiledPhrase, len(catalog))
	for i, cat := range catalog {
		ps := make([]compiledPhrase, 0, len(cat.Phrases))
		for _, phrase := range cat.Phrases {
			ps = append(ps, compiledPhrase{
				phrase: phrase,
				re:     regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(phrase) + `\b`),
			})
		}
		compiled[i] = ps
	}
	return compiled
}

// Match is a single occurrence of a catalog phrase in the input text.
type Match struct {
	Phrase   string `json:"phrase"`
	Context  string `json:"context"`
	Position int    `json:"position"`
}

// CategoryResult groups the matches found for one category. Categories with
// no matches are omitted from the result entirely.
type CategoryResult struct {
	Category   string  `json:"category"`
	Confidence string  `json:"confidence"`
	Matches    []Match `json:"matches"`
	Count      int     `json:"count"`
}

// scan runs every compiled phrase over text and returns one CategoryResult
// per category that had at least one hit, in catalog order. Within a
// category, matches are ordered by phrase declaration order, then by
// position. The scan is pure; for fixed text and catalog the output is
// identical across runs.
func (d *Detector) scan(text string) []CategoryResult {
	var results []CategoryResult

	for i, cat := range d.catalog {
		var matches []Match

		for _, cp := range d.compiled[i] {
			for _, loc := range cp.re.FindAllStringIndex(text, -1) {
				matches = append(matches, Match{
					Phrase:   cp.phrase,
					Context:  extractContext(text, loc[0], loc[1]),
					Position: loc[0],
				})
			}
		}

		if len(matches) > 0 {
			results = append(results, CategoryResult{
				Category:   cat.Name,
				Confidence: cat.Confidence,
				Matches:    matches,
				Count:      len(matches),
			})
		}
	}

	return results
}

// extractContext returns the text surrounding [start,end), clipped to
// contextWindow characters on each side and ellipsis-marked where the window
// was cut short of the text boundaries.
func extractContext(text string, start, end int) string {
	from := start - contextWindow
	if from < 0 {
		from = 0
	}
	to := end + contextWindow
	if to > len(text) {
		to = len(text)
	}

	context := strings.TrimSpace(text[from:to])
	if from > 0 {
		context = "..." + context
	}
	if to < len(text) {
		context = context + "..."
	}
	return context
}

package patterns

import "strings"

// matchStats is the summary the recommendation rules are evaluated against.
type matchStats struct {
	counts  map[string]int
	phrases map[string]bool
	score   float64
}

// adviceRule is one independent, pure recommendation rule. Rules are
// evaluated in declaration order; every rule whose condition holds
// contributes its tips. There is no early exit and no randomness.
type adviceRule struct {
	applies func(matchStats) bool
	tips    []string
}

var adviceRules = []adviceRule{
	{
		applies: func(s matchStats) bool { return s.counts["dead_giveaways"] > 0 },
		tips: []string{
			"Replace phrases like 'delve into' with simpler alternatives like 'explore' or 'look at'",
			"Avoid 'tapestry' and 'testament' - use concrete descriptions instead",
		},
	},
	{
		applies: func(s matchStats) bool { return s.counts["high_probability"] > 2 },
		tips: []string{
			"Reduce formal transitions - try starting sentences directly with your point",
			"Replace 'moreover/furthermore' with 'also' or just connect ideas naturally",
		},
	},
	{
		applies: func(s matchStats) bool {
			return s.hasPhrasePrefix("it's important to note") || s.hasPhrasePrefix("it's worth noting")
		},
		tips: []string{
			"Remove meta-commentary like 'it's important to note' - just state the point",
		},
	},
	{
		applies: func(s matchStats) bool { return s.counts["structural_patterns"] > 3 },
		tips: []string{
			"Vary your paragraph structure - avoid rigid firstly/secondly/thirdly patterns",
		},
	},
	{
		applies: func(s matchStats) bool {
			for _, jargon := range []string{"leverage", "utilize", "comprehensive", "robust"} {
				if s.phrases[jargon] {
					return true
				}
			}
			return false
		},
		tips: []string{
			"Simplify business jargon: 'use' instead of 'utilize', 'strong' instead of 'robust'",
		},
	},
	{
		applies: func(s matchStats) bool { return s.score > 60 },
		tips: []string{
			"Try writing in a more conversational tone - imagine explaining to a friend",
			"Add personal examples or specific details to make content more authentic",
		},
	},
	{
		applies: func(s matchStats) bool { return s.score > 40 && s.score <= 60 },
		tips: []string{
			"Consider adding more variety in sentence structure and vocabulary",
		},
	},
	{
		applies: func(s matchStats) bool { return s.score < 20 },
		tips: []string{
			"Text appears relatively natural - minor adjustments could include varying sentence structure",
		},
	},
}

func (s matchStats) hasPhrasePrefix(prefix string) bool {
	for phrase := range s.phrases {
		if strings.HasPrefix(phrase, prefix) {
			return true
		}
	}
	return false
}

// recommend derives the ordered, de-duplicated suggestion list from the
// per-category results and the final score. Sensitivity never feeds in:
// the same matched-phrase set yields the same list at any level.
func recommend(results []CategoryResult, score float64) []string {
	stats := matchStats{
		counts:  make(map[string]int, len(results)),
		phrases: make(map[string]bool),
		score:   score,
	}
	for _, cr := range results {
		stats.counts[cr.Category] = cr.Count
		for _, m := range cr.Matches {
			stats.phrases[m.Phrase] = true
		}
	}

	tips := []string{}
	seen := make(map[string]bool)
	for _, rule := range adviceRules {
		if !rule.applies(stats) {
			continue
		}
		for _, tip := range rule.tips {
			if seen[tip] {
				continue
			}
			seen[tip] = true
			tips = append(tips, tip)
		}
	}
	return tips
}

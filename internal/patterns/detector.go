// Package patterns scores free-form text for the likelihood that it was
// produced by an automated writing process. It scans the text against a
// weighted phrase catalog, normalizes the weighted match density by length,
// classifies the resulting 0-100 score, and derives rewrite suggestions
// from which patterns fired.
package patterns

import (
	"errors"
	"strings"
	"sync/atomic"
)

var (
	// ErrEmptyInput is returned when the text is empty or whitespace-only.
	ErrEmptyInput = errors.New("text is empty")
	// ErrInvalidSensitivity is returned for sensitivity values outside
	// low/medium/high.
	ErrInvalidSensitivity = errors.New("sensitivity must be low, medium or high")
)

// Summary aggregates the match set for quick inspection.
type Summary struct {
	TotalPatterns       int    `json:"total_patterns"`
	CategoriesTriggered int    `json:"categories_triggered"`
	MostCommonCategory  string `json:"most_common_category,omitempty"`
}

// Result is the terminal, immutable output of one analysis. Callers must
// not mutate it: cached results are shared across requests.
type Result struct {
	Score           float64          `json:"ai_likelihood_score"`
	Interpretation  string           `json:"interpretation"`
	Patterns        []CategoryResult `json:"patterns_detected"`
	Summary         Summary          `json:"pattern_summary"`
	Recommendations []string         `json:"recommendations"`
	Sensitivity     Sensitivity      `json:"sensitivity_used"`
}

// Options configures a Detector.
type Options struct {
	// Catalog overrides the built-in phrase catalog. Nil means default.
	Catalog []Category
	// CacheCapacity bounds the LRU result cache. Zero means
	// DefaultCacheCapacity; a negative value disables caching.
	CacheCapacity int
}

// Detector is the pattern-weighted likelihood scoring engine. The compiled
// pattern table is read-only after construction, so a single Detector is
// safe for concurrent use; the cache is the only mutable shared state and
// carries its own lock.
type Detector struct {
	catalog  []Category
	compiled [][]compiledPhrase
	cache    *resultCache

	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// New builds a Detector, precompiling every phrase matcher once.
func New(opts Options) *Detector {
	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	capacity := opts.CacheCapacity
	if capacity == 0 {
		capacity = DefaultCacheCapacity
	}
	return &Detector{
		catalog:  catalog,
		compiled: compileCatalog(catalog),
		cache:    newResultCache(capacity),
	}
}

// Analyze runs the full analysis for text at the given sensitivity. It
// returns either a complete Result or an error, never a partial result.
// Identical (text, sensitivity) inputs yield identical results; repeat
// calls are served from the cache.
func (d *Detector) Analyze(text string, sensitivity Sensitivity) (*Result, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	multiplier, ok := sensitivityMultipliers[sensitivity]
	if !ok {
		return nil, ErrInvalidSensitivity
	}

	key := fingerprint(text, sensitivity)
	if cached, ok := d.cache.get(key); ok {
		d.cacheHits.Add(1)
		return cached, nil
	}
	d.cacheMisses.Add(1)

	results := d.scan(text)

	weights := make(map[string]float64, len(d.catalog))
	for _, cat := range d.catalog {
		weights[cat.Name] = cat.Weight
	}

	// Every individual match contributes independently: a phrase occurring
	// three times adds three times its weighted value.
	var rawWeighted float64
	for _, cr := range results {
		rawWeighted += float64(cr.Count) * weights[cr.Category] * multiplier
	}

	wordCount := len(strings.Fields(text))
	finalScore := score(rawWeighted, wordCount)

	result := &Result{
		Score:           finalScore,
		Interpretation:  Interpret(finalScore),
		Patterns:        results,
		Summary:         summarize(results),
		Recommendations: recommend(results, finalScore),
		Sensitivity:     sensitivity,
	}

	d.cache.put(key, result)
	return result, nil
}

// summarize computes the match totals and the dominant category. Ties on
// the match count go to the category declared first in the catalog.
func summarize(results []CategoryResult) Summary {
	s := Summary{CategoriesTriggered: len(results)}

	best := -1
	for _, cr := range results {
		s.TotalPatterns += cr.Count
		if cr.Count > best {
			best = cr.Count
			s.MostCommonCategory = cr.Category
		}
	}
	return s
}

// CacheStats reports cache effectiveness counters for observability.
func (d *Detector) CacheStats() (hits, misses uint64, size int) {
	return d.cacheHits.Load(), d.cacheMisses.Load(), d.cache.len()
}

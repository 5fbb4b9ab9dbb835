// Package readability scores text against the standard grade-level
// readability formulas and renders human-readable interpretations.
package readability

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/textstat"
)

// ErrEmptyInput is returned when the text is empty or whitespace-only.
var ErrEmptyInput = errors.New("text is empty")

// Statistics summarizes the raw counts behind the formula outputs.
type Statistics struct {
	WordCount           int     `json:"word_count"`
	SentenceCount       int     `json:"sentence_count"`
	SyllableCount       int     `json:"syllable_count"`
	AvgWordsPerSentence float64 `json:"avg_words_per_sentence"`
}

// Report is the full readability analysis for one text. Optional metrics
// are pointers so a filtered request omits them from the JSON entirely.
type Report struct {
	FleschKincaidGrade       float64    `json:"flesch_kincaid_grade"`
	FleschReadingEase        float64    `json:"flesch_reading_ease"`
	Interpretation           string     `json:"interpretation"`
	GradeLevelInterpretation string     `json:"grade_level_interpretation"`
	Statistics               Statistics `json:"statistics"`

	SMOGIndex                 *float64 `json:"smog_index,omitempty"`
	AutomatedReadabilityIndex *float64 `json:"automated_readability_index,omitempty"`
	ColemanLiauIndex          *float64 `json:"coleman_liau_index,omitempty"`
	GunningFog                *float64 `json:"gunning_fog,omitempty"`

	EstimatedReadingTime string `json:"estimated_reading_time"`
}

// InterpretReadingEase renders a Flesch Reading Ease score.
func InterpretReadingEase(score float64) string {
	switch {
	case score < 30:
		return "Very difficult - Best understood by university graduates"
	case score < 50:
		return "Difficult - Best understood by college students"
	case score < 60:
		return "Fairly difficult - 10th to 12th grade level"
	case score < 70:
		return "Standard - 8th & 9th grade level"
	case score < 80:
		return "Fairly easy - 7th grade level"
	case score < 90:
		return "Easy - 6th grade level"
	default:
		return "Very easy - 5th grade level or below"
	}
}

// InterpretGradeLevel renders a grade-level score.
func InterpretGradeLevel(level float64) string {
	switch {
	case level < 6:
		return "Elementary school level"
	case level < 9:
		return "Middle school level"
	case level < 13:
		return "High school level"
	case level < 16:
		return "College level"
	default:
		return "Graduate level"
	}
}

// Analyze computes the readability report. metrics filters the optional
// formulas by name (smog, ari, coleman_liau, gunning_fog); nil means all.
func Analyze(text string, metrics []string) (*Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	wordCount := textstat.LexiconCount(text)
	sentenceCount := textstat.SentenceCount(text)
	syllableCount := textstat.SyllableCount(text)

	avgWords := 0.0
	if sentenceCount > 0 {
		avgWords = math.Round(float64(wordCount)/float64(sentenceCount)*10) / 10
	}

	fkGrade := textstat.FleschKincaidGrade(text)
	ease := textstat.FleschReadingEase(text)

	report := &Report{
		FleschKincaidGrade:       fkGrade,
		FleschReadingEase:        ease,
		Interpretation:           InterpretReadingEase(ease),
		GradeLevelInterpretation: InterpretGradeLevel(fkGrade),
		Statistics: Statistics{
			WordCount:           wordCount,
			SentenceCount:       sentenceCount,
			SyllableCount:       syllableCount,
			AvgWordsPerSentence: avgWords,
		},
		// Reading speed of roughly 200 words per minute.
		EstimatedReadingTime: fmt.Sprintf("%.1f minutes", float64(wordCount)/200),
	}

	if wantMetric(metrics, "smog") {
		v := textstat.SMOGIndex(text)
		report.SMOGIndex = &v
	}
	if wantMetric(metrics, "ari") {
		v := textstat.AutomatedReadabilityIndex(text)
		report.AutomatedReadabilityIndex = &v
	}
	if wantMetric(metrics, "coleman_liau") {
		v := textstat.ColemanLiauIndex(text)
		report.ColemanLiauIndex = &v
	}
	if wantMetric(metrics, "gunning_fog") {
		v := textstat.GunningFog(text)
		report.GunningFog = &v
	}

	return report, nil
}

func wantMetric(metrics []string, name string) bool {
	if metrics == nil {
		return true
	}
	for _, m := range metrics {
		if m == name {
			return true
		}
	}
	return false
}

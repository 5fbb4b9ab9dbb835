// Package sentences finds the hardest-to-read sentences in a text and
// explains what makes each one difficult.
package sentences

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/inkwell-ai/inkwell/internal/textstat"
)

// ErrEmptyInput is returned when the text is empty or whitespace-only.
var ErrEmptyInput = errors.New("text is empty")

const (
	// DefaultCount is how many difficult sentences a report returns.
	DefaultCount = 5
	// DefaultThreshold is the minimum grade level to count as difficult.
	DefaultThreshold = 10.0

	// Sentences shorter than this many characters are noise, not prose.
	minSentenceChars = 10
)

// DifficultSentence is one sentence at or above the difficulty threshold.
type DifficultSentence struct {
	Sentence   string   `json:"sentence"`
	GradeLevel float64  `json:"grade_level"`
	Position   int      `json:"position"`
	Issues     []string `json:"issues"`
	WordCount  int      `json:"word_count"`
}

// Report lists the most difficult sentences plus whole-text context.
type Report struct {
	DifficultSentences []DifficultSentence `json:"difficult_sentences"`
	TotalSentences     int                 `json:"total_sentences"`
	AverageGradeLevel  float64             `json:"average_grade_level"`
	ThresholdUsed      float64             `json:"threshold_used"`
}

// Difficulty computes a sentence's grade level and the specific issues that
// drive it: length, vocabulary complexity, passive voice, clause stacking.
func Difficulty(sentence string) (float64, []string) {
	var issues []string
	grade := textstat.FleschKincaidGrade(sentence)

	wordCount := textstat.LexiconCount(sentence)
	if wordCount > 25 {
		issues = append(issues, fmt.Sprintf("Very long sentence (%d words)", wordCount))
	} else if wordCount > 20 {
		issues = append(issues, fmt.Sprintf("Long sentence (%d words)", wordCount))
	}

	if wordCount > 0 {
		avgSyllables := float64(textstat.SyllableCount(sentence)) / float64(wordCount)
		if avgSyllables > 2 {
			issues = append(issues, fmt.Sprintf("Complex vocabulary (avg %.1f syllables/word)", avgSyllables))
		}
	}

	if hasPassiveIndicator(sentence) {
		issues = append(issues, "Possible passive voice")
	}

	clauseCount := countClauseIndicators(sentence)
	if clauseCount >= 3 {
		issues = append(issues, fmt.Sprintf("Multiple clauses (%d subordinate elements)", clauseCount))
	} else if clauseCount >= 2 {
		issues = append(issues, "Complex structure with multiple clauses")
	}

	if len(issues) == 0 {
		if grade > 12 {
			issues = append(issues, "High reading level vocabulary")
		} else {
			issues = append(issues, "Generally clear, but could be simplified")
		}
	}

	return grade, issues
}

var passiveIndicators = map[string]bool{
	"was": true, "were": true, "been": true, "being": true,
	"be": true, "is": true, "are": true, "am": true,
}

func hasPassiveIndicator(sentence string) bool {
	words := strings.Fields(strings.ToLower(sentence))
	for i, w := range words {
		if passiveIndicators[w] && i+1 < len(words) {
			next := strings.TrimRight(words[i+1], ".,;:!?")
			if strings.HasSuffix(next, "ed") || strings.HasSuffix(next, "en") {
				return true
			}
		}
	}
	return false
}

var clauseIndicators = []string{
	",", ";", " - ", " -- ", "(", "which", "that", "who", "whom", "whose",
}

func countClauseIndicators(sentence string) int {
	count := 0
	for _, ind := range clauseIndicators {
		if strings.Contains(sentence, ind) {
			count++
		}
	}
	return count
}

// FindDifficult returns up to count sentences at or above the grade-level
// threshold, hardest first. Zero-valued count and threshold fall back to
// the defaults.
func FindDifficult(text string, count int, threshold float64) (*Report, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}
	if count <= 0 {
		count = DefaultCount
	}
	if threshold <= 0 {
		threshold = DefaultThreshold
	}

	all := textstat.SplitSentences(text)

	var difficult []DifficultSentence
	var gradeTotal float64
	graded := 0

	for i, sentence := range all {
		trimmed := strings.TrimSpace(sentence)
		if len(trimmed) < minSentenceChars {
			continue
		}

		grade, issues := Difficulty(trimmed)
		gradeTotal += grade
		graded++

		if grade >= threshold {
			difficult = append(difficult, DifficultSentence{
				Sentence:   trimmed,
				GradeLevel: grade,
				Position:   i + 1,
				Issues:     issues,
				WordCount:  textstat.LexiconCount(trimmed),
			})
		}
	}

	// Hardest first; ties keep document order.
	sort.SliceStable(difficult, func(a, b int) bool {
		return difficult[a].GradeLevel > difficult[b].GradeLevel
	})
	if len(difficult) > count {
		difficult = difficult[:count]
	}
	if difficult == nil {
		difficult = []DifficultSentence{}
	}

	avg := 0.0
	if graded > 0 {
		avg = math.Round(gradeTotal/float64(graded)*10) / 10
	}

	return &Report{
		DifficultSentences: difficult,
		TotalSentences:     len(all),
		AverageGradeLevel:  avg,
		ThresholdUsed:      threshold,
	}, nil
}

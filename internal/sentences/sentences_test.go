package sentences

import (
	"strings"
	"testing"
)

const hardSentence = "Notwithstanding the considerable institutional impediments, which the interdisciplinary committee had repeatedly documented, the comprehensive organizational restructuring proceeded expeditiously."

func TestFindDifficultEmptyInput(t *testing.T) {
	if _, err := FindDifficult("", 5, 10); err != ErrEmptyInput {
		t.Fatalf("expected ErrEmptyInput, got %v", err)
	}
}

func TestFindDifficultFlagsHardSentences(t *testing.T) {
	text := "The cat sat on the mat. " + hardSentence + " The dog ran home."

	report, err := FindDifficult(text, 5, 10)
	if err != nil {
		t.Fatalf("find difficult: %v", err)
	}
	if report.TotalSentences != 3 {
		t.Fatalf("expected 3 sentences, got %d", report.TotalSentences)
	}
	if len(report.DifficultSentences) != 1 {
		t.Fatalf("expected 1 difficult sentence, got %d", len(report.DifficultSentences))
	}

	ds := report.DifficultSentences[0]
	if ds.GradeLevel < 10 {
		t.Fatalf("expected grade >= threshold, got %v", ds.GradeLevel)
	}
	if ds.Position != 2 {
		t.Fatalf("expected position 2, got %d", ds.Position)
	}
	if len(ds.Issues) == 0 {
		t.Fatalf("expected issues listed")
	}
	if report.ThresholdUsed != 10 {
		t.Fatalf("expected threshold 10, got %v", report.ThresholdUsed)
	}
}

func TestFindDifficultRespectsCount(t *testing.T) {
	var parts []string
	for i := 0; i < 4; i++ {
		parts = append(parts, hardSentence)
	}
	report, err := FindDifficult(strings.Join(parts, " "), 2, 10)
	if err != nil {
		t.Fatalf("find difficult: %v", err)
	}
	if len(report.DifficultSentences) != 2 {
		t.Fatalf("expected 2 sentences after truncation, got %d", len(report.DifficultSentences))
	}
}

func TestFindDifficultSortsHardestFirst(t *testing.T) {
	text := "The committee, which convened yesterday, deliberated extensively regarding administrative matters. " + hardSentence

	report, err := FindDifficult(text, 5, 1)
	if err != nil {
		t.Fatalf("find difficult: %v", err)
	}
	for i := 1; i < len(report.DifficultSentences); i++ {
		if report.DifficultSentences[i-1].GradeLevel < report.DifficultSentences[i].GradeLevel {
			t.Fatalf("not sorted by grade: %+v", report.DifficultSentences)
		}
	}
}

func TestFindDifficultSkipsFragments(t *testing.T) {
	report, err := FindDifficult("Ok. Yes. "+hardSentence, 5, 10)
	if err != nil {
		t.Fatalf("find difficult: %v", err)
	}
	// The two fragments are counted in the total but never graded.
	if report.TotalSentences != 3 {
		t.Fatalf("expected 3 total sentences, got %d", report.TotalSentences)
	}
	if len(report.DifficultSentences) != 1 {
		t.Fatalf("expected only the long sentence flagged, got %d", len(report.DifficultSentences))
	}
}

func TestFindDifficultDefaults(t *testing.T) {
	report, err := FindDifficult("The cat sat calmly on the mat today.", 0, 0)
	if err != nil {
		t.Fatalf("find difficult: %v", err)
	}
	if report.ThresholdUsed != DefaultThreshold {
		t.Fatalf("expected default threshold, got %v", report.ThresholdUsed)
	}
	if report.DifficultSentences == nil {
		t.Fatalf("expected empty slice, not nil")
	}
}

func TestDifficultyIssues(t *testing.T) {
	grade, issues := Difficulty(hardSentence)
	if grade < 10 {
		t.Fatalf("expected high grade, got %v", grade)
	}

	joined := strings.Join(issues, "; ")
	if !strings.Contains(joined, "Complex vocabulary") {
		t.Fatalf("expected vocabulary issue, got %q", joined)
	}
	if !strings.Contains(joined, "clause") {
		t.Fatalf("expected clause issue, got %q", joined)
	}

	_, issues = Difficulty("The report was compiled by the intern.")
	if !strings.Contains(strings.Join(issues, "; "), "passive") {
		t.Fatalf("expected passive voice issue, got %q", issues)
	}

	_, issues = Difficulty("The cat sat on the mat.")
	if len(issues) != 1 || !strings.Contains(issues[0], "Generally clear") {
		t.Fatalf("expected the clear fallback issue, got %q", issues)
	}
}

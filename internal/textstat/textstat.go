// Package textstat provides the word, sentence, and syllable statistics the
// readability formulas are built on. Counts are heuristic in the usual way
// for English readability scoring: syllables are estimated from vowel
// groups, sentences end at terminal punctuation.
package textstat

import (
	"regexp"
	"strings"
	"unicode"
)

var sentenceEndRe = regexp.MustCompile(`[.!?]+[)"']*(\s+|$)`)

// SplitSentences segments text into sentences on terminal punctuation.
func SplitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceEndRe.FindAllStringIndex(text, -1) {
		s := strings.TrimSpace(text[last:loc[1]])
		if s != "" {
			sentences = append(sentences, s)
		}
		last = loc[1]
	}
	if rest := strings.TrimSpace(text[last:]); rest != "" {
		sentences = append(sentences, rest)
	}
	return sentences
}

// SentenceCount returns the number of sentences, at least 1 for non-empty
// text.
func SentenceCount(text string) int {
	n := len(SplitSentences(text))
	if n == 0 && strings.TrimSpace(text) != "" {
		return 1
	}
	return n
}

// WordCount counts whitespace-separated tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

// LexiconCount counts words after stripping punctuation, ignoring tokens
// that contain no letters or digits at all.
func LexiconCount(text string) int {
	count := 0
	for _, w := range strings.Fields(text) {
		if strings.IndexFunc(w, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			count++
		}
	}
	return count
}

// LetterCount counts letters and digits, the unit the ARI and Coleman-Liau
// formulas work in.
func LetterCount(text string) int {
	count := 0
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			count++
		}
	}
	return count
}

// SyllableCount estimates the syllables across all words in text.
func SyllableCount(text string) int {
	total := 0
	for _, w := range strings.Fields(text) {
		total += WordSyllables(w)
	}
	return total
}

// WordSyllables estimates the syllables in a single word by counting vowel
// groups, discounting a silent trailing "e", and flooring at 1.
func WordSyllables(word string) int {
	word = strings.ToLower(strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r)
	}))
	if word == "" {
		return 0
	}

	count := 0
	prevVowel := false
	for _, r := range word {
		v := isVowel(r)
		if v && !prevVowel {
			count++
		}
		prevVowel = v
	}

	// Silent final "e", but not "le" after a consonant ("table", "little").
	if strings.HasSuffix(word, "e") && !strings.HasSuffix(word, "le") && count > 1 {
		count--
	}

	if count < 1 {
		count = 1
	}
	return count
}

// PolysyllableCount counts words of three syllables or more, the input to
// SMOG and Gunning fog.
func PolysyllableCount(text string) int {
	count := 0
	for _, w := range strings.Fields(text) {
		if WordSyllables(w) >= 3 {
			count++
		}
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}

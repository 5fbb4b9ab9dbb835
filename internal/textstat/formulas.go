package textstat

import "math"

// FleschKincaidGrade estimates the US school grade needed to read the text.
func FleschKincaidGrade(text string) float64 {
	words := float64(LexiconCount(text))
	sentences := float64(SentenceCount(text))
	syllables := float64(SyllableCount(text))
	if words == 0 || sentences == 0 {
		return 0
	}
	return round1(0.39*(words/sentences) + 11.8*(syllables/words) - 15.59)
}

// FleschReadingEase scores ease of reading on a 0-100 scale, higher easier.
func FleschReadingEase(text string) float64 {
	words := float64(LexiconCount(text))
	sentences := float64(SentenceCount(text))
	syllables := float64(SyllableCount(text))
	if words == 0 || sentences == 0 {
		return 0
	}
	return round1(206.835 - 1.015*(words/sentences) - 84.6*(syllables/words))
}

// SMOGIndex estimates grade level from polysyllable density. The formula
// assumes a 30-sentence sample and extrapolates for shorter texts.
func SMOGIndex(text string) float64 {
	sentences := float64(SentenceCount(text))
	if sentences == 0 {
		return 0
	}
	poly := float64(PolysyllableCount(text))
	return round1(1.043*math.Sqrt(poly*(30/sentences)) + 3.1291)
}

// AutomatedReadabilityIndex estimates grade level from character and word
// lengths.
func AutomatedReadabilityIndex(text string) float64 {
	chars := float64(LetterCount(text))
	words := float64(LexiconCount(text))
	sentences := float64(SentenceCount(text))
	if words == 0 || sentences == 0 {
		return 0
	}
	return round1(4.71*(chars/words) + 0.5*(words/sentences) - 21.43)
}

// ColemanLiauIndex estimates grade level from letters and sentences per 100
// words.
func ColemanLiauIndex(text string) float64 {
	words := float64(LexiconCount(text))
	if words == 0 {
		return 0
	}
	l := float64(LetterCount(text)) / words * 100
	s := float64(SentenceCount(text)) / words * 100
	return round1(0.0588*l - 0.296*s - 15.8)
}

// GunningFog estimates grade level from sentence length and the share of
// complex words.
func GunningFog(text string) float64 {
	words := float64(LexiconCount(text))
	sentences := float64(SentenceCount(text))
	if words == 0 || sentences == 0 {
		return 0
	}
	poly := float64(PolysyllableCount(text))
	return round1(0.4 * ((words / sentences) + 100*(poly/words)))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// Package readability scores Dutch text with the Flesch-Douma formula. The
// score is used where the suggestion service does not provide one.
package readability

import (
	"math"
	"strings"
	"unicode"

	"github.com/csheth/plainword/internal/sentence"
)

// Stats are the raw counts behind a score.
type Stats struct {
	Sentences int
	Words     int
	Syllables int
}

// Analyze counts sentences, words and syllables in text.
func Analyze(text string) Stats {
	var stats Stats
	for _, s := range sentence.Split(text) {
		words := strings.FieldsFunc(s, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\'' && r != '-'
		})
		if len(words) == 0 {
			continue
		}
		stats.Sentences++
		for _, w := range words {
			stats.Words++
			stats.Syllables += syllables(w)
		}
	}
	return stats
}

// Douma returns the Flesch-Douma reading ease of text, rounded to two
// decimals. Higher is easier. Empty text scores 0.
func Douma(text string) float64 {
	stats := Analyze(text)
	if stats.Words == 0 || stats.Sentences == 0 {
		return 0
	}
	perHundred := float64(stats.Syllables) / float64(stats.Words) * 100
	perSentence := float64(stats.Words) / float64(stats.Sentences)
	score := 206.84 - 0.77*perHundred - 0.93*perSentence
	return math.Round(score*100) / 100
}

// syllables approximates the syllable count as the number of vowel groups.
// Dutch diphthongs (ei, ij, ou, ui, oe, eu, au) form one group naturally.
func syllables(word string) int {
	count := 0
	inVowel := false
	for _, r := range strings.ToLower(word) {
		if isVowel(r) {
			if !inVowel {
				count++
			}
			inVowel = true
			continue
		}
		inVowel = false
	}
	if count == 0 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y', 'á', 'é', 'í', 'ó', 'ú', 'à', 'è', 'ë', 'ï', 'ö', 'ü', 'ê', 'ô':
		return true
	}
	return false
}

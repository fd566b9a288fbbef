// Package sentence cuts document text into the sentences that are sent for
// simplification.
package sentence

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	paragraphBreak = regexp.MustCompile(`\n[ \t]*\n`)
	lineBreaks     = regexp.MustCompile(`\r?\n+`)
)

// Split returns the sentences of text in reading order. A sentence ends at
// '.', '!' or '?' followed by whitespace; a blank line also ends a sentence
// so headings do not run into the paragraph below them. Single line breaks
// count as spaces.
func Split(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var sentences []string
	for _, paragraph := range paragraphBreak.Split(text, -1) {
		paragraph = lineBreaks.ReplaceAllString(paragraph, " ")
		sentences = append(sentences, splitParagraph(paragraph)...)
	}
	return sentences
}

func splitParagraph(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	var sentences []string
	start := 0
	for idx, r := range text {
		if !isTerminal(r) {
			continue
		}
		end := idx + utf8.RuneLen(r)
		if end >= len(text) {
			break
		}
		next, _ := utf8.DecodeRuneInString(text[end:])
		if !unicode.IsSpace(next) {
			continue
		}
		if segment := strings.TrimSpace(text[start:end]); segment != "" {
			sentences = append(sentences, segment)
		}
		start = end
	}
	if segment := strings.TrimSpace(text[start:]); segment != "" {
		sentences = append(sentences, segment)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

package readability

import "testing"

func TestSyllables(t *testing.T) {
	cases := map[string]int{
		"zin":        1,
		"lange":      2,
		"huis":       1,
		"eigenlijk":  3,
		"desondanks": 3,
		"b1":         1,
	}
	for word, want := range cases {
		if got := syllables(word); got != want {
			t.Fatalf("syllables(%q) = %d, want %d", word, got, want)
		}
	}
}

func TestAnalyzeCounts(t *testing.T) {
	stats := Analyze("Dit is een zin. Nog een zin!")
	if stats.Sentences != 2 || stats.Words != 7 {
		t.Fatalf("unexpected stats %+v", stats)
	}
}

func TestDoumaPrefersShortSentences(t *testing.T) {
	short := Douma("Dit is kort. Dat is fijn.")
	long := Douma("Desalniettemin constateren wij dat de geconsolideerde jaarrekening onvoldoende gedetailleerde informatie bevat omtrent de waardering van immateriële activa.")
	if short <= long {
		t.Fatalf("expected short text to score higher: short=%.2f long=%.2f", short, long)
	}
	if Douma("") != 0 {
		t.Fatal("empty text should score 0")
	}
}

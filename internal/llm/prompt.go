package llm

import (
	"errors"
	"strings"
)

const systemPrompt = "Je bent een taalredacteur die Nederlandse teksten herschrijft op B1-niveau."

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func buildSimplifyPrompt(sentence string) string {
	var b strings.Builder
	b.WriteString("Herschrijf de volgende zin op B1-niveau.\n")
	b.WriteString("Houd de betekenis gelijk, gebruik korte woorden en vermijd lange bijzinnen.\n")
	b.WriteString("Geef ALLEEN de herschreven zin terug, zonder uitleg of aanhalingstekens.\n\n")
	b.WriteString("Zin: ")
	b.WriteString(sentence)
	b.WriteString("\nHerschreven:")
	return b.String()
}

// cleanRewrite keeps the first non-empty line of a model reply and strips
// wrapping quotes and a leading label the model may echo back.
func cleanRewrite(raw string) (string, error) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		for _, label := range []string{"Herschreven:", "Zin:"} {
			line = strings.TrimSpace(strings.TrimPrefix(line, label))
		}
		line = strings.Trim(line, "\"'“”‘’")
		line = strings.TrimSpace(line)
		if line != "" {
			return line, nil
		}
	}
	return "", errors.New("model returned an empty rewrite")
}

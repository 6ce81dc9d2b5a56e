package queryparse

import "strings"

// knownEntities maps lowercased company and location names to their
// preferred capitalization. Anything absent falls back to per-word title
// casing.
var knownEntities = map[string]string{
	"google":        "Google",
	"meta":          "Meta",
	"apple":         "Apple",
	"amazon":        "Amazon",
	"aws":           "AWS",
	"microsoft":     "Microsoft",
	"netflix":       "Netflix",
	"ibm":           "IBM",
	"openai":        "OpenAI",
	"linkedin":      "LinkedIn",
	"github":        "GitHub",
	"mckinsey":      "McKinsey",
	"sf":            "SF",
	"san francisco": "San Francisco",
	"nyc":           "NYC",
	"new york":      "New York",
	"la":            "LA",
	"los angeles":   "Los Angeles",
	"london":        "London",
	"berlin":        "Berlin",
	"uk":            "UK",
	"usa":           "USA",
}

// Capitalize restores display capitalization for a recognized company or
// location phrase.
func Capitalize(phrase string) string {
	trimmed := strings.TrimSpace(phrase)
	if known, ok := knownEntities[strings.ToLower(trimmed)]; ok {
		return known
	}

	words := strings.Fields(trimmed)
	for i, word := range words {
		if known, ok := knownEntities[strings.ToLower(word)]; ok {
			words[i] = known
			continue
		}
		words[i] = titleWord(word)
	}
	return strings.Join(words, " ")
}

func titleWord(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
}

package service

import (
	"strings"
	"unicode"
)

// capitalizeWords upper-cases the first letter of every space-separated word,
// leaving the remaining letters untouched. Reference values (category types,
// location pairs, space titles) are stored and compared in this form.
func capitalizeWords(s string) string {
	words := strings.Split(strings.TrimSpace(s), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		runes := []rune(word)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

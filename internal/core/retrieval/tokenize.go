package retrieval

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\w+`)

// Tokenize lowercases text and splits it into word-boundary tokens.
func Tokenize(text string) []string {
	return wordPattern.FindAllString(strings.ToLower(text), -1)
}

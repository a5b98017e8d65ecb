package suggest

import (
	"strings"
	"unicode"
)

// Normalize lower-cases a name and drops word separators, so that
// "LifeExpectancy", "life_expectancy" and "life-expectancy" are equal.
func Normalize(s string) string {
	return strings.Join(Words(s), "")
}

// Words splits a name into lower-case words at separators, lower-to-upper
// transitions and the end of acronyms ("HTTPServer" is "http", "server").
func Words(s string) []string {
	var (
		words []string
		cur   strings.Builder
	)

	flush := func() {
		if cur.Len() > 0 {
			words = append(words, strings.ToLower(cur.String()))
			cur.Reset()
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		if isSeparator(r) {
			flush()
			continue
		}

		if i > 0 && startsWord(runes, i) {
			flush()
		}

		cur.WriteRune(r)
	}

	flush()

	return words
}

func isSeparator(r rune) bool {
	return r == '_' || r == '-' || r == ' ' || r == '.'
}

func startsWord(runes []rune, i int) bool {
	r, prev := runes[i], runes[i-1]
	if !unicode.IsUpper(r) || isSeparator(prev) {
		return false
	}

	if !unicode.IsUpper(prev) {
		return true
	}

	return i+1 < len(runes) && unicode.IsLower(runes[i+1])
}

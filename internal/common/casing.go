package common

import (
	"strings"
	"unicode"
)

// ToPascalCase converts snake_case, kebab-case or camelCase to PascalCase.
// The rest of each part is kept as-is, so "userID" becomes "UserID".
func ToPascalCase(s string) string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-'
	})

	var sb strings.Builder
	for _, part := range parts {
		runes := []rune(part)
		sb.WriteRune(unicode.ToUpper(runes[0]))
		sb.WriteString(string(runes[1:]))
	}

	return sb.String()
}

// ToSnakeCase converts PascalCase or camelCase to snake_case.
// Acronyms stay together: "HTTPServer" becomes "http_server".
func ToSnakeCase(s string) string {
	var sb strings.Builder
	runes := []rune(s)

	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prevUpper := unicode.IsUpper(runes[i-1])
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])

			if (!prevUpper || nextLower) && runes[i-1] != '_' {
				sb.WriteRune('_')
			}
		}

		sb.WriteRune(r)
	}

	return strings.ToLower(sb.String())
}

// UpperFirst upper-cases the first rune of s.
func UpperFirst(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])

	return string(runes)
}

// LowerFirst lower-cases the first rune of s.
func LowerFirst(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	runes[0] = unicode.ToLower(runes[0])

	return string(runes)
}

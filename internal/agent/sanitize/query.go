// Package sanitize prepares user-provided search text for embedding in an
// LLM prompt.
// Reference: OWASP LLM Prompt Injection Prevention Cheat Sheet
// https://cheatsheetseries.owasp.org/cheatsheets/LLM_Prompt_Injection_Prevention_Cheat_Sheet.html
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

// MaxQueryRunes caps how much of a search request reaches the model
const MaxQueryRunes = 500

// instructionPatterns detects instruction-like content in a search request.
var instructionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+|the\s+)?(previous|prior|above)\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+|the\s+)?(previous|prior|above)`),
	regexp.MustCompile(`(?i)(reveal|print|show)\s+(the\s+|your\s+)?(system\s+)?prompt`),
	regexp.MustCompile(`(?i)you\s+are\s+now\b`),
	regexp.MustCompile(`(?i)return\s+only\s+the\s+json`),
}

// Query flattens whitespace, strips control characters, escapes double
// quotes so the text stays inside the prompt's quoted request, caps its
// length and wraps instruction-like fragments in 【】 brackets.
func Query(text string) string {
	var sb strings.Builder
	lastSpace := false
	count := 0
	for _, r := range strings.TrimSpace(text) {
		if count >= MaxQueryRunes {
			break
		}
		switch {
		case unicode.IsSpace(r):
			if lastSpace {
				continue
			}
			sb.WriteRune(' ')
			lastSpace = true
			count++
			continue
		case unicode.IsControl(r):
			continue
		case r == '"':
			sb.WriteString(`\"`)
		case r == '\\':
			sb.WriteString(`\\`)
		default:
			sb.WriteRune(r)
		}
		lastSpace = false
		count++
	}

	result := strings.TrimSpace(sb.String())
	for _, pattern := range instructionPatterns {
		result = pattern.ReplaceAllStringFunc(result, func(match string) string {
			return "【" + match + "】"
		})
	}
	return result
}

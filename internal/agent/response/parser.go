package response

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"ai-book/backend/internal/query"
)

// ErrNoObject is returned when the model reply holds no JSON object
var ErrNoObject = errors.New("response: no JSON object in model reply")

var (
	codeFenceRegex   = regexp.MustCompile("(?s)^```[a-zA-Z]*\\s*(.*?)\\s*```$")
	unquotedKeyRegex = regexp.MustCompile(`([{,]\s*)([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	trailingComma    = regexp.MustCompile(`,\s*}`)
)

// ParseCriteria extracts query criteria from the raw model reply
func ParseCriteria(text string) (query.Criteria, error) {
	var criteria query.Criteria

	body, err := extractObject(text)
	if err != nil {
		return criteria, err
	}

	if err := json.Unmarshal([]byte(body), &criteria); err != nil {
		// Retry once with common formatting slips repaired
		if err := json.Unmarshal([]byte(repairJSON(body)), &criteria); err != nil {
			return query.Criteria{}, err
		}
	}
	return criteria, nil
}

// extractObject strips markdown fences and any prose around the outermost object
func extractObject(text string) (string, error) {
	trimmed := strings.TrimSpace(text)
	if matches := codeFenceRegex.FindStringSubmatch(trimmed); len(matches) > 1 {
		trimmed = matches[1]
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end < start {
		return "", ErrNoObject
	}
	return trimmed[start : end+1], nil
}

// repairJSON quotes bare keys and drops a trailing comma before the closing brace
func repairJSON(s string) string {
	result := unquotedKeyRegex.ReplaceAllString(s, `$1"$2":`)
	return trailingComma.ReplaceAllString(result, "}")
}

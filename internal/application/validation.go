package application

import (
	"fmt"
	"regexp"
	"strings"

	"pnidkit/internal/domain"
)

// ValidateRequired checks if a string field is non-empty (after trimming whitespace).
// Returns a ValidationError if the field is empty.
func ValidateRequired(fieldName, value string) error {
	if strings.TrimSpace(value) == "" {
		// Format field name with spaces for error message (e.g., "blockName" -> "block name")
		displayName := formatFieldName(fieldName)
		return &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("%s is required", displayName),
		}
	}
	return nil
}

// formatFieldName converts camelCase field names to space-separated words
// for more readable error messages (e.g., "runID" -> "run ID")
func formatFieldName(fieldName string) string {
	// Handle common patterns directly
	replacements := map[string]string{
		"pattern":     "pattern",
		"query":       "query",
		"replacement": "replacement",
		"fromBlock":   "source block",
		"toBlock":     "target block",
		"runID":       "run ID",
	}

	if formatted, ok := replacements[fieldName]; ok {
		return formatted
	}

	// Fallback: just return the field name as-is
	return fieldName
}

// ValidatePattern checks that a template name pattern is non-empty and
// compiles as a full-match regular expression.
func ValidatePattern(fieldName, expr string) (*regexp.Regexp, error) {
	if err := ValidateRequired(fieldName, expr); err != nil {
		return nil, err
	}
	re, err := domain.CompileFullMatch(expr)
	if err != nil {
		return nil, &ValidationError{
			Field:   fieldName,
			Message: fmt.Sprintf("invalid %s: %v", formatFieldName(fieldName), err),
		}
	}
	return re, nil
}

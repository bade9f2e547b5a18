package generator

import (
	"regexp"
	"strings"
)

// Field describes one form input for a template variable.
type Field struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}

// Fields maps extracted variable names onto form field descriptors,
// preserving order.
func Fields(names []string) []Field {
	fields := make([]Field, 0, len(names))
	for _, name := range names {
		fields = append(fields, Field{Name: name, Label: Label(name)})
	}
	return fields
}

var separatorPattern = regexp.MustCompile(`[_\-\s]+`)

// Label converts a variable name into a human-friendly form label. It splits
// on underscores, dashes and camelCase boundaries and title-cases each word:
// "order_id" becomes "Order Id", "accountNumber" becomes "Account Number".
func Label(name string) string {
	if name == "" {
		return ""
	}

	words := separatorPattern.Split(name, -1)
	var segments []string
	for _, word := range words {
		if word == "" {
			continue
		}
		for _, part := range strings.Fields(splitCamel(word)) {
			segments = append(segments, titleCase(part))
		}
	}
	return strings.Join(segments, " ")
}

func splitCamel(input string) string {
	var out strings.Builder
	for i, r := range input {
		if i > 0 && isBoundary(input, i, r) {
			out.WriteRune(' ')
		}
		out.WriteRune(r)
	}
	return out.String()
}

func isBoundary(input string, index int, r rune) bool {
	prev := rune(input[index-1])
	return (isLower(prev) && isUpper(r)) || (isLetter(prev) && isDigit(r)) || (isDigit(prev) && isLetter(r))
}

func isUpper(r rune) bool  { return r >= 'A' && r <= 'Z' }
func isLower(r rune) bool  { return r >= 'a' && r <= 'z' }
func isDigit(r rune) bool  { return r >= '0' && r <= '9' }
func isLetter(r rune) bool { return isUpper(r) || isLower(r) }

func titleCase(word string) string {
	if word == "" {
		return ""
	}
	lower := strings.ToLower(word)
	return strings.ToUpper(lower[:1]) + lower[1:]
}

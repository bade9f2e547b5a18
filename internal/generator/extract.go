package generator

import "regexp"

// markerPattern matches {{ variable_name }} substitution markers: double
// braces around an identifier, optional internal whitespace. Identifiers are
// letters, digits and underscores and cannot start with a digit. Expressions,
// filters and nested structures are not markers and are left alone.
var markerPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*\}\}`)

// ExtractVariables returns the unique variable names referenced by the
// markers in text, in order of first appearance. Malformed markers
// (unbalanced braces, empty identifiers) produce nothing and stay verbatim
// in the text.
func ExtractVariables(text string) []string {
	seen := make(map[string]bool)
	names := []string{}
	for _, match := range markerPattern.FindAllStringSubmatch(text, -1) {
		name := match[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

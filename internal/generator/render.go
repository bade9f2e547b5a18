package generator

import (
	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
)

// Render substitutes submission values into the markers of text and returns
// the resulting document. Substitution is a single left-to-right pass over
// the original text: values are inserted as literal text and never rescanned,
// so a submitted value containing marker-like syntax stays as-is in the
// output. Values are not escaped or checked for XML well-formedness; feeding
// in markup-breaking input produces invalid XML, which is a documented
// limitation rather than something to silently fix.
//
// Every well-formed marker must have a submission value. Orchestration
// validates the key set beforehand, so a miss here means the template changed
// mid-request; the whole render fails and no partial document escapes.
func Render(text string, submission map[string]string) (string, error) {
	var missing []string
	missingSeen := make(map[string]bool)

	document := markerPattern.ReplaceAllStringFunc(text, func(marker string) string {
		name := markerPattern.FindStringSubmatch(marker)[1]
		value, ok := submission[name]
		if !ok {
			if !missingSeen[name] {
				missingSeen[name] = true
				missing = append(missing, name)
			}
			return marker
		}
		return value
	})

	if len(missing) > 0 {
		return "", apperrors.NewMissingVariableError(missing)
	}
	return document, nil
}

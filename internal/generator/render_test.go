package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/askillindva/XmlTemplateGenerator/internal/common/errors"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		submission map[string]string
		expected   string
	}{
		{
			name:       "single substitution",
			text:       `<order><id>{{ order_id }}</id></order>`,
			submission: map[string]string{"order_id": "42"},
			expected:   `<order><id>42</id></order>`,
		},
		{
			name:       "both occurrences get the same value",
			text:       `<a>{{ name }}</a><b>{{ name }}</b>`,
			submission: map[string]string{"name": "x"},
			expected:   `<a>x</a><b>x</b>`,
		},
		{
			name:       "whitespace variants of the same marker",
			text:       `{{name}} {{ name }} {{  name  }}`,
			submission: map[string]string{"name": "v"},
			expected:   `v v v`,
		},
		{
			name:       "empty value is a legitimate substitution",
			text:       `<tag>{{ v }}</tag>`,
			submission: map[string]string{"v": ""},
			expected:   `<tag></tag>`,
		},
		{
			name:       "no markers passes text through",
			text:       `<static/>`,
			submission: map[string]string{},
			expected:   `<static/>`,
		},
		{
			name:       "extra submission keys are ignored",
			text:       `<id>{{ a }}</id>`,
			submission: map[string]string{"a": "1", "b": "2"},
			expected:   `<id>1</id>`,
		},
		{
			name:       "malformed markers stay verbatim",
			text:       `{{ a } {{ b }} {notamarker}`,
			submission: map[string]string{"b": "2"},
			expected:   `{{ a } 2 {notamarker}`,
		},
		{
			name:       "values are literal text, not re-interpreted",
			text:       `<v>{{ a }}</v>`,
			submission: map[string]string{"a": "{{ b }}"},
			expected:   `<v>{{ b }}</v>`,
		},
		{
			name:       "values are not escaped for XML",
			text:       `<v>{{ a }}</v>`,
			submission: map[string]string{"a": "</v><hack>"},
			expected:   `<v></v><hack></v>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			document, err := Render(tt.text, tt.submission)
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, document)
		})
	}
}

func TestRender_MissingVariableFails(t *testing.T) {
	document, err := Render(`<a>{{ a }}</a><b>{{ b }}</b>`, map[string]string{"a": "1"})

	assert.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeMissingVariable))
	assert.Empty(t, document, "no partial document on failure")
}

func TestRender_Idempotent(t *testing.T) {
	text := `<order><id>{{ order_id }}</id><by>{{ user }}</by></order>`
	submission := map[string]string{"order_id": "42", "user": "ops"}

	first, err1 := Render(text, submission)
	second, err2 := Render(text, submission)

	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestRender_OutputHasNoSubstitutedMarkers(t *testing.T) {
	text := `<a>{{ a }}</a><b>{{ b }}</b>`
	submission := map[string]string{"a": "1", "b": "2"}

	document, err := Render(text, submission)
	assert.NoError(t, err)

	// Treating the output as a fresh template finds nothing left to fill,
	// because substituted text is literal.
	assert.Empty(t, ExtractVariables(document))
}

func TestRender_SubmittedMarkerLikeValueRoundTrip(t *testing.T) {
	// Documented edge case: a value that itself looks like a marker shows up
	// as a variable when the output is re-scanned as a template.
	document, err := Render(`<v>{{ a }}</v>`, map[string]string{"a": "{{ later }}"})
	assert.NoError(t, err)

	assert.Equal(t, []string{"later"}, ExtractVariables(document))
}

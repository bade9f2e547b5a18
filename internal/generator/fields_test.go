package generator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"underscores", "order_id", "Order Id"},
		{"dashes", "account-number", "Account Number"},
		{"camel case", "accountNumber", "Account Number"},
		{"single word", "amount", "Amount"},
		{"digits split", "line2", "Line 2"},
		{"leading underscore", "_internal", "Internal"},
		{"already spaced words collapse", "first__second", "First Second"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Label(tt.input))
		})
	}
}

func TestFields_PreservesOrder(t *testing.T) {
	fields := Fields([]string{"zulu_id", "alpha"})

	assert.Equal(t, []Field{
		{Name: "zulu_id", Label: "Zulu Id"},
		{Name: "alpha", Label: "Alpha"},
	}, fields)
}

func TestFields_Empty(t *testing.T) {
	assert.Empty(t, Fields(nil))
}

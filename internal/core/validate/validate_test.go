package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "Ada Lovelace", false},
		{"surrounding spaces", "  Ada  ", false},
		{"unicode", "Zoë Ménard", false},
		{"max length", strings.Repeat("a", MaxDisplayNameLen), false},
		{"max length in runes", strings.Repeat("é", MaxDisplayNameLen), false},
		{"too long", strings.Repeat("a", MaxDisplayNameLen+1), true},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DisplayName(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "DisplayName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestDisplayNameField(t *testing.T) {
	err := DisplayNameField("name", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name")

	assert.NoError(t, DisplayNameField("name", "Ada"))
}

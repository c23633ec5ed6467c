// Package validate provides shared validation functions.
package validate

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/hay-kot/criterio"
)

// MaxDisplayNameLen is the longest display name accepted, in runes.
const MaxDisplayNameLen = 120

// DisplayName validates a profile display name is non-empty after trimming
// whitespace and not longer than MaxDisplayNameLen.
func DisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxDisplayNameLen {
		return fmt.Errorf("name must be at most %d characters", MaxDisplayNameLen)
	}
	return nil
}

// DisplayNameField returns a criterio validator for display names.
func DisplayNameField(field, name string) error {
	return criterio.Run(field, name, DisplayName)
}

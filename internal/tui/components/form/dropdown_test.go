package form

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/colonyops/maple/pkg/tuitest"
)

func TestDropdown(t *testing.T) {
	opts := []string{"Daily", "Weekly", "Monthly"}

	t.Run("starts closed", func(t *testing.T) {
		d := NewDropdown(opts)
		assert.False(t, d.IsOpen())
		assert.Empty(t, d.View())

		choice, ok, _ := d.Update(tuitest.KeyEnter())
		assert.False(t, ok)
		assert.Empty(t, choice)
	})

	t.Run("open highlights current", func(t *testing.T) {
		d := NewDropdown(opts)
		d.Open("Monthly")
		assert.True(t, d.IsOpen())
		assert.Equal(t, "Monthly", d.Highlighted())
	})

	t.Run("open with unknown current highlights first", func(t *testing.T) {
		d := NewDropdown(opts)
		d.Open("")
		assert.Equal(t, "Daily", d.Highlighted())
	})

	t.Run("down then enter chooses", func(t *testing.T) {
		d := NewDropdown(opts)
		d.Open("Daily")

		d.Update(tuitest.KeyDown())
		choice, ok, _ := d.Update(tuitest.KeyEnter())
		assert.True(t, ok)
		assert.Equal(t, "Weekly", choice)
		assert.False(t, d.IsOpen())
	})

	t.Run("esc closes without choice", func(t *testing.T) {
		d := NewDropdown(opts)
		d.Open("Weekly")

		choice, ok, _ := d.Update(tea.KeyPressMsg(tea.Key{Code: tea.KeyEscape}))
		assert.False(t, ok)
		assert.Empty(t, choice)
		assert.False(t, d.IsOpen())
	})

	t.Run("view lists options", func(t *testing.T) {
		d := NewDropdown(opts)
		d.Open("Daily")
		view := tuitest.StripANSI(d.View())
		for _, opt := range opts {
			assert.Contains(t, view, opt)
		}
		assert.Contains(t, view, "> Daily")
	})
}

package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToastController_PushEvictsOldest(t *testing.T) {
	c := NewToastController()
	for _, msg := range []string{"a", "b", "c", "d"} {
		c.Push(toastInfo, msg)
	}

	toasts := c.Toasts()
	assert.Len(t, toasts, defaultMaxToasts)
	assert.Equal(t, "b", toasts[0].message)
	assert.Equal(t, "d", toasts[len(toasts)-1].message)
}

func TestToastController_TickExpires(t *testing.T) {
	c := NewToastController()
	c.Push(toastInfo, "saved")

	c.Tick(defaultToastTTL / 2)
	assert.True(t, c.HasToasts())

	c.Tick(defaultToastTTL / 2)
	assert.False(t, c.HasToasts())
}

func TestToastController_Dismiss(t *testing.T) {
	c := NewToastController()
	c.Push(toastInfo, "one")
	c.Push(toastError, "two")

	c.Dismiss()
	assert.Len(t, c.Toasts(), 1)
	assert.Equal(t, "one", c.Toasts()[0].message)

	c.Dismiss()
	c.Dismiss()
	assert.False(t, c.HasToasts())
}

func TestToastView_Overlay(t *testing.T) {
	c := NewToastController()
	v := NewToastView(c)

	assert.Equal(t, "bg", v.Overlay("bg", 80, 24))

	c.Push(toastInfo, StatusSaved)
	assert.Contains(t, v.View(), StatusSaved)
}

package doctor

import (
	"context"
	"os"

	"golang.org/x/term"
)

// isTerminalFunc reports whether fd is a terminal.
// Package-level variable to allow test overrides.
var isTerminalFunc = term.IsTerminal

// TerminalCheck reports whether the edit profile page can run here.
type TerminalCheck struct{}

// NewTerminalCheck creates a new terminal check.
func NewTerminalCheck() *TerminalCheck {
	return &TerminalCheck{}
}

func (c *TerminalCheck) Name() string {
	return "Terminal"
}

func (c *TerminalCheck) Run(_ context.Context) Result {
	result := Result{Name: c.Name()}

	for _, f := range []struct {
		label string
		fd    uintptr
	}{
		{"stdin", os.Stdin.Fd()},
		{"stdout", os.Stdout.Fd()},
	} {
		if isTerminalFunc(int(f.fd)) {
			result.Items = append(result.Items, pass(f.label, "terminal"))
		} else {
			result.Items = append(result.Items, warn(f.label, "not a terminal (the edit page will not start)"))
		}
	}

	return result
}

package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/colonyops/maple/internal/core/logging"
	"github.com/colonyops/maple/internal/maple"
	"github.com/colonyops/maple/internal/tui"
)

type TuiCmd struct {
	flags *Flags
	app   *maple.App

	profileID string

	// isTerminal reports whether stdin and stdout are attached to a terminal.
	isTerminal func() bool
}

// NewTuiCmd creates a new tui command
func NewTuiCmd(flags *Flags, app *maple.App) *TuiCmd {
	return &TuiCmd{
		flags: flags,
		app:   app,
		isTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
		},
	}
}

// Flags returns the TUI-specific flags for registration on the root command
func (cmd *TuiCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "profile",
			Aliases:     []string{"p"},
			Usage:       "id of the profile to edit (defaults to profile_id from config)",
			Sources:     cli.EnvVars("MAPLE_PROFILE"),
			Destination: &cmd.profileID,
		},
	}
}

// Register adds the edit command to the application
func (cmd *TuiCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "edit",
		Usage:     "Open the edit profile page",
		UsageText: "maple edit [--profile ID]",
		Description: `Opens the interactive edit profile page. Press 's' to open the
settings modal, where notification and privacy settings can be changed.

When --profile is omitted, profile_id from the config file is used. If
neither is set and exactly one profile exists, that profile is opened.`,
		Flags:  cmd.Flags(),
		Action: cmd.Run,
	})

	return app
}

// Run executes the TUI. Exported for use as default command.
func (cmd *TuiCmd) Run(ctx context.Context, _ *cli.Command) error {
	if !cmd.isTerminal() {
		return errors.New("the edit profile page requires an interactive terminal")
	}

	id, err := cmd.app.Profiles.Resolve(ctx, cmd.profileID, cmd.app.Config.ProfileID)
	if err != nil {
		if errors.Is(err, maple.ErrNoProfile) {
			return fmt.Errorf("%w: pass --profile or run 'maple profile create'", err)
		}
		return err
	}

	m := tui.New(tui.Options{
		Actions:     cmd.app.Profiles.Actions(id),
		Bus:         cmd.app.Bus,
		SaveTimeout: cmd.app.Config.Settings.SaveTimeout,
		Logger:      logging.Component("tui"),
	})

	p := tea.NewProgram(m, tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}

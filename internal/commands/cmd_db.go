package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/maple/internal/core/styles"
	"github.com/colonyops/maple/internal/data/db"
	"github.com/colonyops/maple/internal/maple"
)

type DBCmd struct {
	flags *Flags
	app   *maple.App
	steps int
}

// NewDBCmd creates the database maintenance command.
func NewDBCmd(flags *Flags, app *maple.App) *DBCmd {
	return &DBCmd{flags: flags, app: app}
}

// Register adds the db command to the application.
func (cmd *DBCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:   "db",
		Usage:  "Database maintenance commands",
		Hidden: true,
		Commands: []*cli.Command{
			{
				Name:        "rollback",
				Usage:       "Revert applied schema migrations",
				UsageText:   "maple db rollback [--steps N]",
				Description: "Reverts the most recent migrations. The next maple run re-applies them.",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:        "steps",
						Usage:       "number of migrations to revert",
						Value:       1,
						Destination: &cmd.steps,
					},
				},
				Action: cmd.runRollback,
			},
		},
	})
	return app
}

func (cmd *DBCmd) runRollback(ctx context.Context, c *cli.Command) error {
	if cmd.app.DB == nil {
		return fmt.Errorf("database not open")
	}

	if err := db.MigrateDown(ctx, cmd.app.DB.Conn(), cmd.steps); err != nil {
		return fmt.Errorf("rollback: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s reverted %d migration(s)\n",
		styles.TextSuccessStyle.Render("✔"), cmd.steps)
	return nil
}

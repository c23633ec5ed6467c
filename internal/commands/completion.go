package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/colonyops/maple/internal/maple"
)

// ProfileIDCompleter returns a ShellCompleteFunc that suggests profile ids
// as positional completions.
//
// When the user's last typed argument starts with "-", it falls back to the
// default flag completion behavior.
func ProfileIDCompleter(app *maple.App) cli.ShellCompleteFunc {
	return func(ctx context.Context, cmd *cli.Command) {
		if args := cmd.Args(); args.Present() {
			last := args.Slice()[args.Len()-1]
			if len(last) > 0 && last[0] == '-' {
				cli.DefaultCompleteWithFlags(ctx, cmd)
				return
			}
		}

		if app == nil || app.Profiles == nil {
			return
		}

		profiles, err := app.Profiles.List(ctx)
		if err != nil {
			return
		}

		w := cmd.Root().Writer
		for _, p := range profiles {
			_, _ = fmt.Fprintf(w, "%s:%s\n", p.ID, p.DisplayName)
		}
	}
}

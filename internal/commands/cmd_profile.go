package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"

	"github.com/colonyops/maple/internal/core/profile"
	"github.com/colonyops/maple/internal/core/styles"
	"github.com/colonyops/maple/internal/core/validate"
	"github.com/colonyops/maple/internal/maple"
	"github.com/colonyops/maple/pkg/iojson"
)

type ProfileCmd struct {
	flags *Flags
	app   *maple.App

	// create flags
	name    string
	private bool

	// output flags
	jsonOutput bool

	importer iojson.FileReader[[]profileInput]

	// runForm prompts for create options; replaced in tests.
	runForm func(name *string, private *bool) error
}

// profileInput is one entry of a `profile import` document.
type profileInput struct {
	Name    string `json:"name"`
	Private bool   `json:"private"`
}

// profileInfo is the JSON output format for profile commands.
type profileInfo struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Private   bool      `json:"private"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProfileInfo(p profile.Profile) profileInfo {
	return profileInfo{
		ID:        p.ID,
		Name:      p.DisplayName,
		Private:   p.Private.IsPrivate(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// NewProfileCmd creates a new profile command
func NewProfileCmd(flags *Flags, app *maple.App) *ProfileCmd {
	return &ProfileCmd{flags: flags, app: app, runForm: runCreateForm}
}

// Register adds the profile command to the application
func (cmd *ProfileCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "profile",
		Usage: "Manage profiles",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "Create a profile",
				UsageText: "maple profile create [--name NAME] [--private]",
				Description: `Creates a new profile with a generated id.

When --name is omitted, an interactive form prompts for input.`,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "name",
						Aliases:     []string{"n"},
						Usage:       "display name",
						Destination: &cmd.name,
					},
					&cli.BoolFlag{
						Name:        "private",
						Usage:       "hide the profile from public listings",
						Destination: &cmd.private,
					},
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "print the created profile as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runCreate,
			},
			{
				Name:      "ls",
				Usage:     "List profiles",
				UsageText: "maple profile ls [--json]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON lines",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runList,
			},
			{
				Name:          "show",
				Usage:         "Show a profile",
				UsageText:     "maple profile show [--json] [ID]",
				ShellComplete: ProfileIDCompleter(cmd.app),
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:        "json",
						Usage:       "output as JSON",
						Destination: &cmd.jsonOutput,
					},
				},
				Action: cmd.runShow,
			},
			{
				Name:      "privacy",
				Usage:     "Set whether a profile is private",
				UsageText: "maple profile privacy ID private|public",
				Description: `Sets the profile privacy flag without opening the TUI. This uses
the same update as the Continue button of the settings modal.`,
				ShellComplete: ProfileIDCompleter(cmd.app),
				Action:        cmd.runPrivacy,
			},
			{
				Name:      "import",
				Usage:     "Create profiles from a JSON document",
				UsageText: "maple profile import [-f FILE]",
				Description: `Reads a JSON array of {"name": "...", "private": true|false}
objects from FILE or stdin and creates one profile per entry.`,
				Flags:  []cli.Flag{cmd.importer.Flag()},
				Action: cmd.runImport,
			},
		},
	})

	return app
}

func (cmd *ProfileCmd) runCreate(ctx context.Context, c *cli.Command) error {
	if cmd.name == "" {
		if err := cmd.runForm(&cmd.name, &cmd.private); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return fmt.Errorf("form: %w", err)
		}
	}

	p, err := cmd.app.Profiles.Create(ctx, maple.CreateOptions{Name: cmd.name, Private: cmd.private})
	if err != nil {
		return err
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteIndented(out, c.Root().ErrWriter, newProfileInfo(p))
	}

	_, _ = fmt.Fprintln(out, styles.TextSuccessStyle.Render("Profile created")+" "+p.ID)
	return nil
}

func runCreateForm(name *string, private *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Display name").
				Description("Shown next to your testimony").
				Validate(validate.DisplayName).
				Value(name),
			huh.NewConfirm().
				Title("Make profile private?").
				Description("Your name will still be associated with your testimony.").
				Value(private),
		),
	).WithTheme(huh.ThemeCharm()).Run()
}

func (cmd *ProfileCmd) runList(ctx context.Context, c *cli.Command) error {
	profiles, err := cmd.app.Profiles.List(ctx)
	if err != nil {
		return fmt.Errorf("list profiles: %w", err)
	}

	out := c.Root().Writer

	if cmd.jsonOutput {
		for _, p := range profiles {
			if err := iojson.WriteLine(out, newProfileInfo(p)); err != nil {
				return fmt.Errorf("encode profile: %w", err)
			}
		}
		return nil
	}

	if len(profiles) == 0 {
		_, _ = fmt.Fprintln(c.Root().ErrWriter, "No profiles found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ID\tNAME\tVISIBILITY\tCREATED")
	for _, p := range profiles {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.DisplayName, p.Visibility(), p.CreatedAt.Format(time.DateOnly))
	}
	return w.Flush()
}

func (cmd *ProfileCmd) runShow(ctx context.Context, c *cli.Command) error {
	id, err := cmd.app.Profiles.Resolve(ctx, c.Args().First(), cmd.app.Config.ProfileID)
	if err != nil {
		return err
	}

	p, err := cmd.app.Profiles.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	out := c.Root().Writer
	if cmd.jsonOutput {
		return iojson.WriteIndented(out, c.Root().ErrWriter, newProfileInfo(p))
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStyles(styles.GlamourStyle()),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return fmt.Errorf("create renderer: %w", err)
	}

	rendered, err := r.Render(profileMarkdown(p))
	if err != nil {
		return fmt.Errorf("render profile: %w", err)
	}

	_, err = fmt.Fprint(out, rendered)
	return err
}

func profileMarkdown(p profile.Profile) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.DisplayName)
	fmt.Fprintf(&b, "- **ID:** `%s`\n", p.ID)
	fmt.Fprintf(&b, "- **Profile:** %s\n", p.Visibility())
	fmt.Fprintf(&b, "- **Created:** %s\n", p.CreatedAt.Format(time.RFC1123))
	fmt.Fprintf(&b, "- **Updated:** %s\n", p.UpdatedAt.Format(time.RFC1123))
	if p.Private.IsPrivate() {
		b.WriteString("\n> Your name will still be associated with your testimony.\n")
	}
	return b.String()
}

func (cmd *ProfileCmd) runPrivacy(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() != 2 {
		return fmt.Errorf("expected 2 arguments (ID and private|public), got %d", c.Args().Len())
	}

	id := c.Args().Get(0)
	v, err := profile.ParsePrivacyWord(c.Args().Get(1))
	if err != nil {
		return err
	}

	if err := cmd.app.Profiles.SetPrivacy(ctx, id, v); err != nil {
		return err
	}

	p, err := cmd.app.Profiles.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}

	_, _ = fmt.Fprintf(c.Root().Writer, "%s %s is now %s\n",
		styles.TextSuccessStyle.Render("Settings saved"), p.ID, strings.ToLower(p.Visibility()))
	return nil
}

func (cmd *ProfileCmd) runImport(ctx context.Context, c *cli.Command) error {
	entries, err := cmd.importer.Read()
	if err != nil {
		return err
	}

	opts := make([]maple.CreateOptions, 0, len(entries))
	for _, e := range entries {
		opts = append(opts, maple.CreateOptions{Name: e.Name, Private: e.Private})
	}

	created, err := cmd.app.Profiles.CreateMany(ctx, opts)
	if err != nil {
		return fmt.Errorf("import aborted, no profiles were stored: %w", err)
	}

	out := c.Root().Writer
	for _, p := range created {
		_, _ = fmt.Fprintf(out, "%s\t%s\n", p.ID, p.DisplayName)
	}
	return nil
}

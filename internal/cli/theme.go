package cli

import (
	"os"

	"github.com/spf13/cobra"

	"focustab/internal/format"
	"focustab/internal/model"
)

func newThemeCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "theme",
		Short: "Manage the visual theme",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runThemeShow(app)
			}
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <name>",
		Short: "Set the theme (white|black|skyblue|sepia); locks it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			if err := eng.SetTheme(model.Theme(args[0])); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, themePayload(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "cycle",
		Short: "Advance to the next theme; locks it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			eng.CycleTheme()
			return format.WriteEnvelope(os.Stdout, themePayload(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "lock",
		Short: "Toggle the theme lock (locked themes survive background changes)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			eng.ToggleThemeLock()
			return format.WriteEnvelope(os.Stdout, themePayload(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	return cmd
}

func runThemeShow(app *App) error {
	eng, err := loadEngine(app)
	if err != nil {
		return err
	}
	return format.WriteEnvelope(os.Stdout, themePayload(eng.State()), app.Format, app.PrettyJSON)
}

func themePayload(st *model.AppState) map[string]any {
	return map[string]any{
		"theme":  st.CurrentTheme,
		"locked": st.ThemeLocked,
		"themes": model.Themes(),
	}
}

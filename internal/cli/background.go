package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"focustab/internal/classify"
	"focustab/internal/format"
	"focustab/internal/model"
	"focustab/internal/project"
)

func newBackgroundCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "bg",
		Aliases: []string{"background"},
		Short:   "Manage the background catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runBackgroundShow(app)
			}
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "select <index>",
		Short: "Select a background by catalog index (auto-themes unless locked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			sel, err := eng.SelectBackground(index)
			if err != nil {
				return err
			}
			if sel.Classify {
				// Synchronous in the CLI; the TUI runs this as a command.
				theme := sel.Background.Theme
				if !theme.Valid() {
					theme = classify.Fetch(cmd.Context(), sel.Background.URL)
				}
				eng.ApplyClassification(sel.Token, theme)
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <url>",
		Short: "Add a custom background (trusted source only)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			index, err := eng.AddCustomBackground(args[0])
			if err != nil {
				return err
			}
			catalog := eng.State().Catalog()
			theme := classify.Fetch(cmd.Context(), catalog[index].URL)
			eng.SetCustomBackgroundTheme(index, theme)
			return format.WriteEnvelope(os.Stdout, map[string]any{
				"index": index,
				"theme": theme,
			}, app.Format, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "delete <index>",
		Short: "Delete a custom background by catalog index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			if err := eng.DeleteCustomBackground(index); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "color <hex>",
		Short: "Use a flat color background (themes by brightness unless locked)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			theme := classify.Color(args[0])
			eng.ApplySwatchTheme(theme)
			return format.WriteEnvelope(os.Stdout, map[string]any{
				"color": args[0],
				"theme": theme,
			}, app.Format, app.PrettyJSON)
		},
	})

	return cmd
}

func runBackgroundShow(app *App) error {
	eng, err := loadEngine(app)
	if err != nil {
		return err
	}
	tree := project.Project(eng.State(), project.Transient{})
	tiles := make([]map[string]any, 0, len(tree.Grid.Tiles))
	for _, tile := range tree.Grid.Tiles {
		tiles = append(tiles, map[string]any{
			"index":     tile.Index,
			"thumb":     tile.ThumbURL,
			"active":    tile.Active,
			"deletable": tile.Deletable,
		})
	}
	return format.WriteEnvelope(os.Stdout, map[string]any{
		"catalog":  tiles,
		"swatches": model.DefaultSwatches(),
	}, app.Format, app.PrettyJSON)
}

package cli

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"focustab/internal/engine"
	"focustab/internal/model"
	"focustab/internal/store"
	"focustab/internal/tui"
)

type App struct {
	Dir        string
	Format     string
	PrettyJSON bool
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "focustab",
		Short:        "Focustab task lists + personalizable dashboard",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  focustab

  # Scriptable commands
  focustab add "Buy milk" --priority high
  focustab tasks --search milk
  focustab done 0
  focustab theme set sepia
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("FOCUSTAB_DIR", ""), "Path to store dir (default: ~/.focustab)")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("FOCUSTAB_FORMAT", "json"), "Output format (json|edn)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print output")

	cmd.AddCommand(newInitCmd(app))
	cmd.AddCommand(newAddCmd(app))
	cmd.AddCommand(newTasksCmd(app))
	cmd.AddCommand(newDoneCmd(app))
	cmd.AddCommand(newEditCmd(app))
	cmd.AddCommand(newRemoveCmd(app))
	cmd.AddCommand(newRestoreCmd(app))
	cmd.AddCommand(newFinishedCmd(app))
	cmd.AddCommand(newListsCmd(app))
	cmd.AddCommand(newBackgroundCmd(app))
	cmd.AddCommand(newThemeCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if strings.TrimSpace(os.Getenv("FOCUSTAB_DEBUG")) != "" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadEngine resolves the store dir, loads+migrates the persisted state
// through the fallback chain, and constructs the engine. The engine is only
// handed out after migration resolves; operations never run against an
// unmigrated document.
func loadEngine(app *App) (*engine.Engine, error) {
	dir, err := store.DefaultDir(app.Dir)
	if err != nil {
		return nil, err
	}
	app.Dir = dir
	log := newLogger()
	chain, err := store.Open(dir, log)
	if err != nil {
		return nil, err
	}
	st := chain.Load(context.Background())
	return engine.New(st, chain, log), nil
}

func runTUI(app *App) error {
	eng, err := loadEngine(app)
	if err != nil {
		return err
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		cfg = &store.GlobalConfig{}
	}
	return tui.Run(eng, cfg)
}

// stateSummary is the envelope payload for commands that report whole-state
// results.
func stateSummary(st *model.AppState) map[string]any {
	lists := make([]map[string]any, 0, len(st.ListOrder))
	for _, name := range st.ListOrder {
		lists = append(lists, map[string]any{
			"name":  name,
			"tasks": len(st.Lists[name]),
		})
	}
	return map[string]any{
		"lists":       lists,
		"activeList":  st.ActiveList,
		"finished":    len(st.Finished),
		"theme":       st.CurrentTheme,
		"themeLocked": st.ThemeLocked,
		"background":  st.BackgroundImageIndex,
	}
}

package cli

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"

	"focustab/internal/format"
	"focustab/internal/store"
)

func newDoctorCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check the store chain and report state counts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := store.DefaultDir(app.Dir)
			if err != nil {
				return err
			}

			checks := []map[string]any{}
			probe := func(name string, st store.DocumentStore) {
				_, err := st.Load(context.Background())
				status := "ok"
				switch {
				case errors.Is(err, store.ErrNotFound):
					status = "empty"
				case err != nil:
					status = "error: " + err.Error()
				}
				checks = append(checks, map[string]any{"store": name, "status": status})
			}
			s := store.Store{Dir: dir}
			probe("sqlite", &store.SQLiteStore{Path: s.SQLitePath()})
			probe("json", &store.JSONStore{Path: s.JSONPath()})

			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			st := eng.State()
			totalTasks := 0
			for _, tasks := range st.Lists {
				totalTasks += len(tasks)
			}
			return format.WriteEnvelope(os.Stdout, map[string]any{
				"dir":    dir,
				"stores": checks,
				"counts": map[string]int{
					"lists":             len(st.Lists),
					"tasks":             totalTasks,
					"finished":          len(st.Finished),
					"customBackgrounds": len(st.CustomBackgrounds),
				},
			}, app.Format, app.PrettyJSON)
		},
	}
}

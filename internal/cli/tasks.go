package cli

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"focustab/internal/format"
	"focustab/internal/model"
	"focustab/internal/project"
)

func newInitCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the store (idempotent) and print a state summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			// Loading migrates; selecting the active list persists the
			// canonical document so all stores agree from here on.
			if err := eng.SelectList(eng.State().ActiveList); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
}

func newAddCmd(app *App) *cobra.Command {
	var priority string
	var due string
	var list string

	cmd := &cobra.Command{
		Use:   "add <text>",
		Short: "Add a task to the active list",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			if list != "" {
				if err := eng.SelectList(list); err != nil {
					return err
				}
			}
			if err := eng.AddTask(args[0], model.Priority(priority), due); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&priority, "priority", string(model.PriorityMedium), "Priority (high|medium|low)")
	cmd.Flags().StringVar(&due, "due", "", "Due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&list, "list", "", "Target list (also makes it active)")
	return cmd
}

func newTasksCmd(app *App) *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Show the active list's tasks (optionally filtered)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			tree := project.Project(eng.State(), project.Transient{SearchQuery: search})
			rows := make([]map[string]any, 0, len(tree.Tasks))
			for _, row := range tree.Tasks {
				entry := map[string]any{
					"index":    row.Index,
					"text":     row.Text,
					"priority": row.Priority,
				}
				if row.Due != nil {
					entry["due"] = row.Due.Label
					entry["overdue"] = row.Due.Overdue
				}
				rows = append(rows, entry)
			}
			return format.WriteEnvelope(os.Stdout, map[string]any{
				"list":  tree.Title,
				"tasks": rows,
			}, app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Case-insensitive substring filter")
	return cmd
}

func newDoneCmd(app *App) *cobra.Command {
	var list string

	cmd := &cobra.Command{
		Use:   "done <index>",
		Short: "Complete the task at the given index (moves it to Finished)",
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
			target := list
			if target == "" {
				target = eng.State().ActiveList
			}
			if err := eng.CompleteTask(target, index); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&list, "list", "", "List to complete from (default: active list)")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var text string
	var priority string
	var due string
	var list string

	cmd := &cobra.Command{
		Use:   "edit <index>",
		Short: "Edit a task in place",
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
			target := list
			if target == "" {
				target = eng.State().ActiveList
			}
			if err := eng.EditTask(target, index, text, model.Priority(priority), due); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "New task text")
	cmd.Flags().StringVar(&priority, "priority", "", "New priority (high|medium|low; empty keeps current)")
	cmd.Flags().StringVar(&due, "due", "", "New due date (YYYY-MM-DD; empty clears)")
	cmd.Flags().StringVar(&list, "list", "", "List to edit in (default: active list)")
	return cmd
}

func newRemoveCmd(app *App) *cobra.Command {
	var list string

	cmd := &cobra.Command{
		Use:   "rm <index>",
		Short: "Delete the task at the given index",
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
			target := list
			if target == "" {
				target = eng.State().ActiveList
			}
			if err := eng.DeleteTask(target, index); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
	cmd.Flags().StringVar(&list, "list", "", "List to delete from (default: active list)")
	return cmd
}

func newRestoreCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "restore <index>",
		Short: "Restore a finished task to its origin list",
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
			if err := eng.RestoreTask(index); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
}

func newFinishedCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "finished",
		Short: "Show the archive, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			rows := make([]map[string]any, 0, len(eng.State().Finished))
			for i, entry := range eng.State().Finished {
				rows = append(rows, map[string]any{
					"index":        i,
					"text":         entry.Task.Text,
					"originalList": entry.OriginalList,
				})
			}
			return format.WriteEnvelope(os.Stdout, rows, app.Format, app.PrettyJSON)
		},
	}
}

package cli

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"focustab/internal/format"
)

func newListsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Manage task lists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runListsShow(app)
			}
			return cmd.Help()
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "create <name>",
		Short: "Create a list and make it active",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			if err := eng.CreateList(args[0]); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	var yes bool
	del := &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a list and all its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Deleting a list discards its tasks; require explicit consent
			// outside the engine, which deletes unconditionally.
			if !yes {
				return errors.New("refusing to delete without --yes (this removes all tasks in the list)")
			}
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			if err := eng.DeleteList(args[0]); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	}
	del.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	cmd.AddCommand(del)

	cmd.AddCommand(&cobra.Command{
		Use:   "select <name>",
		Short: "Make a list (or Finished) the active tab",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eng, err := loadEngine(app)
			if err != nil {
				return err
			}
			if err := eng.SelectList(args[0]); err != nil {
				return err
			}
			return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
		},
	})

	return cmd
}

func runListsShow(app *App) error {
	eng, err := loadEngine(app)
	if err != nil {
		return err
	}
	return format.WriteEnvelope(os.Stdout, stateSummary(eng.State()), app.Format, app.PrettyJSON)
}

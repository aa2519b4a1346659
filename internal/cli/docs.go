package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"focustab/internal/docs"
	"focustab/internal/format"
)

func newDocsCmd(app *App) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "docs [topic]",
		Short: "Show on-demand documentation",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return format.WriteEnvelope(os.Stdout, map[string]any{"topics": docs.Topics()}, app.Format, app.PrettyJSON)
			}

			topic := args[0]
			body, ok := docs.Get(topic)
			if !ok {
				return fmt.Errorf("unknown docs topic: %q (run `focustab docs` to list topics)", topic)
			}

			if raw {
				_, err := fmt.Fprint(cmd.OutOrStdout(), body)
				return err
			}

			return format.WriteEnvelope(os.Stdout, map[string]any{"topic": topic, "markdown": body}, app.Format, app.PrettyJSON)
		},
	}

	cmd.Flags().BoolVar(&raw, "raw", false, "Print raw markdown (no JSON envelope)")

	return cmd
}

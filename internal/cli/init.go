package cli

import (
	"fmt"

	"github.com/runoshun/daytrack/internal/app"
	"github.com/runoshun/daytrack/internal/usecase"
	"github.com/spf13/cobra"
)

// newInitCommand creates the init command.
func newInitCommand(c *app.Container) *cobra.Command {
	var writeConfig bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the task store",
		Long: `Initialize daytrack.

This command creates the data directory with an empty task store
(tasks.json). With --config, the global config template is written
as well unless it already exists.

Running init again is safe; an existing store is left untouched.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uc := c.InitStoreUseCase()
			out, err := uc.Execute(cmd.Context(), usecase.InitStoreInput{
				WriteConfig: writeConfig,
			})
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if out.StoreCreated {
				_, _ = fmt.Fprintf(w, "Initialized daytrack in %s\n", c.Config.DataDir)
			} else {
				_, _ = fmt.Fprintln(w, "daytrack already initialized")
			}
			if out.ConfigCreated {
				_, _ = fmt.Fprintf(w, "Created config at %s\n", out.ConfigPath)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&writeConfig, "config", false, "Also write the global config template")

	return cmd
}

package cli

import (
	"github.com/spf13/cobra"

	"github.com/Intoxinator/dbt-migrate-generic-tests/pkg/lib/operation/project/status"
)

const statusShortDescription = `Show the project migration progress`
const statusLongDescription = `Command "status"

Print the project overview: resource directories, number of examined
files and how many test declarations still need the migration.
`

func statusCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: statusShortDescription,
		Long:  statusLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return status.Run(cmd.Context(), status.Options{
				ModelsDir: root.options.ModelsDir,
			}, root)
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().String("models-dir", "", "search this directory instead of the dirs from dbt_project.yml")
	return cmd
}

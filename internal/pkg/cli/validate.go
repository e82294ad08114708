package cli

import (
	"github.com/spf13/cobra"

	"github.com/Intoxinator/dbt-migrate-generic-tests/pkg/lib/operation/project/validate"
)

const validateShortDescription = `Check the project resource files`
const validateLongDescription = `Command "validate"

Check that every resource YAML file parses and that every test
declaration has a shape the migration can handle.

Nothing is modified, a non-zero exit code signals found issues.
`

func validateCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: validateShortDescription,
		Long:  validateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return validate.Run(cmd.Context(), validate.Options{
				ModelsDir: root.options.ModelsDir,
			}, root)
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().String("models-dir", "", "search this directory instead of the dirs from dbt_project.yml")
	return cmd
}

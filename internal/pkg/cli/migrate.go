package cli

import (
	"github.com/spf13/cobra"

	"github.com/Intoxinator/dbt-migrate-generic-tests/pkg/lib/operation/project/migrate"
)

const migrateShortDescription = `Nest test arguments under the "arguments" key`
const migrateLongDescription = `Command "migrate"

Rewrite generic-test declarations in the project resource YAML files,
the test arguments are nested under the "arguments" key.

Files are searched in the directories listed in "dbt_project.yml",
or in the directory set by the "--models-dir" flag.

The plan is printed and must be confirmed before any file is written,
use "--dry-run" to only print the plan, "--yes" to skip the confirmation.
`

func migrateCommand(root *rootCommand) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: migrateShortDescription,
		Long:  migrateLongDescription,
		RunE: func(cmd *cobra.Command, args []string) error {
			return migrate.Run(cmd.Context(), migrate.Options{
				ModelsDir: root.options.ModelsDir,
				DryRun:    root.options.DryRun,
				AssumeYes: root.options.AssumeYes,
			}, root)
		},
	}

	cmd.Flags().SortFlags = true
	cmd.Flags().String("models-dir", "", "search this directory instead of the dirs from dbt_project.yml")
	cmd.Flags().Bool("dry-run", false, "print the plan, write nothing")
	cmd.Flags().BoolP("yes", "y", false, "apply the plan without confirmation")
	return cmd
}

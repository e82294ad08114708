package status

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/trace"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/plan/migrate"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/project"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/schema"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/telemetry"
)

type Options struct {
	ModelsDir string // overrides the resource directories from dbt_project.yml
}

type dependencies interface {
	Logger() log.Logger
	Tracer() trace.Tracer
	Fs() filesystem.Fs
}

// Run prints the project overview and how much of it is already migrated.
func Run(ctx context.Context, o Options, d dependencies) (err error) {
	ctx, span := d.Tracer().Start(ctx, "dbt.migrate.operation.project.status")
	defer telemetry.EndSpan(span, &err)
	logger := d.Logger()

	// Load project
	prj, err := project.Load(logger, d.Fs())
	if err != nil {
		return err
	}

	// Find and parse resource files
	files, err := prj.ResourceFiles(o.ModelsDir)
	if err != nil {
		return err
	}
	docs, loadErr := prj.LoadDocuments(ctx, files)
	if loadErr != nil {
		logger.Warnf("Skipped invalid resource files:\n%s", loadErr)
	}

	// Evaluate without modifying anything
	plan := migrate.NewPlan(schema.NewRestructurer(schema.TestPropertyKeys()), docs)
	summary := plan.Summary()
	pending := summary.TestsFound - summary.TestsSkipped - summary.NeedsReview

	w := logger.InfoWriter()
	w.Writef("Project:        %s", prj.Name())
	w.Writef("Config version: %d", prj.ConfigVersion())
	w.Writef("Resource dirs:  %s", strings.Join(prj.ResourceDirs(), ", "))
	w.Writef("Files examined: %d", summary.FilesExamined)
	w.Writef("Tests found:    %d", summary.TestsFound)
	w.Writef("Tests pending:  %d", pending)
	w.Writef("Needs review:   %d", summary.NeedsReview)
	return loadErr
}

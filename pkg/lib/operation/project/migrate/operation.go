package migrate

import (
	"context"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/trace"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/json"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/interaction"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/plan/migrate"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/project"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/schema"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/telemetry"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

type Options struct {
	ModelsDir string // overrides the resource directories from dbt_project.yml
	DryRun    bool
	AssumeYes bool
}

type dependencies interface {
	Logger() log.Logger
	Tracer() trace.Tracer
	Clock() clockwork.Clock
	Fs() filesystem.Fs
	Prompt() *interaction.Prompt
}

func Run(ctx context.Context, o Options, d dependencies) (err error) {
	ctx, span := d.Tracer().Start(ctx, "dbt.migrate.operation.project.migrate")
	defer telemetry.EndSpan(span, &err)
	logger := d.Logger()
	start := d.Clock().Now()

	// Load project
	prj, err := project.Load(logger, d.Fs())
	if err != nil {
		return err
	}

	// Find resource files
	files, err := prj.ResourceFiles(o.ModelsDir)
	if err != nil {
		return err
	}

	// Parse documents, invalid files are skipped
	docs, loadErr := prj.LoadDocuments(ctx, files)
	if loadErr != nil {
		logger.Warnf("Skipped invalid resource files:\n%s", loadErr)
	}

	// Get plan
	plan := migrate.NewPlan(schema.NewRestructurer(schema.TestPropertyKeys()), docs)

	// Log plan
	plan.Log(logger.InfoWriter())
	plan.LogReviews(logger)

	if plan.Empty() {
		logger.Info("Nothing to do.")
		return loadErr
	}

	// Dry run?
	if o.DryRun {
		logger.Info("Dry run, nothing changed.")
		return loadErr
	}

	// Confirmation, a non-interactive terminal never applies the plan by itself
	if !o.AssumeYes {
		if !d.Prompt().IsInteractive() {
			return errors.New(`confirmation is required, use the "--yes" flag in a non-interactive terminal`)
		}
		if !d.Prompt().Confirm(&interaction.Confirm{Label: "Apply the plan?", Default: true}) {
			logger.Info("Aborted.")
			return loadErr
		}
	}

	// Only one run at a time may write to the project
	unlock, err := prj.Lock()
	if err != nil {
		return err
	}
	defer unlock()

	// Invoke
	summary, _, err := plan.Invoke(logger, d.Fs())
	if err != nil {
		return err
	}

	logger.Debugf("Summary: %s", json.MustEncodeString(summary, false))
	logger.Infof(
		"Migrated %d of %d tests in %d files | %s",
		summary.TestsMigrated, summary.TestsFound, summary.FilesChanged, d.Clock().Since(start),
	)
	return loadErr
}

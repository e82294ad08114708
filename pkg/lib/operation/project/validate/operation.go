package validate

import (
	"context"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"go.opentelemetry.io/otel/trace"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/yaml"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/project"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/schema"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/telemetry"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

type Options struct {
	ModelsDir string // overrides the resource directories from dbt_project.yml
}

type dependencies interface {
	Logger() log.Logger
	Tracer() trace.Tracer
	Fs() filesystem.Fs
}

// Run checks that every resource file parses and that every test declaration
// has a shape the migration can handle. It modifies nothing.
func Run(ctx context.Context, o Options, d dependencies) (err error) {
	ctx, span := d.Tracer().Start(ctx, "dbt.migrate.operation.project.validate")
	defer telemetry.EndSpan(span, &err)
	logger := d.Logger()

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

	issues := errors.NewMultiError()

	// Check the project configuration
	if err := prj.Validate(ctx); err != nil {
		issues.Append(err)
	}

	// Parse documents, here an invalid file is an issue, not a skip
	docs, loadErr := prj.LoadDocuments(ctx, files)
	if loadErr != nil {
		issues.Append(loadErr)
	}

	// Check test declarations
	restructurer := schema.NewRestructurer(schema.TestPropertyKeys())
	testsFound := 0
	for _, doc := range docs {
		for _, node := range doc.Nodes() {
			schema.VisitTests(node, schema.Visitor{
				OnTest: func(decl *schema.Declaration) {
					testsFound++
					switch restructurer.Evaluate(decl) {
					case schema.OutcomeMixed:
						issues.Append(errors.Errorf(
							`test "%s" in "%s" at %s mixes "arguments" with top-level argument keys`,
							decl.TestName(), doc.Path(), decl.Path.String(),
						))
					case schema.OutcomeAnomaly:
						issues.Append(errors.Errorf(
							`test declaration in "%s" at %s has an unexpected shape`,
							doc.Path(), decl.Path.String(),
						))
					}
				},
				OnAnomaly: func(path orderedmap.Path, node *yaml.Node, reason string) {
					issues.Append(errors.Errorf(`in "%s" at %s: %s`, doc.Path(), path.String(), reason))
				},
			})
		}
	}

	if issues.Len() > 0 {
		return errors.PrefixError(issues, "validation failed")
	}

	logger.Infof("Validated %d files, %d tests, no issues found.", len(docs), testsFound)
	return nil
}

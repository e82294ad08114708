package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/telemetry"
)

type testDeps struct {
	logger log.DebugLogger
	fs     filesystem.Fs
}

func (d *testDeps) Logger() log.Logger   { return d.logger }
func (d *testDeps) Tracer() trace.Tracer { return telemetry.NewNopTracer() }
func (d *testDeps) Fs() filesystem.Fs    { return d.fs }

func newTestDeps(t *testing.T, files map[string]string) *testDeps {
	t.Helper()
	logger := log.NewDebugLogger()
	fs := aferofs.NewMemoryFs(logger, ".")
	for path, content := range files {
		require.NoError(t, fs.WriteFile(filesystem.NewRawFile(path, content)))
	}
	logger.Truncate()
	return &testDeps{logger: logger, fs: fs}
}

func TestRunOk(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml": "name: my_project\nconfig-version: 2\n",
		"models/schema.yml": `models:
  - name: orders
    tests:
      - unique
      - accepted_values:
          values:
            - a
`,
	})

	require.NoError(t, Run(context.Background(), Options{}, d))
	assert.Contains(t, d.logger.InfoMessages(), "Validated 1 files, 2 tests, no issues found.")
}

func TestRunInvalidProjectConfig(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml": "config-version: 2\n",
	})

	err := Run(context.Background(), Options{}, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is a required field")
}

func TestRunInvalidFile(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml":   "name: my_project\nconfig-version: 2\n",
		"models/broken.yml": "models: [broken\n",
	})

	err := Run(context.Background(), Options{}, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, err.Error(), `resource file "models/broken.yml" is invalid`)
}

func TestRunMixedDeclaration(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml": "name: my_project\nconfig-version: 2\n",
		"models/schema.yml": `models:
  - name: orders
    tests:
      - accepted_values:
          arguments:
            values:
              - a
          quote: true
`,
	})

	err := Run(context.Background(), Options{}, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `test "accepted_values" in "models/schema.yml" at models[0].tests[0] mixes "arguments" with top-level argument keys`)
}

func TestRunAnomaly(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml": "name: my_project\nconfig-version: 2\n",
		"models/schema.yml": `models:
  - name: orders
    tests: not-a-sequence
`,
	})

	err := Run(context.Background(), Options{}, d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `in "models/schema.yml" at models[0].tests: expected a sequence of tests`)
}

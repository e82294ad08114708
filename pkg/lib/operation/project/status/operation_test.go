package status

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

func TestRun(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml": "name: my_project\nconfig-version: 2\nmodel-paths:\n  - models\nseed-paths:\n  - seeds\n",
		"models/schema.yml": `models:
  - name: orders
    tests:
      - unique
      - accepted_values:
          values:
            - a
`,
		"seeds/schema.yml": `seeds:
  - name: countries
    tests:
      - accepted_values:
          arguments:
            values:
              - a
          quote: true
`,
	})

	require.NoError(t, Run(context.Background(), Options{}, d))

	out := d.logger.InfoMessages()
	assert.Contains(t, out, "Project:        my_project")
	assert.Contains(t, out, "Config version: 2")
	assert.Contains(t, out, "Resource dirs:  models, seeds, snapshots")
	assert.Contains(t, out, "Files examined: 2")
	assert.Contains(t, out, "Tests found:    3")
	assert.Contains(t, out, "Tests pending:  1")
	assert.Contains(t, out, "Needs review:   1")
}

func TestRunEmptyProject(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, map[string]string{
		"dbt_project.yml": "name: my_project\nconfig-version: 2\n",
	})

	require.NoError(t, Run(context.Background(), Options{}, d))
	out := d.logger.InfoMessages()
	assert.Contains(t, out, "Files examined: 0")
	assert.Contains(t, out, "Tests found:    0")
}

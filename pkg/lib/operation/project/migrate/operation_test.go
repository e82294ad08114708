package migrate

import (
	"context"
	"os"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/interaction"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/telemetry"
)

type testDeps struct {
	logger log.DebugLogger
	fs     filesystem.Fs
	clock  *clockwork.FakeClock
	prompt *interaction.Prompt
}

func (d *testDeps) Logger() log.Logger          { return d.logger }
func (d *testDeps) Tracer() trace.Tracer        { return telemetry.NewNopTracer() }
func (d *testDeps) Clock() clockwork.Clock      { return d.clock }
func (d *testDeps) Fs() filesystem.Fs           { return d.fs }
func (d *testDeps) Prompt() *interaction.Prompt { return d.prompt }

func newTestDeps(t *testing.T, files map[string]string) *testDeps {
	t.Helper()
	logger := log.NewDebugLogger()
	fs := aferofs.NewMemoryFs(logger, ".")
	for path, content := range files {
		require.NoError(t, fs.WriteFile(filesystem.NewRawFile(path, content)))
	}
	logger.Truncate()
	return &testDeps{
		logger: logger,
		fs:     fs,
		clock:  clockwork.NewFakeClock(),
		prompt: interaction.NewPrompt(os.Stdin, os.Stdout, os.Stderr),
	}
}

func testFiles() map[string]string {
	return map[string]string{
		"dbt_project.yml": "name: my_project\nconfig-version: 2\nmodel-paths:\n  - models\n",
		"models/schema.yml": `models:
  - name: orders
    tests:
      - unique
      - accepted_values:
          values:
            - a
`,
	}
}

func TestRunDryRun(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, testFiles())

	require.NoError(t, Run(context.Background(), Options{DryRun: true}, d))
	out := d.logger.InfoMessages()
	assert.Contains(t, out, `Plan for "migrate" operation:`)
	assert.Contains(t, out, "~ models/schema.yml models[0].tests[1] accepted_values")
	assert.Contains(t, out, "Dry run, nothing changed.")

	// Nothing is written
	file, err := d.fs.ReadFile(filesystem.NewFileDef("models/schema.yml"))
	require.NoError(t, err)
	assert.Equal(t, testFiles()["models/schema.yml"], file.Content)
}

func TestRunNonInteractiveRequiresYes(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, testFiles())

	err := Run(context.Background(), Options{}, d)
	require.Error(t, err)
	assert.Equal(t, `confirmation is required, use the "--yes" flag in a non-interactive terminal`, err.Error())
}

func TestRunApply(t *testing.T) {
	t.Parallel()
	d := newTestDeps(t, testFiles())

	require.NoError(t, Run(context.Background(), Options{AssumeYes: true}, d))

	file, err := d.fs.ReadFile(filesystem.NewFileDef("models/schema.yml"))
	require.NoError(t, err)
	assert.Equal(t, `models:
  - name: orders
    tests:
      - unique
      - accepted_values:
          arguments:
            values:
              - a
`, file.Content)
	out := d.logger.AllMessages()
	assert.Contains(t, out, `Updated "models/schema.yml"`)
	assert.Contains(t, out, "Migrated 1 of 2 tests in 1 files")
	assert.Contains(t, out, `"TestsMigrated":1`)

	// Second run has nothing to do
	d.logger.Truncate()
	require.NoError(t, Run(context.Background(), Options{AssumeYes: true}, d))
	assert.Contains(t, d.logger.InfoMessages(), "Nothing to do.")
}

func TestRunSkipsInvalidFiles(t *testing.T) {
	t.Parallel()
	files := testFiles()
	files["models/broken.yml"] = "models: [broken\n"
	d := newTestDeps(t, files)

	err := Run(context.Background(), Options{AssumeYes: true}, d)
	require.Error(t, err)
	assert.Contains(t, d.logger.WarnMessages(), "Skipped invalid resource files:")

	// The valid file is still migrated
	file, readErr := d.fs.ReadFile(filesystem.NewFileDef("models/schema.yml"))
	require.NoError(t, readErr)
	assert.Contains(t, file.Content, "arguments:")
}

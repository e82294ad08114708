package cli

import (
	"io"
	"os"
	"path"
	"regexp"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/env"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/interaction"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/options"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/telemetry"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/version"
)

const description = `
dbt-migrate

Rewrite generic-test declarations in dbt resource YAML files,
nesting the test arguments under the "arguments" key.

Comments, key order and value styles are preserved,
the rewrite produces a minimal diff.

Start by running the "migrate" command in your dbt project directory.
`

const usageTemplate = `Usage:{{if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]{{else if .Runnable}}
  {{.UseLine}}{{end}}{{if gt (len .Aliases) 0}}

Aliases:`

type rootCommand struct {
	cmd         *cobra.Command
	fsFactory   filesystem.Factory
	fs          filesystem.Fs       // filesystem abstraction, rooted in the project dir
	envs        *env.Map            // ENVs from OS
	options     *options.Options    // parsed flags and ENV variables
	prompt      *interaction.Prompt // user interaction
	clock       clockwork.Clock
	start       time.Time // cmd start time
	initialized bool      // init method was called
	logFile     *log.File
	logger      log.Logger // log to console and logFile
}

// NewRootCommand creates parent of all sub-commands.
func NewRootCommand(stdin io.Reader, stdout io.Writer, stderr io.Writer, prompt *interaction.Prompt, envs *env.Map, fsFactory filesystem.Factory) *rootCommand {
	clock := clockwork.NewRealClock()
	root := &rootCommand{
		fsFactory: fsFactory,
		envs:      envs,
		options:   options.New(),
		prompt:    prompt,
		clock:     clock,
		start:     clock.Now(),
	}

	// Command definition
	root.cmd = &cobra.Command{
		Use:          path.Base(os.Args[0]), // name of the binary
		Version:      version.Version(),
		Short:        description,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Print help if no command specified
			return root.cmd.Help()
		},
	}

	// Setup in/out
	root.cmd.SetIn(stdin)
	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	// Setup templates
	root.cmd.SetVersionTemplate("{{.Version}}")
	root.cmd.SetUsageTemplate(
		regexp.MustCompile(`Usage:(.|\n)*Aliases:`).ReplaceAllString(root.cmd.UsageTemplate(), usageTemplate),
	)

	// Persistent flags for all sub-commands
	root.options.BindPersistentFlags(root.cmd.PersistentFlags())

	// Root command flags
	root.cmd.Flags().SortFlags = true
	root.cmd.Flags().BoolP("version", "V", false, "print version")

	// Init when flags are parsed
	root.cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return root.init(cmd)
	}

	// Sub-commands
	root.cmd.AddCommand(
		migrateCommand(root),
		statusCommand(root),
		validateCommand(root),
	)

	return root
}

// Execute command or sub-command.
func (root *rootCommand) Execute() (exitCode int) {
	defer func() {
		root.tearDown(exitCode != 0)
	}()

	if err := root.cmd.Execute(); err != nil {
		// Init, it can be uninitialized, if an error occurred before the PersistentPreRunE call
		_ = root.init(root.cmd)
		// Error is already logged by cobra to the stderr writer
		return 1
	}
	return 0
}

// Dependencies for the operations.
func (root *rootCommand) Logger() log.Logger          { return root.logger }
func (root *rootCommand) Tracer() trace.Tracer        { return telemetry.NewNopTracer() }
func (root *rootCommand) Clock() clockwork.Clock      { return root.clock }
func (root *rootCommand) Fs() filesystem.Fs           { return root.fs }
func (root *rootCommand) Prompt() *interaction.Prompt { return root.prompt }

// init sets the filesystem, logger and options after flags are parsed.
func (root *rootCommand) init(cmd *cobra.Command) (err error) {
	if root.initialized {
		return
	}

	// Run only once
	root.initialized = true

	// Logger must always be set up, even if the setup below fails
	defer func() {
		if root.logger == nil {
			root.setupLogger()
		}
	}()

	// Temporary logger, the real one needs parsed options
	tmpLogger := log.NewNopLogger()

	// Create filesystem abstraction
	workingDir, _ := cmd.Flags().GetString("working-dir")
	if root.fs, err = root.fsFactory(tmpLogger, workingDir); err != nil {
		return err
	}

	// Load values from flags and ENVs
	if err = root.options.Load(tmpLogger, root.envs, root.fs, cmd.Flags()); err != nil {
		return err
	}

	root.setupLogger()
	root.logDebugInfo()
	root.fs.SetLogger(root.logger)
	return nil
}

// setupLogger according to the options.
func (root *rootCommand) setupLogger() {
	logFile, logFileErr := log.NewLogFile(root.options.LogFilePath)
	root.logFile = logFile
	root.logger = log.NewCliLogger(root.cmd.OutOrStdout(), root.cmd.ErrOrStderr(), logFile, root.options.Verbose)
	root.cmd.SetOut(root.logger.InfoWriter())
	root.cmd.SetErr(root.logger.WarnWriter())

	// Warn if the user specified a log file and it cannot be opened
	if logFileErr != nil && root.options.LogFilePath != "" {
		root.logger.Warnf("Cannot open log file: %s", logFileErr)
	}
}

func (root *rootCommand) logDebugInfo() {
	root.logger.DebugWriter().WriteString(root.cmd.Version)
	root.logger.Debugf("Running command %v", os.Args)
	root.logger.Debug(root.options.Dump())
}

// tearDown makes clean-up after command execution.
func (root *rootCommand) tearDown(errorOccurred bool) {
	if root.logger != nil {
		root.logger.Debugf("Execution time: %s", root.clock.Since(root.start))
	}
	root.logFile.TearDown(errorOccurred)
}

// Package options resolves the tool configuration from flags and ENV variables.
//
// Priority: flag set on the command line, then "DBT_MIGRATE_*" ENV variable
// (OS environment and ".env" files), then the flag default.
package options

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/env"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// Options contains parsed flags and ENV variables.
type Options struct {
	Verbose     bool   `flag:"verbose"`    // print details to console
	LogFilePath string `flag:"log-file"`   // path to the log file
	ModelsDir   string `flag:"models-dir"` // overrides resource directories from dbt_project.yml
	DryRun      bool   `flag:"dry-run"`    // print the plan, write nothing
	AssumeYes   bool   `flag:"yes"`        // do not ask for confirmation
}

func New() *Options {
	return &Options{}
}

// BindPersistentFlags registers flags common to all commands.
func (o *Options) BindPersistentFlags(flags *pflag.FlagSet) {
	flags.SortFlags = true
	flags.BoolP("help", "h", false, "print help for command")
	flags.StringP("log-file", "l", "", "path to a log file for details")
	flags.StringP("working-dir", "d", "", "use other working directory")
	flags.BoolP("verbose", "v", false, "print details")
}

// Load resolves the option values.
// ".env" files from the project root and the working dir are merged into the ENVs,
// keys already defined by the OS take precedence.
func (o *Options) Load(logger log.Logger, osEnvs *env.Map, fs filesystem.Fs, flags *pflag.FlagSet) error {
	dirs := []string{"."}
	if wd := fs.WorkingDir(); wd != "" && wd != "." {
		dirs = append([]string{wd}, dirs...)
	}
	envs := env.LoadDotEnv(logger, osEnvs, fs, dirs)

	parser := viper.New()
	if err := parser.BindPFlags(flags); err != nil {
		return err
	}

	// Bind ENV variables, applied when the flag is not set on the command line
	naming := env.NewNamingConvention()
	flags.VisitAll(func(flag *pflag.Flag) {
		if value, found := envs.Lookup(naming.Replace(flag.Name)); found {
			parser.SetDefault(flag.Name, value)
		}
	})

	// For each Options struct field with the "flag" tag, load the value from the parser
	reflection := reflect.Indirect(reflect.ValueOf(o))
	types := reflect.TypeOf(*o)
	for i := 0; i < reflection.NumField(); i++ {
		flag := types.Field(i).Tag.Get("flag")
		if flag == "" {
			continue
		}
		field := reflection.Field(i)
		switch field.Kind() {
		case reflect.Bool:
			field.SetBool(parser.GetBool(flag))
		case reflect.String:
			field.SetString(parser.GetString(flag))
		default:
			panic(errors.Errorf(`unexpected type "%s" of the option field "%s"`, field.Kind(), types.Field(i).Name))
		}
	}

	o.normalize()
	return nil
}

func (o *Options) normalize() {
	o.ModelsDir = strings.TrimRight(strings.TrimSpace(o.ModelsDir), "/")
}

// Validate returns an error message listing the missing required options, defined by field name.
func (o *Options) Validate(required []string) string {
	var messages []string
	naming := env.NewNamingConvention()
	reflection := reflect.Indirect(reflect.ValueOf(o))
	types := reflect.TypeOf(*o)

	for _, fieldName := range required {
		fieldType, exists := types.FieldByName(fieldName)
		fieldNameHumanReadable := strcase.ToDelimited(fieldName, ' ')
		if !exists {
			panic(errors.Errorf(`field "%s" doesn't exist in Options struct`, fieldName))
		}

		if reflection.FieldByName(fieldName).Len() > 0 {
			continue
		}

		if flag := fieldType.Tag.Get("flag"); flag != "" {
			messages = append(messages, fmt.Sprintf(
				`- Missing %s. Please use "--%s" flag or ENV variable "%s".`,
				fieldNameHumanReadable, flag, naming.Replace(flag),
			))
		} else {
			messages = append(messages, fmt.Sprintf(`- Missing %s.`, fieldNameHumanReadable))
		}
	}

	return strings.Join(messages, "\n")
}

// Dump Options for debugging.
func (o *Options) Dump() string {
	return fmt.Sprintf("Parsed options: %#v", o)
}

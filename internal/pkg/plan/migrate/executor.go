package migrate

import (
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/schema"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

type executor struct {
	*Plan
	logger  log.Logger
	fs      filesystem.Fs
	records []schema.Record
	errors  errors.MultiError
}

func newExecutor(logger log.Logger, fs filesystem.Fs, plan *Plan) *executor {
	return &executor{
		Plan:   plan,
		logger: logger,
		fs:     fs,
		errors: errors.NewMultiError(),
	}
}

// invoke rewrites the planned declarations and saves the changed documents.
// A failed save isolates to the file, the rest of the run continues.
func (e *executor) invoke() (Summary, []schema.Record, error) {
	summary := e.summary

	for _, file := range e.files {
		changed := false
		for _, a := range file.actions {
			record := e.restructurer.Restructure(a.decl)
			record.FilePath = file.doc.Path()
			e.records = append(e.records, record)
			if record.Changed {
				changed = true
				summary.TestsMigrated++
				e.logger.Debugf(`Migrated test "%s" in "%s" at %s`, record.TestName, record.FilePath, record.Path.String())
			} else {
				summary.TestsSkipped++
			}
		}

		if !changed {
			continue
		}
		if err := file.doc.Save(e.fs); err != nil {
			e.errors.AppendWithPrefixf(err, `cannot save "%s"`, file.doc.Path())
			continue
		}
		summary.FilesChanged++
		e.logger.Infof(`Updated "%s"`, file.doc.Path())
	}

	return summary, e.records, e.errors.ErrorOrNil()
}

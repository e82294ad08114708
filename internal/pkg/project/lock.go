// nolint: forbidigo
package project

import (
	"path/filepath"

	"github.com/gofrs/flock"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// LockFile guards in-place rewrites against concurrent runs.
const LockFile = ".dbt-migrate.lock"

// Lock acquires the project lock. It is advisory and file based,
// so it works only on a local filesystem, other implementations no-op.
func (p *Project) Lock() (unlock func(), err error) {
	if p.fs.Name() != "local" {
		return func() {}, nil
	}

	fsLock := flock.New(filepath.Join(p.fs.BasePath(), LockFile))
	if locked, err := fsLock.TryLock(); err != nil {
		return nil, errors.Errorf(`cannot acquire project lock "%s": %w`, fsLock.Path(), err)
	} else if !locked {
		return nil, errors.Errorf(`cannot acquire project lock "%s": another run is in progress`, fsLock.Path())
	}

	return func() {
		if err := fsLock.Unlock(); err != nil {
			p.logger.Warnf(`Cannot release project lock "%s": %s`, fsLock.Path(), err)
		}
	}, nil
}

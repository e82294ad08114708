// nolint: forbidigo
package aferofs

import (
	"os"
	"path/filepath"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs/localfs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs/memoryfs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// NewLocalFsFindProjectRoot creates a local filesystem rooted at the project directory,
// the working dir or the nearest parent with the "dbt_project.yml" file.
func NewLocalFsFindProjectRoot(logger log.Logger, workingDir string) (fs filesystem.Fs, err error) {
	if workingDir == "" {
		workingDir, err = os.Getwd()
		if err != nil {
			return nil, errors.Errorf(`cannot get working dir from OS: %w`, err)
		}
	}

	workingDir, err = filepath.Abs(workingDir)
	if err != nil {
		return nil, err
	}

	projectDir, err := localfs.FindProjectRoot(logger, workingDir)
	if err != nil {
		return nil, err
	}

	workingDirRel, err := filepath.Rel(projectDir, workingDir)
	if err != nil {
		return nil, errors.Errorf(`cannot determine working dir relative path: %w`, err)
	}

	return New(logger, localfs.New(projectDir), workingDirRel), nil
}

func NewLocalFs(logger log.Logger, projectDir string, workingDirRel string) filesystem.Fs {
	return New(logger, localfs.New(projectDir), workingDirRel)
}

func NewMemoryFs(logger log.Logger, workingDir string) filesystem.Fs {
	return New(logger, memoryfs.New(), workingDir)
}

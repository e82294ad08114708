// nolint: forbidigo
package localfs

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// ProjectFile marks the dbt project root directory.
const ProjectFile = "dbt_project.yml"

type fs = afero.Fs

// LocalFs is abstraction of the local filesystem implemented by the "os" package.
// All paths are relative to the basePath.
type LocalFs struct {
	fs
	utils    *afero.Afero
	basePath string
}

func New(basePath string) *LocalFs {
	if !filepath.IsAbs(basePath) {
		panic(errors.Errorf(`base path "%s" must be absolute`, basePath))
	}

	fs := afero.NewBasePathFs(afero.NewOsFs(), basePath)
	return &LocalFs{
		fs:       fs,
		utils:    &afero.Afero{Fs: fs},
		basePath: basePath,
	}
}

func (l *LocalFs) Name() string {
	return `local`
}

func (l *LocalFs) BasePath() string {
	return l.basePath
}

func (l *LocalFs) Walk(root string, walkFn filepath.WalkFunc) error {
	return l.utils.Walk(root, walkFn)
}

// FindProjectRoot returns the working dir or the nearest parent that contains "dbt_project.yml".
// If no project file is found, the working dir itself is used, the original
// migration tool required only the models directory, not a whole project.
func FindProjectRoot(logger log.Logger, workingDir string) (string, error) {
	dir := workingDir
	for {
		path := filepath.Join(dir, ProjectFile)
		if stat, err := os.Stat(path); err == nil {
			if !stat.IsDir() {
				return dir, nil
			}
			logger.Warnf(`Expected file, but found dir at "%s"`, path)
		} else if !os.IsNotExist(err) {
			return "", errors.Errorf(`cannot check if path "%s" exists: %w`, path, err)
		}

		// Check parent directory
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	logger.Debugf(`Project file "%s" not found, using working dir "%s" as the project root.`, ProjectFile, workingDir)
	return workingDir, nil
}

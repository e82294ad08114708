// nolint: forbidigo
package aferofs

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// backend is the underlying filesystem implementation, see localfs and memoryfs.
type backend interface {
	afero.Fs
	Name() string
	BasePath() string
	Walk(root string, walkFn filepath.WalkFunc) error
}

// AferoFs implements the filesystem.Fs interface on top of an afero backend.
type AferoFs struct {
	backend
	utils      *afero.Afero
	logger     log.Logger
	workingDir string
}

func New(logger log.Logger, backend backend, workingDir string) *AferoFs {
	return &AferoFs{
		backend:    backend,
		utils:      &afero.Afero{Fs: backend},
		logger:     logger,
		workingDir: filepath.Clean(workingDir),
	}
}

func (f *AferoFs) Name() string {
	return f.backend.Name()
}

func (f *AferoFs) BasePath() string {
	return f.backend.BasePath()
}

// WorkingDir returns the working directory, relative to the base path.
func (f *AferoFs) WorkingDir() string {
	return f.workingDir
}

func (f *AferoFs) SetLogger(logger log.Logger) {
	f.logger = logger
}

func (f *AferoFs) Walk(root string, walkFn filepath.WalkFunc) error {
	return f.backend.Walk(root, walkFn)
}

func (f *AferoFs) Glob(pattern string) (matches []string, err error) {
	matches, err = doublestar.Glob(afero.NewIOFS(f.backend), pattern)
	if err != nil {
		return nil, errors.Errorf(`invalid pattern "%s": %w`, pattern, err)
	}
	sort.Strings(matches)
	return matches, nil
}

func (f *AferoFs) Stat(path string) (os.FileInfo, error) {
	return f.backend.Stat(path)
}

func (f *AferoFs) ReadDir(path string) ([]os.FileInfo, error) {
	return f.utils.ReadDir(path)
}

func (f *AferoFs) Mkdir(path string) error {
	if err := f.utils.MkdirAll(path, 0o755); err != nil {
		return errors.Errorf(`cannot create directory "%s": %w`, path, err)
	}
	return nil
}

func (f *AferoFs) Exists(path string) bool {
	if _, err := f.backend.Stat(path); err == nil {
		return true
	}
	return false
}

func (f *AferoFs) IsFile(path string) bool {
	if s, err := f.backend.Stat(path); err == nil {
		return !s.IsDir()
	}
	return false
}

func (f *AferoFs) IsDir(path string) bool {
	if s, err := f.backend.Stat(path); err == nil {
		return s.IsDir()
	}
	return false
}

func (f *AferoFs) Create(name string) (afero.File, error) {
	return f.backend.Create(name)
}

func (f *AferoFs) Open(name string) (afero.File, error) {
	return f.backend.Open(name)
}

func (f *AferoFs) Remove(path string) error {
	return f.backend.Remove(path)
}

func (f *AferoFs) ReadFile(def *filesystem.FileDef) (*filesystem.RawFile, error) {
	content, err := f.utils.ReadFile(def.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Errorf(`missing %s "%s"`, def.DescriptionWithFileSuffix(), def.Path())
		}
		return nil, errors.Errorf(`cannot read %s "%s": %w`, def.DescriptionWithFileSuffix(), def.Path(), err)
	}

	f.logger.Debugf(`Loaded "%s"`, def.Path())
	file := filesystem.NewRawFile(def.Path(), string(content))
	file.SetDescription(def.Description())
	return file, nil
}

func (f *AferoFs) WriteFile(file *filesystem.RawFile) error {
	if dir := filesystem.Dir(file.Path()); dir != "." {
		if err := f.Mkdir(dir); err != nil {
			return err
		}
	}

	if err := f.utils.WriteFile(file.Path(), []byte(file.Content), 0o644); err != nil {
		return errors.Errorf(`cannot write %s "%s": %w`, file.DescriptionWithFileSuffix(), file.Path(), err)
	}

	f.logger.Debugf(`Saved "%s"`, file.Path())
	return nil
}

// nolint: forbidigo
package filesystem

import (
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// Fs - filesystem abstraction.
// All paths are relative to the base path, which is the project root directory.
type Fs interface {
	// Name of the used implementation, for example local, memory, ...
	Name() string
	BasePath() string
	WorkingDir() string
	SetLogger(logger log.Logger)
	Walk(root string, walkFn filepath.WalkFunc) error
	// Glob returns file paths matching the pattern, doublestar "**" patterns are supported.
	Glob(pattern string) (matches []string, err error)
	Stat(path string) (os.FileInfo, error)
	ReadDir(path string) ([]os.FileInfo, error)
	Mkdir(path string) error
	Exists(path string) bool
	IsFile(path string) bool
	IsDir(path string) bool
	Create(name string) (afero.File, error)
	Open(name string) (afero.File, error)
	Remove(path string) error
	ReadFile(def *FileDef) (*RawFile, error)
	WriteFile(file *RawFile) error
}

// Factory creates a filesystem abstraction rooted at the project directory.
type Factory func(logger log.Logger, workingDir string) (fs Fs, err error)

// Rel returns relative path.
func Rel(base, path string) string {
	relPath, err := filepath.Rel(base, path)
	if err != nil {
		panic(errors.Errorf(`cannot get relative path, base="%s", path="%s"`, base, path))
	}
	return relPath
}

// Join joins any number of path elements into a single path.
func Join(elem ...string) string {
	return filepath.Join(elem...)
}

// Split splits path immediately following the final separator.
func Split(path string) (dir, file string) {
	return filepath.Split(path)
}

// Dir returns all but the last element of path, typically the path's directory.
func Dir(path string) string {
	return filepath.Dir(path)
}

// Base returns the last element of path.
func Base(path string) string {
	return filepath.Base(path)
}

// Match reports whether name matches the shell file name pattern.
func Match(pattern, name string) (matched bool, err error) {
	return filepath.Match(pattern, name)
}

// ToSlash returns the result of replacing each OS separator with a slash.
func ToSlash(path string) string {
	return filepath.ToSlash(path)
}

// FromSlash returns the result of replacing each slash with the OS separator.
func FromSlash(path string) string {
	return filepath.FromSlash(path)
}

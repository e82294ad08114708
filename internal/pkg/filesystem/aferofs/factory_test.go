package aferofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs/localfs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
)

func TestNewLocalFsFindProjectRoot(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()

	// Project dir with a nested working dir
	projectDir := t.TempDir()
	workingDir := filepath.Join(projectDir, "models", "staging")
	require.NoError(t, os.MkdirAll(workingDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(projectDir, localfs.ProjectFile), []byte("name: my_project\n"), 0o644))

	fs, err := NewLocalFsFindProjectRoot(logger, workingDir)
	require.NoError(t, err)
	assert.Equal(t, projectDir, fs.BasePath())
	assert.Equal(t, filepath.Join("models", "staging"), fs.WorkingDir())
	assert.True(t, fs.IsFile(localfs.ProjectFile))
}

func TestNewLocalFsFindProjectRootNotFound(t *testing.T) {
	t.Parallel()
	logger := log.NewDebugLogger()

	// No dbt_project.yml anywhere up the tree, the working dir is used as the root
	workingDir := t.TempDir()
	fs, err := NewLocalFsFindProjectRoot(logger, workingDir)
	require.NoError(t, err)
	assert.Equal(t, workingDir, fs.BasePath())
	assert.Equal(t, ".", fs.WorkingDir())
}

func TestNewMemoryFs(t *testing.T) {
	t.Parallel()
	fs := NewMemoryFs(log.NewNopLogger(), ".")
	require.NoError(t, fs.WriteFile(filesystem.NewRawFile("foo/bar.yml", "a: b\n")))
	assert.True(t, fs.IsFile("foo/bar.yml"))
	assert.Equal(t, "memory", fs.Name())
}

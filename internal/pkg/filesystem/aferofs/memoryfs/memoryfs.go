package memoryfs

import (
	"path/filepath"

	"github.com/spf13/afero"
)

type fs = afero.Fs

// MemoryFs is abstraction of the filesystem in the memory, used in tests.
type MemoryFs struct {
	fs
	utils *afero.Afero
}

func New() *MemoryFs {
	fs := afero.NewMemMapFs()
	return &MemoryFs{
		fs:    fs,
		utils: &afero.Afero{Fs: fs},
	}
}

func (m *MemoryFs) Name() string {
	return `memory`
}

func (m *MemoryFs) BasePath() string {
	return `/`
}

func (m *MemoryFs) Walk(root string, walkFn filepath.WalkFunc) error {
	return m.utils.Walk(root, walkFn)
}

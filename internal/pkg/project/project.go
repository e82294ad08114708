// Package project represents a dbt project directory:
// the "dbt_project.yml" configuration, resource file discovery
// and loading of the YAML resource documents.
package project

import (
	"context"

	"github.com/keboola/go-utils/pkg/deepcopy"
	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/spf13/cast"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/yaml"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem/aferofs/localfs"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/log"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/validator"
)

// ProjectFile is the dbt project configuration file name.
const ProjectFile = localfs.ProjectFile

// Project is a dbt project rooted at the filesystem base path.
type Project struct {
	fs     filesystem.Fs
	logger log.Logger
	// config is the content of "dbt_project.yml" as an ordered map,
	// arbitrary user content must survive inspection, so there is no fixed schema.
	config *orderedmap.OrderedMap
	found  bool
}

// Load creates the Project from the filesystem.
// A missing "dbt_project.yml" is not an error, defaults are used with a warning,
// the original migration tool required only the models directory.
func Load(logger log.Logger, fs filesystem.Fs) (*Project, error) {
	p := &Project{fs: fs, logger: logger, config: orderedmap.New()}

	if !fs.IsFile(ProjectFile) {
		logger.Warnf(`Project file "%s" not found, using default resource directories.`, ProjectFile)
		return p, nil
	}

	file, err := fs.ReadFile(filesystem.NewFileDef(ProjectFile).SetDescription("project"))
	if err != nil {
		return nil, err
	}
	if err := yaml.DecodeString(file.Content, p.config); err != nil {
		return nil, errors.PrefixErrorf(err, `project file "%s" is invalid`, ProjectFile)
	}

	p.found = true
	return p, nil
}

// Validate checks the required fields of the project configuration.
// A missing file is not checked, Load has already warned about it.
func (p *Project) Validate(ctx context.Context) error {
	if !p.found {
		return nil
	}

	cfg := struct {
		Name          string `yaml:"name" validate:"required"`
		ConfigVersion int    `yaml:"config-version" validate:"omitempty,min=2"`
	}{Name: p.Name(), ConfigVersion: p.ConfigVersion()}

	if err := validator.Validate(ctx, cfg); err != nil {
		return errors.PrefixErrorf(err, `project file "%s" is invalid`, ProjectFile)
	}
	return nil
}

func (p *Project) Fs() filesystem.Fs {
	return p.fs
}

// Found returns true if "dbt_project.yml" exists.
func (p *Project) Found() bool {
	return p.found
}

// Name returns the project name from the configuration.
func (p *Project) Name() string {
	return cast.ToString(p.config.GetOrNil("name"))
}

// ConfigVersion returns the "config-version" value, 0 if not set.
func (p *Project) ConfigVersion() int {
	return cast.ToInt(p.config.GetOrNil("config-version"))
}

// Config returns a deep copy of the configuration content.
func (p *Project) Config() *orderedmap.OrderedMap {
	return deepcopy.Copy(p.config).(*orderedmap.OrderedMap)
}

// ModelPaths returns the model directories, "source-paths" is the legacy key.
func (p *Project) ModelPaths() []string {
	return p.paths([]string{"model-paths", "source-paths"}, []string{"models"})
}

// SeedPaths returns the seed directories, "data-paths" is the legacy key.
func (p *Project) SeedPaths() []string {
	return p.paths([]string{"seed-paths", "data-paths"}, []string{"seeds"})
}

// SnapshotPaths returns the snapshot directories.
func (p *Project) SnapshotPaths() []string {
	return p.paths([]string{"snapshot-paths"}, []string{"snapshots"})
}

// ResourceDirs returns all directories that may contain resource YAML files,
// in a deterministic order, without duplicates.
func (p *Project) ResourceDirs() []string {
	var out []string
	seen := make(map[string]bool)
	for _, dirs := range [][]string{p.ModelPaths(), p.SeedPaths(), p.SnapshotPaths()} {
		for _, dir := range dirs {
			if !seen[dir] {
				seen[dir] = true
				out = append(out, dir)
			}
		}
	}
	return out
}

func (p *Project) paths(keys []string, defaults []string) []string {
	for _, key := range keys {
		value, found := p.config.Get(key)
		if !found {
			continue
		}
		slice, ok := value.([]any)
		if !ok || len(slice) == 0 {
			p.logger.Warnf(`Project file "%s": key "%s" is not a list of directories.`, ProjectFile, key)
			continue
		}
		dirs := make([]string, 0, len(slice))
		for _, item := range slice {
			dirs = append(dirs, cast.ToString(item))
		}
		return dirs
	}
	return defaults
}

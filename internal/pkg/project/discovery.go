package project

import (
	"sort"
	"strings"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
)

// Directories that never contain project resource files.
func skipDirs() []string {
	return []string{"target", "dbt_packages", "dbt_modules", ".git", "node_modules"}
}

// ResourceFiles returns all YAML resource files under the resource directories,
// in a deterministic, sorted order. If modelsDir is not empty, it overrides
// the directories from the project configuration.
func (p *Project) ResourceFiles(modelsDir string) ([]string, error) {
	dirs := p.ResourceDirs()
	if modelsDir != "" {
		dirs = []string{modelsDir}
	}

	var out []string
	seen := make(map[string]bool)
	for _, dir := range dirs {
		if !p.fs.IsDir(dir) {
			p.logger.Debugf(`Resource directory "%s" not found, skipped.`, dir)
			continue
		}
		for _, pattern := range []string{"/**/*.yml", "/**/*.yaml"} {
			matches, err := p.fs.Glob(filesystem.ToSlash(dir) + pattern)
			if err != nil {
				return nil, err
			}
			for _, path := range matches {
				if skipped(path) || seen[path] {
					continue
				}
				seen[path] = true
				out = append(out, path)
			}
		}
	}

	sort.Strings(out)
	return out, nil
}

func skipped(path string) bool {
	for _, part := range strings.Split(filesystem.ToSlash(path), "/") {
		for _, dir := range skipDirs() {
			if part == dir {
				return true
			}
		}
	}
	return false
}

package filesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFileDef(t *testing.T) {
	t.Parallel()
	def := NewFileDef("foo/bar.yml").SetDescription("resource")
	assert.Equal(t, "foo/bar.yml", def.Path())
	assert.Equal(t, "resource", def.Description())
	assert.Equal(t, "resource file", def.DescriptionWithFileSuffix())

	// No description
	assert.Equal(t, "file", NewFileDef("foo.yml").DescriptionWithFileSuffix())
}

func TestRawFile(t *testing.T) {
	t.Parallel()
	file := NewRawFile("foo/bar.yml", "version: 2\n")
	assert.Equal(t, "foo/bar.yml", file.Path())
	assert.Equal(t, "version: 2\n", file.Content)
}

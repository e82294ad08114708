package filesystem

import (
	"strings"
)

// FileDef describes a file to be loaded: the path and a description for error messages.
type FileDef struct {
	desc string
	path string
}

// RawFile is a file with a raw string content.
type RawFile struct {
	*FileDef
	Content string
}

func NewFileDef(path string) *FileDef {
	return &FileDef{path: path}
}

func (f *FileDef) Path() string {
	return f.path
}

func (f *FileDef) SetPath(v string) *FileDef {
	f.path = v
	return f
}

func (f *FileDef) Description() string {
	return f.desc
}

func (f *FileDef) SetDescription(v string) *FileDef {
	f.desc = v
	return f
}

// DescriptionWithFileSuffix returns for example `env file`, if the description is `env`.
func (f *FileDef) DescriptionWithFileSuffix() string {
	return strings.TrimSpace(f.desc + " file")
}

func NewRawFile(path, content string) *RawFile {
	return &RawFile{FileDef: NewFileDef(path), Content: content}
}

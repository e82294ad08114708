package project

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/yaml"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/filesystem"
	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// Document is one parsed YAML resource file.
// The node trees preserve comments, key order and scalar styles,
// an untouched document is never re-serialized, so its bytes never change.
type Document struct {
	path string
	docs []*yaml.Node
}

// LoadDocument reads and parses one resource file.
func LoadDocument(fs filesystem.Fs, path string) (*Document, error) {
	file, err := fs.ReadFile(filesystem.NewFileDef(path).SetDescription("resource"))
	if err != nil {
		return nil, err
	}

	docs, err := yaml.DecodeNodes(file.Content)
	if err != nil {
		return nil, errors.PrefixErrorf(err, `resource file "%s" is invalid`, path)
	}

	return &Document{path: path, docs: docs}, nil
}

func (d *Document) Path() string {
	return d.path
}

// Nodes returns the document nodes, one per YAML document in the file.
func (d *Document) Nodes() []*yaml.Node {
	return d.docs
}

// Content serializes the node trees back to YAML.
func (d *Document) Content() (string, error) {
	content, err := yaml.EncodeNodes(d.docs)
	if err != nil {
		return "", errors.PrefixErrorf(err, `cannot serialize resource file "%s"`, d.path)
	}
	return content, nil
}

// Save writes the serialized document through the filesystem abstraction.
func (d *Document) Save(fs filesystem.Fs) error {
	content, err := d.Content()
	if err != nil {
		return err
	}
	return fs.WriteFile(filesystem.NewRawFile(d.path, content))
}

// LoadDocuments parses the files in parallel, documents are independent.
// A file that cannot be parsed is reported in the returned error and skipped,
// the successfully parsed documents are returned in the sorted path order.
func (p *Project) LoadDocuments(ctx context.Context, paths []string) ([]*Document, error) {
	out := make([]*Document, len(paths))
	errs := errors.NewMultiError()

	grp, _ := errgroup.WithContext(ctx)
	grp.SetLimit(runtime.NumCPU())
	for i, path := range paths {
		i, path := i, path
		grp.Go(func() error {
			doc, err := LoadDocument(p.fs, path)
			if err != nil {
				errs.Append(err)
				return nil
			}
			out[i] = doc
			return nil
		})
	}
	_ = grp.Wait()

	// Drop files that failed to parse, keep the deterministic order
	docs := make([]*Document, 0, len(out))
	for _, doc := range out {
		if doc != nil {
			docs = append(docs, doc)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].path < docs[j].path })

	return docs, errs.ErrorOrNil()
}

package schema

import (
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/yaml"
)

// Resource container keys, test declarations are searched only under them.
func resourceKeys() map[string]bool {
	return map[string]bool{
		"models":    true,
		"sources":   true,
		"seeds":     true,
		"snapshots": true,
	}
}

// Keys whose sequence items are test declarations, "data_tests" is the dbt synonym.
func testsKeys() map[string]bool {
	return map[string]bool{
		"tests":      true,
		"data_tests": true,
	}
}

// Declaration is one invocation of a generic test:
// a mapping with a single key (the test name) or a bare scalar (a test without a body).
type Declaration struct {
	// Node is the sequence item inside a "tests" sequence.
	Node *yaml.Node
	// Path is the location in the document, for example "models[0].columns[2].tests[1]".
	Path orderedmap.Path
}

// TestName returns the bare or dotted test name, empty for a malformed declaration.
func (d *Declaration) TestName() string {
	node := d.Node
	if node == nil {
		return ""
	}
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Value
	case yaml.MappingNode:
		if len(node.Content) >= 2 && node.Content[0].Kind == yaml.ScalarNode {
			return node.Content[0].Value
		}
	}
	return ""
}

// Visitor receives located declarations and structural anomalies.
type Visitor struct {
	OnTest func(decl *Declaration)
	// OnAnomaly is optional, it is invoked for example for a "tests" key
	// whose value is not a sequence. Traversal continues past the anomaly.
	OnAnomaly func(path orderedmap.Path, node *yaml.Node, reason string)
}

// VisitTests walks the document and yields every test declaration in all contexts:
// model, column, source table, source column, seed and snapshot tests.
// The traversal is a pure read, nodes are yielded in the document order.
func VisitTests(doc *yaml.Node, v Visitor) {
	if doc == nil {
		return
	}

	root := doc
	if root.Kind == yaml.DocumentNode {
		if len(root.Content) == 0 {
			return
		}
		root = root.Content[0]
	}
	if root.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		if key.Kind != yaml.ScalarNode || !resourceKeys()[key.Value] {
			continue
		}
		descend(value, orderedmap.Path{orderedmap.MapStep(key.Value)}, v)
	}
}

func descend(node *yaml.Node, path orderedmap.Path, v Visitor) {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			childPath := pathWith(path, orderedmap.MapStep(key.Value))
			if testsKeys()[key.Value] {
				if value.Kind != yaml.SequenceNode {
					if !yaml.IsNull(value) {
						anomaly(v, childPath, value, `expected a sequence of tests, found `+yaml.KindName(value))
					}
					continue
				}
				for j, item := range value.Content {
					decl := &Declaration{Node: item, Path: pathWith(childPath, orderedmap.SliceStep(j))}
					v.OnTest(decl)
				}
				continue
			}
			descend(value, childPath, v)
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			descend(item, pathWith(path, orderedmap.SliceStep(i)), v)
		}
	default:
		// scalars and aliases cannot contain test declarations
	}
}

func anomaly(v Visitor, path orderedmap.Path, node *yaml.Node, reason string) {
	if v.OnAnomaly != nil {
		v.OnAnomaly(path, node, reason)
	}
}

// pathWith returns a copy of the path extended by the step.
func pathWith(path orderedmap.Path, step orderedmap.Step) orderedmap.Path {
	out := make(orderedmap.Path, len(path), len(path)+1)
	copy(out, path)
	return append(out, step)
}

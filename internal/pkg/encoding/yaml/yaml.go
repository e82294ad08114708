// Package yaml wraps gopkg.in/yaml.v3.
//
// Documents are decoded to yaml.Node trees, the node representation preserves
// comments, key order and scalar styles, so untouched content round-trips.
// Mappings can be converted to ordered maps for typed, order-preserving access.
package yaml

import (
	"bytes"
	"io"
	"strings"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"gopkg.in/yaml.v3"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/utils/errors"
)

// Indent used on encode, matches canonical dbt style.
const Indent = 2

type Node = yaml.Node

const (
	DocumentNode = yaml.DocumentNode
	MappingNode  = yaml.MappingNode
	SequenceNode = yaml.SequenceNode
	ScalarNode   = yaml.ScalarNode
	AliasNode    = yaml.AliasNode
)

// NullTag marks an explicit or implicit null scalar.
const NullTag = "!!null"

// DecodeNodes decodes all documents in the content to node trees.
// Each returned node is a DocumentNode. An empty content yields no documents.
func DecodeNodes(content string) ([]*Node, error) {
	var docs []*Node
	dec := yaml.NewDecoder(strings.NewReader(content))
	for {
		doc := &Node{}
		if err := dec.Decode(doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// EncodeNodes serializes document nodes back to YAML.
// Multiple documents are separated by the "---" marker by the encoder.
func EncodeNodes(docs []*Node) (string, error) {
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(Indent)
	for _, doc := range docs {
		if err := enc.Encode(doc); err != nil {
			return "", err
		}
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// DecodeString decodes the first document in the content to the target.
// An *orderedmap.OrderedMap target preserves mapping key order.
func DecodeString(content string, target any) error {
	if m, ok := target.(*orderedmap.OrderedMap); ok {
		docs, err := DecodeNodes(content)
		if err != nil {
			return err
		}
		if len(docs) == 0 {
			return nil
		}
		value, err := NodeToValue(docs[0])
		if err != nil {
			return err
		}
		decoded, ok := value.(*orderedmap.OrderedMap)
		if !ok {
			return errors.Errorf(`expected a mapping, found %s`, KindName(docs[0].Content[0]))
		}
		for _, key := range decoded.Keys() {
			m.Set(key, decoded.GetOrNil(key))
		}
		return nil
	}
	return yaml.Unmarshal([]byte(content), target)
}

// EncodeString encodes the value to YAML with the standard indent.
func EncodeString(value any) (string, error) {
	var out bytes.Buffer
	enc := yaml.NewEncoder(&out)
	enc.SetIndent(Indent)
	if err := enc.Encode(value); err != nil {
		return "", err
	}
	if err := enc.Close(); err != nil {
		return "", err
	}
	return out.String(), nil
}

// NodeToValue converts a node tree to Go values:
// mapping -> *orderedmap.OrderedMap, sequence -> []any, scalar -> string/int/float/bool/nil.
func NodeToValue(node *Node) (any, error) {
	switch node.Kind {
	case DocumentNode:
		if len(node.Content) == 0 {
			return nil, nil
		}
		return NodeToValue(node.Content[0])
	case MappingNode:
		m := orderedmap.New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			value, err := NodeToValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(key, value)
		}
		return m, nil
	case SequenceNode:
		out := make([]any, 0, len(node.Content))
		for _, item := range node.Content {
			value, err := NodeToValue(item)
			if err != nil {
				return nil, err
			}
			out = append(out, value)
		}
		return out, nil
	case ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, err
		}
		return value, nil
	case AliasNode:
		return NodeToValue(node.Alias)
	default:
		return nil, errors.Errorf(`unexpected node kind %v`, node.Kind)
	}
}

// KindName returns a human-readable node kind name for error messages.
func KindName(node *Node) string {
	switch node.Kind {
	case DocumentNode:
		return "document"
	case MappingNode:
		return "mapping"
	case SequenceNode:
		return "sequence"
	case ScalarNode:
		if node.Tag == NullTag {
			return "null"
		}
		return "scalar"
	case AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}

// IsNull returns true if the node is a null scalar.
func IsNull(node *Node) bool {
	return node.Kind == ScalarNode && node.Tag == NullTag
}

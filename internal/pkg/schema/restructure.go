package schema

import (
	"github.com/keboola/go-utils/pkg/orderedmap"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/yaml"
)

// Outcome classifies one test declaration.
type Outcome int

const (
	// OutcomeBare - a test without a body, for example "- unique".
	OutcomeBare Outcome = iota
	// OutcomeEmptyBody - a null or non-mapping body, nothing to migrate.
	OutcomeEmptyBody
	// OutcomeMigrated - the body already contains the "arguments" key.
	OutcomeMigrated
	// OutcomeMixed - the body contains "arguments" and stray argument keys
	// at the top level, left unchanged and flagged for manual review.
	OutcomeMixed
	// OutcomeOnlyReserved - the body contains only reserved keys, nothing to nest.
	OutcomeOnlyReserved
	// OutcomePending - the body has argument keys to nest.
	OutcomePending
	// OutcomeAnomaly - an unexpected declaration shape, skipped.
	OutcomeAnomaly
)

func (o Outcome) String() string {
	switch o {
	case OutcomeBare:
		return "bare"
	case OutcomeEmptyBody:
		return "empty"
	case OutcomeMigrated:
		return "migrated"
	case OutcomeMixed:
		return "mixed"
	case OutcomeOnlyReserved:
		return "only-reserved"
	case OutcomePending:
		return "pending"
	case OutcomeAnomaly:
		return "anomaly"
	default:
		return "unknown"
	}
}

// Record describes the processing of one test declaration, it is used
// for reporting only, never for control decisions.
type Record struct {
	// TestName is the bare or dotted test name, for example "dbt_utils.equal_rowcount".
	TestName string
	// FilePath is filled by the caller that owns the document.
	FilePath string
	Path     orderedmap.Path
	Outcome  Outcome
	Changed  bool
	// ReservedKeys found in the body, in the body order.
	ReservedKeys []string
	// NeedsReview marks a mixed declaration, see OutcomeMixed.
	NeedsReview bool
}

// Restructurer rewrites one test declaration according to the reserved-key policy.
// It is stateless, each declaration is processed independently.
type Restructurer struct {
	reserved ReservedKeys
}

func NewRestructurer(reserved ReservedKeys) *Restructurer {
	return &Restructurer{reserved: reserved}
}

// Evaluate classifies the declaration without modifying it.
func (r *Restructurer) Evaluate(decl *Declaration) Outcome {
	outcome, _, _ := r.evaluate(decl)
	return outcome
}

// Restructure migrates the declaration in place, if needed.
// The test body is rebuilt as {arguments: {<argument keys>}, <reserved keys>},
// values keep their node identity, so comments and anchors ride along.
// Malformed shapes are never an error, they degrade to a no-op.
func (r *Restructurer) Restructure(decl *Declaration) Record {
	outcome, name, body := r.evaluate(decl)
	record := Record{
		TestName:    name,
		Path:        decl.Path,
		Outcome:     outcome,
		NeedsReview: outcome == OutcomeMixed,
	}
	if body != nil {
		record.ReservedKeys = r.reservedIn(body)
	}
	if outcome != OutcomePending {
		return record
	}

	// Partition body keys, the original relative order is preserved on both sides.
	var argPairs, reservedPairs []*yaml.Node
	for i := 0; i+1 < len(body.Content); i += 2 {
		key, value := body.Content[i], body.Content[i+1]
		if key.Kind == yaml.ScalarNode && r.reserved.Contains(key.Value) {
			reservedPairs = append(reservedPairs, key, value)
		} else {
			argPairs = append(argPairs, key, value)
		}
	}

	argsKey := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: ArgumentsKey}
	argsMap := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map", Style: body.Style, Content: argPairs}

	// The "arguments" key goes first, reserved keys keep their relative order after it.
	body.Content = append([]*yaml.Node{argsKey, argsMap}, reservedPairs...)

	record.Changed = true
	return record
}

// evaluate returns the outcome, the test name and the body mapping node (nil if none).
func (r *Restructurer) evaluate(decl *Declaration) (Outcome, string, *yaml.Node) {
	node := decl.Node
	if node == nil {
		return OutcomeAnomaly, "", nil
	}

	switch node.Kind {
	case yaml.ScalarNode:
		// A test without a body, for example "- unique".
		return OutcomeBare, node.Value, nil
	case yaml.MappingNode:
		// A declaration is a mapping with exactly one key, the test name.
		if len(node.Content) != 2 || node.Content[0].Kind != yaml.ScalarNode {
			return OutcomeAnomaly, "", nil
		}
		name := node.Content[0].Value
		body := node.Content[1]

		if yaml.IsNull(body) {
			// A test invoked with no configuration at all, for example "- unique:".
			return OutcomeEmptyBody, name, nil
		}
		if body.Kind != yaml.MappingNode {
			return OutcomeEmptyBody, name, nil
		}

		hasArguments := false
		hasNonReserved := false
		for i := 0; i+1 < len(body.Content); i += 2 {
			key := body.Content[i]
			if key.Kind != yaml.ScalarNode {
				continue
			}
			switch {
			case key.Value == ArgumentsKey:
				hasArguments = true
			case !r.reserved.Contains(key.Value):
				hasNonReserved = true
			}
		}

		switch {
		case hasArguments && hasNonReserved:
			return OutcomeMixed, name, body
		case hasArguments:
			return OutcomeMigrated, name, body
		case !hasNonReserved:
			return OutcomeOnlyReserved, name, body
		default:
			return OutcomePending, name, body
		}
	default:
		return OutcomeAnomaly, "", nil
	}
}

// reservedIn returns the reserved keys present in the body, in the body order.
func (r *Restructurer) reservedIn(body *yaml.Node) []string {
	var out []string
	for i := 0; i+1 < len(body.Content); i += 2 {
		key := body.Content[i]
		if key.Kind == yaml.ScalarNode && r.reserved.Contains(key.Value) {
			out = append(out, key.Value)
		}
	}
	return out
}

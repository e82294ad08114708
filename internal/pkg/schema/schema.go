// Package schema implements the rewrite of dbt generic-test declarations:
// the locator finds every test declaration in a parsed resource document
// and the restructurer moves test arguments into a nested "arguments" mapping.
//
// The rewrite operates on yaml.Node trees, so comments, key order and scalar
// styles of the original file are preserved.
package schema

import (
	"sort"
)

// ArgumentsKey is the nesting point for generic-test parameters.
const ArgumentsKey = "arguments"

// ReservedKeys is an immutable allow-list of test-body keys that dbt interprets
// structurally, everything else in a test body is a test argument.
type ReservedKeys struct {
	keys map[string]bool
}

// DefaultReservedKeys returns the minimum reserved set.
func DefaultReservedKeys() ReservedKeys {
	return NewReservedKeys(ArgumentsKey, "config")
}

// TestPropertyKeys returns the reserved set extended with the dbt test-property
// keys that stay at the top level of a test body.
func TestPropertyKeys() ReservedKeys {
	return DefaultReservedKeys().With("name", "description", "tags", "meta", "test_name")
}

func NewReservedKeys(names ...string) ReservedKeys {
	keys := make(map[string]bool, len(names))
	for _, name := range names {
		keys[name] = true
	}
	return ReservedKeys{keys: keys}
}

// With returns a new set extended with the names, the receiver is unchanged.
func (r ReservedKeys) With(names ...string) ReservedKeys {
	all := r.Names()
	all = append(all, names...)
	return NewReservedKeys(all...)
}

func (r ReservedKeys) Contains(name string) bool {
	return r.keys[name]
}

func (r ReservedKeys) Names() []string {
	out := make([]string, 0, len(r.keys))
	for name := range r.keys {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

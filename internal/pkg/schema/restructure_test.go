package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Intoxinator/dbt-migrate-generic-tests/internal/pkg/encoding/yaml"
)

// migrate parses the content, restructures all located declarations
// and returns the re-serialized document with the records.
func migrate(t *testing.T, content string) (string, []Record) {
	t.Helper()
	docs, err := yaml.DecodeNodes(content)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	var records []Record
	r := NewRestructurer(DefaultReservedKeys())
	VisitTests(docs[0], Visitor{
		OnTest: func(decl *Declaration) {
			records = append(records, r.Restructure(decl))
		},
	})

	out, err := yaml.EncodeNodes(docs)
	require.NoError(t, err)
	return out, records
}

func TestRestructureScenarioA(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    columns:
      - name: status
        tests:
          - accepted_values:
              values:
                - a
                - b
              config:
                where: x
`
	expected := `models:
  - name: orders
    columns:
      - name: status
        tests:
          - accepted_values:
              arguments:
                values:
                  - a
                  - b
              config:
                where: x
`
	out, records := migrate(t, in)
	assert.Equal(t, expected, out)
	require.Len(t, records, 1)
	assert.True(t, records[0].Changed)
	assert.Equal(t, "accepted_values", records[0].TestName)
	assert.Equal(t, OutcomePending, records[0].Outcome)
	assert.Equal(t, []string{"config"}, records[0].ReservedKeys)
}

func TestRestructureScenarioBAlreadyMigrated(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    columns:
      - name: status
        tests:
          - accepted_values:
              arguments:
                values:
                  - a
                  - b
              config:
                where: x
`
	out, records := migrate(t, in)
	assert.Equal(t, in, out)
	require.Len(t, records, 1)
	assert.False(t, records[0].Changed)
	assert.Equal(t, OutcomeMigrated, records[0].Outcome)
	assert.False(t, records[0].NeedsReview)
}

func TestRestructureScenarioCOnlyReserved(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    tests:
      - unique:
          config:
            severity: warn
`
	out, records := migrate(t, in)
	assert.Equal(t, in, out)
	require.Len(t, records, 1)
	assert.False(t, records[0].Changed)
	assert.Equal(t, OutcomeOnlyReserved, records[0].Outcome)
	assert.Equal(t, []string{"config"}, records[0].ReservedKeys)
}

func TestRestructureScenarioDDottedName(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    tests:
      - dbt_utils.equal_rowcount:
          compare_model: ref('other')
`
	expected := `models:
  - name: orders
    tests:
      - dbt_utils.equal_rowcount:
          arguments:
            compare_model: ref('other')
`
	out, records := migrate(t, in)
	assert.Equal(t, expected, out)
	require.Len(t, records, 1)
	assert.True(t, records[0].Changed)
	assert.Equal(t, "dbt_utils.equal_rowcount", records[0].TestName)
}

func TestRestructureBareAndNullTests(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    columns:
      - name: id
        tests:
          - unique
          - not_null: null
          - accepted_values:
`
	out, records := migrate(t, in)
	assert.Equal(t, in, out)
	require.Len(t, records, 3)
	assert.Equal(t, OutcomeBare, records[0].Outcome)
	assert.Equal(t, "unique", records[0].TestName)
	assert.Equal(t, OutcomeEmptyBody, records[1].Outcome)
	assert.Equal(t, OutcomeEmptyBody, records[2].Outcome)
	for _, record := range records {
		assert.False(t, record.Changed)
	}
}

func TestRestructureIdempotence(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    tests:
      - unique
      - accepted_values:
          values:
            - a
          config:
            where: x
sources:
  - name: raw
    tables:
      - name: events
        columns:
          - name: id
            tests:
              - relationships:
                  to: ref('orders')
                  field: id
`
	once, records := migrate(t, in)
	changed := 0
	for _, record := range records {
		if record.Changed {
			changed++
		}
	}
	assert.Equal(t, 2, changed)

	twice, records := migrate(t, once)
	for _, record := range records {
		assert.False(t, record.Changed)
	}
	if diff := cmp.Diff(once, twice); diff != "" {
		t.Errorf("second run modified the document (-once +twice):\n%s", diff)
	}
}

func TestRestructureMixedIsFlaggedForReview(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    tests:
      - accepted_values:
          arguments:
            values:
              - a
          values:
            - b
`
	out, records := migrate(t, in)
	// Already has "arguments" -> no-op, the stray key is never dropped or merged
	assert.Equal(t, in, out)
	require.Len(t, records, 1)
	assert.False(t, records[0].Changed)
	assert.Equal(t, OutcomeMixed, records[0].Outcome)
	assert.True(t, records[0].NeedsReview)
}

func TestRestructureKeyOrderPreserved(t *testing.T) {
	t.Parallel()
	// Reserved and argument keys each keep their original relative order.
	in := `models:
  - name: orders
    tests:
      - my_test:
          z_arg: 1
          config:
            severity: warn
          a_arg: 2
          meta_like: 3
`
	expected := `models:
  - name: orders
    tests:
      - my_test:
          arguments:
            z_arg: 1
            a_arg: 2
            meta_like: 3
          config:
            severity: warn
`
	out, _ := migrate(t, in)
	assert.Equal(t, expected, out)
}

func TestRestructureCommentsPreserved(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    tests:
      - accepted_values:
          # allowed states
          values:
            - a
            - b
          config:
            where: x # recent rows only
`
	expected := `models:
  - name: orders
    tests:
      - accepted_values:
          arguments:
            # allowed states
            values:
              - a
              - b
          config:
            where: x # recent rows only
`
	out, _ := migrate(t, in)
	assert.Equal(t, expected, out)
}

func TestRestructureUnrelatedContentUntouched(t *testing.T) {
	t.Parallel()
	in := `version: 2
# project description
models:
  - name: orders
    description: All orders
    config:
      materialized: table
    tests:
      - unique
`
	out, _ := migrate(t, in)
	assert.Equal(t, in, out)
}

func TestRestructureTestPropertyKeysStayOnTop(t *testing.T) {
	t.Parallel()
	docs, err := yaml.DecodeNodes(`models:
  - name: orders
    tests:
      - accepted_values:
          name: orders_status_check
          description: Status must be known
          values:
            - a
          tags:
            - finance
`)
	require.NoError(t, err)

	var records []Record
	r := NewRestructurer(TestPropertyKeys())
	VisitTests(docs[0], Visitor{OnTest: func(decl *Declaration) {
		records = append(records, r.Restructure(decl))
	}})

	out, err := yaml.EncodeNodes(docs)
	require.NoError(t, err)
	assert.Equal(t, `models:
  - name: orders
    tests:
      - accepted_values:
          arguments:
            values:
              - a
          name: orders_status_check
          description: Status must be known
          tags:
            - finance
`, out)
	require.Len(t, records, 1)
	assert.Equal(t, []string{"name", "description", "tags"}, records[0].ReservedKeys)
}

func TestRestructureFlowStyleBody(t *testing.T) {
	t.Parallel()
	in := `models:
  - name: orders
    tests:
      - accepted_values: {values: [a, b], config: {where: x}}
`
	expected := `models:
  - name: orders
    tests:
      - accepted_values: {arguments: {values: [a, b]}, config: {where: x}}
`
	out, records := migrate(t, in)
	assert.Equal(t, expected, out)
	require.Len(t, records, 1)
	assert.True(t, records[0].Changed)
}

func TestRestructureAnomalies(t *testing.T) {
	t.Parallel()
	r := NewRestructurer(DefaultReservedKeys())

	// Nil node
	record := r.Restructure(&Declaration{})
	assert.Equal(t, OutcomeAnomaly, record.Outcome)
	assert.False(t, record.Changed)

	// Mapping with two keys is not a valid declaration
	docs, err := yaml.DecodeNodes("models:\n  - tests:\n      - a: 1\n        b: 2\n")
	require.NoError(t, err)
	var records []Record
	VisitTests(docs[0], Visitor{OnTest: func(decl *Declaration) {
		records = append(records, r.Restructure(decl))
	}})
	require.Len(t, records, 1)
	assert.Equal(t, OutcomeAnomaly, records[0].Outcome)
	assert.False(t, records[0].Changed)
}

func TestEvaluateDoesNotModify(t *testing.T) {
	t.Parallel()
	docs, err := yaml.DecodeNodes("models:\n  - tests:\n      - my_test:\n          foo: 1\n")
	require.NoError(t, err)

	r := NewRestructurer(DefaultReservedKeys())
	VisitTests(docs[0], Visitor{OnTest: func(decl *Declaration) {
		assert.Equal(t, OutcomePending, r.Evaluate(decl))
	}})

	out, err := yaml.EncodeNodes(docs)
	require.NoError(t, err)
	assert.Equal(t, "models:\n  - tests:\n      - my_test:\n          foo: 1\n", out)
}

func TestReservedKeys(t *testing.T) {
	t.Parallel()
	def := DefaultReservedKeys()
	assert.True(t, def.Contains("arguments"))
	assert.True(t, def.Contains("config"))
	assert.False(t, def.Contains("values"))
	assert.Equal(t, []string{"arguments", "config"}, def.Names())

	// With returns a new set, the receiver is unchanged
	extended := def.With("meta")
	assert.True(t, extended.Contains("meta"))
	assert.False(t, def.Contains("meta"))

	props := TestPropertyKeys()
	for _, key := range []string{"arguments", "config", "name", "description", "tags", "meta", "test_name"} {
		assert.True(t, props.Contains(key), key)
	}
}

package yaml

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeEncodeRoundTrip(t *testing.T) {
	t.Parallel()
	content := `version: 2
# Orders model
models:
  - name: orders
    columns:
      - name: id
        tests:
          - unique # inline comment
          - not_null
`

	docs, err := DecodeNodes(content)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	out, err := EncodeNodes(docs)
	require.NoError(t, err)
	assert.Equal(t, content, out)
}

func TestDecodeNodesMultiDocument(t *testing.T) {
	t.Parallel()
	docs, err := DecodeNodes("foo: 1\n---\nbar: 2\n")
	require.NoError(t, err)
	assert.Len(t, docs, 2)

	out, err := EncodeNodes(docs)
	require.NoError(t, err)
	assert.Equal(t, "foo: 1\n---\nbar: 2\n", out)
}

func TestDecodeNodesEmpty(t *testing.T) {
	t.Parallel()
	docs, err := DecodeNodes("")
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDecodeStringToOrderedMap(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	require.NoError(t, DecodeString("name: my_project\nmodel-paths:\n  - models\n  - models2\nconfig-version: 2\n", m))
	assert.Equal(t, []string{"name", "model-paths", "config-version"}, m.Keys())
	assert.Equal(t, "my_project", m.GetOrNil("name"))
	assert.Equal(t, []any{"models", "models2"}, m.GetOrNil("model-paths"))
	assert.Equal(t, 2, m.GetOrNil("config-version"))
}

func TestNodeToValueScalars(t *testing.T) {
	t.Parallel()
	docs, err := DecodeNodes("str: abc\nint: 1\nfloat: 1.5\nbool: true\nnull1: null\nnull2:\n")
	require.NoError(t, err)

	value, err := NodeToValue(docs[0])
	require.NoError(t, err)
	m := value.(*orderedmap.OrderedMap)
	assert.Equal(t, "abc", m.GetOrNil("str"))
	assert.Equal(t, 1, m.GetOrNil("int"))
	assert.Equal(t, 1.5, m.GetOrNil("float"))
	assert.Equal(t, true, m.GetOrNil("bool"))
	assert.Nil(t, m.GetOrNil("null1"))
	assert.Nil(t, m.GetOrNil("null2"))
}

func TestDecodeStringInvalid(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	err := DecodeString("foo: [invalid", m)
	assert.Error(t, err)
}

func TestIsNull(t *testing.T) {
	t.Parallel()
	docs, err := DecodeNodes("key:\n")
	require.NoError(t, err)
	mapping := docs[0].Content[0]
	assert.True(t, IsNull(mapping.Content[1]))
	assert.False(t, IsNull(mapping.Content[0]))
}

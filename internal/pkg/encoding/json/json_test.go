package json

import (
	"testing"

	"github.com/keboola/go-utils/pkg/orderedmap"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodePretty(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	m.Set("foo", "bar")
	m.Set("baz", 123)

	out, err := EncodeString(m, true)
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"foo\": \"bar\",\n  \"baz\": 123\n}\n", out)
}

func TestDecodeKeepsKeyOrder(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	require.NoError(t, DecodeString(`{"b":1,"a":2,"c":3}`, m))
	assert.Equal(t, []string{"b", "a", "c"}, m.Keys())
}

func TestDecodeInvalid(t *testing.T) {
	t.Parallel()
	m := orderedmap.New()
	err := DecodeString(`{"b":`, m)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot decode JSON")
}

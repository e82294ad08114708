// Package testhelper provides shared assertion helpers for tests.
package testhelper

import (
	"github.com/acarl005/stripansi"
	"github.com/keboola/go-utils/pkg/wildcards"
	"github.com/stretchr/testify/assert"
)

// StripAnsi removes ANSI escape sequences, for example colors, from the string.
func StripAnsi(str string) string {
	return stripansi.Strip(str)
}

// AssertWildcards compares the actual output with an expected template.
// ANSI escape sequences are stripped from the output first,
// see the wildcards package for the supported placeholders, eg. "%s", "%d", "%A".
func AssertWildcards(t assert.TestingT, expected string, actual string, msgAndArgs ...any) bool {
	return wildcards.Assert(t, expected, StripAnsi(actual), msgAndArgs...)
}

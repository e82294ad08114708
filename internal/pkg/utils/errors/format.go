package errors

import (
	"fmt"
	"runtime"
	"strings"
	"unicode"
)

// FormatConfig configures the error output, see FormatOption functions.
type FormatConfig struct {
	// WithUnwrap prints also wrapped errors, as a bullet list.
	WithUnwrap bool
	// WithStack prints the error origin, file and line. Implies WithUnwrap.
	WithStack bool
	// AsSentences formats each message as a sentence, first letter upper-cased, dot at the end.
	AsSentences bool
}

type FormatOption func(c *FormatConfig)

// MessageFormatter formats each error message.
type MessageFormatter func(msg string, trace StackTrace, config FormatConfig) string

// PrefixFormatter formats a prefix followed by a list of errors, see defaultPrefixFormatter.
type PrefixFormatter func(prefix string) string

// FormatWithUnwrap prints also errors accessible via the Unwrap method.
func FormatWithUnwrap() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
	}
}

// FormatWithStack prints the errors origins, files and lines.
func FormatWithStack() FormatOption {
	return func(c *FormatConfig) {
		c.WithUnwrap = true
		c.WithStack = true
	}
}

// FormatAsSentences formats each message as a sentence.
func FormatAsSentences() FormatOption {
	return func(c *FormatConfig) {
		c.AsSentences = true
	}
}

func Format(err error, opts ...FormatOption) string {
	w := NewWriter(defaultMessageFormatter(), defaultPrefixFormatter(), opts...)
	w.WriteError(err)
	return w.String()
}

func defaultMessageFormatter() MessageFormatter {
	return func(msg string, trace StackTrace, config FormatConfig) string {
		if config.AsSentences {
			msg = toSentence(msg)
		}
		if config.WithStack && len(trace) > 0 {
			frame := trace[0]
			fn := runtime.FuncForPC(frame)
			file, line := fn.FileLine(frame)
			msg = fmt.Sprintf("%s [%s:%d]", msg, file, line)
		}
		return msg
	}
}

func defaultPrefixFormatter() PrefixFormatter {
	return func(prefix string) string {
		return strings.TrimRight(prefix, ".,:") + ":"
	}
}

func toSentence(msg string) string {
	runes := []rune(msg)
	if len(runes) == 0 {
		return msg
	}
	runes[0] = unicode.ToUpper(runes[0])
	if last := runes[len(runes)-1]; unicode.IsLetter(last) || unicode.IsDigit(last) {
		runes = append(runes, '.')
	}
	return string(runes)
}

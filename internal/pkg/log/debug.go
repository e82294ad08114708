package log

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewDebugLogger returns logger for tests.
// Messages are stored in a memory
// and each read through the *Messages methods clears the buffer.
func NewDebugLogger() DebugLogger {
	recs := &records{}
	logger := &debugLogger{
		zapLogger: loggerFromZap(zap.New(&memoryCore{records: recs})),
		records:   recs,
	}
	return logger
}

type debugLogger struct {
	*zapLogger
	records *records
}

type record struct {
	level   zapcore.Level
	message string
}

func (r record) String() string {
	return fmt.Sprintf("%s  %s\n", r.level.CapitalString(), r.message)
}

type records struct {
	lock    sync.Mutex
	out     []record
	writers []io.Writer
}

// memoryCore stores log entries to the records slice.
type memoryCore struct {
	records *records
}

func (c *memoryCore) Enabled(zapcore.Level) bool {
	return true
}

func (c *memoryCore) With([]zapcore.Field) zapcore.Core {
	return c
}

func (c *memoryCore) Check(entry zapcore.Entry, checked *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	return checked.AddCore(entry, c)
}

func (c *memoryCore) Write(entry zapcore.Entry, _ []zapcore.Field) error {
	return c.records.append(record{level: entry.Level, message: entry.Message})
}

func (c *memoryCore) Sync() error {
	return nil
}

func (r *records) append(rec record) error {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.out = append(r.out, rec)
	for _, w := range r.writers {
		if _, err := w.Write([]byte(rec.String())); err != nil {
			return err
		}
	}
	return nil
}

func (r *records) connect(w io.Writer) {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.writers = append(r.writers, w)
}

func (r *records) truncate() {
	r.lock.Lock()
	defer r.lock.Unlock()
	r.out = nil
}

// read returns messages matching the filter and clears the whole buffer.
func (r *records) read(match func(level zapcore.Level) bool) string {
	r.lock.Lock()
	defer r.lock.Unlock()
	var out strings.Builder
	for _, rec := range r.out {
		if match(rec.level) {
			out.WriteString(rec.String())
		}
	}
	r.out = nil
	return out.String()
}

// ConnectTo mirrors all future messages to the writer.
func (l *debugLogger) ConnectTo(writer io.Writer) {
	l.records.connect(writer)
}

func (l *debugLogger) Truncate() {
	l.records.truncate()
}

func (l *debugLogger) AllMessages() string {
	return l.records.read(func(zapcore.Level) bool {
		return true
	})
}

func (l *debugLogger) DebugMessages() string {
	return l.records.read(func(level zapcore.Level) bool {
		return level == DebugLevel
	})
}

func (l *debugLogger) InfoMessages() string {
	return l.records.read(func(level zapcore.Level) bool {
		return level == InfoLevel
	})
}

func (l *debugLogger) WarnMessages() string {
	return l.records.read(func(level zapcore.Level) bool {
		return level == WarnLevel
	})
}

func (l *debugLogger) WarnAndErrorMessages() string {
	return l.records.read(func(level zapcore.Level) bool {
		return level >= WarnLevel
	})
}

func (l *debugLogger) ErrorMessages() string {
	return l.records.read(func(level zapcore.Level) bool {
		return level == ErrorLevel
	})
}

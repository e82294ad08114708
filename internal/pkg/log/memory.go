package log

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewMemoryLogger returns a logger that stores all messages in memory.
// It is used as a temporary logger before the log file path is known,
// collected messages are replayed to the final logger by CopyLogsTo.
func NewMemoryLogger() *MemoryLogger {
	recs := &records{}
	return &MemoryLogger{
		zapLogger: loggerFromZap(zap.New(&memoryCore{records: recs})),
		records:   recs,
	}
}

type MemoryLogger struct {
	*zapLogger
	records *records
}

// CopyLogsTo replays all stored messages to the target logger.
func (l *MemoryLogger) CopyLogsTo(target Logger) {
	l.records.lock.Lock()
	defer l.records.lock.Unlock()
	for _, rec := range l.records.out {
		switch rec.level {
		case zapcore.DebugLevel:
			target.Debug(rec.message)
		case zapcore.InfoLevel:
			target.Info(rec.message)
		case zapcore.WarnLevel:
			target.Warn(rec.message)
		default:
			target.Error(rec.message)
		}
	}
	l.records.out = nil
}

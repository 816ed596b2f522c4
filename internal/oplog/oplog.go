// Package oplog records allocator operations to an append-only file, one
// JSON line per event.
//
// A write already in progress suppresses nested events: anything the
// logging path does that would itself be logged is skipped rather than
// recursing.
package oplog

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/Jorgear27/Ya-lo-borro/memory"
)

// Logger implements memory.OpLogger.
type Logger struct {
	log  *slog.Logger
	file *os.File
	busy bool
}

var _ memory.OpLogger = (*Logger)(nil)

// Open appends to the file at path, creating it if needed.
func Open(path string) (*Logger, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("oplog: open %s: %w", path, err)
	}
	l := New(slog.NewJSONHandler(f, nil))
	l.file = f
	return l, nil
}

// New returns a Logger writing through h.
func New(h slog.Handler) *Logger {
	return &Logger{log: slog.New(h)}
}

// LogOp writes one event. Write failures are dropped by the handler and never
// reach the allocator.
func (l *Logger) LogOp(op memory.Op, size int, ref memory.Ref) {
	if l == nil || l.busy {
		return
	}
	l.busy = true
	defer func() { l.busy = false }()

	l.log.Info("op",
		slog.String("op", op.String()),
		slog.Int("size", size),
		slog.String("ref", fmt.Sprintf("%#x", uint64(ref))),
	)
}

// Close closes the underlying file, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	return err
}

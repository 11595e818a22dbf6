package analysis

import (
	"fmt"
	"io"
	"sync"

	"go.uber.org/zap"
)

// Sink receives progress notifications from a run. Notify must not block and
// must tolerate calls from multiple goroutines; the scheduler does not
// serialize calls on a sink's behalf.
type Sink interface {
	Notify(message string)
}

// NopSink discards all notifications.
type NopSink struct{}

func (NopSink) Notify(string) {}

// WriterSink writes one line per notification, serialized by a mutex.
type WriterSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

func (s *WriterSink) Notify(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, "Progress: "+message)
}

// LogSink forwards notifications to a zap logger.
type LogSink struct {
	L *zap.Logger
}

func (s LogSink) Notify(message string) {
	s.L.Info("progress", zap.String("message", message))
}

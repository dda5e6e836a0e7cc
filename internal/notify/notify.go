// Package notify is the transient success/error surface shown after
// every mutation outcome.
package notify

import (
	"log/slog"
	"sync"
)

// Notifier receives one message per mutation outcome. Implementations
// must not block.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// Log writes notifications through slog; the CLI uses it as its toast
// replacement.
type Log struct {
	Logger *slog.Logger
}

func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{Logger: logger}
}

func (l *Log) Success(msg string) {
	l.Logger.Info(msg, "outcome", "success")
}

func (l *Log) Error(msg string) {
	l.Logger.Error(msg, "outcome", "error")
}

// Recorder captures notifications for tests.
type Recorder struct {
	mu        sync.Mutex
	Successes []string
	Errors    []string
}

func (r *Recorder) Success(msg string) {
	r.mu.Lock()
	r.Successes = append(r.Successes, msg)
	r.mu.Unlock()
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	r.Errors = append(r.Errors, msg)
	r.mu.Unlock()
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.Successes, r.Errors = nil, nil
	r.mu.Unlock()
}

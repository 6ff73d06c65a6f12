// Package notification carries user-facing messages out of the asset
// directory components.
package notification

import (
	"sync"

	"go.uber.org/zap"
)

type Notifier interface {
	Error(msg string)
}

type NotifierFunc func(msg string)

func (f NotifierFunc) Error(msg string) {
	f(msg)
}

// LogNotifier writes notifications to the log.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) Error(msg string) {
	n.logger.Warn("notification", zap.String("msg", msg))
}

// Recorder keeps notifications in memory, e.g. to return them in an HTTP
// response.
type Recorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *Recorder) Error(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.messages = append(r.messages, msg)
}

func (r *Recorder) Messages() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.messages...)
}

func (r *Recorder) Last() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return ""
	}
	return r.messages[len(r.messages)-1]
}

package ringqueue

import (
	"io"
	"sync/atomic"

	log "github.com/sirupsen/logrus"
)

// Rejection reasons reported on the diagnostic logger.
const (
	reasonInvalidQueue   = "invalid queue"
	reasonInvalidElement = "invalid element"
	reasonFull           = "queue full"
	reasonEmpty          = "queue empty"
	reasonClosed         = "queue closed"
)

var diagnostics atomic.Pointer[log.Entry]

func init() {
	l := log.New()
	l.SetOutput(io.Discard)
	l.SetLevel(log.PanicLevel)
	diagnostics.Store(log.NewEntry(l))
}

// SetDiagnostics sets the logger used for nil handles and for queues created
// without WithLogger. Rejections are logged at debug level. A nil logger
// restores the default, which discards everything.
func SetDiagnostics(l *log.Logger) {
	if l == nil {
		l = log.New()
		l.SetOutput(io.Discard)
		l.SetLevel(log.PanicLevel)
	}
	diagnostics.Store(l.WithField("component", "ringqueue"))
}

// Option configures a queue at construction.
type Option func(*options)

type options struct {
	logger *log.Entry
}

// WithLogger routes the queue's rejection diagnostics to l.
func WithLogger(l *log.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l.WithField("component", "ringqueue")
		}
	}
}

func buildOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// reject logs why an operation failed. It never affects the outcome.
func reject(e *log.Entry, op, reason string) {
	if e == nil {
		e = diagnostics.Load()
	}
	if !e.Logger.IsLevelEnabled(log.DebugLevel) {
		return
	}
	e.WithFields(log.Fields{"op": op, "reason": reason}).Debug("rejected")
}

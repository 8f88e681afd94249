package verify

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
	loggerSet  atomic.Bool
)

// Logger returns the verify package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the verify package's logger.
// Generated init functions may skip verification before main gets here;
// that pending warning is logged now.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	Logger()
	logger = l
	loggerSet.Store(true)
	std.warn()
}

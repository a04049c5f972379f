package logging

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pion/logging"
)

var (
	mu            sync.Mutex
	loggerFactory = logging.NewDefaultLoggerFactory()
	loggers       []*logging.DefaultLeveledLogger
)

var levels = map[string]logging.LogLevel{
	"disabled": logging.LogLevelDisabled,
	"error":    logging.LogLevelError,
	"warn":     logging.LogLevelWarn,
	"info":     logging.LogLevelInfo,
	"debug":    logging.LogLevelDebug,
	"trace":    logging.LogLevelTrace,
}

// NewLogger creates a leveled logger for scope.
func NewLogger(scope string) logging.LeveledLogger {
	mu.Lock()
	defer mu.Unlock()

	logger := loggerFactory.NewLogger(scope)
	if l, ok := logger.(*logging.DefaultLeveledLogger); ok {
		loggers = append(loggers, l)
	}
	return logger
}

// SetLevel changes the level of every logger, including the ones that were
// already created. The PION_LOG_* environment variables still pick the
// initial level.
func SetLevel(level string) error {
	l, ok := levels[strings.ToLower(level)]
	if !ok {
		return fmt.Errorf("unknown log level %q", level)
	}

	mu.Lock()
	defer mu.Unlock()

	loggerFactory.DefaultLogLevel = l
	loggerFactory.ScopeLevels = nil
	for _, logger := range loggers {
		logger.SetLevel(l)
	}
	return nil
}

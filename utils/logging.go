package utils

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	loggerMu sync.RWMutex
	sugar    = zap.NewNop().Sugar()
)

// InitLogger replaces the package logger. Level is one of debug, info, warn, error.
func InitLogger(level string) error {
	config := zap.NewProductionConfig()
	config.Encoding = "console"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.DisableStacktrace = true

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(strings.TrimSpace(level)))); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	config.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := config.Build(zap.AddCallerSkip(2))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}

	SetLogger(logger)
	return nil
}

// SetLogger installs an existing zap logger, mainly for tests.
func SetLogger(logger *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	sugar = logger.Sugar()
}

// SyncLogger flushes buffered log entries.
func SyncLogger() {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	_ = sugar.Sync()
}

func logf(level zapcore.Level, tag, msg string, args ...interface{}) {
	loggerMu.RLock()
	s := sugar
	loggerMu.RUnlock()

	line := "[" + tag + "] " + msg
	switch level {
	case zapcore.DebugLevel:
		s.Debugf(line, args...)
	case zapcore.WarnLevel:
		s.Warnf(line, args...)
	case zapcore.ErrorLevel:
		s.Errorf(line, args...)
	default:
		s.Infof(line, args...)
	}
}

func LogInfo(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "INFO", msg, args...)
}

func LogWarn(msg string, args ...interface{}) {
	logf(zapcore.WarnLevel, "WARN", msg, args...)
}

func LogError(msg string, args ...interface{}) {
	logf(zapcore.ErrorLevel, "ERROR", msg, args...)
}

func LogDebug(msg string, args ...interface{}) {
	logf(zapcore.DebugLevel, "DEBUG", msg, args...)
}

func LogDB(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "DB", msg, args...)
}

func LogHTTP(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "HTTP", msg, args...)
}

func LogSheet(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "SHEET", msg, args...)
}

func LogJob(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "JOB", msg, args...)
}

func LogStartup(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "STARTUP", msg, args...)
}

func LogShutdown(msg string, args ...interface{}) {
	logf(zapcore.InfoLevel, "SHUTDOWN", msg, args...)
}

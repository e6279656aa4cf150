package utils

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

var (
	DebugMode    bool
	CurrentLevel LogLevel = LevelWarn
	ShowDebugUI  bool

	loggerMu  sync.Mutex
	zapLogger *zap.Logger
	zapLevel  = zap.NewAtomicLevelAt(zapcore.WarnLevel)
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	}
	return "UNKNOWN"
}

func (l LogLevel) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelWarn:
		return zapcore.WarnLevel
	}
	return zapcore.ErrorLevel
}

// ParseLevel maps a level name to a LogLevel.
func ParseLevel(name string) (LogLevel, error) {
	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return LevelWarn, fmt.Errorf("unknown log level %q", name)
	}
	switch {
	case lvl <= zapcore.DebugLevel:
		return LevelDebug, nil
	case lvl == zapcore.InfoLevel:
		return LevelInfo, nil
	case lvl == zapcore.WarnLevel:
		return LevelWarn, nil
	}
	return LevelError, nil
}

// SetLevel changes the threshold of the shared logger.
func SetLevel(level LogLevel) {
	CurrentLevel = level
	zapLevel.SetLevel(level.zap())
}

// L returns the shared zap logger, building a coloured console logger on
// first use.
func L() *zap.Logger {
	loggerMu.Lock()
	defer loggerMu.Unlock()

	if zapLogger == nil {
		zapLevel.SetLevel(CurrentLevel.zap())
		encoderConfig := zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		config := zap.Config{
			Level:             zapLevel,
			Development:       false,
			DisableStacktrace: true,
			Encoding:          "console",
			EncoderConfig:     encoderConfig,
			OutputPaths:       []string{"stderr"},
			ErrorOutputPaths:  []string{"stderr"},
		}
		logger, err := config.Build()
		if err != nil {
			logger = zap.NewNop()
		}
		zapLogger = logger
	}
	return zapLogger
}

// SetLogger replaces the shared logger, e.g. with zaptest or zap.NewNop.
func SetLogger(logger *zap.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	zapLogger = logger
}

// Sync flushes buffered log entries.
func Sync() {
	_ = L().Sync()
}

func logMessage(level LogLevel, format string, v ...interface{}) {
	if level < CurrentLevel {
		return
	}
	sugar := L().WithOptions(zap.AddCallerSkip(2)).Sugar()
	switch level {
	case LevelDebug:
		sugar.Debugf(format, v...)
	case LevelInfo:
		sugar.Infof(format, v...)
	case LevelWarn:
		sugar.Warnf(format, v...)
	default:
		sugar.Errorf(format, v...)
	}
}

func Info(format string, v ...interface{})  { logMessage(LevelInfo, format, v...) }
func Debug(format string, v ...interface{}) { logMessage(LevelDebug, format, v...) }
func Warn(format string, v ...interface{})  { logMessage(LevelWarn, format, v...) }
func Error(format string, v ...interface{}) { logMessage(LevelError, format, v...) }

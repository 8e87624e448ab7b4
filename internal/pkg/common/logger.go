package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Messages that survive LOG_MODE=concise
const (
	MsgRequestCompleted = "Request completed"
	MsgServerStarting   = "Starting server"
	MsgServerShutdown   = "Shutting down server..."
	MsgServerExited     = "Server exited"
)

var (
	// Logger global logger; a no-op until InitLogger runs
	Logger  = zap.NewNop()
	LogMode string

	levelColors = map[zapcore.Level]string{
		zapcore.DebugLevel: "\033[36m", // cyan
		zapcore.InfoLevel:  "\033[32m", // green
		zapcore.WarnLevel:  "\033[33m", // yellow
		zapcore.ErrorLevel: "\033[31m", // red
		zapcore.FatalLevel: "\033[35m", // magenta
	}
	resetColor = "\033[0m"

	// field keys never written to the log
	sensitiveKeys = []string{"password", "token", "api_key", "apikey", "image_data", "file_bytes"}
)

func getEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        "time",
		LevelKey:       "level",
		NameKey:        "",
		CallerKey:      "",
		MessageKey:     "msg",
		StacktraceKey:  "",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    customLevelEncoder,
		EncodeTime:     customTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
}

func customTimeEncoder(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.Format("15:04:05.000"))
}

func customLevelEncoder(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	color := levelColors[l]
	level := l.String()
	switch l {
	case zapcore.DebugLevel:
		level = "DBG"
	case zapcore.InfoLevel:
		level = "INF"
	case zapcore.WarnLevel:
		level = "WRN"
	case zapcore.ErrorLevel:
		level = "ERR"
	case zapcore.FatalLevel:
		level = "FAT"
	}
	enc.AppendString(color + level + resetColor)
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(logLevel string) zapcore.Level {
	switch strings.ToLower(logLevel) {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	case "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// InitLogger initialises the global logger. logFile may be empty to log to stdout only.
func InitLogger(logLevel, logMode, logFile string) error {
	level := ParseLevel(logLevel)
	LogMode = logMode

	consoleCore := zapcore.NewCore(
		zapcore.NewConsoleEncoder(getEncoderConfig()),
		zapcore.AddSync(os.Stdout),
		level,
	)
	core := consoleCore

	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		fileCore := zapcore.NewCore(
			zapcore.NewJSONEncoder(getEncoderConfig()),
			zapcore.AddSync(file),
			level,
		)
		core = zapcore.NewTee(fileCore, consoleCore)
	}

	Logger = zap.New(core,
		zap.AddCallerSkip(1),
		zap.Fields(zap.String("service", "smart-pantry-chef")),
	)
	zap.ReplaceGlobals(Logger)

	return nil
}

func filterFields(fields []zap.Field) []zap.Field {
	filtered := make([]zap.Field, 0, len(fields))
	for _, field := range fields {
		if isSensitive(field.Key) {
			continue
		}
		filtered = append(filtered, field)
	}
	return filtered
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

func conciseAllowed(msg string) bool {
	switch msg {
	case MsgRequestCompleted, MsgServerStarting, MsgServerShutdown, MsgServerExited:
		return true
	}
	return false
}

// LogInfo writes an info entry
func LogInfo(msg string, fields ...zap.Field) {
	if LogMode == "concise" && !conciseAllowed(msg) {
		return
	}
	Logger.Info(msg, filterFields(fields)...)
}

// LogWarn writes a warn entry
func LogWarn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, filterFields(fields)...)
}

// LogError writes an error entry
func LogError(msg string, fields ...zap.Field) {
	Logger.Error(msg, filterFields(fields)...)
}

// LogDebug writes a debug entry
func LogDebug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, filterFields(fields)...)
}

// LogFatal writes a fatal entry and exits
func LogFatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, filterFields(fields)...)
}

// Sync flushes buffered entries
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// LogProviderCall records an outbound provider request.
func LogProviderCall(provider, operation string, duration time.Duration, err error, requestID string) {
	if err != nil {
		LogError("Provider request failed",
			zap.String("provider", provider),
			zap.String("operation", operation),
			zap.Duration("duration", duration),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return
	}
	LogInfo("Provider request succeeded",
		zap.String("provider", provider),
		zap.String("operation", operation),
		zap.Duration("duration", duration),
		zap.String("request_id", requestID),
	)
}

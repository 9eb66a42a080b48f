// Package logger holds the process-wide zap logger.
package logger

import "fmt"
import "io"
import "os"
import "path/filepath"
import "strings"

import "go.uber.org/zap"
import "go.uber.org/zap/zapcore"
import "gopkg.in/natefinch/lumberjack.v2"

var (
	// L is the global sugared logger.
	L *zap.SugaredLogger
	// Z is the global structured logger.
	Z *zap.Logger
	// rotating file writer, nil when logging to stderr only
	file *lumberjack.Logger
)

func init() {
	Z = zap.New(newCore(os.Stderr, zapcore.InfoLevel))
	L = Z.Sugar()
}

// Config selects the level and optional rotated log file.
type Config struct {
	Level      string // debug, info, warn, error
	File       string // log file path, stderr only when empty
	MaxSize    int    // megabytes per file
	MaxBackups int    // rotated files kept
	MaxAge     int    // days rotated files are kept
	Quiet      bool   // do not write to stderr, e.g. while a TUI owns the terminal
}

// ParseLevel maps a level name to a zap level.
func ParseLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	}
	return zapcore.InfoLevel, fmt.Errorf("unsupported log level: %s", level)
}

// Init replaces the global logger according to cfg.
func Init(cfg Config) error {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return err
	}

	var outputs []io.Writer
	if !cfg.Quiet {
		outputs = append(outputs, os.Stderr)
	}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return fmt.Errorf("create log directory: %w", err)
		}
		file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    orDefault(cfg.MaxSize, 16),
			MaxBackups: orDefault(cfg.MaxBackups, 3),
			MaxAge:     orDefault(cfg.MaxAge, 7),
			Compress:   true,
		}
		outputs = append(outputs, file)
	}

	var core zapcore.Core
	if len(outputs) == 0 {
		core = zapcore.NewNopCore()
	} else {
		core = newCore(io.MultiWriter(outputs...), level)
	}
	Z = zap.New(core)
	L = Z.Sugar()
	return nil
}

// Sync flushes buffered entries and closes the log file; call before exit.
func Sync() {
	if Z != nil {
		_ = Z.Sync()
	}
	if file != nil {
		_ = file.Close()
	}
}

func newCore(w io.Writer, level zapcore.Level) zapcore.Core {
	encoderCfg := zapcore.EncoderConfig{
		TimeKey:        "T",
		LevelKey:       "L",
		NameKey:        "N",
		MessageKey:     "M",
		StacktraceKey:  "S",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.AddSync(w), level)
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

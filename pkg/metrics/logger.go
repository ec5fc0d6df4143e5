package metrics

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelSilent disables all output.
const LevelSilent = zapcore.FatalLevel + 1

// ParseLevel parses a level name. "silent", "off" and "none" map to
// LevelSilent, "warning" to warn.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent", "off", "none":
		return LevelSilent, nil
	case "warning":
		return zapcore.WarnLevel, nil
	case "":
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(strings.ToLower(s))
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", s)
	}
	return lvl, nil
}

// Format specifies the log output format.
type Format int

const (
	FormatText Format = iota // Human-readable console format
	FormatJSON               // JSON for log aggregation
)

func (f Format) String() string {
	if f == FormatJSON {
		return "json"
	}
	return "text"
}

// ParseFormat parses "text" (or "console") and "json".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "console":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown log format %q", s)
}

type loggerConfig struct {
	out    io.Writer
	level  zapcore.Level
	format Format
	name   string
	fields []zap.Field
}

// LoggerOption configures NewLogger.
type LoggerOption func(*loggerConfig)

// WithOutput sets the destination. Defaults to stderr.
func WithOutput(w io.Writer) LoggerOption {
	return func(c *loggerConfig) {
		c.out = w
	}
}

// WithLevel sets the minimum level.
func WithLevel(level zapcore.Level) LoggerOption {
	return func(c *loggerConfig) {
		c.level = level
	}
}

// WithFormat sets the output format.
func WithFormat(format Format) LoggerOption {
	return func(c *loggerConfig) {
		c.format = format
	}
}

// WithName sets the logger name.
func WithName(name string) LoggerOption {
	return func(c *loggerConfig) {
		c.name = name
	}
}

// WithFields adds fields to every entry.
func WithFields(fields ...zap.Field) LoggerOption {
	return func(c *loggerConfig) {
		c.fields = append(c.fields, fields...)
	}
}

// NewLogger builds a zap logger. Key material must never be passed as a
// field; log fingerprints instead.
func NewLogger(opts ...LoggerOption) *zap.Logger {
	cfg := loggerConfig{out: os.Stderr, level: zapcore.InfoLevel}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.level >= LevelSilent {
		return zap.NewNop()
	}

	var enc zapcore.Encoder
	if cfg.format == FormatJSON {
		ec := zap.NewProductionEncoderConfig()
		ec.TimeKey = "time"
		ec.EncodeTime = zapcore.RFC3339NanoTimeEncoder
		enc = zapcore.NewJSONEncoder(ec)
	} else {
		ec := zap.NewDevelopmentEncoderConfig()
		ec.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
		ec.CallerKey = ""
		enc = zapcore.NewConsoleEncoder(ec)
	}

	core := zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(cfg.out)), cfg.level)
	logger := zap.New(core)
	if cfg.name != "" {
		logger = logger.Named(cfg.name)
	}
	if len(cfg.fields) > 0 {
		logger = logger.With(cfg.fields...)
	}
	return logger
}

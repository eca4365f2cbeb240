package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/dhima/backoffice-workflows/pkg/config"
)

// Logger is the structured logger handed to HTTP handlers and binaries.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)
	Fatal(msg string, fields ...zap.Field)
	With(fields ...zap.Field) Logger
	Sync() error
}

// zapLogger satisfies Logger with the embedded zap methods. Only With needs
// its own signature.
type zapLogger struct {
	*zap.Logger
}

// Options configures a logger.
type Options struct {
	Environment string // "development" or "production"
	Level       string // zap level name, info when unparsable
	Encoding    string // "json" or "console"; empty keeps the environment default
	Service     string // attached to every entry when set
}

// New builds a zap-backed Logger. Development uses colored console output,
// anything else JSON with ISO8601 timestamps and sampling.
func New(opts Options) (Logger, error) {
	var cfg zap.Config

	if opts.Environment == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	switch opts.Encoding {
	case "json":
		cfg.Encoding = "json"
		cfg.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case "console":
		cfg.Encoding = "console"
	}

	// Enable sampling to prevent log storms in production
	if opts.Environment == "production" {
		cfg.Sampling = &zap.SamplingConfig{
			Initial:    100,
			Thereafter: 100,
		}
	}

	if opts.Service != "" {
		cfg.InitialFields = map[string]interface{}{"service": opts.Service}
	}

	logger, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, err
	}

	return &zapLogger{Logger: logger}, nil
}

// NewLogger creates a logger for environment at logLevel.
func NewLogger(environment, logLevel string) (Logger, error) {
	return New(Options{Environment: environment, Level: logLevel})
}

// FromConfig creates the logger of one binary from its loaded configuration.
func FromConfig(cfg config.App, service string) (Logger, error) {
	return New(Options{
		Environment: cfg.Environment,
		Level:       cfg.LogLevel,
		Encoding:    cfg.LogEncoding,
		Service:     service,
	})
}

// Zap returns the *zap.Logger behind l, for libraries such as gin-contrib/zap
// and the services that take one directly. Loggers not built by this package
// yield a no-op logger.
func Zap(l Logger) *zap.Logger {
	if zl, ok := l.(*zapLogger); ok {
		return zl.Logger
	}
	return zap.NewNop()
}

// With returns a child logger with fields attached to every entry.
func (l *zapLogger) With(fields ...zap.Field) Logger {
	return &zapLogger{Logger: l.Logger.With(fields...)}
}

// NewNoOpLogger returns a logger that discards everything. Useful for testing.
func NewNoOpLogger() Logger {
	return &zapLogger{Logger: zap.NewNop()}
}

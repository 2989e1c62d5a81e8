// Package log provides structured logging for model training and evaluation,
// backed by rs/zerolog.
//
// Components obtain a named Logger and attach structured context once:
//
//	logger := log.GetLoggerWithName("classifier").With(
//		log.ModelNameKey, "RBFSVM",
//		log.ComponentKey, "classifier",
//	)
//	logger.Info("Training started", log.OperationKey, log.OperationFit)
//
// Variadic arguments are interpreted as alternating key/value pairs.
package log

import (
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// Standard structured logging keys.
const (
	ModelNameKey  = "model"
	ComponentKey  = "component"
	OperationKey  = "operation"
	PhaseKey      = "phase"
	SamplesKey    = "samples"
	FeaturesKey   = "features"
	IterationsKey = "iterations"
	DurationMsKey = "duration_ms"
	PredsKey      = "predictions"
	GridKey       = "grid"
	ClassifierKey = "classifier"
	GenerationKey = "generation"
)

// Standard values for OperationKey and PhaseKey.
const (
	OperationFit      = "fit"
	OperationPredict  = "predict"
	OperationEvaluate = "evaluate"
	PhaseTraining     = "training"
	PhaseInference    = "inference"
)

// Logger is the minimal structured logging interface used by models.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
}

// LoggerProvider creates named loggers. The default provider writes to
// stderr through zerolog; tests may install a silent provider.
type LoggerProvider interface {
	GetLoggerWithName(name string) Logger
}

var (
	mu       sync.RWMutex
	provider LoggerProvider = NewZerologProvider(zerolog.InfoLevel)
	root                    = zerolog.New(os.Stderr).With().Timestamp().Logger()
)

// SetupLogger configures the global log level from a string ("debug",
// "info", "warn", "error"). Unknown levels fall back to info.
func SetupLogger(level string) {
	mu.Lock()
	defer mu.Unlock()
	lvl := ToLogLevel(level)
	root = zerolog.New(os.Stderr).Level(lvl).With().Timestamp().Logger()
	provider = NewZerologProvider(lvl)
}

// ToLogLevel parses a level string into a zerolog.Level.
func ToLogLevel(level string) zerolog.Level {
	switch level {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// SetProvider replaces the global logger provider.
func SetProvider(p LoggerProvider) {
	mu.Lock()
	defer mu.Unlock()
	provider = p
}

// GetLogger returns the underlying zerolog logger for callers that want
// the full zerolog API.
func GetLogger() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return root
}

// GetLoggerWithName returns a named Logger from the global provider.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return provider.GetLoggerWithName(name)
}

// LogError logs err with a message at error level.
func LogError(err error, msg string) {
	l := GetLogger()
	l.Error().Err(err).Msg(msg)
}

// zerologProvider is the default LoggerProvider.
type zerologProvider struct {
	level zerolog.Level
}

// NewZerologProvider creates a provider emitting at the given level.
func NewZerologProvider(level zerolog.Level) LoggerProvider {
	return &zerologProvider{level: level}
}

func (p *zerologProvider) GetLoggerWithName(name string) Logger {
	zl := zerolog.New(os.Stderr).Level(p.level).With().
		Timestamp().
		Str("logger", name).
		Logger()
	return &zerologLogger{zl: zl}
}

// zerologLogger adapts zerolog to the key/value Logger interface.
type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, kvs ...interface{}) {
	l.emit(l.zl.Debug(), msg, kvs)
}

func (l *zerologLogger) Info(msg string, kvs ...interface{}) {
	l.emit(l.zl.Info(), msg, kvs)
}

func (l *zerologLogger) Warn(msg string, kvs ...interface{}) {
	l.emit(l.zl.Warn(), msg, kvs)
}

func (l *zerologLogger) Error(msg string, kvs ...interface{}) {
	l.emit(l.zl.Error(), msg, kvs)
}

func (l *zerologLogger) With(kvs ...interface{}) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, kvs[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func (l *zerologLogger) emit(ev *zerolog.Event, msg string, kvs []interface{}) {
	for i := 0; i+1 < len(kvs); i += 2 {
		key, ok := kvs[i].(string)
		if !ok {
			continue
		}
		switch v := kvs[i+1].(type) {
		case string:
			ev = ev.Str(key, v)
		case int:
			ev = ev.Int(key, v)
		case int64:
			ev = ev.Int64(key, v)
		case float64:
			ev = ev.Float64(key, v)
		case bool:
			ev = ev.Bool(key, v)
		case time.Duration:
			ev = ev.Dur(key, v)
		case error:
			ev = ev.AnErr(key, v)
		default:
			ev = ev.Interface(key, v)
		}
	}
	ev.Msg(msg)
}

// NopLogger discards everything. Useful in tests and benchmarks.
type NopLogger struct{}

func (NopLogger) Debug(string, ...interface{}) {}
func (NopLogger) Info(string, ...interface{})  {}
func (NopLogger) Warn(string, ...interface{})  {}
func (NopLogger) Error(string, ...interface{}) {}
func (NopLogger) With(...interface{}) Logger   { return NopLogger{} }

package internallogger

import (
	"io"
	"os"
	"sync"

	"github.com/joeydtaylor/exametl/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LoggerOption mutates the logger settings before the zap core is built.
type LoggerOption func(*loggerSettings)

type loggerSettings struct {
	level       zapcore.Level
	development bool
	callerSkip  int
	fields      map[string]interface{}
	out         io.Writer
}

type sinkEntry struct {
	core zapcore.Core
	stop func()
}

// ZapLoggerAdapter implements types.Logger on top of zap.
type ZapLoggerAdapter struct {
	mu          sync.Mutex
	logger      *zap.Logger
	atomicLevel zap.AtomicLevel
	encConfig   zapcore.EncoderConfig
	baseCore    zapcore.Core
	baseFields  []zap.Field
	callerSkip  int
	sinks       map[string]sinkEntry
}

// NewLogger builds a JSON logger writing to stdout unless LoggerWithWriter says otherwise.
func NewLogger(options ...LoggerOption) *ZapLoggerAdapter {
	settings := loggerSettings{
		level:      zapcore.InfoLevel,
		callerSkip: 2,
		fields:     map[string]interface{}{logschema.FieldSchema: logschema.SchemaID},
		out:        os.Stdout,
	}
	for _, option := range options {
		option(&settings)
	}

	z := &ZapLoggerAdapter{
		atomicLevel: zap.NewAtomicLevelAt(settings.level),
		encConfig:   standardEncoderConfig(),
		callerSkip:  settings.callerSkip,
		sinks:       make(map[string]sinkEntry),
		baseFields:  fieldsFromMap(settings.fields),
	}

	var enc zapcore.Encoder
	if settings.development {
		enc = zapcore.NewConsoleEncoder(z.encConfig)
	} else {
		enc = zapcore.NewJSONEncoder(z.encConfig)
	}
	z.baseCore = zapcore.NewCore(enc, zapcore.Lock(zapcore.AddSync(settings.out)), z.atomicLevel)

	z.mu.Lock()
	z.rebuildLoggerLocked()
	z.mu.Unlock()
	return z
}

func (z *ZapLoggerAdapter) rebuildLoggerLocked() {
	cores := make([]zapcore.Core, 0, 1+len(z.sinks))
	cores = append(cores, z.baseCore)
	for _, entry := range z.sinks {
		cores = append(cores, entry.core)
	}
	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(z.callerSkip))
	if len(z.baseFields) > 0 {
		logger = logger.With(z.baseFields...)
	}
	z.logger = logger
}

func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	out := make([]zap.Field, 0, len(fields))
	for key, value := range fields {
		if key == "" {
			continue
		}
		out = append(out, zap.Any(key, value))
	}
	return out
}

package internallogger

import (
	"io"

	"github.com/joeydtaylor/exametl/pkg/logschema"
)

// LoggerWithLevel sets the minimum level from its textual name ("debug", "info", ...).
// Unknown names fall back to info.
func LoggerWithLevel(levelStr string) LoggerOption {
	return func(s *loggerSettings) {
		s.level = ConvertLevel(parseLogLevel(levelStr))
	}
}

// LoggerWithDevelopment switches the base output to the human readable console encoder.
func LoggerWithDevelopment(dev bool) LoggerOption {
	return func(s *loggerSettings) {
		s.development = dev
	}
}

// LoggerWithFields attaches fields to every log line.
func LoggerWithFields(fields map[string]interface{}) LoggerOption {
	return func(s *loggerSettings) {
		for key, value := range fields {
			if key == "" {
				continue
			}
			s.fields[key] = value
		}
	}
}

// LoggerWithSchema overrides the log schema identifier field.
func LoggerWithSchema(schema string) LoggerOption {
	return func(s *loggerSettings) {
		s.fields[logschema.FieldSchema] = schema
	}
}

// LoggerWithWriter replaces stdout as the base output.
func LoggerWithWriter(w io.Writer) LoggerOption {
	return func(s *loggerSettings) {
		if w != nil {
			s.out = w
		}
	}
}

// ZapAdapterWithCallerSkip adds frames to skip when reporting the caller.
func ZapAdapterWithCallerSkip(skip int) LoggerOption {
	return func(s *loggerSettings) {
		s.callerSkip += skip
	}
}

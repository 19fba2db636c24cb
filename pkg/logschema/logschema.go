package logschema

// Log schema constants for exametl structured logs.
const (
	SchemaID    = "exametl.log.v1"
	FieldSchema = "log_schema"

	FieldTimestamp = "ts"
	FieldLevel     = "level"
	FieldMessage   = "msg"
	FieldLogger    = "logger"
	FieldCaller    = "caller"
	FieldStack     = "stack"

	FieldComponent = "component"
	FieldEvent     = "event"
	FieldResult    = "result"
	FieldError     = "error"
	FieldRunID     = "run_id"
	FieldJob       = "job"
	FieldLine      = "line"
	FieldChunk     = "chunk"
)

// Result values used with FieldResult.
const (
	ResultSuccess = "SUCCESS"
	ResultFailure = "FAILURE"
)

// LogRecord is a generic map representation of a log entry.
type LogRecord map[string]interface{}

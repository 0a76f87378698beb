package logger

import "time"

// Standard field keys used across chatkit log events.
const (
	FieldComponent = "component"
	FieldRequestID = "request_id"
	FieldSeq       = "seq"
	FieldMethod    = "method"
	FieldURL       = "url"
	FieldStatus    = "status"
	FieldCode      = "code"
	FieldRoute     = "route"
	FieldBucket    = "bucket"
	FieldError     = "error"
	FieldDuration  = "duration_ms"
	FieldWait      = "wait_ms"
	FieldWorker    = "worker"
)

// Fields builds a map from alternating key-value pairs. Non-string keys and
// a trailing key without a value are dropped.
//
//	logger.Debug("paced", logger.Fields(logger.FieldRoute, route, logger.FieldWait, 120))
func Fields(kvs ...any) map[string]any {
	m := make(map[string]any, len(kvs)/2)
	for i := 0; i < len(kvs)-1; i += 2 {
		if key, ok := kvs[i].(string); ok {
			m[key] = kvs[i+1]
		}
	}
	return m
}

// ErrorFields creates fields for a failed operation.
func ErrorFields(err error) map[string]any {
	return map[string]any{FieldError: err.Error()}
}

// DurationFields creates fields for a timed operation.
func DurationFields(d time.Duration) map[string]any {
	return map[string]any{FieldDuration: d.Milliseconds()}
}

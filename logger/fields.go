package logger

import (
	"time"

	"github.com/kbukum/xgen/errors"
)

// Field keys used across the pipeline packages.
const (
	FieldComponent = "component"
	FieldModule    = "module"
	FieldTraceID   = "trace_id"
	FieldSpanID    = "span_id"
	FieldRunID     = "run_id"
	FieldPipeline  = "pipeline"
	FieldStage     = "stage"
	FieldElements  = "elements"
	FieldCompleted = "completed"
	FieldOperation = "operation"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldErrorCode = "error_code"
	FieldDuration  = "duration_ms"
)

// F is a set of structured fields attached to one entry.
type F = map[string]interface{}

// Fields pairs up alternating keys and values. Non-string keys and a
// trailing key without a value are dropped.
//
//	log.Info("run finished", logger.Fields(logger.FieldRunID, id, logger.FieldElements, 42))
func Fields(kvs ...interface{}) F {
	f := make(F, len(kvs)/2)
	for i := 0; i+1 < len(kvs); i += 2 {
		if key, ok := kvs[i].(string); ok {
			f[key] = kvs[i+1]
		}
	}
	return f
}

// RunFields identifies one pipeline run.
func RunFields(pipeline, runID string) F {
	return F{FieldPipeline: pipeline, FieldRunID: runID}
}

// ErrorFields describes a failed operation.
func ErrorFields(op string, err error) F {
	return MergeWithError(F{FieldOperation: op}, err)
}

// DurationFields describes a timed operation.
func DurationFields(op string, d time.Duration) F {
	return MergeWithDuration(F{FieldOperation: op}, d)
}

// MergeWithError adds err to f, with its code when err is coded.
func MergeWithError(f F, err error) F {
	if f == nil {
		f = F{}
	}
	if err == nil {
		return f
	}
	f[FieldError] = err.Error()
	if code := errors.CodeOf(err); code != "" {
		f[FieldErrorCode] = string(code)
	}
	return f
}

// MergeWithDuration adds d to f in milliseconds.
func MergeWithDuration(f F, d time.Duration) F {
	if f == nil {
		f = F{}
	}
	f[FieldDuration] = d.Milliseconds()
	return f
}

package history

import (
	"fmt"
	"time"

	"github.com/kbukum/xgen/errors"
	"github.com/kbukum/xgen/observability"
	"github.com/kbukum/xgen/recipe"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID         uint   `gorm:"primaryKey"`
	RunID      string `gorm:"size:36;uniqueIndex;not null"`
	Recipe     string `gorm:"index;not null"`
	Terminal   string
	Value      string
	Completed  bool
	Status     string `gorm:"size:16"`
	ErrorCode  string `gorm:"size:32"`
	Error      string
	DurationMs int64
	CreatedAt  time.Time `gorm:"index"`
}

// TableName keeps the table name stable across model renames.
func (Run) TableName() string { return "pipeline_runs" }

// FromOutcome builds the record of a finished run. runErr is the error
// Plan.Run returned, if any; the value is only kept for successful runs.
func FromOutcome(out recipe.Outcome, elapsed time.Duration, runErr error) Run {
	r := Run{
		RunID:      out.RunID,
		Recipe:     out.Recipe,
		Terminal:   out.Terminal,
		Completed:  out.Completed,
		Status:     observability.Status(out.Completed, runErr),
		DurationMs: elapsed.Milliseconds(),
	}
	if runErr != nil {
		r.Error = runErr.Error()
		r.ErrorCode = string(errors.CodeOf(runErr))
	} else if out.Value != nil {
		r.Value = fmt.Sprint(out.Value)
	}
	return r
}

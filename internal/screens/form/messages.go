package form

import (
	"time"

	"github.com/omegalab/lessonplan/internal/flow"
	"github.com/omegalab/lessonplan/internal/lessonplan"
)

// planReadyMsg carries the outcome of one submission.
type planReadyMsg struct {
	Ticket flow.Ticket
	Plan   *lessonplan.Plan
	Err    error
}

// spinnerTickMsg animates the loading indicator while a plan is generated.
type spinnerTickMsg time.Time

package flow

import (
	"context"

	"github.com/omegalab/lessonplan/internal/llm"
)

// WithTicket tags ctx with the ticket id so provider calls and event log
// rows share the submission's correlation id.
func WithTicket(ctx context.Context, t Ticket) context.Context {
	return llm.WithRequestID(ctx, t.ID)
}

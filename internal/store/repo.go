package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Purpose string    // exact purpose match ("" = any)
}

// LLMRequestEventData captures the metadata of a single LLM request.
// Generated content is deliberately absent: plans live only in memory.
type LLMRequestEventData struct {
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
}

// LLMEventRecord is a stored LLM request event.
type LLMEventRecord struct {
	ID           int
	Sequence     int64
	Timestamp    time.Time
	RequestID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
}

// LLMUsageStat aggregates requests sharing a purpose.
type LLMUsageStat struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// LLMModelUsage aggregates requests sharing a model.
type LLMModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMEventRecord, error)

	// GetLLMEvent returns the event with the given id, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEventRecord, error)

	LLMUsageByPurpose(ctx context.Context) ([]LLMUsageStat, error)
	LLMUsageByModel(ctx context.Context) ([]LLMModelUsage, error)
}

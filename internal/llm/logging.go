package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/store"
)

// LoggingProvider is a decorator that records every LLM request as an event
// and emits a structured log line per call.
type LoggingProvider struct {
	inner     Provider
	eventRepo store.EventRepo
	logger    zerolog.Logger
}

// WithLogging wraps a Provider with event logging.
func WithLogging(p Provider, repo store.EventRepo, logger zerolog.Logger) Provider {
	return &LoggingProvider{
		inner:     p,
		eventRepo: repo,
		logger:    logger.With().Str("component", "llm").Logger(),
	}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	requestID := RequestIDFrom(ctx)

	resp, err := l.inner.Generate(ctx, req)

	latencyMs := time.Since(start).Milliseconds()

	data := store.LLMRequestEventData{
		RequestID:   requestID,
		Provider:    l.inner.ModelID(),
		Model:       l.inner.ModelID(),
		Purpose:     purpose,
		LatencyMs:   latencyMs,
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		l.logger.Warn().
			Err(err).
			Str("request_id", requestID).
			Str("purpose", purpose).
			Int64("latency_ms", latencyMs).
			Msg("LLM request failed")
	} else {
		l.logger.Debug().
			Str("request_id", requestID).
			Str("purpose", purpose).
			Str("model", data.Model).
			Int("input_tokens", data.InputTokens).
			Int("output_tokens", data.OutputTokens).
			Int64("latency_ms", latencyMs).
			Msg("LLM request completed")
	}

	// Log the event but don't fail the request if logging fails.
	if logErr := l.eventRepo.AppendLLMRequest(ctx, data); logErr != nil {
		l.logger.Warn().Err(logErr).Str("request_id", requestID).Msg("failed to record LLM request event")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		b.WriteString(fmt.Sprintf("[%s]\n", m.Role))
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			b.WriteString(fmt.Sprintf("[schema: %s]\n", req.Schema.Name))
			b.WriteString(string(schemaDef))
			b.WriteString("\n")
		}
	}

	return b.String()
}

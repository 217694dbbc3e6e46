package lessonplan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/omegalab/lessonplan/internal/llm"
)

// Purpose tags every generation call in the LLM event log.
const Purpose = "lesson-plan"

// Service generates lesson plans. It holds no per-request state and is safe
// for concurrent use.
type Service struct {
	provider llm.Provider
	cfg      Config
	logger   zerolog.Logger
}

// NewService creates a Service. A nil provider is allowed: every Generate
// call then fails with KindConfiguration before any network activity.
func NewService(provider llm.Provider, cfg Config, logger zerolog.Logger) *Service {
	return &Service{
		provider: provider,
		cfg:      cfg,
		logger:   logger.With().Str("component", "lessonplan").Logger(),
	}
}

// Configured reports whether a provider is available.
func (s *Service) Configured() bool {
	return s.provider != nil
}

// Generate issues exactly one provider request for req and returns the
// validated plan. Every failure is a *GenerationError.
func (s *Service) Generate(ctx context.Context, req Request) (*Plan, error) {
	if s.provider == nil {
		return nil, &GenerationError{Kind: KindConfiguration, Err: ErrNoProvider}
	}

	requestID := llm.RequestIDFrom(ctx)
	if requestID == "" {
		requestID = uuid.NewString()
		ctx = llm.WithRequestID(ctx, requestID)
	}
	ctx = llm.WithPurpose(ctx, Purpose)

	if s.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.Timeout)
		defer cancel()
	}

	log := s.logger.With().Str("request_id", requestID).Logger()
	log.Info().
		Str("grade", req.Grade).
		Str("subject", req.Subject).
		Str("topic", req.Topic).
		Str("duration", req.Duration).
		Msg("generating lesson plan")

	system, user := BuildPrompt(req)
	start := time.Now()
	resp, err := s.provider.Generate(ctx, llm.Request{
		System:      system,
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: user}},
		Schema:      DescribeSchema(),
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		gerr := s.classify(ctx, err)
		log.Warn().Err(err).Stringer("kind", gerr.Kind).Msg("lesson plan generation failed")
		return nil, gerr
	}

	plan, err := Validate(string(resp.Content))
	if err != nil {
		log.Warn().Err(err).Msg("generator returned an unusable plan")
		return nil, &GenerationError{Kind: KindInvalidResponse, Err: err}
	}
	plan.fillEcho(req)

	log.Info().
		Dur("elapsed", time.Since(start)).
		Int("activities", len(plan.Activities)).
		Int("rubric_criteria", len(plan.Rubric)).
		Msg("lesson plan generated")
	return plan, nil
}

// classify maps a provider error onto the generation taxonomy.
func (s *Service) classify(ctx context.Context, err error) *GenerationError {
	var cfgErr *llm.ErrConfiguration
	if errors.As(err, &cfgErr) {
		return &GenerationError{Kind: KindConfiguration, Err: err}
	}

	// Content the provider refused is re-checked so the failure carries the
	// same kind a direct Validate call would report.
	var invalid *llm.ErrInvalidResponse
	if errors.As(err, &invalid) {
		return s.classifyContent(string(invalid.Content), err)
	}
	var maxTok *llm.ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return s.classifyContent(string(maxTok.Content), err)
	}

	if errors.Is(err, context.DeadlineExceeded) && ctx.Err() != nil {
		return &GenerationError{
			Kind:    KindProvider,
			Message: fmt.Sprintf("tiempo de espera agotado tras %s", s.cfg.Timeout),
			Err:     err,
		}
	}

	msg := llm.Diagnostic(err)
	if msg == "" {
		msg = msgUnknownProvider
	}
	return &GenerationError{Kind: KindProvider, Message: msg, Err: err}
}

func (s *Service) classifyContent(content string, cause error) *GenerationError {
	if _, verr := Validate(content); verr != nil {
		return &GenerationError{Kind: KindInvalidResponse, Err: verr}
	}
	return &GenerationError{
		Kind: KindInvalidResponse,
		Err:  &ValidationError{Kind: ErrSchemaViolation, Err: cause},
	}
}

// fillEcho copies request values into echo fields the generator left out.
func (p *Plan) fillEcho(req Request) {
	if p.Grade == "" {
		p.Grade = req.Grade
	}
	if p.Subject == "" {
		p.Subject = req.Subject
	}
	if p.Duration == "" {
		p.Duration = req.Duration
	}
}

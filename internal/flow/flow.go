// Package flow tracks the lifecycle of a plan submission: Idle, then
// Submitting, then Success or Failed. Surfaces consult it to disable
// re-submission and to decide what to show.
package flow

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/omegalab/lessonplan/internal/lessonplan"
)

// State is the submission lifecycle state.
type State int

const (
	Idle State = iota
	Submitting
	Success
	Failed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Success:
		return "success"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Ticket identifies one submission. Only the holder of the current ticket
// can complete it.
type Ticket struct {
	ID      string
	Request lessonplan.Request
}

// Snapshot is a consistent copy of the controller state.
type Snapshot struct {
	State     State
	Plan      *lessonplan.Plan
	ErrorText string
	Err       error
	Request   lessonplan.Request
	RequestID string
}

// Generator produces a plan for a request.
type Generator interface {
	Generate(ctx context.Context, req lessonplan.Request) (*lessonplan.Plan, error)
}

// Controller owns the submission state. It is safe for concurrent use.
type Controller struct {
	mu        sync.Mutex
	state     State
	plan      *lessonplan.Plan
	errText   string
	err       error
	request   lessonplan.Request
	requestID string
}

// New returns a Controller in the Idle state.
func New() *Controller {
	return &Controller{}
}

// Begin moves to Submitting and returns a ticket for req. While a
// submission is in flight it returns false and changes nothing. Starting
// from Success or Failed discards the previous plan and error.
func (c *Controller) Begin(req lessonplan.Request) (Ticket, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == Submitting {
		return Ticket{}, false
	}

	t := Ticket{ID: uuid.NewString(), Request: req}
	c.state = Submitting
	c.plan = nil
	c.errText = ""
	c.err = nil
	c.request = req
	c.requestID = t.ID
	return t, true
}

// Complete records the outcome of the submission identified by t. A plan
// clears any error; an error clears any plan. Completions for a ticket that
// is not current are ignored and report false.
func (c *Controller) Complete(t Ticket, plan *lessonplan.Plan, err error) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Submitting || t.ID != c.requestID {
		return false
	}

	if err == nil && plan == nil {
		err = &lessonplan.GenerationError{Kind: lessonplan.KindInvalidResponse, Err: lessonplan.ErrEmptyOutput}
	}
	if err != nil {
		c.state = Failed
		c.plan = nil
		c.err = err
		c.errText = lessonplan.UserMessage(err)
		return true
	}

	c.state = Success
	c.plan = plan
	c.err = nil
	c.errText = ""
	return true
}

// Submit runs one full submission synchronously with gen. It returns false
// without calling gen when another submission is in flight. A panic in gen
// fails the submission before being re-raised.
func (c *Controller) Submit(ctx context.Context, gen Generator, req lessonplan.Request) (Snapshot, bool) {
	t, ok := c.Begin(req)
	if !ok {
		return c.Snapshot(), false
	}
	defer func() {
		if r := recover(); r != nil {
			c.Complete(t, nil, fmt.Errorf("generator panic: %v", r))
			panic(r)
		}
	}()

	ctx = WithTicket(ctx, t)
	plan, err := gen.Generate(ctx, req)
	c.Complete(t, plan, err)
	return c.Snapshot(), true
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		State:     c.state,
		Plan:      c.plan,
		ErrorText: c.errText,
		Err:       c.err,
		Request:   c.request,
		RequestID: c.requestID,
	}
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

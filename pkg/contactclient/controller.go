package contactclient

import (
	"context"
	"errors"
	"sync"
	"time"
)

// DefaultResetDelay is how long the success message stays up.
const DefaultResetDelay = 3 * time.Second

// ErrNotReady is returned by Submit while a submission is in flight or the
// success message is still showing.
var ErrNotReady = errors.New("form is not accepting submissions")

// Submitter sends one form. *Client implements it.
type Submitter interface {
	Submit(ctx context.Context, f Fields) (string, error)
}

// Controller holds one form's State and runs submissions against a Submitter.
// It is safe for concurrent use.
type Controller struct {
	mu         sync.Mutex
	state      State
	submitter  Submitter
	resetDelay time.Duration
	onChange   func(State)
	timer      *time.Timer
}

type Option func(*Controller)

// WithResetDelay overrides DefaultResetDelay.
func WithResetDelay(d time.Duration) Option {
	return func(c *Controller) { c.resetDelay = d }
}

// WithOnChange registers fn to receive every new state. fn runs with the
// controller locked and must not call back into it.
func WithOnChange(fn func(State)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func NewController(submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		state:      InitialState(),
		submitter:  submitter,
		resetDelay: DefaultResetDelay,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns a snapshot of the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SetField updates one input.
func (c *Controller) SetField(field Field, value string) {
	c.dispatch(FieldChanged{Field: field, Value: value})
}

// Submit validates the form and, when complete, posts it and waits for the
// answer. It returns ErrMissingFields without sending anything if an input
// is empty. On success the fields are cleared and the status returns to idle
// after the reset delay; on failure the fields are kept for a retry.
func (c *Controller) Submit(ctx context.Context) error {
	c.mu.Lock()
	before := c.state.Status
	c.apply(SubmitRequested{})
	after := c.state
	c.mu.Unlock()

	if after.Status != StatusSubmitting {
		if len(after.Invalid) > 0 {
			return ErrMissingFields
		}
		return ErrNotReady
	}
	if before == StatusSubmitting {
		return ErrNotReady
	}

	if _, err := c.submitter.Submit(ctx, after.Fields); err != nil {
		c.dispatch(SubmitFailed{Err: err})
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(SubmitSucceeded{})
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.resetDelay, func() {
		c.dispatch(ResetElapsed{})
	})
	return nil
}

// Close cancels a pending reset.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) dispatch(a Action) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(a)
}

// apply must be called with mu held.
func (c *Controller) apply(a Action) {
	next := Reduce(c.state, a)
	changed := next.Status != c.state.Status || next.Fields != c.state.Fields ||
		len(next.Invalid) != len(c.state.Invalid)
	c.state = next
	if changed && c.onChange != nil {
		c.onChange(next)
	}
}

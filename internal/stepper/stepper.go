// Package stepper drives fixed, ordered multi-step forms. A Flow describes the
// steps and their validity predicates; a Controller tracks the current step of
// one form instance. Steps are 1-indexed.
package stepper

import (
	"errors"
	"fmt"
)

// ErrStepIncomplete is wrapped by every StepError.
var ErrStepIncomplete = errors.New("step incomplete")

// Step is one page of a flow. Valid must be a pure predicate over the
// accumulated form state; a nil Valid always passes.
type Step[S any] struct {
	Title string
	Valid func(S) bool
}

// StepError reports the first step whose predicate rejected the state.
type StepError struct {
	Flow  string
	Step  int
	Title string
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s: step %d (%s) is incomplete", e.Flow, e.Step, e.Title)
}

func (e *StepError) Unwrap() error { return ErrStepIncomplete }

type Flow[S any] struct {
	name  string
	steps []Step[S]
}

func NewFlow[S any](name string, steps ...Step[S]) *Flow[S] {
	return &Flow[S]{name: name, steps: steps}
}

func (f *Flow[S]) Name() string { return f.name }

func (f *Flow[S]) StepCount() int { return len(f.steps) }

// Titles lists the step titles in order.
func (f *Flow[S]) Titles() []string {
	out := make([]string, len(f.steps))
	for i, s := range f.steps {
		out[i] = s.Title
	}
	return out
}

// CanAdvance reports whether state satisfies the given step. Out-of-range
// steps never validate.
func (f *Flow[S]) CanAdvance(step int, state S) bool {
	if step < 1 || step > len(f.steps) {
		return false
	}
	valid := f.steps[step-1].Valid
	return valid == nil || valid(state)
}

// Validate checks every step in order and returns a *StepError for the first
// one that fails.
func (f *Flow[S]) Validate(state S) error {
	for i := range f.steps {
		if !f.CanAdvance(i+1, state) {
			return &StepError{Flow: f.name, Step: i + 1, Title: f.steps[i].Title}
		}
	}
	return nil
}

// Start returns a controller positioned on step 1.
func (f *Flow[S]) Start(state S) *Controller[S] {
	return &Controller[S]{flow: f, current: 1, State: state}
}

// Resume returns a controller positioned on step, clamped to the flow bounds.
func (f *Flow[S]) Resume(step int, state S) *Controller[S] {
	c := f.Start(state)
	c.current = clamp(step, 1, f.StepCount())
	return c
}

// Controller holds the position and accumulated state of one form instance.
// It performs no I/O.
type Controller[S any] struct {
	flow    *Flow[S]
	current int
	State   S
}

func (c *Controller[S]) Current() int { return c.current }

func (c *Controller[S]) StepCount() int { return c.flow.StepCount() }

func (c *Controller[S]) IsTerminal() bool { return c.current == c.flow.StepCount() }

func (c *Controller[S]) CanAdvance() bool { return c.flow.CanAdvance(c.current, c.State) }

// Advance moves to the next step when the current one validates. The position
// never exceeds the last step. It reports whether the current step validated.
func (c *Controller[S]) Advance() bool {
	if !c.CanAdvance() {
		return false
	}
	c.current = clamp(c.current+1, 1, c.flow.StepCount())
	return true
}

// Retreat moves back one step, never below step 1.
func (c *Controller[S]) Retreat() {
	c.current = clamp(c.current-1, 1, c.flow.StepCount())
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Package forms evaluates step navigation for the multi-step forms without
// keeping any server-side state. The client sends its current step and the
// accumulated form state; the response says where the form now stands.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	devdomain "github.com/atoolsera/agency-backend/internal/developers/domain"
	intakedomain "github.com/atoolsera/agency-backend/internal/intake/domain"
	"github.com/atoolsera/agency-backend/internal/stepper"
)

var (
	ErrUnknownFlow  = errors.New("unknown form")
	ErrInvalidState = errors.New("invalid form state")
)

// Position describes a form instance after a navigation request.
type Position struct {
	Flow       string   `json:"flow"`
	Step       int      `json:"step"`
	StepCount  int      `json:"step_count"`
	StepTitle  string   `json:"step_title"`
	Steps      []string `json:"steps"`
	Moved      bool     `json:"moved"`
	CanAdvance bool     `json:"can_advance"`
	Terminal   bool     `json:"terminal"`
}

type evaluator interface {
	advance(step int, raw json.RawMessage) (Position, error)
	retreat(step int, raw json.RawMessage) (Position, error)
}

type flowEvaluator[S any] struct {
	flow    *stepper.Flow[S]
	initial func() S
}

func (e flowEvaluator[S]) resume(step int, raw json.RawMessage) (*stepper.Controller[S], error) {
	state := e.initial()
	if len(raw) > 0 && string(raw) != "null" {
		if err := json.Unmarshal(raw, &state); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidState, err)
		}
	}
	return e.flow.Resume(step, state), nil
}

func (e flowEvaluator[S]) position(c *stepper.Controller[S], moved bool) Position {
	titles := e.flow.Titles()
	return Position{
		Flow:       e.flow.Name(),
		Step:       c.Current(),
		StepCount:  c.StepCount(),
		StepTitle:  titles[c.Current()-1],
		Steps:      titles,
		Moved:      moved,
		CanAdvance: c.CanAdvance(),
		Terminal:   c.IsTerminal(),
	}
}

func (e flowEvaluator[S]) advance(step int, raw json.RawMessage) (Position, error) {
	c, err := e.resume(step, raw)
	if err != nil {
		return Position{}, err
	}
	before := c.Current()
	ok := c.Advance()
	return e.position(c, ok && c.Current() != before), nil
}

func (e flowEvaluator[S]) retreat(step int, raw json.RawMessage) (Position, error) {
	c, err := e.resume(step, raw)
	if err != nil {
		return Position{}, err
	}
	before := c.Current()
	c.Retreat()
	return e.position(c, c.Current() != before), nil
}

// Registry maps flow names to their evaluators.
type Registry struct {
	flows map[string]evaluator
}

// Default registers the project intake, developer onboarding and job
// application forms.
func Default() *Registry {
	return &Registry{flows: map[string]evaluator{
		intakedomain.ProjectIntakeFlow.Name(): flowEvaluator[intakedomain.ProjectIntakeForm]{
			flow:    intakedomain.ProjectIntakeFlow,
			initial: func() intakedomain.ProjectIntakeForm { return intakedomain.ProjectIntakeForm{} },
		},
		devdomain.OnboardingFlow.Name(): flowEvaluator[devdomain.OnboardingForm]{
			flow:    devdomain.OnboardingFlow,
			initial: devdomain.NewOnboardingForm,
		},
		intakedomain.JobApplicationFlow.Name(): flowEvaluator[intakedomain.JobApplicationForm]{
			flow:    intakedomain.JobApplicationFlow,
			initial: func() intakedomain.JobApplicationForm { return intakedomain.JobApplicationForm{} },
		},
	}}
}

func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.flows))
	for name := range r.flows {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Advance validates the given step against state and moves forward when it
// passes. The step is clamped to the flow's bounds.
func (r *Registry) Advance(flow string, step int, state json.RawMessage) (Position, error) {
	e, ok := r.flows[flow]
	if !ok {
		return Position{}, ErrUnknownFlow
	}
	return e.advance(step, state)
}

// Retreat moves one step back. It never validates.
func (r *Registry) Retreat(flow string, step int, state json.RawMessage) (Position, error) {
	e, ok := r.flows[flow]
	if !ok {
		return Position{}, ErrUnknownFlow
	}
	return e.retreat(step, state)
}

// Package pipeline runs an ordered list of downstream calls on behalf of a
// single route handler. Each step consumes the prior step's parsed response
// (or the initial request envelope) and produces the next step's payload.
// Execution stops at the first failing or short-circuiting step, so a failed
// step never triggers the calls behind it.
package pipeline

import (
	"context"
	"errors"
	"net/http"
)

// Caller performs one downstream HTTP call. Implementations must return a
// *Failure for every non-success outcome so the executor can classify it.
type Caller interface {
	Call(ctx context.Context, method, target string, payload map[string]any) (map[string]any, error)
}

// Step describes one downstream call.
type Step struct {
	// Name identifies the step in failure reports and logs.
	Name string
	// Method is the HTTP method, defaulting to POST.
	Method string
	// Target is resolved by the Caller; either a path on its base URL or
	// an absolute URL.
	Target string
	// Transform builds the outgoing payload from the current pipeline
	// value. A nil Transform sends no body (GET-style steps).
	Transform func(current map[string]any) map[string]any
	// ShortCircuit, when set and true for the step's response, ends the
	// pipeline successfully without running the remaining steps.
	ShortCircuit func(resp map[string]any) bool
}

// Pipeline is an immutable, ordered step list.
type Pipeline struct {
	steps []Step
}

// New builds a pipeline. A pipeline with zero steps is a construction error,
// not a runtime outcome.
func New(steps ...Step) (*Pipeline, error) {
	if len(steps) == 0 {
		return nil, errors.New("pipeline requires at least one step")
	}
	return &Pipeline{steps: steps}, nil
}

// Run executes the steps strictly in order against caller, starting from
// initial. It returns the final Outcome, or a *Failure carrying the failing
// step's name. No retries happen at this layer; retry policy belongs to the
// Caller.
func (p *Pipeline) Run(ctx context.Context, caller Caller, initial map[string]any) (Outcome, error) {
	current := initial
	for _, step := range p.steps {
		method := step.Method
		if method == "" {
			method = http.MethodPost
		}

		var payload map[string]any
		if step.Transform != nil {
			payload = step.Transform(current)
		}

		resp, err := caller.Call(ctx, method, step.Target, payload)
		if err != nil {
			if f, ok := AsFailure(err); ok {
				f.Step = step.Name
				return Outcome{}, f
			}
			return Outcome{}, &Failure{Kind: KindUnreachable, Step: step.Name, Detail: err.Error()}
		}

		if step.ShortCircuit != nil && step.ShortCircuit(resp) {
			return Outcome{Value: resp, ShortCircuited: true}, nil
		}
		current = resp
	}
	return Outcome{Value: current}, nil
}

package pipeline

import (
	"errors"
	"fmt"
)

// Kind classifies a failure for the response mapper.
type Kind string

const (
	// KindBadRequest means the caller's input failed validation. Detected
	// before any downstream call is made.
	KindBadRequest Kind = "bad_request"
	// KindUnreachable means the downstream target could not be contacted
	// (connection refused, DNS failure, timeout).
	KindUnreachable Kind = "unreachable"
	// KindDownstreamRejected means the downstream returned a non-success status.
	KindDownstreamRejected Kind = "downstream_rejected"
	// KindMalformedResponse means the downstream returned unparseable or
	// unexpected-shape data on an otherwise successful call.
	KindMalformedResponse Kind = "malformed_response"
)

// Failure is the typed error threaded from downstream calls through the
// executor to the response mapper. Detail may contain raw downstream error
// bodies; it is for operator logs only and must never reach the client.
type Failure struct {
	Kind   Kind
	Step   string
	Status int
	Detail string
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s failure", f.Kind)
	if f.Step != "" {
		msg += " at step " + f.Step
	}
	if f.Status != 0 {
		msg += fmt.Sprintf(" (status %d)", f.Status)
	}
	if f.Detail != "" {
		msg += ": " + f.Detail
	}
	return msg
}

// BadRequest builds a validation failure. The detail is shown to the caller,
// so it must stay generic and non-sensitive.
func BadRequest(detail string) *Failure {
	return &Failure{Kind: KindBadRequest, Detail: detail}
}

// AsFailure unwraps err into a *Failure if one is in the chain.
func AsFailure(err error) (*Failure, bool) {
	var f *Failure
	ok := errors.As(err, &f)
	return f, ok
}

// Outcome is the value threaded through a pipeline. Exactly one step's
// response is held at a time; a new Outcome replaces its predecessor.
type Outcome struct {
	// Value is the final (or short-circuiting) step's parsed response.
	Value map[string]any
	// ShortCircuited reports early, successful termination before all
	// steps ran.
	ShortCircuited bool
}

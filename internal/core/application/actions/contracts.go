// Package actions implements the order action dispatch subsystem: a closed
// set of named business operations executed against an order aggregate.
//
// The action set is a compile-time enum (order.Action); each action maps to
// one Handler in a Registry built once at process start and injected into
// the Dispatcher. The dispatcher resolves the action, runs the handler, and
// records exactly one audit entry per successful execution. Handler errors
// propagate to the caller unchanged; audit failures never do.
package actions

import (
	"context"
	"fmt"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// UoW is the transaction boundary handlers run their mutations in.
type UoW = ports.UnitOfWork

// UoWFactory creates a fresh unit of work per handler execution.
type UoWFactory = ports.UnitOfWorkFactory

// Params is the open-ended parameter bag attached to an action request.
// Values arrive from the API as decoded JSON; handlers read them through
// the typed accessors, which fail with validation errors on missing or
// mistyped values.
type Params map[string]any

// String returns a required string parameter.
func (p Params) String(key string) (string, error) {
	v, ok := p[key]
	if !ok {
		return "", errs.NewValueIsRequiredError(key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", errs.NewValueIsInvalidErrorWithCause(key,
			fmt.Errorf("%v is not a non-empty string", v))
	}
	return s, nil
}

// OptionalString returns a string parameter or empty when absent.
func (p Params) OptionalString(key string) string {
	if s, ok := p[key].(string); ok {
		return s
	}
	return ""
}

// UUID returns a required UUID parameter given as its string form.
func (p Params) UUID(key string) (kernel.UUID, error) {
	s, err := p.String(key)
	if err != nil {
		return kernel.UUID{}, err
	}
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(key, err)
	}
	return id, nil
}

// Bool returns a boolean parameter, false when absent.
func (p Params) Bool(key string) bool {
	b, _ := p[key].(bool)
	return b
}

// Int returns an integer parameter, 0 when absent. JSON numbers decode as
// float64, which is accepted alongside native ints.
func (p Params) Int(key string) int {
	switch v := p[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	default:
		return 0
	}
}

// StringSlice returns a list-of-strings parameter, nil when absent.
func (p Params) StringSlice(key string) []string {
	raw, ok := p[key].([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// Request carries everything a handler needs: the target order, the acting
// user, and the action's parameter bag.
type Request struct {
	OrderID kernel.UUID
	Actor   audit.Actor
	Params  Params
}

// Validate checks the request identifies an order and an actor.
func (r Request) Validate() error {
	if err := r.OrderID.Validate(); err != nil {
		return err
	}
	return r.Actor.ID.Validate()
}

// Result is what every handler execution returns: the order acted on, the
// status delta, and handler-specific details that end up in the audit
// entry's metadata.
type Result struct {
	OrderID        kernel.UUID
	Title          string
	PreviousStatus order.Status
	NewStatus      order.Status
	Details        map[string]any
}

// Handler executes one named business operation against an order.
// Implementations delegate to domain aggregates and services inside a unit
// of work; they do not write audit entries themselves, the dispatcher does.
type Handler interface {
	Execute(ctx context.Context, req Request) (Result, error)
}

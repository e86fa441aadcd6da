package actions

import (
	"context"
	"log/slog"

	"orderdesk/internal/core/domain/model/audit"
	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Dispatcher resolves an action to its handler, executes it, and records
// the outcome. One successful execution produces exactly one audit entry;
// a failed execution produces none. Audit write failures are logged and
// swallowed so a full audit table can never block order flow.
type Dispatcher struct {
	registry *Registry
	audit    ports.AuditLogger
	notifier ports.Notifier
	logger   *slog.Logger
}

// NewDispatcher wires the dispatcher. All dependencies are required.
func NewDispatcher(
	registry *Registry,
	auditLogger ports.AuditLogger,
	notifier ports.Notifier,
	logger *slog.Logger,
) (*Dispatcher, error) {
	if registry == nil {
		return nil, errs.NewValueIsRequiredError("registry")
	}
	if auditLogger == nil {
		return nil, errs.NewValueIsRequiredError("auditLogger")
	}
	if notifier == nil {
		return nil, errs.NewValueIsRequiredError("notifier")
	}
	if logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	return &Dispatcher{
		registry: registry,
		audit:    auditLogger,
		notifier: notifier,
		logger:   logger.With("component", "action_dispatcher"),
	}, nil
}

// Registry exposes the underlying registry for action discovery.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Dispatch executes the named action against the request's order. The
// handler error, if any, is returned unchanged. On success the audit trail
// and the actor's webhook notification are appended outside the handler's
// transaction.
func (d *Dispatcher) Dispatch(ctx context.Context, action order.Action, req Request) (Result, error) {
	handler, err := d.registry.Get(action)
	if err != nil {
		return Result{}, err
	}

	result, err := handler.Execute(ctx, req)
	if err != nil {
		return Result{}, err
	}

	d.writeAudit(ctx, action, req, result)
	d.notify(ctx, action, req, result)

	return result, nil
}

// DispatchNamed parses a raw action name and dispatches it. Unknown names
// fail before any handler runs.
func (d *Dispatcher) DispatchNamed(ctx context.Context, name string, req Request) (Result, error) {
	action, err := order.ActionFromString(name)
	if err != nil {
		return Result{}, err
	}
	return d.Dispatch(ctx, action, req)
}

func (d *Dispatcher) writeAudit(ctx context.Context, action order.Action, req Request, result Result) {
	changes := map[string]audit.Change{}
	if result.PreviousStatus != result.NewStatus {
		changes["status"] = audit.Change{
			From: result.PreviousStatus.String(),
			To:   result.NewStatus.String(),
		}
	}

	entry, err := audit.NewEntry(action.String(), req.Actor, "order", result.OrderID.String(),
		result.Details, changes)
	if err != nil {
		d.logger.WarnContext(ctx, "audit entry rejected",
			"action", action.String(), "order_id", result.OrderID.String(), "error", err)
		return
	}

	if err := d.audit.Log(ctx, entry); err != nil {
		d.logger.WarnContext(ctx, "audit write failed",
			"action", action.String(), "order_id", result.OrderID.String(), "error", err)
	}
}

func (d *Dispatcher) notify(ctx context.Context, action order.Action, req Request, result Result) {
	d.notifier.Notify(ctx, req.Actor.ID, ports.Notification{
		Event:      action.String(),
		OrderID:    result.OrderID.String(),
		OrderTitle: result.Title,
		Status:     result.NewStatus.String(),
		TriggeredBy: ports.NotificationActor{
			ID:   req.Actor.ID.String(),
			Name: req.Actor.Name,
			Role: req.Actor.Role,
		},
	})
}

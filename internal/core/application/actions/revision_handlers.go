package actions

import (
	"context"
	"time"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/domain/services"
	"orderdesk/internal/core/ports"
)

// RequestRevisionHandler lets a client send a completed order back for
// rework. The request is only honored inside the website's revision window,
// counted from the order's completion time.
type RequestRevisionHandler struct {
	uowFactory UoWFactory
	settings   ports.SettingsProvider
}

// NewRequestRevisionHandler creates the revision request handler.
func NewRequestRevisionHandler(uowFactory UoWFactory, settings ports.SettingsProvider) RequestRevisionHandler {
	return RequestRevisionHandler{uowFactory: uowFactory, settings: settings}
}

func (h RequestRevisionHandler) Execute(ctx context.Context, req Request) (Result, error) {
	return mutateOrder(ctx, h.uowFactory, req, func(_ UoW, o *order.Order) (map[string]any, error) {
		windowDays, err := h.settings.RevisionWindowDays(ctx, o.WebsiteID())
		if err != nil {
			return nil, err
		}

		policy := services.NewRevisionPolicy(windowDays)
		if err := policy.CanRequestRevision(o, time.Now().UTC()); err != nil {
			return nil, err
		}
		if err := o.RequestRevision(); err != nil {
			return nil, err
		}

		details := map[string]any{"window_days": policy.WindowDays()}
		if instructions := req.Params.OptionalString("instructions"); instructions != "" {
			details["instructions"] = instructions
		}
		return details, nil
	})
}

// NewProcessRevisionHandler delivers the reworked order back to the client.
// The completion time resets, which restarts the revision window.
func NewProcessRevisionHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, _ Request) (map[string]any, error) {
		return nil, o.ProcessRevision(time.Now().UTC())
	}}
}

// NewDenyRevisionHandler rejects a revision request with a mandatory
// explanation; the order returns to completed with its original completion
// time intact.
func NewDenyRevisionHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		reason, err := req.Params.String("reason")
		if err != nil {
			return nil, err
		}
		if err := o.DenyRevision(); err != nil {
			return nil, err
		}
		return map[string]any{"reason": reason}, nil
	}}
}

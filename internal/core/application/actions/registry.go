package actions

import (
	"sort"

	"orderdesk/internal/core/domain/model/order"
	"orderdesk/internal/core/ports"
	"orderdesk/internal/pkg/errs"
)

// Dependencies carries everything handlers need. The registry wires each
// handler with the subset it uses.
type Dependencies struct {
	UoWFactory UoWFactory
	Settings   ports.SettingsProvider
}

// Validate checks all required dependencies are present.
func (d Dependencies) Validate() error {
	if d.UoWFactory == nil {
		return errs.NewValueIsRequiredError("uowFactory")
	}
	if d.Settings == nil {
		return errs.NewValueIsRequiredError("settings")
	}
	return nil
}

// Registry maps every order action to its handler. It is constructed once
// at process start; the action set is closed, so a lookup miss is a
// programming error on the caller's side, not a runtime condition.
type Registry struct {
	handlers map[order.Action]Handler
}

// NewRegistry builds the full action registry. Registration of a duplicate
// action fails construction, which keeps two handlers from ever competing
// for one action name.
func NewRegistry(deps Dependencies) (*Registry, error) {
	if err := deps.Validate(); err != nil {
		return nil, err
	}

	r := &Registry{handlers: make(map[order.Action]Handler)}

	entries := []struct {
		action  order.Action
		handler Handler
	}{
		{order.ActionMarkPaid, NewMarkPaidHandler(deps.UoWFactory)},
		{order.ActionPublish, NewPublishHandler(deps.UoWFactory)},
		{order.ActionAssign, NewAssignHandler(deps.UoWFactory)},
		{order.ActionReassign, NewReassignHandler(deps.UoWFactory)},
		{order.ActionCancel, NewCancelHandler(deps.UoWFactory)},
		{order.ActionHold, NewHoldHandler(deps.UoWFactory)},
		{order.ActionResume, NewResumeHandler(deps.UoWFactory)},
		{order.ActionMarkCritical, NewMarkCriticalHandler(deps.UoWFactory)},
		{order.ActionMarkLate, NewMarkLateHandler(deps.UoWFactory)},
		{order.ActionSubmit, NewSubmitHandler(deps.UoWFactory)},
		{order.ActionSendForEditing, NewSendForEditingHandler(deps.UoWFactory)},
		{order.ActionSendForReview, NewSendForReviewHandler(deps.UoWFactory)},
		{order.ActionComplete, NewCompleteHandler(deps.UoWFactory)},
		{order.ActionRequestRevision, NewRequestRevisionHandler(deps.UoWFactory, deps.Settings)},
		{order.ActionProcessRevision, NewProcessRevisionHandler(deps.UoWFactory)},
		{order.ActionDenyRevision, NewDenyRevisionHandler(deps.UoWFactory)},
		{order.ActionOpenDispute, NewOpenDisputeHandler(deps.UoWFactory)},
		{order.ActionResolveDispute, NewResolveDisputeHandler(deps.UoWFactory)},
		{order.ActionApprove, NewApproveHandler(deps.UoWFactory)},
		{order.ActionRate, NewRateHandler(deps.UoWFactory)},
		{order.ActionReview, NewReviewHandler(deps.UoWFactory)},
		{order.ActionArchive, NewArchiveHandler(deps.UoWFactory)},
		{order.ActionExpire, NewExpireHandler(deps.UoWFactory)},
		{order.ActionReopen, NewReopenHandler(deps.UoWFactory)},
		{order.ActionSetUrgency, NewSetUrgencyHandler(deps.UoWFactory)},
		{order.ActionCalculatePricing, NewCalculatePricingHandler(deps.UoWFactory, deps.Settings)},
		{order.ActionCreateWriterRequest, NewCreateWriterRequestHandler(deps.UoWFactory)},
		{order.ActionRespondWriterRequest, NewRespondWriterRequestHandler(deps.UoWFactory)},
		{order.ActionCreateReassignmentRequest, NewCreateReassignmentRequestHandler(deps.UoWFactory)},
		{order.ActionResolveReassignmentRequest, NewResolveReassignmentRequestHandler(deps.UoWFactory)},
	}

	for _, e := range entries {
		if err := r.register(e.action, e.handler); err != nil {
			return nil, err
		}
	}

	return r, nil
}

func (r *Registry) register(action order.Action, handler Handler) error {
	if _, exists := r.handlers[action]; exists {
		return errs.NewValueIsInvalidErrorWithCause(action.String(), errs.ErrDuplicateRegistration)
	}
	r.handlers[action] = handler
	return nil
}

// Get resolves an action to its handler.
func (r *Registry) Get(action order.Action) (Handler, error) {
	h, ok := r.handlers[action]
	if !ok {
		return nil, errs.NewObjectNotFoundError("action", action.String())
	}
	return h, nil
}

// Actions returns the registered action names in sorted order, for the
// discovery endpoint.
func (r *Registry) Actions() []string {
	names := make([]string, 0, len(r.handlers))
	for a := range r.handlers {
		names = append(names, a.String())
	}
	sort.Strings(names)
	return names
}

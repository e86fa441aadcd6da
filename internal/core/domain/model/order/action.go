package order

import (
	"fmt"
	"sort"

	"orderdesk/internal/pkg/errs"
)

// Action identifies one named business operation against an order.
// Actions form a closed enum: the set of operations is known at compile
// time, and only the HTTP boundary parses free-form strings into it.
//
// Every action carries an entry in the transition table below. An action
// invoked from a status the table does not list for it fails with a
// TransitionNotAllowedError and must leave the order untouched.
type Action int

const (
	// ActionUnknown represents an unrecognized action. Never dispatchable.
	ActionUnknown Action = iota

	ActionMarkPaid
	ActionPublish
	ActionAssign
	ActionReassign
	ActionCancel
	ActionHold
	ActionResume
	ActionMarkCritical
	ActionMarkLate
	ActionSubmit
	ActionSendForEditing
	ActionSendForReview
	ActionComplete
	ActionRequestRevision
	ActionProcessRevision
	ActionDenyRevision
	ActionOpenDispute
	ActionResolveDispute
	ActionApprove
	ActionRate
	ActionReview
	ActionArchive
	ActionExpire
	ActionReopen
	ActionSetUrgency
	ActionCalculatePricing
	ActionCreateWriterRequest
	ActionRespondWriterRequest
	ActionCreateReassignmentRequest
	ActionResolveReassignmentRequest
)

func getActionStrings() map[Action]string {
	return map[Action]string{
		ActionMarkPaid:                   "mark_paid",
		ActionPublish:                    "publish_order",
		ActionAssign:                     "assign_order",
		ActionReassign:                   "reassign_order",
		ActionCancel:                     "cancel_order",
		ActionHold:                       "hold_order",
		ActionResume:                     "resume_order",
		ActionMarkCritical:               "mark_critical",
		ActionMarkLate:                   "mark_late",
		ActionSubmit:                     "submit_order",
		ActionSendForEditing:             "send_for_editing",
		ActionSendForReview:              "send_for_review",
		ActionComplete:                   "complete_order",
		ActionRequestRevision:            "request_revision",
		ActionProcessRevision:            "process_revision",
		ActionDenyRevision:               "deny_revision",
		ActionOpenDispute:                "open_dispute",
		ActionResolveDispute:             "resolve_dispute",
		ActionApprove:                    "approve_order",
		ActionRate:                       "rate_order",
		ActionReview:                     "review_order",
		ActionArchive:                    "archive_order",
		ActionExpire:                     "expire_order",
		ActionReopen:                     "reopen_order",
		ActionSetUrgency:                 "set_urgency",
		ActionCalculatePricing:           "calculate_pricing",
		ActionCreateWriterRequest:        "create_writer_request",
		ActionRespondWriterRequest:       "respond_writer_request",
		ActionCreateReassignmentRequest:  "create_reassignment_request",
		ActionResolveReassignmentRequest: "resolve_reassignment_request",
	}
}

// String returns the snake_case action name used in the API and audit log.
func (a Action) String() string {
	if s, ok := getActionStrings()[a]; ok {
		return s
	}
	return "unknown"
}

// Validate checks that the action belongs to the enumerated set.
func (a Action) Validate() error {
	if _, ok := getActionStrings()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("action",
			fmt.Errorf("%d is not a valid action", a))
	}
	return nil
}

// ActionFromString parses an action name supplied by an API caller into the
// closed enum. Unrecognized names are rejected; this is the only place a
// free-form string enters the action system.
func ActionFromString(s string) (Action, error) {
	for action, str := range getActionStrings() {
		if str == s {
			return action, nil
		}
	}
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause("action",
		fmt.Errorf("%q is not a known action", s))
}

// AllActionNames returns every registered action name, sorted.
// Used by the HTTP layer to expose and validate the available action set.
func AllActionNames() []string {
	names := make([]string, 0, len(getActionStrings()))
	for _, s := range getActionStrings() {
		names = append(names, s)
	}
	sort.Strings(names)
	return names
}

// to builds a transition rule mapping each source status to a single target.
func to(target Status, sources ...Status) map[Status][]Status {
	rule := make(map[Status][]Status, len(sources))
	for _, s := range sources {
		rule[s] = []Status{target}
	}
	return rule
}

// preserving builds a rule for actions that are legal from the given
// statuses but never change the order's status.
func preserving(sources ...Status) map[Status][]Status {
	rule := make(map[Status][]Status, len(sources))
	for _, s := range sources {
		rule[s] = []Status{s}
	}
	return rule
}

// transitionTable is the single source of truth for order lifecycle rules:
// action -> source status -> allowed result statuses. Built once at process
// start; read-only afterwards.
var transitionTable = buildTransitionTable()

func buildTransitionTable() map[Action]map[Status][]Status {
	allStatuses := []Status{
		StatusCreated, StatusUnpaid, StatusPending, StatusOnHold,
		StatusAvailable, StatusPendingPreferred, StatusCritical,
		StatusAssigned, StatusLate, StatusRevision, StatusDisputed,
		StatusCompleted, StatusApproved, StatusCancelled, StatusArchived,
		StatusExpired, StatusUnderReview, StatusReOpened, StatusRated,
		StatusReviewed, StatusSubmitted, StatusUnderEditing,
	}

	return map[Action]map[Status][]Status{
		ActionMarkPaid: to(StatusPending, StatusCreated, StatusUnpaid),
		ActionPublish: {
			// A paid order with a preferred writer is first reserved for
			// that writer; otherwise it goes straight to the pool.
			StatusPending: {StatusAvailable, StatusPendingPreferred},
		},
		ActionAssign: to(StatusAssigned,
			StatusPending, StatusAvailable, StatusPendingPreferred,
			StatusCritical, StatusReOpened),
		ActionReassign: to(StatusAssigned,
			StatusAssigned, StatusLate, StatusRevision, StatusUnderEditing),
		ActionCancel: to(StatusCancelled,
			StatusCreated, StatusUnpaid, StatusPending, StatusAvailable,
			StatusPendingPreferred, StatusCritical, StatusAssigned,
			StatusOnHold),
		ActionHold:         to(StatusOnHold, StatusPending, StatusAvailable, StatusAssigned),
		ActionResume:       to(StatusPending, StatusOnHold),
		ActionMarkCritical: to(StatusCritical, StatusPending, StatusAvailable),
		ActionMarkLate:     to(StatusLate, StatusAssigned),
		ActionSubmit:       to(StatusSubmitted, StatusAssigned, StatusLate),
		ActionSendForEditing: to(StatusUnderEditing, StatusSubmitted),
		ActionSendForReview:  to(StatusUnderReview, StatusSubmitted),
		ActionComplete: to(StatusCompleted,
			StatusAssigned, StatusLate, StatusSubmitted,
			StatusUnderEditing, StatusUnderReview),
		ActionRequestRevision: to(StatusRevision, StatusCompleted),
		ActionProcessRevision: to(StatusCompleted, StatusRevision),
		// A denied revision returns the order to completed; there is no
		// separate terminal status for denial.
		ActionDenyRevision: to(StatusCompleted, StatusRevision),
		ActionOpenDispute: to(StatusDisputed,
			StatusAssigned, StatusLate, StatusSubmitted, StatusRevision,
			StatusCompleted),
		ActionResolveDispute: {
			StatusDisputed: {StatusCompleted, StatusReOpened},
		},
		ActionApprove: to(StatusApproved, StatusCompleted),
		ActionRate:    to(StatusRated, StatusApproved),
		ActionReview:  to(StatusReviewed, StatusRated),
		ActionArchive: to(StatusArchived,
			StatusCompleted, StatusApproved, StatusRated, StatusReviewed),
		ActionExpire: to(StatusExpired, StatusCreated, StatusUnpaid),
		ActionReopen: to(StatusReOpened, StatusCancelled, StatusExpired),
		ActionSetUrgency: preserving(
			StatusCreated, StatusUnpaid, StatusPending, StatusAvailable,
			StatusPendingPreferred, StatusCritical, StatusAssigned),
		ActionCalculatePricing: preserving(allStatuses...),
		ActionCreateWriterRequest: preserving(
			StatusAssigned, StatusLate, StatusUnderEditing),
		ActionRespondWriterRequest: preserving(
			StatusAssigned, StatusLate, StatusUnderEditing),
		ActionCreateReassignmentRequest: preserving(
			StatusAssigned, StatusLate, StatusRevision),
		ActionResolveReassignmentRequest: preserving(
			StatusAssigned, StatusLate, StatusRevision),
	}
}

// Allows reports whether the action is legal from this status.
func (s Status) Allows(a Action) bool {
	rule, ok := transitionTable[a]
	if !ok {
		return false
	}
	_, ok = rule[s]
	return ok
}

// Transition applies the action to this status and returns the primary
// target status. Actions with multiple allowed targets (resolve_dispute,
// publish_order) use TransitionTo instead.
//
// Returns a TransitionNotAllowedError if the action is not legal from the
// current status; the receiver is never modified.
func (s Status) Transition(a Action) (Status, error) {
	rule, ok := transitionTable[a]
	if !ok {
		return StatusUnknown, errs.NewTransitionNotAllowedError(a.String(), s.String())
	}
	targets, ok := rule[s]
	if !ok || len(targets) == 0 {
		return StatusUnknown, errs.NewTransitionNotAllowedError(a.String(), s.String())
	}
	return targets[0], nil
}

// TransitionTo applies the action with an explicit target status, used by
// actions whose outcome depends on handler parameters. The target must be
// one of the statuses the table allows for this action and source status.
func (s Status) TransitionTo(a Action, target Status) (Status, error) {
	rule, ok := transitionTable[a]
	if !ok {
		return StatusUnknown, errs.NewTransitionNotAllowedError(a.String(), s.String())
	}
	targets, ok := rule[s]
	if !ok {
		return StatusUnknown, errs.NewTransitionNotAllowedError(a.String(), s.String())
	}
	for _, t := range targets {
		if t == target {
			return target, nil
		}
	}
	return StatusUnknown, errs.NewTransitionNotAllowedErrorWithCause(
		a.String(), s.String(),
		fmt.Errorf("%s is not an allowed target", target))
}

// AllowedActions returns every action legal from this status, sorted by
// action name. Used for API introspection.
func (s Status) AllowedActions() []Action {
	actions := make([]Action, 0)
	for a, rule := range transitionTable {
		if _, ok := rule[s]; ok {
			actions = append(actions, a)
		}
	}
	sort.Slice(actions, func(i, j int) bool {
		return actions[i].String() < actions[j].String()
	})
	return actions
}

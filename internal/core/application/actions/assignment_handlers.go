package actions

import (
	"orderdesk/internal/core/domain/model/order"
)

// NewAssignHandler assigns an available order to a writer.
func NewAssignHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		writerID, err := req.Params.UUID("writer_id")
		if err != nil {
			return nil, err
		}
		if err := o.Assign(writerID); err != nil {
			return nil, err
		}
		return map[string]any{"writer_id": writerID.String()}, nil
	}}
}

// NewReassignHandler moves an assigned order to a different writer,
// recording both sides of the handover.
func NewReassignHandler(uowFactory UoWFactory) Handler {
	return orderTransitionHandler{uowFactory, func(o *order.Order, req Request) (map[string]any, error) {
		writerID, err := req.Params.UUID("writer_id")
		if err != nil {
			return nil, err
		}

		details := map[string]any{"writer_id": writerID.String()}
		if previous := o.Writer(); previous != nil {
			details["previous_writer_id"] = previous.String()
		}
		if reason := req.Params.OptionalString("reason"); reason != "" {
			details["reason"] = reason
		}

		if err := o.Reassign(writerID); err != nil {
			return nil, err
		}
		return details, nil
	}}
}

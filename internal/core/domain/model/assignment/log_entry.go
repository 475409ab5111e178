package assignment

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
)

// Action names the event recorded in the assignment audit log.
type Action string

const (
	ActionAssigned       Action = "ASSIGNED"
	ActionAssignFailed   Action = "ASSIGN_FAILED"
	ActionRetryConfirmed Action = "RETRY_CONFIRMED"
	ActionRetryFailed    Action = "RETRY_FAILED"
)

// LogEntry is a write-once audit record. It has no mutators.
type LogEntry struct {
	id           kernel.UUID
	assignmentID kernel.UUID
	action       Action
	details      map[string]any
	createdAt    time.Time
}

// NewLogEntry builds an audit record for assignmentID.
func NewLogEntry(assignmentID kernel.UUID, action Action, details map[string]any, now time.Time) (LogEntry, error) {
	if err := assignmentID.Validate(); err != nil {
		return LogEntry{}, err
	}
	if action == "" {
		return LogEntry{}, errors.New("audit action is required")
	}

	copied := make(map[string]any, len(details))
	for k, v := range details {
		copied[k] = v
	}

	return LogEntry{
		id:           kernel.NewUUID(),
		assignmentID: assignmentID,
		action:       action,
		details:      copied,
		createdAt:    now.UTC(),
	}, nil
}

func (e LogEntry) ID() kernel.UUID           { return e.id }
func (e LogEntry) AssignmentID() kernel.UUID { return e.assignmentID }
func (e LogEntry) Action() Action            { return e.action }
func (e LogEntry) CreatedAt() time.Time      { return e.createdAt }

// Details returns a copy of the structured detail.
func (e LogEntry) Details() map[string]any {
	out := make(map[string]any, len(e.details))
	for k, v := range e.details {
		out[k] = v
	}
	return out
}

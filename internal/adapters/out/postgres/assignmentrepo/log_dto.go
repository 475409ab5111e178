package assignmentrepo

import (
	"encoding/json"
	"time"

	"dispatch/internal/core/domain/model/assignment"

	"github.com/google/uuid"
)

// LogEntryDTO is one append-only audit row. Details are stored as jsonb.
type LogEntryDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID `gorm:"type:uuid;not null;index"`
	Action       string    `gorm:"type:varchar(32);not null"`
	Details      string    `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

// TableName specifies the database table name for audit rows.
func (LogEntryDTO) TableName() string {
	return "assignment_logs"
}

func logEntryFromDomain(entry assignment.LogEntry) (LogEntryDTO, error) {
	details, err := json.Marshal(entry.Details())
	if err != nil {
		return LogEntryDTO{}, err
	}

	return LogEntryDTO{
		ID:           entry.ID().Bytes(),
		AssignmentID: entry.AssignmentID().Bytes(),
		Action:       string(entry.Action()),
		Details:      string(details),
		CreatedAt:    entry.CreatedAt(),
	}, nil
}

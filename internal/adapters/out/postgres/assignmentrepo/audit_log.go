package assignmentrepo

import (
	"context"

	"dispatch/internal/core/domain/model/assignment"

	"gorm.io/gorm"
)

// GormAuditLog implements AuditLog using GORM. Rows are only ever inserted.
type GormAuditLog struct {
	db *gorm.DB
}

// NewGormAuditLog creates a new GORM audit log.
func NewGormAuditLog(db *gorm.DB) *GormAuditLog {
	return &GormAuditLog{db: db}
}

// Append writes one audit row.
func (l *GormAuditLog) Append(ctx context.Context, entry assignment.LogEntry) error {
	dto, err := logEntryFromDomain(entry)
	if err != nil {
		return err
	}

	return l.db.WithContext(ctx).Create(&dto).Error
}

package repository

import (
	"Followdesk/internal/model"
	"context"

	"gorm.io/gorm"
)

type AuditLogRepo interface {
	Create(ctx context.Context, entry *model.AuditLog) error
	ListRecent(ctx context.Context, limit int) ([]*model.AuditLog, error)
}

type auditLogRepoImpl struct {
	db *gorm.DB
}

func NewAuditLogRepo(db *gorm.DB) AuditLogRepo {
	return &auditLogRepoImpl{db: db}
}

func (s *auditLogRepoImpl) Create(ctx context.Context, entry *model.AuditLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

func (s *auditLogRepoImpl) ListRecent(ctx context.Context, limit int) ([]*model.AuditLog, error) {
	logs := make([]*model.AuditLog, 0)
	err := s.db.WithContext(ctx).
		Order("timestamp DESC").
		Order("id DESC").
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}
	return logs, nil
}

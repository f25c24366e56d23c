package repository

import (
	"context"

	"leakerflow/internal/model"

	"gorm.io/gorm"
)

type AuditRepo interface {
	CreateLog(ctx context.Context, log *model.AuditLog) error
	GetLogsByEntity(ctx context.Context, entityType string, entityID uint64, limit, offset int) ([]*model.AuditLog, error)
}

type AuditRepoImpl struct {
	db *gorm.DB
}

func NewAuditRepo(db *gorm.DB) AuditRepo {
	return &AuditRepoImpl{db}
}

func (s *AuditRepoImpl) CreateLog(ctx context.Context, log *model.AuditLog) error {
	return s.db.WithContext(ctx).Create(log).Error
}

func (s *AuditRepoImpl) GetLogsByEntity(ctx context.Context, entityType string, entityID uint64, limit, offset int) ([]*model.AuditLog, error) {
	var logs []*model.AuditLog
	err := s.db.WithContext(ctx).
		Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	return logs, err
}

package service

import (
	"context"
	log "log/slog"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/repository"

	"github.com/goccy/go-json"
)

// AuditService records admin and workflow actions. Logging must never block
// the action itself; failures are logged and swallowed.
type AuditService interface {
	LogArticleAction(ctx context.Context, actorID uint64, action model.AuditActionType, articleID uint64, details map[string]interface{})
	GetArticleAuditLogs(ctx context.Context, articleID uint64, page, pageSize int) ([]*model.AuditLog, error)
}

type auditServiceImpl struct {
	auditRepo repository.AuditRepo
}

func NewAuditService(auditRepo repository.AuditRepo) AuditService {
	return &auditServiceImpl{auditRepo: auditRepo}
}

func (s *auditServiceImpl) LogArticleAction(ctx context.Context, actorID uint64, action model.AuditActionType, articleID uint64, details map[string]interface{}) {
	entry := &model.AuditLog{
		ActorID:    actorID,
		ActionType: action,
		EntityType: consts.EntityTypeArticle,
		EntityID:   articleID,
		CreatedAt:  time.Now(),
	}
	if len(details) > 0 {
		if data, err := json.Marshal(details); err == nil {
			entry.Details = string(data)
		}
	}

	if err := s.auditRepo.CreateLog(ctx, entry); err != nil {
		log.ErrorContext(ctx, "write audit log error",
			"action", action, "articleID", articleID, "err", err)
	}
}

func (s *auditServiceImpl) GetArticleAuditLogs(ctx context.Context, articleID uint64, page, pageSize int) ([]*model.AuditLog, error) {
	return s.auditRepo.GetLogsByEntity(ctx, consts.EntityTypeArticle, articleID, pageSize, (page-1)*pageSize)
}

package model

import (
	"time"
)

type AuditActionType string

const (
	AuditArticleSubmitted AuditActionType = "article_submitted"
	AuditArticleApproved  AuditActionType = "article_approved"
	AuditArticleRejected  AuditActionType = "article_rejected"
	AuditArticleDeleted   AuditActionType = "article_deleted"
)

// AuditLog records admin and workflow actions for traceability.
type AuditLog struct {
	ID         uint64          `gorm:"primaryKey" json:"id"`
	ActorID    uint64          `gorm:"not null;index:idx_actor_id" json:"actorId"`
	ActionType AuditActionType `gorm:"type:varchar(64);not null;index:idx_action_type" json:"actionType"`
	EntityType string          `gorm:"type:varchar(32);not null" json:"entityType"`
	EntityID   uint64          `gorm:"not null;index:idx_entity_id" json:"entityId"`
	Details    string          `gorm:"type:json" json:"details"`
	CreatedAt  time.Time       `json:"createdAt"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

package model

import (
	"time"
)

type EventType string

const (
	EventView     EventType = "view"
	EventShare    EventType = "share"
	EventSave     EventType = "save"
	EventComment  EventType = "comment"
	EventLike     EventType = "like"
	EventUpvote   EventType = "upvote"
	EventDownvote EventType = "downvote"
)

func (t EventType) Valid() bool {
	switch t {
	case EventView, EventShare, EventSave, EventComment, EventLike, EventUpvote, EventDownvote:
		return true
	}
	return false
}

// Deduplicated returns true for event types counted at most once per
// (article, actor). Shares, comments and likes are distinct facts each time.
func (t EventType) Deduplicated() bool {
	return t == EventView || t == EventSave
}

// ArticleEvent is an append-only interaction record. UserID 0 marks an
// anonymous actor; anonymous events are stored but excluded from aggregates.
type ArticleEvent struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	ArticleID        uint64    `gorm:"not null;index:idx_article_type,priority:1" json:"articleId"`
	AccountID        uint64    `gorm:"not null;index:idx_account_id" json:"accountId"`
	UserID           uint64    `gorm:"not null;default:0;index:idx_user_id" json:"userId"`
	EventType        EventType `gorm:"type:varchar(16);not null;index:idx_article_type,priority:2" json:"eventType"`
	ReadTimeSeconds  int       `gorm:"not null;default:0" json:"readTimeSeconds"`
	ScrollPercentage int       `gorm:"not null;default:0" json:"scrollPercentage"`
	Metadata         string    `gorm:"type:json" json:"metadata"`
	CreatedAt        time.Time `gorm:"not null;index:idx_created_at" json:"createdAt"`
}

func (ArticleEvent) TableName() string {
	return "article_events"
}

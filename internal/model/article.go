package model

import (
	"time"
)

type ArticleStatus string

const (
	StatusDraft           ArticleStatus = "draft"
	StatusPendingApproval ArticleStatus = "pending_approval"
	StatusPublished       ArticleStatus = "published"
	StatusArchived        ArticleStatus = "archived"
	StatusScheduled       ArticleStatus = "scheduled"
)

func (s ArticleStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusPendingApproval, StatusPublished, StatusArchived, StatusScheduled:
		return true
	}
	return false
}

type ArticleVisibility string

const (
	VisibilityPrivate ArticleVisibility = "private"
	VisibilityAccount ArticleVisibility = "account"
	VisibilityPublic  ArticleVisibility = "public"
)

func (v ArticleVisibility) Valid() bool {
	switch v {
	case VisibilityPrivate, VisibilityAccount, VisibilityPublic:
		return true
	}
	return false
}

type Article struct {
	ID         uint64            `gorm:"primaryKey" json:"id"`
	AccountID  uint64            `gorm:"not null;index:idx_account_id" json:"account_id"`
	CreatedBy  uint64            `gorm:"not null;index:idx_created_by" json:"created_by"`
	Title      string            `gorm:"type:varchar(255);not null" json:"title"`
	Subtitle   string            `gorm:"type:varchar(255)" json:"subtitle"`
	Content    string            `gorm:"not null" json:"content"`
	Category   string            `gorm:"type:varchar(64);index:idx_category" json:"category"`
	Status     ArticleStatus     `gorm:"type:varchar(32);not null;default:draft;index:idx_status" json:"status"`
	Visibility ArticleVisibility `gorm:"type:varchar(16);not null;default:account" json:"visibility"`

	Upvotes    int     `gorm:"not null;default:0" json:"upvotes"`
	Downvotes  int     `gorm:"not null;default:0" json:"downvotes"`
	VoteScore  int     `gorm:"not null;default:0" json:"vote_score"`
	TrendScore float64 `gorm:"not null;default:0" json:"trend_score"`
	IsTrending bool    `gorm:"type:tinyint(1);not null;default:0" json:"is_trending"`

	TotalViews    int     `gorm:"not null;default:0" json:"total_views"`
	UniqueViews   int     `gorm:"not null;default:0" json:"unique_views"`
	TotalShares   int     `gorm:"not null;default:0" json:"total_shares"`
	TotalSaves    int     `gorm:"not null;default:0" json:"total_saves"`
	TotalComments int     `gorm:"not null;default:0" json:"total_comments"`
	AvgReadTime   float64 `gorm:"not null;default:0" json:"avg_read_time"`
	BounceRate    float64 `gorm:"not null;default:0" json:"bounce_rate"`

	ApprovedBy             *uint64    `json:"approved_by"`
	ApprovedAt             *time.Time `json:"approved_at"`
	RejectionReason        *string    `gorm:"type:varchar(1024)" json:"rejection_reason"`
	SubmittedForApprovalAt *time.Time `json:"submitted_for_approval_at"`

	PublishDate *time.Time `json:"publish_date"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (Article) TableName() string {
	return "articles"
}

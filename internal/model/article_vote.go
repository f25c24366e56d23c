package model

import (
	"time"
)

type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// ArticleVote holds at most one live row per (article, voter).
type ArticleVote struct {
	ArticleID uint64    `gorm:"primaryKey" json:"articleId"`
	UserID    uint64    `gorm:"primaryKey;index:idx_user_id" json:"userId"`
	VoteType  VoteType  `gorm:"type:varchar(16);not null" json:"voteType"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ArticleVote) TableName() string {
	return "article_votes"
}

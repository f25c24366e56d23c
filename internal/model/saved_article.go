package model

import (
	"time"
)

// SavedArticle existence means "currently saved". It is the source of truth
// for total_saves; the save event in the ledger exists for time-series only.
type SavedArticle struct {
	UserID    uint64    `gorm:"primaryKey" json:"userId"`
	ArticleID uint64    `gorm:"primaryKey;index:idx_article_id" json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

func (SavedArticle) TableName() string {
	return "saved_articles"
}

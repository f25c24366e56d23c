package model

import (
	"time"
)

// ArticleDailyAnalytics is one rollup row per (article, date), written only
// by the daily rollup job.
type ArticleDailyAnalytics struct {
	ID         uint64    `gorm:"primaryKey"`
	ArticleID  uint64    `gorm:"not null;index:idx_article_date,unique" json:"articleId"`
	AccountID  uint64    `gorm:"not null;index:idx_account_id" json:"accountId"`
	MetricDate time.Time `gorm:"not null;index:idx_article_date,unique;column:metric_date" json:"metricDate"`

	Views    int `gorm:"not null;default:0" json:"views"`
	Shares   int `gorm:"not null;default:0" json:"shares"`
	Saves    int `gorm:"not null;default:0" json:"saves"`
	Comments int `gorm:"not null;default:0" json:"comments"`
	Likes    int `gorm:"not null;default:0" json:"likes"`
	Votes    int `gorm:"not null;default:0" json:"votes"`

	AvgReadTime         float64 `gorm:"not null;default:0" json:"avgReadTime"`
	AvgScrollPercentage float64 `gorm:"not null;default:0" json:"avgScrollPercentage"`
	BounceRate          float64 `gorm:"not null;default:0" json:"bounceRate"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (ArticleDailyAnalytics) TableName() string {
	return "article_daily_analytics"
}

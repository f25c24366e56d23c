package repository

import (
	"context"
	"time"

	"leakerflow/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AnalyticsRepo interface {
	// UpsertDaily overwrites on (article_id, metric_date) conflict so a
	// re-run for the same date converges to the same row.
	UpsertDaily(ctx context.Context, row *model.ArticleDailyAnalytics) error
	GetDailyRange(ctx context.Context, articleID uint64, from, to time.Time) ([]*model.ArticleDailyAnalytics, error)
}

type AnalyticsRepoImpl struct {
	db *gorm.DB
}

func NewAnalyticsRepo(db *gorm.DB) AnalyticsRepo {
	return &AnalyticsRepoImpl{db}
}

func (s *AnalyticsRepoImpl) UpsertDaily(ctx context.Context, row *model.ArticleDailyAnalytics) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "article_id"}, {Name: "metric_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"account_id", "views", "shares", "saves", "comments", "likes", "votes",
			"avg_read_time", "avg_scroll_percentage", "bounce_rate", "updated_at",
		}),
	}).Create(row).Error
}

func (s *AnalyticsRepoImpl) GetDailyRange(ctx context.Context, articleID uint64, from, to time.Time) ([]*model.ArticleDailyAnalytics, error) {
	var rows []*model.ArticleDailyAnalytics
	err := s.db.WithContext(ctx).
		Where("article_id = ? AND metric_date >= ? AND metric_date <= ?", articleID, from, to).
		Order("metric_date ASC").
		Find(&rows).Error
	return rows, err
}

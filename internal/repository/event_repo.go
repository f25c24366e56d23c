package repository

import (
	"context"
	"time"

	"leakerflow/internal/model"

	"gorm.io/gorm"
)

// EngagementAggregate is a recount of one article's event ledger restricted
// to authenticated actors.
type EngagementAggregate struct {
	TotalViews    int64
	UniqueViews   int64
	TotalShares   int64
	TotalSaves    int64
	TotalComments int64
	TotalLikes    int64
	AvgReadTime   float64
	BounceRate    float64
}

// DailyAggregate is one (article, account) group of a single calendar day.
type DailyAggregate struct {
	ArticleID           uint64
	AccountID           uint64
	Views               int64
	Shares              int64
	Saves               int64
	Comments            int64
	Likes               int64
	Votes               int64
	AvgReadTime         float64
	AvgScrollPercentage float64
	BounceViews         int64
}

type EventRepo interface {
	CreateEvent(ctx context.Context, event *model.ArticleEvent) error
	ExistsEvent(ctx context.Context, articleID, userID uint64, eventType model.EventType) (bool, error)
	DeleteEvent(ctx context.Context, articleID, userID uint64, eventType model.EventType) error

	AggregateArticle(ctx context.Context, articleID uint64) (*EngagementAggregate, error)
	AggregateByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]*DailyAggregate, error)
}

type EventRepoImpl struct {
	db *gorm.DB
}

func NewEventRepo(db *gorm.DB) EventRepo {
	return &EventRepoImpl{db}
}

func (s *EventRepoImpl) CreateEvent(ctx context.Context, event *model.ArticleEvent) error {
	return s.db.WithContext(ctx).Create(event).Error
}

func (s *EventRepoImpl) ExistsEvent(ctx context.Context, articleID, userID uint64, eventType model.EventType) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ArticleEvent{}).
		Where("article_id = ? AND user_id = ? AND event_type = ?", articleID, userID, eventType).
		Count(&count).Error
	return count > 0, err
}

func (s *EventRepoImpl) DeleteEvent(ctx context.Context, articleID, userID uint64, eventType model.EventType) error {
	return s.db.WithContext(ctx).
		Where("article_id = ? AND user_id = ? AND event_type = ?", articleID, userID, eventType).
		Delete(&model.ArticleEvent{}).Error
}

func (s *EventRepoImpl) AggregateArticle(ctx context.Context, articleID uint64) (*EngagementAggregate, error) {
	agg := &EngagementAggregate{}

	// user_id > 0: anonymous events never count toward aggregates.
	base := func() *gorm.DB {
		return s.db.WithContext(ctx).Model(&model.ArticleEvent{}).
			Where("article_id = ? AND user_id > 0", articleID)
	}

	type viewStats struct {
		TotalViews  int64
		UniqueViews int64
		AvgReadTime float64
		BounceViews int64
	}
	var views viewStats
	err := base().
		Select(
			"COUNT(*) AS total_views",
			"COUNT(DISTINCT user_id) AS unique_views",
			"COALESCE(AVG(CASE WHEN read_time_seconds > 0 THEN read_time_seconds END), 0) AS avg_read_time",
			"SUM(read_time_seconds < 10) AS bounce_views",
		).
		Where("event_type = ?", model.EventView).
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	agg.TotalViews = views.TotalViews
	agg.UniqueViews = views.UniqueViews
	agg.AvgReadTime = views.AvgReadTime
	if views.TotalViews > 0 {
		agg.BounceRate = float64(views.BounceViews) * 100 / float64(views.TotalViews)
	}

	type typeCount struct {
		EventType model.EventType
		Count     int64
	}
	var rows []typeCount
	err = base().
		Select("event_type, COUNT(*) AS count").
		Where("event_type IN ?", []model.EventType{model.EventShare, model.EventSave, model.EventComment, model.EventLike}).
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		switch r.EventType {
		case model.EventShare:
			agg.TotalShares = r.Count
		case model.EventSave:
			agg.TotalSaves = r.Count
		case model.EventComment:
			agg.TotalComments = r.Count
		case model.EventLike:
			agg.TotalLikes = r.Count
		}
	}

	return agg, nil
}

func (s *EventRepoImpl) AggregateByDate(ctx context.Context, dayStart, dayEnd time.Time) ([]*DailyAggregate, error) {
	var rows []*DailyAggregate
	err := s.db.WithContext(ctx).Model(&model.ArticleEvent{}).
		Select(
			"article_id",
			"account_id",
			"SUM(event_type = 'view') AS views",
			"SUM(event_type = 'share') AS shares",
			"SUM(event_type = 'save') AS saves",
			"SUM(event_type = 'comment') AS comments",
			"SUM(event_type = 'like') AS likes",
			"SUM(event_type IN ('upvote', 'downvote')) AS votes",
			"COALESCE(AVG(CASE WHEN event_type = 'view' AND read_time_seconds > 0 THEN read_time_seconds END), 0) AS avg_read_time",
			"COALESCE(AVG(CASE WHEN event_type = 'view' THEN scroll_percentage END), 0) AS avg_scroll_percentage",
			"SUM(event_type = 'view' AND read_time_seconds < 10) AS bounce_views",
		).
		Where("user_id > 0 AND created_at >= ? AND created_at < ?", dayStart, dayEnd).
		Group("article_id, account_id").
		Scan(&rows).Error
	return rows, err
}

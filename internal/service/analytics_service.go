package service

import (
	"context"
	log "log/slog"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/pkg/util"
	"leakerflow/internal/repository"
)

type AnalyticsService interface {
	// RollupDay aggregates the event ledger for one calendar day into
	// article_daily_analytics, overwriting on re-run. Returns the number of
	// rows written.
	RollupDay(ctx context.Context, date time.Time) (int, error)
	// GetArticleAnalytics returns the last N days of rollups for an article
	// the actor manages.
	GetArticleAnalytics(ctx context.Context, actor *Actor, articleID uint64, days int) ([]*model.ArticleDailyAnalytics, error)
}

type analyticsServiceImpl struct {
	articleRepo   repository.ArticleRepo
	eventRepo     repository.EventRepo
	analyticsRepo repository.AnalyticsRepo
}

func NewAnalyticsService(
	articleRepo repository.ArticleRepo,
	eventRepo repository.EventRepo,
	analyticsRepo repository.AnalyticsRepo,
) AnalyticsService {
	return &analyticsServiceImpl{
		articleRepo:   articleRepo,
		eventRepo:     eventRepo,
		analyticsRepo: analyticsRepo,
	}
}

func (s *analyticsServiceImpl) RollupDay(ctx context.Context, date time.Time) (int, error) {
	dayStart := util.GetMidnight(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	aggregates, err := s.eventRepo.AggregateByDate(ctx, dayStart, dayEnd)
	if err != nil {
		return 0, err
	}

	written := 0
	for _, agg := range aggregates {
		row := &model.ArticleDailyAnalytics{
			ArticleID:           agg.ArticleID,
			AccountID:           agg.AccountID,
			MetricDate:          dayStart,
			Views:               int(agg.Views),
			Shares:              int(agg.Shares),
			Saves:               int(agg.Saves),
			Comments:            int(agg.Comments),
			Likes:               int(agg.Likes),
			Votes:               int(agg.Votes),
			AvgReadTime:         agg.AvgReadTime,
			AvgScrollPercentage: agg.AvgScrollPercentage,
		}
		if agg.Views > 0 {
			row.BounceRate = float64(agg.BounceViews) * 100 / float64(agg.Views)
		}

		if err := s.analyticsRepo.UpsertDaily(ctx, row); err != nil {
			log.ErrorContext(ctx, "upsert daily analytics error",
				"articleID", agg.ArticleID, "date", dayStart.Format(time.DateOnly), "err", err)
			continue
		}
		written++
	}
	return written, nil
}

func (s *analyticsServiceImpl) GetArticleAnalytics(ctx context.Context, actor *Actor, articleID uint64, days int) ([]*model.ArticleDailyAnalytics, error) {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	// The analytics dashboard is for whoever can edit the article.
	if !CanAccess(actor, article, ActionWrite) {
		return nil, ErrForbidden
	}

	to := util.GetMidnight(time.Now())
	from := to.AddDate(0, 0, -days)
	return s.analyticsRepo.GetDailyRange(ctx, articleID, from, to)
}

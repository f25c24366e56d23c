package service

import (
	"context"
	"testing"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/pkg/util"

	"github.com/stretchr/testify/assert"
)

func seedDayEvents(eventRepo *fakeEventRepo, articleID, accountID uint64, day time.Time) {
	at := day.Add(10 * time.Hour)
	events := []*model.ArticleEvent{
		{ArticleID: articleID, AccountID: accountID, UserID: 1, EventType: model.EventView, ReadTimeSeconds: 60, ScrollPercentage: 80, CreatedAt: at},
		{ArticleID: articleID, AccountID: accountID, UserID: 2, EventType: model.EventView, ReadTimeSeconds: 4, ScrollPercentage: 20, CreatedAt: at},
		{ArticleID: articleID, AccountID: accountID, UserID: 1, EventType: model.EventShare, CreatedAt: at},
		{ArticleID: articleID, AccountID: accountID, UserID: 2, EventType: model.EventUpvote, CreatedAt: at},
		// Anonymous rows never reach the rollup.
		{ArticleID: articleID, AccountID: accountID, UserID: 0, EventType: model.EventView, CreatedAt: at},
		// Events outside the day are excluded.
		{ArticleID: articleID, AccountID: accountID, UserID: 3, EventType: model.EventView, CreatedAt: at.Add(24 * time.Hour)},
	}
	for _, event := range events {
		_ = eventRepo.CreateEvent(context.Background(), event)
	}
}

func TestRollupDay(t *testing.T) {
	articleRepo := newFakeArticleRepo()
	eventRepo := newFakeEventRepo()
	analyticsRepo := newFakeAnalyticsRepo()
	svc := NewAnalyticsService(articleRepo, eventRepo, analyticsRepo)

	day := util.GetMidnight(time.Now().AddDate(0, 0, -1))
	seedDayEvents(eventRepo, 1, 10, day)

	written, err := svc.RollupDay(context.Background(), day)
	assert.NoError(t, err)
	assert.Equal(t, 1, written)

	row := analyticsRepo.rows[analyticsKey{1, day.Format(time.DateOnly)}]
	assert.NotNil(t, row)
	assert.Equal(t, 2, row.Views)
	assert.Equal(t, 1, row.Shares)
	assert.Equal(t, 1, row.Votes)
	assert.InDelta(t, 32.0, row.AvgReadTime, 1e-9)
	assert.InDelta(t, 50.0, row.AvgScrollPercentage, 1e-9)
	assert.InDelta(t, 50.0, row.BounceRate, 1e-9)
	assert.Equal(t, uint64(10), row.AccountID)
}

func TestRollupDayIdempotent(t *testing.T) {
	articleRepo := newFakeArticleRepo()
	eventRepo := newFakeEventRepo()
	analyticsRepo := newFakeAnalyticsRepo()
	svc := NewAnalyticsService(articleRepo, eventRepo, analyticsRepo)

	day := util.GetMidnight(time.Now().AddDate(0, 0, -1))
	seedDayEvents(eventRepo, 1, 10, day)

	first, err := svc.RollupDay(context.Background(), day)
	assert.NoError(t, err)
	second, err := svc.RollupDay(context.Background(), day)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, analyticsRepo.rows, 1)
	assert.Equal(t, 2, analyticsRepo.rows[analyticsKey{1, day.Format(time.DateOnly)}].Views)
}

func TestRollupDayEmptyLedger(t *testing.T) {
	svc := NewAnalyticsService(newFakeArticleRepo(), newFakeEventRepo(), newFakeAnalyticsRepo())

	written, err := svc.RollupDay(context.Background(), time.Now())
	assert.NoError(t, err)
	assert.Zero(t, written)
}

func TestGetArticleAnalyticsAccess(t *testing.T) {
	articleRepo := newFakeArticleRepo()
	analyticsRepo := newFakeAnalyticsRepo()
	svc := NewAnalyticsService(articleRepo, newFakeEventRepo(), analyticsRepo)
	ctx := context.Background()

	article := &model.Article{
		AccountID:  10,
		CreatedBy:  100,
		Status:     model.StatusPublished,
		Visibility: model.VisibilityPublic,
	}
	assert.NoError(t, articleRepo.CreateArticle(ctx, article))

	day := util.GetMidnight(time.Now().AddDate(0, 0, -1))
	_ = analyticsRepo.UpsertDaily(ctx, &model.ArticleDailyAnalytics{
		ArticleID: article.ID, AccountID: 10, MetricDate: day, Views: 5,
	})

	// Readers without write access get nothing.
	_, err := svc.GetArticleAnalytics(ctx, outsiderActor(7), article.ID, 7)
	assert.ErrorIs(t, err, ErrForbidden)

	rows, err := svc.GetArticleAnalytics(ctx, memberActor(100, 10, model.RoleMember), article.ID, 7)
	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 5, rows[0].Views)

	_, err = svc.GetArticleAnalytics(ctx, outsiderActor(7), 404, 7)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

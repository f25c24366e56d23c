package service

import (
	"context"
	"math"
	"testing"
	"time"

	"leakerflow/internal/model"

	"github.com/stretchr/testify/assert"
)

func trendArticle(upvotes, downvotes int, publishedAgo time.Duration, now time.Time) *model.Article {
	publishDate := now.Add(-publishedAgo)
	return &model.Article{
		ID:          1,
		Status:      model.StatusPublished,
		Upvotes:     upvotes,
		Downvotes:   downvotes,
		VoteScore:   upvotes - downvotes,
		PublishDate: &publishDate,
		CreatedAt:   publishDate,
	}
}

func TestComputeTrendScoreWorkedExample(t *testing.T) {
	now := time.Now()
	article := trendArticle(15, 2, 6*time.Hour, now)

	score, trending := ComputeTrendScore(article, now)

	// decay = 1/(1+6/12) = 2/3, log(14)*2/3 + 15*0.1*2/3
	want := math.Log(14)*2.0/3.0 + 1.5*2.0/3.0
	assert.InDelta(t, want, score, 1e-9)
	assert.InDelta(t, 2.759, score, 0.001)
	assert.True(t, trending)
}

func TestComputeTrendScoreDecay(t *testing.T) {
	now := time.Now()

	fresh, _ := ComputeTrendScore(trendArticle(15, 2, 0, now), now)
	sixHours, _ := ComputeTrendScore(trendArticle(15, 2, 6*time.Hour, now), now)
	twoDays, _ := ComputeTrendScore(trendArticle(15, 2, 48*time.Hour, now), now)

	assert.Greater(t, fresh, sixHours)
	assert.Greater(t, sixHours, twoDays)
}

func TestComputeTrendScoreDecayFloor(t *testing.T) {
	now := time.Now()
	ancient := trendArticle(1000, 0, 10000*time.Hour, now)

	score, _ := ComputeTrendScore(ancient, now)

	// At the 0.1 floor the score is exactly one tenth of the raw score.
	want := (math.Log(1001) + 100) * 0.1
	assert.InDelta(t, want, score, 1e-9)
}

func TestComputeTrendScoreNeverTrendsOnNonPositiveVoteScore(t *testing.T) {
	now := time.Now()

	// Many upvotes but downvoted even harder.
	article := trendArticle(50, 60, time.Hour, now)
	score, trending := ComputeTrendScore(article, now)
	assert.False(t, trending)
	assert.Greater(t, score, 0.0) // upvote term still contributes

	_, trending = ComputeTrendScore(trendArticle(0, 0, time.Hour, now), now)
	assert.False(t, trending)
}

func TestComputeTrendScoreFuturePublishDateClamped(t *testing.T) {
	now := time.Now()
	article := trendArticle(15, 2, -2*time.Hour, now)

	score, _ := ComputeTrendScore(article, now)
	fresh, _ := ComputeTrendScore(trendArticle(15, 2, 0, now), now)
	assert.InDelta(t, fresh, score, 1e-9)
}

func TestRecomputeArticleSkipsUnpublished(t *testing.T) {
	articleRepo := newFakeArticleRepo()
	draft := trendArticle(15, 2, 6*time.Hour, time.Now())
	draft.Status = model.StatusDraft
	_ = articleRepo.CreateArticle(context.Background(), draft)

	svc := NewTrendService(articleRepo)
	assert.NoError(t, svc.RecomputeArticle(context.Background(), draft.ID))
	assert.Zero(t, articleRepo.articles[draft.ID].TrendScore)
}

func TestRecomputeArticleNotFound(t *testing.T) {
	svc := NewTrendService(newFakeArticleRepo())
	assert.ErrorIs(t, svc.RecomputeArticle(context.Background(), 42), ErrArticleNotFound)
}

func TestRecomputeAll(t *testing.T) {
	articleRepo := newFakeArticleRepo()
	now := time.Now()

	hot := trendArticle(15, 2, 6*time.Hour, now)
	cold := trendArticle(0, 5, 6*time.Hour, now)
	draft := trendArticle(30, 0, time.Hour, now)
	draft.Status = model.StatusDraft
	for _, a := range []*model.Article{hot, cold, draft} {
		a.ID = 0
		_ = articleRepo.CreateArticle(context.Background(), a)
	}

	svc := NewTrendService(articleRepo)
	updated, err := svc.RecomputeAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 2, updated)

	assert.True(t, articleRepo.articles[hot.ID].IsTrending)
	assert.False(t, articleRepo.articles[cold.ID].IsTrending)
	assert.Zero(t, articleRepo.articles[draft.ID].TrendScore)
}

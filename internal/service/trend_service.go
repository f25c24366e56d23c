package service

import (
	"context"
	log "log/slog"
	"math"
	"time"

	"leakerflow/internal/model"
	"leakerflow/internal/repository"
)

const (
	trendDecayHalfHours = 12.0
	trendDecayFloor     = 0.1
	trendingThreshold   = 1.0
)

// ComputeTrendScore returns the decayed popularity score for an article at
// the given instant. Log-scaling keeps vote-count outliers from dominating
// forever; the decay halves roughly every 12 hours and is floored so old
// high-scoring articles never fully vanish.
func ComputeTrendScore(article *model.Article, now time.Time) (float64, bool) {
	ref := article.CreatedAt
	if article.PublishDate != nil {
		ref = *article.PublishDate
	}
	hours := now.Sub(ref).Hours()
	if hours < 0 {
		hours = 0
	}

	var logScore float64
	if article.VoteScore > 0 {
		logScore = math.Log(float64(article.VoteScore) + 1)
	}

	timeDecay := 1 / (1 + hours/trendDecayHalfHours)
	if timeDecay < trendDecayFloor {
		timeDecay = trendDecayFloor
	}

	score := logScore*timeDecay + float64(article.Upvotes)*0.1*timeDecay
	trending := score > trendingThreshold && article.VoteScore > 0
	return score, trending
}

type TrendService interface {
	// RecomputeArticle refreshes one published article's trend score, e.g.
	// right after a vote. Non-published articles are left untouched.
	RecomputeArticle(ctx context.Context, articleID uint64) error
	// RecomputeAll refreshes every published article so stale trends age out
	// even without new votes. Returns the number of articles updated.
	RecomputeAll(ctx context.Context) (int, error)
}

type trendServiceImpl struct {
	articleRepo repository.ArticleRepo
	now         func() time.Time
}

func NewTrendService(articleRepo repository.ArticleRepo) TrendService {
	return &trendServiceImpl{articleRepo: articleRepo, now: time.Now}
}

func (s *trendServiceImpl) RecomputeArticle(ctx context.Context, articleID uint64) error {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return err
	}
	if article == nil {
		return ErrArticleNotFound
	}
	if article.Status != model.StatusPublished {
		return nil
	}

	score, trending := ComputeTrendScore(article, s.now())
	return s.articleRepo.UpdateTrendScore(ctx, articleID, score, trending)
}

func (s *trendServiceImpl) RecomputeAll(ctx context.Context) (int, error) {
	articles, err := s.articleRepo.GetPublishedArticles(ctx)
	if err != nil {
		return 0, err
	}

	now := s.now()
	updated := 0
	for _, article := range articles {
		score, trending := ComputeTrendScore(article, now)
		if err := s.articleRepo.UpdateTrendScore(ctx, article.ID, score, trending); err != nil {
			log.ErrorContext(ctx, "update trend score error", "articleID", article.ID, "err", err)
			continue
		}
		updated++
	}
	return updated, nil
}

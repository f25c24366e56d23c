package repository

import (
	"context"
	"errors"

	"leakerflow/internal/model"

	"gorm.io/gorm"
)

// ArticleFilter narrows ListArticles. Zero values mean "no filter".
type ArticleFilter struct {
	AccountID  uint64
	CreatedBy  uint64
	Status     model.ArticleStatus
	Visibility model.ArticleVisibility
	Category   string
	Search     string
}

// AccountArticleStats aggregates per-account dashboard numbers.
type AccountArticleStats struct {
	AccountID         uint64 `json:"accountId"`
	TotalArticles     int64  `json:"totalArticles"`
	PublishedArticles int64  `json:"publishedArticles"`
	DraftArticles     int64  `json:"draftArticles"`
	TotalViews        int64  `json:"totalViews"`
	TotalVotes        int64  `json:"totalVotes"`
}

type ArticleRepo interface {
	CreateArticle(ctx context.Context, article *model.Article) error
	GetArticle(ctx context.Context, id uint64) (*model.Article, error)
	GetArticleByIDs(ctx context.Context, ids []uint64) ([]*model.Article, error)
	UpdateArticle(ctx context.Context, id uint64, updates map[string]interface{}) error
	DeleteArticle(ctx context.Context, id uint64) error
	ListArticles(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*model.Article, int64, error)
	GetPublishedArticles(ctx context.Context) ([]*model.Article, error)

	UpdateVoteCounts(ctx context.Context, id uint64, upvotes, downvotes, voteScore int) error
	UpdateTrendScore(ctx context.Context, id uint64, trendScore float64, isTrending bool) error
	UpdateEngagementCounters(ctx context.Context, id uint64, agg *EngagementAggregate) error
	UpdateSaveCount(ctx context.Context, id uint64, totalSaves int64) error

	GetAccountStats(ctx context.Context, accountID uint64) (*AccountArticleStats, error)
}

type ArticleRepoImpl struct {
	db *gorm.DB
}

func NewArticleRepo(db *gorm.DB) ArticleRepo {
	return &ArticleRepoImpl{db}
}

func (s *ArticleRepoImpl) CreateArticle(ctx context.Context, article *model.Article) error {
	return s.db.WithContext(ctx).Create(article).Error
}

func (s *ArticleRepoImpl) GetArticle(ctx context.Context, id uint64) (*model.Article, error) {
	var article model.Article
	err := s.db.WithContext(ctx).First(&article, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

func (s *ArticleRepoImpl) GetArticleByIDs(ctx context.Context, ids []uint64) ([]*model.Article, error) {
	var articles []*model.Article
	err := s.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&articles).Error
	return articles, err
}

func (s *ArticleRepoImpl) UpdateArticle(ctx context.Context, id uint64, updates map[string]interface{}) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (s *ArticleRepoImpl) DeleteArticle(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).Delete(&model.Article{}, id).Error
}

func (s *ArticleRepoImpl) ListArticles(ctx context.Context, filter ArticleFilter, limit, offset int) ([]*model.Article, int64, error) {
	query := s.db.WithContext(ctx).Model(&model.Article{})

	if filter.AccountID > 0 {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if filter.CreatedBy > 0 {
		query = query.Where("created_by = ?", filter.CreatedBy)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Visibility != "" {
		query = query.Where("visibility = ?", filter.Visibility)
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("title LIKE ? OR subtitle LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var articles []*model.Article
	err := query.Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&articles).Error
	return articles, total, err
}

func (s *ArticleRepoImpl) GetPublishedArticles(ctx context.Context) ([]*model.Article, error) {
	var articles []*model.Article
	err := s.db.WithContext(ctx).
		Where("status = ?", model.StatusPublished).
		Find(&articles).Error
	return articles, err
}

func (s *ArticleRepoImpl) UpdateVoteCounts(ctx context.Context, id uint64, upvotes, downvotes, voteScore int) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"upvotes":    upvotes,
			"downvotes":  downvotes,
			"vote_score": voteScore,
		}).Error
}

func (s *ArticleRepoImpl) UpdateTrendScore(ctx context.Context, id uint64, trendScore float64, isTrending bool) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"trend_score": trendScore,
			"is_trending": isTrending,
		}).Error
}

func (s *ArticleRepoImpl) UpdateEngagementCounters(ctx context.Context, id uint64, agg *EngagementAggregate) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"total_views":    agg.TotalViews,
			"unique_views":   agg.UniqueViews,
			"total_shares":   agg.TotalShares,
			"total_comments": agg.TotalComments,
			"avg_read_time":  agg.AvgReadTime,
			"bounce_rate":    agg.BounceRate,
		}).Error
}

func (s *ArticleRepoImpl) UpdateSaveCount(ctx context.Context, id uint64, totalSaves int64) error {
	return s.db.WithContext(ctx).Model(&model.Article{}).
		Where("id = ?", id).
		Update("total_saves", totalSaves).Error
}

func (s *ArticleRepoImpl) GetAccountStats(ctx context.Context, accountID uint64) (*AccountArticleStats, error) {
	stats := &AccountArticleStats{AccountID: accountID}
	err := s.db.WithContext(ctx).Model(&model.Article{}).
		Select(
			"COUNT(*) AS total_articles",
			"SUM(status = 'published') AS published_articles",
			"SUM(status = 'draft') AS draft_articles",
			"COALESCE(SUM(total_views), 0) AS total_views",
			"COALESCE(SUM(upvotes + downvotes), 0) AS total_votes",
		).
		Where("account_id = ?", accountID).
		Scan(stats).Error
	return stats, err
}

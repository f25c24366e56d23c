package service

import (
	"context"
	"strconv"
	"time"

	"leakerflow/internal/api/dto"
	"leakerflow/internal/model"
	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/pkg/redis"
	"leakerflow/internal/pkg/util"
	"leakerflow/internal/repository"

	"github.com/goccy/go-json"
	"github.com/jinzhu/copier"
)

const statsCacheExpiration = 5 * time.Minute

type ArticleService interface {
	CreateArticle(ctx context.Context, actor *Actor, req *dto.ArticleCreateDTO) (*dto.ArticleDTO, error)
	UpdateArticle(ctx context.Context, actor *Actor, articleID uint64, req *dto.ArticleUpdateDTO) (*dto.ArticleDTO, error)
	DeleteArticle(ctx context.Context, actor *Actor, articleID uint64) error
	GetArticle(ctx context.Context, actor *Actor, articleID uint64) (*dto.ArticleDTO, error)
	ListArticles(ctx context.Context, actor *Actor, query *dto.ArticleQueryDTO) (*dto.ArticleListDTO, error)
	ListAllArticles(ctx context.Context, actor *Actor, query *dto.ArticleQueryDTO) (*dto.ArticleListDTO, error)
	GetSavedArticles(ctx context.Context, actor *Actor, page, pageSize int) (*dto.ArticleListDTO, error)
	GetAccountStats(ctx context.Context, actor *Actor, accountID uint64) (*repository.AccountArticleStats, error)
}

type articleServiceImpl struct {
	articleRepo repository.ArticleRepo
	accountRepo repository.AccountRepo
	voteSvc     VoteService
	eventSvc    EventService
	auditSvc    AuditService
}

func NewArticleService(
	articleRepo repository.ArticleRepo,
	accountRepo repository.AccountRepo,
	voteSvc VoteService,
	eventSvc EventService,
	auditSvc AuditService,
) ArticleService {
	return &articleServiceImpl{
		articleRepo: articleRepo,
		accountRepo: accountRepo,
		voteSvc:     voteSvc,
		eventSvc:    eventSvc,
		auditSvc:    auditSvc,
	}
}

func (s *articleServiceImpl) CreateArticle(ctx context.Context, actor *Actor, req *dto.ArticleCreateDTO) (*dto.ArticleDTO, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthenticated
	}
	if _, member := actor.RoleIn(req.AccountID); !member {
		return nil, ErrNotAccountMember
	}

	status := model.StatusDraft
	if req.Status != "" {
		status = model.ArticleStatus(req.Status)
		if !status.Valid() || status == model.StatusPendingApproval {
			return nil, ErrInvalidStatus
		}
	}
	visibility := model.VisibilityAccount
	if req.Visibility != "" {
		visibility = model.ArticleVisibility(req.Visibility)
		if !visibility.Valid() {
			return nil, ErrInvalidVisibility
		}
	}

	article := &model.Article{
		AccountID:  req.AccountID,
		CreatedBy:  actor.UserID,
		Title:      req.Title,
		Subtitle:   req.Subtitle,
		Content:    req.Content,
		Category:   req.Category,
		Status:     status,
		Visibility: visibility,
		CreatedAt:  time.Now(),
		UpdatedAt:  time.Now(),
	}
	if err := s.articleRepo.CreateArticle(ctx, article); err != nil {
		return nil, err
	}

	s.invalidateStats(ctx, article.AccountID)
	return s.toArticleDTO(ctx, article, actor), nil
}

func (s *articleServiceImpl) UpdateArticle(ctx context.Context, actor *Actor, articleID uint64, req *dto.ArticleUpdateDTO) (*dto.ArticleDTO, error) {
	article, err := s.getOwnedArticle(ctx, actor, articleID)
	if err != nil {
		return nil, err
	}

	// AccountID and CreatedBy never change on update.
	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Subtitle != nil {
		updates["subtitle"] = *req.Subtitle
	}
	if req.Content != nil {
		updates["content"] = *req.Content
	}
	if req.Category != nil {
		updates["category"] = *req.Category
	}
	if req.Visibility != nil {
		visibility := model.ArticleVisibility(*req.Visibility)
		if !visibility.Valid() {
			return nil, ErrInvalidVisibility
		}
		updates["visibility"] = visibility
	}

	if len(updates) > 0 {
		updates["updated_at"] = time.Now()
		if err := s.articleRepo.UpdateArticle(ctx, articleID, updates); err != nil {
			return nil, err
		}
	}

	article, err = s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	return s.toArticleDTO(ctx, article, actor), nil
}

func (s *articleServiceImpl) DeleteArticle(ctx context.Context, actor *Actor, articleID uint64) error {
	article, err := s.getOwnedArticle(ctx, actor, articleID)
	if err != nil {
		return err
	}

	if err := s.articleRepo.DeleteArticle(ctx, articleID); err != nil {
		return err
	}

	s.auditSvc.LogArticleAction(ctx, actor.UserID, model.AuditArticleDeleted, articleID, map[string]interface{}{
		"account_id": article.AccountID,
		"title":      article.Title,
	})
	s.invalidateStats(ctx, article.AccountID)
	return nil
}

func (s *articleServiceImpl) GetArticle(ctx context.Context, actor *Actor, articleID uint64) (*dto.ArticleDTO, error) {
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if !CanAccess(actor, article, ActionRead) {
		if actor.Anonymous() {
			return nil, ErrUnauthenticated
		}
		return nil, ErrForbidden
	}
	return s.toArticleDTO(ctx, article, actor), nil
}

// ListArticles is the tenant-scoped listing. With an account filter the
// actor must be a member (or a global admin); without one the listing is
// the public published feed.
func (s *articleServiceImpl) ListArticles(ctx context.Context, actor *Actor, query *dto.ArticleQueryDTO) (*dto.ArticleListDTO, error) {
	filter := repository.ArticleFilter{
		AccountID:  query.AccountID,
		Status:     model.ArticleStatus(query.Status),
		Visibility: model.ArticleVisibility(query.Visibility),
		Category:   query.Category,
		Search:     query.Search,
	}

	if query.AccountID > 0 {
		_, member := actor.RoleIn(query.AccountID)
		admin := !actor.Anonymous() && actor.GlobalAdmin
		if !member && !admin {
			return nil, ErrNotAccountMember
		}
		return s.listReadable(ctx, actor, filter, query.Page, query.PageSize)
	}

	filter.Status = model.StatusPublished
	filter.Visibility = model.VisibilityPublic
	return s.listWithFilter(ctx, actor, filter, query.Page, query.PageSize)
}

// listReadable runs every account-scoped row through the read predicate.
// Membership alone is not enough: a pending article belongs to its creator
// until review, and archived articles are hidden from everyone.
func (s *articleServiceImpl) listReadable(ctx context.Context, actor *Actor, filter repository.ArticleFilter, page, pageSize int) (*dto.ArticleListDTO, error) {
	page, pageSize = util.NormalizePage(page, pageSize, consts.MaxPageSize)

	articles, _, err := s.articleRepo.ListArticles(ctx, filter, -1, 0)
	if err != nil {
		return nil, err
	}

	readable := make([]*model.Article, 0, len(articles))
	for _, article := range articles {
		if CanAccess(actor, article, ActionRead) {
			readable = append(readable, article)
		}
	}

	total := int64(len(readable))
	offset := (page - 1) * pageSize
	if offset > len(readable) {
		offset = len(readable)
	}
	pageRows := readable[offset:]
	if pageSize < len(pageRows) {
		pageRows = pageRows[:pageSize]
	}

	list := make([]*dto.ArticleDTO, 0, len(pageRows))
	for _, article := range pageRows {
		list = append(list, s.toArticleDTO(ctx, article, actor))
	}
	return &dto.ArticleListDTO{
		List:       list,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		HasMore:    int64(offset+len(pageRows)) < total,
	}, nil
}

// ListAllArticles is the moderation listing: every tenant, every status.
func (s *articleServiceImpl) ListAllArticles(ctx context.Context, actor *Actor, query *dto.ArticleQueryDTO) (*dto.ArticleListDTO, error) {
	if actor.Anonymous() || !actor.GlobalAdmin {
		return nil, ErrForbidden
	}
	filter := repository.ArticleFilter{
		AccountID: query.AccountID,
		Status:    model.ArticleStatus(query.Status),
		Category:  query.Category,
		Search:    query.Search,
	}
	return s.listWithFilter(ctx, actor, filter, query.Page, query.PageSize)
}

func (s *articleServiceImpl) GetSavedArticles(ctx context.Context, actor *Actor, page, pageSize int) (*dto.ArticleListDTO, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthenticated
	}
	page, pageSize = util.NormalizePage(page, pageSize, consts.MaxPageSize)

	// Fetch one extra row to detect a following page.
	ids, err := s.eventSvc.GetSavedArticleIDs(ctx, actor.UserID, pageSize+1, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	hasMore := len(ids) > pageSize
	if hasMore {
		ids = ids[:pageSize]
	}

	articles, err := s.articleRepo.GetArticleByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ArticleDTO, 0, len(articles))
	for _, article := range articles {
		list = append(list, s.toArticleDTO(ctx, article, actor))
	}
	return &dto.ArticleListDTO{
		List:     list,
		Page:     page,
		PageSize: pageSize,
		HasMore:  hasMore,
	}, nil
}

func (s *articleServiceImpl) GetAccountStats(ctx context.Context, actor *Actor, accountID uint64) (*repository.AccountArticleStats, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthenticated
	}
	if _, member := actor.RoleIn(accountID); !member && !actor.GlobalAdmin {
		return nil, ErrNotAccountMember
	}

	key := consts.AccountStatsKey + strconv.FormatUint(accountID, 10)
	if val, err := redis.GetValue(ctx, key); err == nil && val != "" {
		var stats repository.AccountArticleStats
		if json.Unmarshal([]byte(val), &stats) == nil {
			return &stats, nil
		}
	}

	stats, err := s.articleRepo.GetAccountStats(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(stats); err == nil {
		_ = redis.SetWithExpiration(ctx, key, string(data), statsCacheExpiration)
	}
	return stats, nil
}

func (s *articleServiceImpl) listWithFilter(ctx context.Context, actor *Actor, filter repository.ArticleFilter, page, pageSize int) (*dto.ArticleListDTO, error) {
	page, pageSize = util.NormalizePage(page, pageSize, consts.MaxPageSize)
	offset := (page - 1) * pageSize

	articles, total, err := s.articleRepo.ListArticles(ctx, filter, pageSize, offset)
	if err != nil {
		return nil, err
	}

	list := make([]*dto.ArticleDTO, 0, len(articles))
	for _, article := range articles {
		list = append(list, s.toArticleDTO(ctx, article, actor))
	}
	return &dto.ArticleListDTO{
		List:       list,
		TotalCount: total,
		Page:       page,
		PageSize:   pageSize,
		HasMore:    int64(offset+pageSize) < total,
	}, nil
}

func (s *articleServiceImpl) getOwnedArticle(ctx context.Context, actor *Actor, articleID uint64) (*model.Article, error) {
	if actor.Anonymous() {
		return nil, ErrUnauthenticated
	}
	article, err := s.articleRepo.GetArticle(ctx, articleID)
	if err != nil {
		return nil, err
	}
	if article == nil {
		return nil, ErrArticleNotFound
	}
	if !CanAccess(actor, article, ActionWrite) {
		return nil, ErrForbidden
	}
	return article, nil
}

func (s *articleServiceImpl) toArticleDTO(ctx context.Context, article *model.Article, actor *Actor) *dto.ArticleDTO {
	item := &dto.ArticleDTO{}
	_ = copier.Copy(item, article)
	item.Status = string(article.Status)
	item.Visibility = string(article.Visibility)
	item.CreatedAt = article.CreatedAt.Format(time.DateTime)
	item.UpdatedAt = article.UpdatedAt.Format(time.DateTime)

	if article.TotalViews > 0 {
		item.Engagement = float64(article.TotalShares+article.TotalSaves+article.TotalComments) * 100 / float64(article.TotalViews)
	}

	item.UserVote = string(VoteStateNone)
	if !actor.Anonymous() {
		if state, err := s.voteSvc.GetUserVote(ctx, actor.UserID, article.ID); err == nil {
			item.UserVote = string(state)
		}
		item.IsSaved, _ = s.eventSvc.IsSaved(ctx, actor.UserID, article.ID)
	}
	return item
}

func (s *articleServiceImpl) invalidateStats(ctx context.Context, accountID uint64) {
	_ = redis.DeleteKey(ctx, consts.AccountStatsKey+strconv.FormatUint(accountID, 10))
}

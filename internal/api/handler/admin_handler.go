package handler

import (
	"time"

	"leakerflow/internal/api/dto"
	"leakerflow/internal/pkg/consts"
	"leakerflow/internal/pkg/redis"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/pkg/util"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AdminHandler struct {
	actorSvc     service.ActorService
	articleSvc   service.ArticleService
	analyticsSvc service.AnalyticsService
	trendSvc     service.TrendService
	auditSvc     service.AuditService
}

func NewAdminHandler(
	actorSvc service.ActorService,
	articleSvc service.ArticleService,
	analyticsSvc service.AnalyticsService,
	trendSvc service.TrendService,
	auditSvc service.AuditService,
) *AdminHandler {
	return &AdminHandler{
		actorSvc:     actorSvc,
		articleSvc:   articleSvc,
		analyticsSvc: analyticsSvc,
		trendSvc:     trendSvc,
		auditSvc:     auditSvc,
	}
}

// ListAllArticles returns articles across all accounts regardless of status.
func (s *AdminHandler) ListAllArticles(c *gin.Context) {
	var query dto.ArticleQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	list, err := s.articleSvc.ListAllArticles(c.Request.Context(), actor, &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

// TriggerRollup re-runs the daily analytics rollup, defaulting to yesterday.
func (s *AdminHandler) TriggerRollup(c *gin.Context) {
	date := util.Yesterday(time.Now())
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.Error(c, service.ErrParamInvalid)
			return
		}
		date = parsed
	}

	// One manual rollup per date at a time; the rollup itself is idempotent
	// so a lost lock only costs duplicate work, never wrong rows.
	lockKey := consts.RollupLockKey + date.Format("2006-01-02")
	token := uuid.NewString()
	locked, err := redis.TryLock(c.Request.Context(), lockKey, token, time.Minute, 1)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !locked {
		response.Fail(c, response.Conflict, "rollup already running for this date")
		return
	}
	defer redis.UnLock(c.Request.Context(), lockKey, token)

	count, err := s.analyticsSvc.RollupDay(c.Request.Context(), date)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"rows": count})
}

// TriggerTrendRecompute refreshes trend scores for all published articles.
func (s *AdminHandler) TriggerTrendRecompute(c *gin.Context) {
	count, err := s.trendSvc.RecomputeAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"updated": count})
}

// GetArticleAuditLogs returns the moderation trail of one article.
func (s *AdminHandler) GetArticleAuditLogs(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.ArticleQueryDTO
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	page, pageSize := util.NormalizePage(query.Page, query.PageSize, consts.MaxPageSize)

	logs, err := s.auditSvc.GetArticleAuditLogs(c.Request.Context(), articleID, page, pageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, logs)
}

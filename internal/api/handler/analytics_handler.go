package handler

import (
	"leakerflow/internal/api/dto"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	actorSvc     service.ActorService
	analyticsSvc service.AnalyticsService
}

func NewAnalyticsHandler(actorSvc service.ActorService, analyticsSvc service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		actorSvc:     actorSvc,
		analyticsSvc: analyticsSvc,
	}
}

func (s *AnalyticsHandler) GetArticleAnalytics(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var query dto.AnalyticsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.Error(c, err)
		return
	}
	if query.Days == 0 {
		query.Days = 7
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	rows, err := s.analyticsSvc.GetArticleAnalytics(c.Request.Context(), actor, articleID, query.Days)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, rows)
}

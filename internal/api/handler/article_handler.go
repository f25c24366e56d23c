package handler

import (
	"leakerflow/internal/api/dto"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ArticleHandler struct {
	actorSvc   service.ActorService
	articleSvc service.ArticleService
}

func NewArticleHandler(actorSvc service.ActorService, articleSvc service.ArticleService) *ArticleHandler {
	return &ArticleHandler{
		actorSvc:   actorSvc,
		articleSvc: articleSvc,
	}
}

func (s *ArticleHandler) CreateArticle(c *gin.Context) {
	var req dto.ArticleCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	article, err := s.articleSvc.CreateArticle(c.Request.Context(), actor, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ArticleHandler) UpdateArticle(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.ArticleUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	article, err := s.articleSvc.UpdateArticle(c.Request.Context(), actor, articleID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ArticleHandler) DeleteArticle(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	if err := s.articleSvc.DeleteArticle(c.Request.Context(), actor, articleID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *ArticleHandler) GetArticle(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	article, err := s.articleSvc.GetArticle(c.Request.Context(), actor, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ArticleHandler) ListArticles(c *gin.Context) {
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

	list, err := s.articleSvc.ListArticles(c.Request.Context(), actor, &query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

func (s *ArticleHandler) GetSavedArticles(c *gin.Context) {
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

	list, err := s.articleSvc.GetSavedArticles(c.Request.Context(), actor, query.Page, query.PageSize)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, list)
}

func (s *ArticleHandler) GetAccountStats(c *gin.Context) {
	accountID, err := parseIDParam(c, "account_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	stats, err := s.articleSvc.GetAccountStats(c.Request.Context(), actor, accountID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, stats)
}

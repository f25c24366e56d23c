package handler

import (
	"leakerflow/internal/api/dto"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
)

type ApprovalHandler struct {
	actorSvc    service.ActorService
	approvalSvc service.ApprovalService
}

func NewApprovalHandler(actorSvc service.ActorService, approvalSvc service.ApprovalService) *ApprovalHandler {
	return &ApprovalHandler{
		actorSvc:    actorSvc,
		approvalSvc: approvalSvc,
	}
}

func (s *ApprovalHandler) SubmitForApproval(c *gin.Context) {
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

	article, err := s.approvalSvc.Submit(c.Request.Context(), actor, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ApprovalHandler) ApproveArticle(c *gin.Context) {
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

	article, err := s.approvalSvc.Approve(c.Request.Context(), actor, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

func (s *ApprovalHandler) RejectArticle(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.RejectReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	article, err := s.approvalSvc.Reject(c.Request.Context(), actor, articleID, req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, article)
}

package handler

import (
	"leakerflow/internal/api/dto"
	"leakerflow/internal/model"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
)

type VoteHandler struct {
	actorSvc service.ActorService
	voteSvc  service.VoteService
}

func NewVoteHandler(actorSvc service.ActorService, voteSvc service.VoteService) *VoteHandler {
	return &VoteHandler{
		actorSvc: actorSvc,
		voteSvc:  voteSvc,
	}
}

func (s *VoteHandler) CastVote(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.VoteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.voteSvc.CastVote(c.Request.Context(), actor, articleID, model.VoteType(req.VoteType))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *VoteHandler) GetUserVote(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	state, err := s.voteSvc.GetUserVote(c.Request.Context(), userID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"voteType": state})
}

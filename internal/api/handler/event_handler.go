package handler

import (
	"leakerflow/internal/api/dto"
	"leakerflow/internal/model"
	"leakerflow/internal/pkg/response"
	"leakerflow/internal/service"

	"github.com/gin-gonic/gin"
)

type EventHandler struct {
	actorSvc service.ActorService
	eventSvc service.EventService
}

func NewEventHandler(actorSvc service.ActorService, eventSvc service.EventService) *EventHandler {
	return &EventHandler{
		actorSvc: actorSvc,
		eventSvc: eventSvc,
	}
}

func (s *EventHandler) RecordEvent(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.EventReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	actor, err := resolveActor(c, s.actorSvc)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := s.eventSvc.RecordEvent(c.Request.Context(), actor, articleID, &service.EventInput{
		EventType:        model.EventType(req.EventType),
		ReadTimeSeconds:  req.ReadTimeSeconds,
		ScrollPercentage: req.ScrollPercentage,
		Metadata:         req.Metadata,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

func (s *EventHandler) SaveArticle(c *gin.Context) {
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

	if err := s.eventSvc.SaveArticle(c.Request.Context(), actor, articleID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *EventHandler) UnsaveArticle(c *gin.Context) {
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

	if err := s.eventSvc.UnsaveArticle(c.Request.Context(), actor, articleID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, nil)
}

func (s *EventHandler) IsSaved(c *gin.Context) {
	articleID, err := parseIDParam(c, "article_id")
	if err != nil {
		response.Error(c, err)
		return
	}

	userID := c.GetUint64("user_id")

	saved, err := s.eventSvc.IsSaved(c.Request.Context(), userID, articleID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"saved": saved})
}

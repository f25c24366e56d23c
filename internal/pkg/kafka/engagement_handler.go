package kafka

import (
	"context"
	log "log/slog"

	"leakerflow/internal/model"
	"leakerflow/internal/service"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// EngagementMessage is the interaction event emitted by the edge tier.
type EngagementMessage struct {
	ArticleID        uint64                 `json:"article_id"`
	UserID           uint64                 `json:"user_id"`
	EventType        string                 `json:"event_type"`
	ReadTimeSeconds  int                    `json:"read_time_seconds"`
	ScrollPercentage int                    `json:"scroll_percentage"`
	Metadata         map[string]interface{} `json:"metadata"`
}

type EngagementHandler struct {
	actorService service.ActorService
	eventService service.EventService
}

func NewEngagementHandler(actorService service.ActorService, eventService service.EventService) *EngagementHandler {
	return &EngagementHandler{
		actorService: actorService,
		eventService: eventService,
	}
}

func (s *EngagementHandler) Setup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer setup")
	return nil
}

func (s *EngagementHandler) Cleanup(sarama.ConsumerGroupSession) error {
	log.Info("engagement consumer cleanup")
	return nil
}

func (s *EngagementHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	log.Info("topic-engagement consume claim")
	err := pullMessageBatch(session, claim, s.logic)
	if err != nil {
		log.Error("topic-engagement process batch error", "err", err)
		return err
	}
	return nil
}

func (s *EngagementHandler) logic(ctx context.Context, msg *sarama.ConsumerMessage) error {
	var event EngagementMessage
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("unmarshal engagement message error", "err", err)
		// Malformed payloads will never parse, skip them.
		return nil
	}

	actor, err := s.actorService.ResolveActor(ctx, event.UserID, false)
	if err != nil {
		return err
	}

	_, err = s.eventService.RecordEvent(ctx, actor, event.ArticleID, &service.EventInput{
		EventType:        model.EventType(event.EventType),
		ReadTimeSeconds:  event.ReadTimeSeconds,
		ScrollPercentage: event.ScrollPercentage,
		Metadata:         event.Metadata,
	})
	return err
}

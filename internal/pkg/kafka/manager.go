package kafka

import (
	"context"
	log "log/slog"

	"leakerflow/internal/api/config"
	"leakerflow/internal/service"

	"github.com/IBM/sarama"
)

// ConsumerManager owns the Kafka consumer groups.
type ConsumerManager struct {
	engagementConsumer sarama.ConsumerGroup
	engagementHandler  sarama.ConsumerGroupHandler
}

func NewConsumerManager(
	cfg *config.Config,
	actorService service.ActorService,
	eventService service.EventService,
) (*ConsumerManager, error) {
	saramaCfg := newSaramaConfig(cfg.Kafka)

	engagementConsumer, err := sarama.NewConsumerGroup(cfg.Kafka.Brokers, cfg.KafkaEngagementConsumer.GroupID, saramaCfg)
	if err != nil {
		return nil, err
	}
	engagementHandler := NewEngagementHandler(actorService, eventService)

	return &ConsumerManager{
		engagementConsumer: engagementConsumer,
		engagementHandler:  engagementHandler,
	}, nil
}

// Start runs the consumers until the context is cancelled.
func (m *ConsumerManager) Start(ctx context.Context, cfg *config.Config) error {
	go func() {
		topic := cfg.KafkaEngagementConsumer.Topic
		log.Info("Engagement consumer started", "topic", topic)
		for {
			if err := m.engagementConsumer.Consume(ctx, []string{topic}, m.engagementHandler); err != nil {
				log.Error("Error from consumer", "err", err)
			}
			if ctx.Err() != nil {
				return
			}
		}
	}()

	<-ctx.Done()
	log.Info("Kafka Manager shutting down...")

	if err := m.engagementConsumer.Close(); err != nil {
		log.Error("Failed to close engagement consumer", "err", err)
	}

	return nil
}

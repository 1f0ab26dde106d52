package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"token-icon-service/internal/kafka"
	"token-icon-service/internal/models"
	"token-icon-service/internal/repositories"
)

// PopularPublisher periodically publishes the most requested
// (symbol, size) pairs to Kafka so the prewarm worker can resolve
// them into cache ahead of demand.
type PopularPublisher struct {
	repo     *repositories.RequestLogRepository
	producer *kafka.Producer
	interval time.Duration
}

func NewPopularPublisher(
	repo *repositories.RequestLogRepository,
	producer *kafka.Producer,
	interval time.Duration,
) *PopularPublisher {
	return &PopularPublisher{
		repo:     repo,
		producer: producer,
		interval: interval,
	}
}

func (p *PopularPublisher) Start(ctx context.Context) {
	log.Printf("PopularPublisher started (interval: %v)", p.interval)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := p.RunOnce(ctx); err != nil {
				log.Printf("PopularPublisher iteration failed: %v", err)
			}

		case <-ctx.Done():
			log.Println("PopularPublisher stopped")
			return
		}
	}
}

func (p *PopularPublisher) RunOnce(ctx context.Context) error {
	top, err := p.repo.GetTopRequests(ctx)
	if err != nil {
		return err
	}

	if len(top) == 0 {
		log.Println("No popular icon requests found")
		return nil
	}

	log.Printf("Publishing %d popular icon requests to Kafka", len(top))

	for _, req := range top {
		value, err := json.Marshal(req)
		if err != nil {
			log.Printf("Marshal error: %v", err)
			continue
		}

		key := generateKey(req)
		if err := p.producer.Publish(key, value); err != nil {
			log.Printf("Kafka publish failed (key=%s): %v", string(key), err)
		}
	}

	return nil
}

func generateKey(req models.PopularRequest) []byte {
	return []byte("icon:" + req.Args["symbol"] + "-" + req.Args["size"])
}

package workers

import (
	"context"
	"encoding/json"
	"log"

	"token-icon-service/internal/cache"
	"token-icon-service/internal/kafka"
	"token-icon-service/internal/models"
	"token-icon-service/internal/services"
)

type WorkerBundle struct {
	PrewarmWorker *PrewarmWorker
}

// StartAllWorkers wires the Kafka consumers: the icon syncer applies
// cache write-backs, the prewarm worker resolves popular pairs.
func StartAllWorkers(
	ctx context.Context,
	store cache.Store,
	icons *services.IconService,
	kafkaBundle *kafka.KafkaBundle,
) *WorkerBundle {
	prewarmCh := make(chan []byte, 100)

	StartIconSyncer(store, kafkaBundle.IconConsumer)
	StartPopularMultiplexer(kafkaBundle.PopularConsumer, prewarmCh)

	prewarmWorker := NewPrewarmWorker(prewarmCh, icons)
	go prewarmWorker.Start(ctx)

	return &WorkerBundle{PrewarmWorker: prewarmWorker}
}

// StartPopularMultiplexer routes popular-topic messages to the
// prewarm channel, dropping anything that is not an icon command.
func StartPopularMultiplexer(consumer *kafka.Consumer, prewarmCh chan []byte) {
	if consumer == nil {
		return
	}
	consumer.Start(func(key, value []byte) {
		req, ok := decodePopular(value)
		if !ok {
			return
		}
		if req.Type != "icon" {
			log.Printf("Unknown popular message type: %s", req.Type)
			return
		}
		prewarmCh <- value
	})
}

func decodePopular(msg []byte) (models.PopularRequest, bool) {
	var req models.PopularRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		log.Printf("Invalid popular message: %v", err)
		return models.PopularRequest{}, false
	}
	return req, true
}

// test/integration/popular_test.go
package integration

import (
	"context"
	"testing"
	"time"

	"token-icon-service/internal/api"
	"token-icon-service/internal/cache"
	"token-icon-service/internal/cron"
	"token-icon-service/internal/kafka"
	"token-icon-service/internal/models"
	"token-icon-service/internal/repositories"
	"token-icon-service/internal/services"
	"token-icon-service/internal/workers"
	testutils "token-icon-service/test/utils"

	"github.com/avast/retry-go/v4"
	"github.com/redis/go-redis/v9"
)

// End to end: request log -> PopularPublisher -> Kafka -> prewarm
// worker -> Redis.
func TestPopularPublisher_PrewarmsCache(t *testing.T) {
	db := testutils.TestDBWithCleanup(t)

	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	imageKey := services.ImageCacheKey("eth", models.SizeSM)
	rdb.Del(ctx, imageKey, services.TokenListKey)

	testutils.CreateKafkaTopic(t, "popular-icons")
	time.Sleep(500 * time.Millisecond)

	repo := repositories.NewRequestLogRepository(db)
	for i := 0; i < 3; i++ {
		if err := repo.Save("eth", models.SizeSM); err != nil {
			t.Fatalf("Request log save failed: %v", err)
		}
	}

	store := cache.NewRedisStore(rdb)
	upstream := newUpstream(t)
	client := api.NewClient(upstream.URL)
	catalogService := services.NewCatalogService(store, nil, client)
	iconService := services.NewIconService(store, catalogService, client, nil)

	consumer := kafka.NewConsumer("popular-icons", "test-popular-"+t.Name())
	defer consumer.Stop()

	prewarmCh := make(chan []byte, 100)
	workers.StartPopularMultiplexer(consumer, prewarmCh)
	go workers.NewPrewarmWorker(prewarmCh, iconService).Start(ctx)
	time.Sleep(1 * time.Second)

	producer := kafka.NewProducer("popular-icons")
	defer producer.Close()

	publisher := cron.NewPopularPublisher(repo, producer, time.Minute)
	if err := publisher.RunOnce(ctx); err != nil {
		t.Fatalf("PopularPublisher RunOnce failed: %v", err)
	}

	err := retry.Do(
		func() error {
			return rdb.Get(ctx, imageKey).Err()
		},
		retry.Attempts(150),
		retry.Delay(100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Prewarmed image not in Redis in time: %v", err)
	}
}

package workers

import (
	"context"
	"log"

	"token-icon-service/internal/cache"
	"token-icon-service/internal/kafka"
)

// StartIconSyncer consumes cache write-backs from the icon topic and
// applies them to the store. The record key is the cache key, the
// value is stored as-is (catalog JSON or base64 image data).
func StartIconSyncer(store cache.Store, consumer *kafka.Consumer) {
	if consumer == nil {
		return
	}
	consumer.Start(func(key, value []byte) {
		cacheKey := string(key)
		if cacheKey == "" {
			log.Println("IconSyncer: empty key, skipping")
			return
		}
		if err := store.Set(context.Background(), cacheKey, string(value)); err != nil {
			log.Printf("IconSyncer: failed to set %s: %v", cacheKey, err)
			return
		}
		log.Printf("IconSyncer: cached %s", cacheKey)
	})
}

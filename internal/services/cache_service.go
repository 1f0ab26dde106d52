package services

import (
	"context"
	"encoding/json"
	"log"

	"token-icon-service/internal/cache"
	"token-icon-service/internal/kafka"
)

// CacheService resolves a value cache-first and falls back to its
// Fetcher. A successful fetch is written back asynchronously: through
// Kafka when a producer is wired, otherwise straight into the store.
type CacheService[T any] struct {
	cache    cache.Store
	producer kafka.ProducerInterface
	fetcher  Fetcher[T]
}

func NewCacheService[T any](
	store cache.Store,
	producer kafka.ProducerInterface,
	fetcher Fetcher[T],
) *CacheService[T] {
	return &CacheService[T]{
		cache:    store,
		producer: producer,
		fetcher:  fetcher,
	}
}

func (s *CacheService[T]) Get(params ...string) (*T, error) {
	ctx := context.Background()
	key := s.fetcher.CacheKey(params...)

	if data, err := s.cache.Get(ctx, key); err == nil {
		var result T
		if json.Unmarshal([]byte(data), &result) == nil {
			return &result, nil
		}
	} else if err != cache.ErrMiss {
		// Connectivity failure degrades to a miss.
		log.Printf("Cache read failed for %s, falling back to upstream: %v", key, err)
	}

	result, err := s.fetcher.Fetch(params...)
	if err != nil {
		return nil, err
	}

	if s.producer != nil {
		s.producer.PublishObjectAsync([]byte(key), result)
	} else {
		go func() {
			data, err := json.Marshal(result)
			if err != nil {
				log.Printf("Failed to marshal %s for cache: %v", key, err)
				return
			}
			if err := s.cache.Set(context.Background(), key, string(data)); err != nil {
				log.Printf("Cache write failed for %s: %v", key, err)
			}
		}()
	}

	return result, nil
}

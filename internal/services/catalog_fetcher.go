package services

import (
	"fmt"

	"token-icon-service/internal/api"
	"token-icon-service/internal/cache"
	"token-icon-service/internal/kafka"
	"token-icon-service/internal/models"
)

// TokenListKey is the single shared cache key for the full catalog.
const TokenListKey = "tokenList"

// CatalogFetcher feeds CacheService with the upstream token catalog.
type CatalogFetcher struct {
	API *api.Client
}

func (CatalogFetcher) CacheKey(params ...string) string {
	return TokenListKey
}

func (f CatalogFetcher) Fetch(params ...string) (*models.TokenList, error) {
	list, err := f.API.FetchTokenList()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if len(list) == 0 {
		return nil, ErrUpstreamEmpty
	}
	return &list, nil
}

// CatalogService is the cache-first resolver for the token catalog.
type CatalogService = CacheService[models.TokenList]

func NewCatalogService(store cache.Store, producer kafka.ProducerInterface, client *api.Client) *CatalogService {
	return NewCacheService[models.TokenList](store, producer, CatalogFetcher{API: client})
}

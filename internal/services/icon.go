package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"sort"
	"strings"

	"token-icon-service/internal/api"
	"token-icon-service/internal/cache"
	"token-icon-service/internal/kafka"
	"token-icon-service/internal/models"
)

// IconService resolves icon bytes for a (symbol, size) pair:
// cache hit short-circuits everything, a miss walks the catalog,
// ranks the candidates sharing the ticker and fetches the best one.
type IconService struct {
	cache    cache.Store
	catalog  *CatalogService
	api      *api.Client
	producer kafka.ProducerInterface
}

func NewIconService(
	store cache.Store,
	catalog *CatalogService,
	client *api.Client,
	producer kafka.ProducerInterface,
) *IconService {
	return &IconService{
		cache:    store,
		catalog:  catalog,
		api:      client,
		producer: producer,
	}
}

// ImageCacheKey is uniquely determined by (symbol, size).
func ImageCacheKey(symbol, size string) string {
	return "tokenImage:" + strings.ToLower(strings.TrimSpace(symbol)) + "-" + size
}

func (s *IconService) ResolveImage(symbol, size string) ([]byte, error) {
	ctx := context.Background()
	key := ImageCacheKey(symbol, size)

	if encoded, err := s.cache.Get(ctx, key); err == nil {
		if data, decErr := base64.StdEncoding.DecodeString(encoded); decErr == nil {
			return data, nil
		}
		log.Printf("Corrupt cache entry for %s, refetching", key)
	} else if err != cache.ErrMiss {
		log.Printf("Cache read failed for %s, falling back to upstream: %v", key, err)
	}

	list, err := s.catalog.Get()
	if err != nil {
		return nil, err
	}

	candidates := list.FilterBySymbol(symbol)
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no token with symbol %q", ErrTokenNotFound, symbol)
	}

	details, err := s.fetchDetails(candidates)
	if err != nil {
		return nil, err
	}

	best := rankCandidates(details)
	imageURL := best.Image.URL(size)

	data, err := s.api.FetchImage(imageURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageFetchFailed, err)
	}

	s.writeBack(key, data)
	return data, nil
}

// fetchDetails loads /coins/{id} for every candidate concurrently and
// fails fast: the first error aborts the wait, remaining fetches are
// abandoned in the background.
func (s *IconService) fetchDetails(candidates models.TokenList) ([]*models.TokenDetails, error) {
	type result struct {
		idx     int
		details *models.TokenDetails
	}

	results := make(chan result, len(candidates))
	errs := make(chan error, len(candidates))

	for i, c := range candidates {
		go func(idx int, id string) {
			details, err := s.api.FetchTokenDetails(id)
			if err != nil {
				errs <- fmt.Errorf("token %s: %v", id, err)
				return
			}
			results <- result{idx: idx, details: details}
		}(i, c.ID)
	}

	details := make([]*models.TokenDetails, len(candidates))
	for range candidates {
		select {
		case r := <-results:
			details[r.idx] = r.details
		case err := <-errs:
			return nil, fmt.Errorf("%w: %v", ErrDetailFetchFailed, err)
		}
	}
	return details, nil
}

// rankCandidates picks the candidate with the lowest market-cap rank.
// Unranked candidates (rank 0) sort after every ranked one; ties among
// them keep catalog order within a run.
func rankCandidates(details []*models.TokenDetails) *models.TokenDetails {
	ranked := make([]*models.TokenDetails, len(details))
	copy(ranked, details)

	sort.SliceStable(ranked, func(i, j int) bool {
		ri, rj := ranked[i].MarketCapRank, ranked[j].MarketCapRank
		if ri == 0 {
			return false
		}
		if rj == 0 {
			return true
		}
		return ri < rj
	})

	return ranked[0]
}

// writeBack caches the resolved bytes fire-and-forget, base64-encoded.
func (s *IconService) writeBack(key string, data []byte) {
	encoded := base64.StdEncoding.EncodeToString(data)

	if s.producer != nil {
		s.producer.PublishAsync([]byte(key), []byte(encoded))
		return
	}

	go func() {
		if err := s.cache.Set(context.Background(), key, encoded); err != nil {
			log.Printf("Cache write failed for %s: %v", key, err)
		}
	}()
}

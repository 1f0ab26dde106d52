// test/integration/icon_test.go
package integration

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"token-icon-service/internal/api"
	"token-icon-service/internal/cache"
	"token-icon-service/internal/handlers"
	"token-icon-service/internal/kafka"
	"token-icon-service/internal/models"
	"token-icon-service/internal/services"
	"token-icon-service/internal/workers"
	testutils "token-icon-service/test/utils"

	"github.com/avast/retry-go/v4"
	"github.com/go-chi/chi/v5"
	"github.com/redis/go-redis/v9"
)

var pngIcon = []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/coins/list", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(models.TokenList{
			{ID: "ethereum", Symbol: "eth", Name: "Ethereum"},
		})
	})
	mux.HandleFunc("/coins/", func(w http.ResponseWriter, r *http.Request) {
		base := "http://" + r.Host
		json.NewEncoder(w).Encode(models.TokenDetails{
			ID:            "ethereum",
			MarketCapRank: 2,
			Image: models.TokenImage{
				Thumb: base + "/icon.png",
				Small: base + "/icon.png",
				Large: base + "/icon.png",
			},
		})
	})
	mux.HandleFunc("/icon.png", func(w http.ResponseWriter, r *http.Request) {
		w.Write(pngIcon)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGetIcon_KafkaToRedis(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer rdb.Close()
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis unavailable: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	imageKey := services.ImageCacheKey("eth", models.SizeSM)
	rdb.Del(ctx, imageKey, services.TokenListKey)

	testutils.CreateKafkaTopic(t, "icon-cache-updates")
	time.Sleep(500 * time.Millisecond)

	store := cache.NewRedisStore(rdb)

	consumer := kafka.NewConsumer("icon-cache-updates", "test-icon-"+t.Name())
	defer consumer.Stop()
	workers.StartIconSyncer(store, consumer)
	time.Sleep(1 * time.Second)

	producer := kafka.NewProducer("icon-cache-updates")
	defer producer.Close()

	upstream := newUpstream(t)
	client := api.NewClient(upstream.URL)
	catalogService := services.NewCatalogService(store, producer, client)
	iconService := services.NewIconService(store, catalogService, client, producer)
	handler := handlers.NewIconHandler(iconService, store, nil)

	router := chi.NewRouter()
	router.Get("/", handler.GetIcon)
	srv := httptest.NewServer(router)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/?symbol=eth&size=sm")
	if err != nil {
		t.Fatalf("HTTP request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/png" {
		t.Errorf("Expected image/png, got %s", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	if !bytes.Equal(body, pngIcon) {
		t.Error("Response body is not the upstream icon")
	}

	var cached string
	err = retry.Do(
		func() error {
			return rdb.Get(ctx, imageKey).Scan(&cached)
		},
		retry.Attempts(150),
		retry.Delay(100*time.Millisecond),
	)
	if err != nil {
		t.Fatalf("Image not synced to Redis in time: %v", err)
	}

	decoded, err := base64.StdEncoding.DecodeString(cached)
	if err != nil {
		t.Fatalf("Cached value is not base64: %v", err)
	}
	if !bytes.Equal(decoded, pngIcon) {
		t.Error("Cached bytes differ from served bytes")
	}
}

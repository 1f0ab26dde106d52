package main

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"token-icon-service/internal/api"
	"token-icon-service/internal/bootstrap"
	"token-icon-service/internal/cache"
	"token-icon-service/internal/config"
	"token-icon-service/internal/cron"
	"token-icon-service/internal/db"
	"token-icon-service/internal/handlers"
	"token-icon-service/internal/kafka"
	"token-icon-service/internal/repositories"
	"token-icon-service/internal/services"
	"token-icon-service/internal/workers"

	"github.com/go-chi/chi/v5"
)

func main() {
	cfg := config.Load()

	// ------------------------
	// Storage
	// ------------------------
	redisClient := db.ConnectRedis(cfg)
	store := cache.NewRedisStore(redisClient)

	pg := db.ConnectPostgres(cfg)

	// ------------------------
	// Kafka
	// ------------------------
	kafkaBundle := kafka.InitKafka()

	// ------------------------
	// Services
	// ------------------------
	coingecko := api.NewClient(cfg.CoinGeckoURL)
	catalogService := services.NewCatalogService(store, kafkaBundle.IconProducer, coingecko)
	iconService := services.NewIconService(store, catalogService, coingecko, kafkaBundle.IconProducer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workers.StartAllWorkers(ctx, store, iconService, kafkaBundle)

	// ------------------------
	// Request log + pre-warming
	// ------------------------
	var requestRepo *repositories.RequestLogRepository
	var recorder handlers.RequestRecorder
	if pg != nil {
		requestRepo = repositories.NewRequestLogRepository(pg)
		recorder = requestRepo

		interval := popularInterval(cfg.PopularInterval)
		publisher := cron.NewPopularPublisher(requestRepo, kafkaBundle.PopularProducer, interval)
		go publisher.Start(ctx)
	}

	// ------------------------
	// Router
	// ------------------------
	handler := handlers.NewIconHandler(iconService, store, recorder)

	r := chi.NewRouter()
	r.Get("/", handler.GetIcon)
	r.Get("/health", handlers.Health)

	// ------------------------
	// Server
	// ------------------------
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	bootstrap.GracefulShutdown(srv, redisClient, pg, kafkaBundle)

	log.Printf("Server started on :%s", cfg.Port)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func popularInterval(minutes string) time.Duration {
	n, err := strconv.Atoi(minutes)
	if err != nil || n <= 0 {
		n = 15
	}
	return time.Duration(n) * time.Minute
}

package bootstrap

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"token-icon-service/internal/kafka"

	"github.com/redis/go-redis/v9"
)

func GracefulShutdown(srv *http.Server, redisClient *redis.Client, pg *sql.DB, kafkaBundle *kafka.KafkaBundle) {
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig

		log.Println("Shutting down gracefully...")

		if kafkaBundle != nil {
			kafkaBundle.IconConsumer.Stop()
			kafkaBundle.PopularConsumer.Stop()

			kafkaBundle.IconProducer.Close()
			kafkaBundle.PopularProducer.Close()
		}

		if pg != nil {
			if err := pg.Close(); err != nil {
				log.Printf("Postgres close error: %v", err)
			}
		}

		if redisClient != nil {
			if err := redisClient.Close(); err != nil {
				log.Printf("Redis close error: %v", err)
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Printf("Server shutdown error: %v", err)
		}
	}()
}

package db

import (
	"context"
	"database/sql"
	"log"
	"time"

	"token-icon-service/internal/config"

	_ "github.com/lib/pq"
)

// ConnectPostgres opens the request-log database. Returns nil when no
// DATABASE_URL is configured: the service then runs without request
// logging or pre-warming.
func ConnectPostgres(cfg *config.Config) *sql.DB {
	if cfg.DatabaseURL == "" {
		log.Println("DATABASE_URL not set, request logging disabled")
		return nil
	}

	var db *sql.DB
	var err error

	for i := 0; i < 10; i++ {
		db, err = sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Printf("sql.Open() error: %v", err)
		} else {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err = db.PingContext(ctx)
			cancel()
			if err == nil {
				log.Println("PostgreSQL connected successfully")
				return db
			}
			log.Printf("Attempt %d: PostgreSQL connection failed: %v", i+1, err)
		}

		time.Sleep(3 * time.Second)
	}

	log.Fatalf("PostgreSQL unreachable after 10 attempts: %v", err)
	return nil
}

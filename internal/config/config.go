package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	RedisURL        string
	DatabaseURL     string
	CoinGeckoURL    string
	IconTopic       string
	PopularTopic    string
	PopularInterval string
	Port            string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded (ok for prod)")
	}
	return &Config{
		RedisURL:        getEnv("REDIS_URL", "redis://localhost:6379"),
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		CoinGeckoURL:    os.Getenv("COINGECKO_API_URL"),
		IconTopic:       getEnv("ICON_KAFKA_TOPIC", "icon-cache-updates"),
		PopularTopic:    getEnv("POPULAR_KAFKA_TOPIC", "popular-icons"),
		PopularInterval: getEnv("POPULAR_INTERVAL_MINUTES", "15"),
		Port:            getEnv("PORT", "8080"),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

package kafka

type KafkaBundle struct {
	IconProducer    *Producer
	PopularProducer *Producer

	IconConsumer    *Consumer
	PopularConsumer *Consumer
}

// InitKafka wires the two topics the service uses: icon-cache-updates
// carries (cacheKey, value) write-backs synced into Redis, and
// popular-icons carries pre-warm commands for frequently requested pairs.
func InitKafka() *KafkaBundle {
	iconTopic := getEnv("ICON_KAFKA_TOPIC", "icon-cache-updates")
	popularTopic := getEnv("POPULAR_KAFKA_TOPIC", "popular-icons")

	return &KafkaBundle{
		IconProducer:    NewProducer(iconTopic),
		PopularProducer: NewProducer(popularTopic),

		IconConsumer:    NewConsumer(iconTopic, "icon-redis-syncer"),
		PopularConsumer: NewConsumer(popularTopic, "icon-prewarmer"),
	}
}

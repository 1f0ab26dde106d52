package models

type TaskArgs map[string]string

// PopularRequest is a pre-warm command published to Kafka for
// frequently requested (symbol, size) pairs.
type PopularRequest struct {
	Type string   `json:"type"`
	Args TaskArgs `json:"args"`
}

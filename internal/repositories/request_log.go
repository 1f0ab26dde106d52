package repositories

import (
	"context"
	"database/sql"
	"log"
	"time"

	"token-icon-service/internal/models"
)

type RequestLogRepository struct {
	db *sql.DB
}

func NewRequestLogRepository(db *sql.DB) *RequestLogRepository {
	return &RequestLogRepository{db: db}
}

func (r *RequestLogRepository) DB() *sql.DB {
	return r.db
}

// Save records one served icon request.
func (r *RequestLogRepository) Save(symbol, size string) error {
	_, err := r.db.Exec(
		`INSERT INTO icon_requests (symbol, size, created_at) VALUES ($1, $2, $3)`,
		symbol, size, time.Now(),
	)
	if err != nil {
		log.Printf("Failed to save icon request: %v", err)
		return err
	}
	return nil
}

// GetTopRequests returns the five most requested (symbol, size) pairs
// of the last 24 hours, as pre-warm commands.
func (r *RequestLogRepository) GetTopRequests(ctx context.Context) ([]models.PopularRequest, error) {
	const sqlQuery = `
SELECT symbol, size, COUNT(*) AS cnt
FROM icon_requests
WHERE created_at >= NOW() - INTERVAL '24 hours'
GROUP BY symbol, size
ORDER BY cnt DESC
LIMIT 5;
`

	rows, err := r.db.QueryContext(ctx, sqlQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var topRequests []models.PopularRequest
	for rows.Next() {
		var symbol, size string
		var cnt int

		if err := rows.Scan(&symbol, &size, &cnt); err != nil {
			return nil, err
		}

		topRequests = append(topRequests, models.PopularRequest{
			Type: "icon",
			Args: models.TaskArgs{"symbol": symbol, "size": size},
		})
	}

	return topRequests, rows.Err()
}

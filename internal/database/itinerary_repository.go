package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tripweave/tripweave/internal/consolidate"
)

// StoredItinerary is a persisted consolidation result.
type StoredItinerary struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Result    json.RawMessage `json:"result"`
}

// PostgresItineraryRepository stores consolidated itineraries in PostgreSQL.
type PostgresItineraryRepository struct {
	db *sql.DB
}

// NewPostgresItineraryRepository creates a new PostgreSQL itinerary repository.
func NewPostgresItineraryRepository(db *sql.DB) *PostgresItineraryRepository {
	return &PostgresItineraryRepository{db: db}
}

// EnsureSchema creates the itineraries table if it does not exist.
func (r *PostgresItineraryRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS itineraries (
			id UUID PRIMARY KEY,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			result JSONB NOT NULL
		)
	`

	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to ensure itineraries schema: %w", err)
	}
	return nil
}

// Store persists a consolidation result and returns the stored record.
func (r *PostgresItineraryRepository) Store(ctx context.Context, result *consolidate.Result) (*StoredItinerary, error) {
	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}

	stored := &StoredItinerary{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Result:    payload,
	}

	query := `INSERT INTO itineraries (id, created_at, result) VALUES ($1, $2, $3)`
	if _, err := r.db.ExecContext(ctx, query, stored.ID, stored.CreatedAt, stored.Result); err != nil {
		return nil, fmt.Errorf("failed to insert itinerary: %w", err)
	}

	return stored, nil
}

// Get retrieves a stored itinerary by ID. Returns (nil, nil) when not found.
func (r *PostgresItineraryRepository) Get(ctx context.Context, id string) (*StoredItinerary, error) {
	query := `SELECT id, created_at, result FROM itineraries WHERE id = $1`

	var stored StoredItinerary
	err := r.db.QueryRowContext(ctx, query, id).Scan(&stored.ID, &stored.CreatedAt, &stored.Result)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get itinerary: %w", err)
	}

	return &stored, nil
}

// List returns stored itineraries, newest first.
func (r *PostgresItineraryRepository) List(ctx context.Context, limit int) ([]StoredItinerary, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `SELECT id, created_at, result FROM itineraries ORDER BY created_at DESC LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list itineraries: %w", err)
	}
	defer rows.Close()

	var itineraries []StoredItinerary
	for rows.Next() {
		var stored StoredItinerary
		if err := rows.Scan(&stored.ID, &stored.CreatedAt, &stored.Result); err != nil {
			return nil, fmt.Errorf("failed to scan itinerary: %w", err)
		}
		itineraries = append(itineraries, stored)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate itineraries: %w", err)
	}

	return itineraries, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"campusdrop/internal/pkg/models"
)

// RequestRepo stores delivery requests in Postgres.
type RequestRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewRequestRepository creates a new request repository
func NewRequestRepository(cfg *models.Config, db *sqlx.DB) *RequestRepo {
	return &RequestRepo{
		cfg: cfg,
		db:  db,
	}
}

// CreateRequest inserts a new delivery request
func (r *RequestRepo) CreateRequest(ctx context.Context, request *models.DeliveryRequest) error {
	query := `
		INSERT INTO delivery_requests (
			id, posted_by, item,
			pickup_latitude, pickup_longitude, pickup_area,
			drop_latitude, drop_longitude, drop_area,
			deadline, status, notes, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		request.ID,
		request.PostedBy,
		request.Item,
		request.PickupLocation.Latitude,
		request.PickupLocation.Longitude,
		request.PickupArea,
		request.DropLocation.Latitude,
		request.DropLocation.Longitude,
		request.DropArea,
		request.Deadline,
		request.Status,
		request.Notes,
		request.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert delivery request: %w", err)
	}
	return nil
}

// GetRequest retrieves a delivery request by id
func (r *RequestRepo) GetRequest(ctx context.Context, id uuid.UUID) (*models.DeliveryRequest, error) {
	query := `
		SELECT
			id, posted_by, item,
			pickup_latitude, pickup_longitude, pickup_area,
			drop_latitude, drop_longitude, drop_area,
			deadline, status, notes, created_at
		FROM delivery_requests
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)

	request := &models.DeliveryRequest{}
	var notes sql.NullString
	err := row.Scan(
		&request.ID,
		&request.PostedBy,
		&request.Item,
		&request.PickupLocation.Latitude,
		&request.PickupLocation.Longitude,
		&request.PickupArea,
		&request.DropLocation.Latitude,
		&request.DropLocation.Longitude,
		&request.DropArea,
		&request.Deadline,
		&request.Status,
		&notes,
		&request.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("request not found: %s", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get delivery request: %w", err)
	}
	request.Notes = notes.String
	return request, nil
}

// ExpirableRequests returns the ids of non-terminal requests whose deadline
// has passed. A request at its exact deadline instant is not yet expirable.
func (r *RequestRepo) ExpirableRequests(ctx context.Context, now time.Time) ([]uuid.UUID, error) {
	query := `
		SELECT id
		FROM delivery_requests
		WHERE status IN ('open', 'accepted') AND deadline < $1
		ORDER BY deadline
	`

	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, now); err != nil {
		return nil, fmt.Errorf("failed to query expirable requests: %w", err)
	}
	return ids, nil
}

// ExpireRequest conditionally transitions a request to expired. The status
// guard in the WHERE clause is what makes concurrent expiration safe: the
// row moves to expired exactly once, and a request completed in the
// meantime is left alone.
func (r *RequestRepo) ExpireRequest(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
		UPDATE delivery_requests
		SET status = 'expired'
		WHERE id = $1 AND status IN ('open', 'accepted')
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, fmt.Errorf("failed to expire request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return rows > 0, nil
}

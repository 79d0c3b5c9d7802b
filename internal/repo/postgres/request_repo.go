package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
)

var (
	ErrRequestNotFound  = errors.New("matching request not found")
	ErrDuplicateRequest = errors.New("matching request already exists for slot")
)

const uniqueViolationCode = "23505"

type RequestRepo struct {
	pool *pgxpool.Pool
}

func NewRequestRepo(pool *pgxpool.Pool) *RequestRepo {
	return &RequestRepo{pool: pool}
}

func (r *RequestRepo) Create(ctx context.Context, req model.MatchingRequest) (model.MatchingRequest, error) {
	if r.pool == nil {
		return model.MatchingRequest{}, fmt.Errorf("postgres pool is nil")
	}

	err := r.pool.QueryRow(ctx, `
INSERT INTO matching_requests (request_date, time_slot, category, user_id, memo)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, requested_at
`, req.Date, string(req.TimeSlot), string(req.Category), req.UserID, req.Memo).Scan(&req.ID, &req.RequestedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			return model.MatchingRequest{}, ErrDuplicateRequest
		}
		return model.MatchingRequest{}, fmt.Errorf("create matching request: %w", err)
	}

	return req, nil
}

func (r *RequestRepo) GetByID(ctx context.Context, id int64) (model.MatchingRequest, error) {
	if r.pool == nil {
		return model.MatchingRequest{}, fmt.Errorf("postgres pool is nil")
	}

	var req model.MatchingRequest
	var slot, category string
	err := r.pool.QueryRow(ctx, `
SELECT id, request_date, time_slot, category, user_id, memo, requested_at
FROM matching_requests
WHERE id = $1
`, id).Scan(&req.ID, &req.Date, &slot, &category, &req.UserID, &req.Memo, &req.RequestedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.MatchingRequest{}, ErrRequestNotFound
		}
		return model.MatchingRequest{}, fmt.Errorf("get matching request: %w", err)
	}

	req.TimeSlot = enums.TimeSlot(slot)
	req.Category = enums.Category(category)
	return req, nil
}

// ListBucket returns the pending requests of one (date, slot, category)
// bucket ordered oldest first. The ordering is the matcher's fairness
// contract.
func (r *RequestRepo) ListBucket(ctx context.Context, date time.Time, slot enums.TimeSlot, category enums.Category) ([]model.MatchingRequest, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, request_date, time_slot, category, user_id, memo, requested_at
FROM matching_requests
WHERE request_date = $1 AND time_slot = $2 AND category = $3
ORDER BY requested_at ASC, id ASC
`, date, string(slot), string(category))
	if err != nil {
		return nil, fmt.Errorf("list bucket requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *RequestRepo) ListForUser(ctx context.Context, userID int64) ([]model.MatchingRequest, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, request_date, time_slot, category, user_id, memo, requested_at
FROM matching_requests
WHERE user_id = $1
ORDER BY requested_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list user requests: %w", err)
	}
	defer rows.Close()

	return scanRequests(rows)
}

func (r *RequestRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM matching_requests WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete matching request: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *RequestRepo) DeleteAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM matching_requests`)
	if err != nil {
		return 0, fmt.Errorf("purge matching requests: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanRequests(rows pgx.Rows) ([]model.MatchingRequest, error) {
	items := make([]model.MatchingRequest, 0)
	for rows.Next() {
		var req model.MatchingRequest
		var slot, category string
		if err := rows.Scan(&req.ID, &req.Date, &slot, &category, &req.UserID, &req.Memo, &req.RequestedAt); err != nil {
			return nil, fmt.Errorf("scan matching request: %w", err)
		}
		req.TimeSlot = enums.TimeSlot(slot)
		req.Category = enums.Category(category)
		items = append(items, req)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matching requests: %w", rows.Err())
	}

	return items, nil
}

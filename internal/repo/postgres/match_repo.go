package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
)

var (
	ErrMatchNotFound   = errors.New("match not found")
	ErrRequestConsumed = errors.New("matching request already consumed")
)

type MatchRepo struct {
	pool *pgxpool.Pool
}

// MatchLogRecord is a row of the historical log view: a retired match seen
// from one participant's side.
type MatchLogRecord struct {
	MatchID       int64
	Date          time.Time
	TimeSlot      enums.TimeSlot
	Category      enums.Category
	StoreID       int64
	CounterpartID int64
	RetiredAt     *time.Time
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

const matchColumns = `
id, match_date, time_slot, category, store_id,
user1_id, user2_id, user1_memo, user2_memo,
user1_confirmed, user2_confirmed, retired, created_at, retired_at`

// CreateFromPair persists a match and deletes its two source requests in one
// transaction. If either request row is already gone (for example consumed by
// an overlapping run) the whole pair rolls back with ErrRequestConsumed.
func (r *MatchRepo) CreateFromPair(ctx context.Context, match model.Match, requestID1, requestID2 int64) (model.Match, error) {
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}
	if match.User1ID == match.User2ID {
		return model.Match{}, fmt.Errorf("match pairs the same user %d with itself", match.User1ID)
	}

	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		for _, requestID := range []int64{requestID1, requestID2} {
			result, err := tx.Exec(txCtx, `DELETE FROM matching_requests WHERE id = $1`, requestID)
			if err != nil {
				return fmt.Errorf("consume matching request %d: %w", requestID, err)
			}
			if result.RowsAffected() == 0 {
				return ErrRequestConsumed
			}
		}

		err := tx.QueryRow(txCtx, `
INSERT INTO matches (match_date, time_slot, category, store_id, user1_id, user2_id, user1_memo, user2_memo)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at
`, match.Date, string(match.TimeSlot), string(match.Category), match.StoreID,
			match.User1ID, match.User2ID, match.User1Memo, match.User2Memo,
		).Scan(&match.ID, &match.CreatedAt)
		if err != nil {
			return fmt.Errorf("create match: %w", err)
		}
		return nil
	})
	if err != nil {
		return model.Match{}, err
	}

	return match, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, id int64) (model.Match, error) {
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `SELECT`+matchColumns+` FROM matches WHERE id = $1`, id)
	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}

	return match, nil
}

// ConfirmParticipant flips the acting user's confirmation flag and retires
// the match in the same statement when both flags end up true. The update is
// idempotent for repeated confirmations by the same user.
func (r *MatchRepo) ConfirmParticipant(ctx context.Context, matchID, userID int64) (model.Match, error) {
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
UPDATE matches
SET
	user1_confirmed = user1_confirmed OR (user1_id = $2),
	user2_confirmed = user2_confirmed OR (user2_id = $2),
	retired = retired
		OR ((user1_confirmed OR user1_id = $2) AND (user2_confirmed OR user2_id = $2)),
	retired_at = CASE
		WHEN retired_at IS NULL
			AND ((user1_confirmed OR user1_id = $2) AND (user2_confirmed OR user2_id = $2))
		THEN NOW()
		ELSE retired_at
	END
WHERE id = $1 AND (user1_id = $2 OR user2_id = $2)
RETURNING`+matchColumns, matchID, userID)

	match, err := scanMatch(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("confirm match: %w", err)
	}

	return match, nil
}

func (r *MatchRepo) ListActiveForUser(ctx context.Context, userID int64) ([]model.Match, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	rows, err := r.pool.Query(ctx, `
SELECT`+matchColumns+`
FROM matches
WHERE (user1_id = $1 OR user2_id = $1) AND NOT retired
ORDER BY created_at DESC, id DESC
`, userID)
	if err != nil {
		return nil, fmt.Errorf("list active matches: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0)
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("scan active match: %w", err)
		}
		items = append(items, match)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate active matches: %w", rows.Err())
	}

	return items, nil
}

// ListRetiredForUser returns the historical log for a user, newest first,
// with the paired counterpart resolved for display.
func (r *MatchRepo) ListRetiredForUser(ctx context.Context, userID int64, limit int) ([]MatchLogRecord, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.pool.Query(ctx, `
SELECT
	id,
	match_date,
	time_slot,
	category,
	store_id,
	CASE WHEN user1_id = $1 THEN user2_id ELSE user1_id END AS counterpart_id,
	retired_at
FROM matches
WHERE (user1_id = $1 OR user2_id = $1) AND retired
ORDER BY match_date DESC, id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list match log: %w", err)
	}
	defer rows.Close()

	items := make([]MatchLogRecord, 0, limit)
	for rows.Next() {
		var item MatchLogRecord
		var slot, category string
		if err := rows.Scan(&item.MatchID, &item.Date, &slot, &category, &item.StoreID, &item.CounterpartID, &item.RetiredAt); err != nil {
			return nil, fmt.Errorf("scan match log record: %w", err)
		}
		item.TimeSlot = enums.TimeSlot(slot)
		item.Category = enums.Category(category)
		items = append(items, item)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate match log: %w", rows.Err())
	}

	return items, nil
}

func (r *MatchRepo) CountRetiredForUser(ctx context.Context, userID int64) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	err := r.pool.QueryRow(ctx, `
SELECT COUNT(*) FROM matches WHERE (user1_id = $1 OR user2_id = $1) AND retired
`, userID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count user matches: %w", err)
	}

	return count, nil
}

func (r *MatchRepo) CountAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var count int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count matches: %w", err)
	}

	return count, nil
}

// RetireAll is the end-of-day administrative sweep: every open match is
// retired regardless of confirmation state.
func (r *MatchRepo) RetireAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
UPDATE matches SET retired = TRUE, retired_at = NOW() WHERE NOT retired
`)
	if err != nil {
		return 0, fmt.Errorf("retire all matches: %w", err)
	}

	return result.RowsAffected(), nil
}

func (r *MatchRepo) DeleteAll(ctx context.Context) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `DELETE FROM matches`)
	if err != nil {
		return 0, fmt.Errorf("purge matches: %w", err)
	}

	return result.RowsAffected(), nil
}

func scanMatch(row pgx.Row) (model.Match, error) {
	var match model.Match
	var slot, category string
	err := row.Scan(
		&match.ID,
		&match.Date,
		&slot,
		&category,
		&match.StoreID,
		&match.User1ID,
		&match.User2ID,
		&match.User1Memo,
		&match.User2Memo,
		&match.User1Confirmed,
		&match.User2Confirmed,
		&match.Retired,
		&match.CreatedAt,
		&match.RetiredAt,
	)
	if err != nil {
		return model.Match{}, err
	}

	match.TimeSlot = enums.TimeSlot(slot)
	match.Category = enums.Category(category)
	return match, nil
}

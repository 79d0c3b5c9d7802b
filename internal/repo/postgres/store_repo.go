package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
)

var ErrStoreNotFound = errors.New("store not found")

type StoreRepo struct {
	pool *pgxpool.Pool
}

func NewStoreRepo(pool *pgxpool.Pool) *StoreRepo {
	return &StoreRepo{pool: pool}
}

func (r *StoreRepo) ListByCategory(ctx context.Context, category enums.Category) ([]model.Store, error) {
	return r.list(ctx, string(category))
}

func (r *StoreRepo) List(ctx context.Context) ([]model.Store, error) {
	return r.list(ctx, "")
}

func (r *StoreRepo) list(ctx context.Context, category string) ([]model.Store, error) {
	if r.pool == nil {
		return nil, fmt.Errorf("postgres pool is nil")
	}

	query := `
SELECT id, name, category, address, phone, description, created_at
FROM stores`
	args := []any{}
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY id ASC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()

	stores := make([]model.Store, 0)
	ids := make([]int64, 0)
	for rows.Next() {
		var store model.Store
		var cat string
		if err := rows.Scan(&store.ID, &store.Name, &cat, &store.Address, &store.Phone, &store.Description, &store.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		store.Category = enums.Category(cat)
		stores = append(stores, store)
		ids = append(ids, store.ID)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate stores: %w", rows.Err())
	}

	if len(stores) == 0 {
		return stores, nil
	}

	hoursByStore, err := r.loadHours(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range stores {
		stores[i].BusinessHours = hoursByStore[stores[i].ID]
	}

	return stores, nil
}

func (r *StoreRepo) GetByID(ctx context.Context, id int64) (model.Store, error) {
	if r.pool == nil {
		return model.Store{}, fmt.Errorf("postgres pool is nil")
	}

	var store model.Store
	var category string
	err := r.pool.QueryRow(ctx, `
SELECT id, name, category, address, phone, description, created_at
FROM stores
WHERE id = $1
`, id).Scan(&store.ID, &store.Name, &category, &store.Address, &store.Phone, &store.Description, &store.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Store{}, ErrStoreNotFound
		}
		return model.Store{}, fmt.Errorf("get store: %w", err)
	}
	store.Category = enums.Category(category)

	hoursByStore, err := r.loadHours(ctx, []int64{store.ID})
	if err != nil {
		return model.Store{}, err
	}
	store.BusinessHours = hoursByStore[store.ID]

	return store, nil
}

func (r *StoreRepo) Create(ctx context.Context, store model.Store) (model.Store, error) {
	if r.pool == nil {
		return model.Store{}, fmt.Errorf("postgres pool is nil")
	}

	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(txCtx, `
INSERT INTO stores (name, category, address, phone, description)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at
`, store.Name, string(store.Category), store.Address, store.Phone, store.Description).Scan(&store.ID, &store.CreatedAt)
		if err != nil {
			return fmt.Errorf("create store: %w", err)
		}

		for _, hours := range store.BusinessHours {
			_, err := tx.Exec(txCtx, `
INSERT INTO store_business_hours (store_id, day_of_week, opening_time, closing_time, last_order_time, break_start, break_end)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
`, store.ID, string(hours.DayOfWeek), hours.OpeningTime, hours.ClosingTime, hours.LastOrderTime, hours.BreakStart, hours.BreakEnd)
			if err != nil {
				return fmt.Errorf("create store business hours: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return model.Store{}, err
	}

	return store, nil
}

func (r *StoreRepo) loadHours(ctx context.Context, storeIDs []int64) (map[int64][]model.BusinessHour, error) {
	rows, err := r.pool.Query(ctx, `
SELECT store_id, day_of_week, opening_time, closing_time,
	COALESCE(last_order_time, ''), COALESCE(break_start, ''), COALESCE(break_end, '')
FROM store_business_hours
WHERE store_id = ANY($1)
ORDER BY store_id ASC, id ASC
`, storeIDs)
	if err != nil {
		return nil, fmt.Errorf("list store business hours: %w", err)
	}
	defer rows.Close()

	byStore := make(map[int64][]model.BusinessHour, len(storeIDs))
	for rows.Next() {
		var storeID int64
		var hours model.BusinessHour
		var day string
		if err := rows.Scan(&storeID, &day, &hours.OpeningTime, &hours.ClosingTime, &hours.LastOrderTime, &hours.BreakStart, &hours.BreakEnd); err != nil {
			return nil, fmt.Errorf("scan store business hours: %w", err)
		}
		hours.DayOfWeek = enums.DayOfWeek(day)
		byStore[storeID] = append(byStore[storeID], hours)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate store business hours: %w", rows.Err())
	}

	return byStore, nil
}

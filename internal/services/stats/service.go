package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/babmate/backend/internal/domain/enums"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
)

var ErrValidation = errors.New("validation error")

type MatchLogStore interface {
	ListRetiredForUser(ctx context.Context, userID int64, limit int) ([]pgrepo.MatchLogRecord, error)
	CountRetiredForUser(ctx context.Context, userID int64) (int64, error)
	CountAll(ctx context.Context) (int64, error)
}

type Config struct {
	// CountPadding is a fixed additive bias on the reported global match
	// count, kept as configuration because its business rationale is
	// undocumented.
	CountPadding int64
}

type Service struct {
	store MatchLogStore
	cfg   Config
}

func NewService(store MatchLogStore, cfg Config) *Service {
	return &Service{store: store, cfg: cfg}
}

type LogEntry struct {
	MatchID       int64
	Date          time.Time
	TimeSlot      enums.TimeSlot
	Category      enums.Category
	StoreID       int64
	CounterpartID int64
	RetiredAt     *time.Time
}

// MyLog returns the user's retired matches, newest first, with the paired
// counterpart attached for display.
func (s *Service) MyLog(ctx context.Context, userID int64, limit int) ([]LogEntry, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("match log store is nil")
	}

	rows, err := s.store.ListRetiredForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]LogEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, LogEntry{
			MatchID:       row.MatchID,
			Date:          row.Date,
			TimeSlot:      row.TimeSlot,
			Category:      row.Category,
			StoreID:       row.StoreID,
			CounterpartID: row.CounterpartID,
			RetiredAt:     row.RetiredAt,
		})
	}
	return entries, nil
}

func (s *Service) MyCount(ctx context.Context, userID int64) (int64, error) {
	if userID <= 0 {
		return 0, ErrValidation
	}
	if s.store == nil {
		return 0, fmt.Errorf("match log store is nil")
	}

	return s.store.CountRetiredForUser(ctx, userID)
}

// GlobalCount reports the total match count with the configured padding
// applied. The padding never leaks into per-user numbers.
func (s *Service) GlobalCount(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("match log store is nil")
	}

	count, err := s.store.CountAll(ctx)
	if err != nil {
		return 0, err
	}

	return count + s.cfg.CountPadding, nil
}

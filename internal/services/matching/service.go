package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/babmate/backend/internal/domain/model"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("match not found")
	ErrForbidden  = errors.New("not a participant of this match")
)

// MatchState is the confirmation-protocol state derived from a match row.
type MatchState string

const (
	StateOpen               MatchState = "open"
	StatePartiallyConfirmed MatchState = "partially_confirmed"
	StateRetired            MatchState = "retired"
)

func StateOf(m model.Match) MatchState {
	switch {
	case m.Retired:
		return StateRetired
	case m.User1Confirmed || m.User2Confirmed:
		return StatePartiallyConfirmed
	default:
		return StateOpen
	}
}

type MatchStore interface {
	GetByID(ctx context.Context, id int64) (model.Match, error)
	ConfirmParticipant(ctx context.Context, matchID, userID int64) (model.Match, error)
	ListActiveForUser(ctx context.Context, userID int64) ([]model.Match, error)
	RetireAll(ctx context.Context) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Service struct {
	store MatchStore
}

func NewService(store MatchStore) *Service {
	return &Service{store: store}
}

// Confirm records the acting user's acknowledgment. When the second
// participant confirms, the match retires into the historical log. Repeat
// confirmations by the same user are no-op successes.
func (s *Service) Confirm(ctx context.Context, matchID, userID int64) (model.Match, MatchState, error) {
	if matchID <= 0 || userID <= 0 {
		return model.Match{}, "", ErrValidation
	}
	if s.store == nil {
		return model.Match{}, "", fmt.Errorf("match store is nil")
	}

	match, err := s.store.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, "", ErrNotFound
		}
		return model.Match{}, "", err
	}
	if !match.IsParticipant(userID) {
		return model.Match{}, "", ErrForbidden
	}

	updated, err := s.store.ConfirmParticipant(ctx, matchID, userID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.Match{}, "", ErrNotFound
		}
		return model.Match{}, "", err
	}

	return updated, StateOf(updated), nil
}

// ListActive returns the user's matches that have not yet retired.
func (s *Service) ListActive(ctx context.Context, userID int64) ([]model.Match, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("match store is nil")
	}

	return s.store.ListActiveForUser(ctx, userID)
}

// RetireAll is the administrative end-of-day sweep: every open match retires
// regardless of confirmation state.
func (s *Service) RetireAll(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("match store is nil")
	}

	return s.store.RetireAll(ctx)
}

func (s *Service) PurgeAll(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("match store is nil")
	}

	return s.store.DeleteAll(ctx)
}

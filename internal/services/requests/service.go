package requests

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("matching request not found")
	ErrForbidden  = errors.New("not the owner of this matching request")
	ErrDuplicate  = errors.New("matching request already exists for slot")
)

const maxMemoLength = 500

type RequestStore interface {
	Create(ctx context.Context, req model.MatchingRequest) (model.MatchingRequest, error)
	GetByID(ctx context.Context, id int64) (model.MatchingRequest, error)
	ListForUser(ctx context.Context, userID int64) ([]model.MatchingRequest, error)
	Delete(ctx context.Context, id int64) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}

type Service struct {
	store RequestStore
}

func NewService(store RequestStore) *Service {
	return &Service{store: store}
}

type SubmitInput struct {
	Date     time.Time
	TimeSlot enums.TimeSlot
	Category enums.Category
	Memo     string
}

func (s *Service) Submit(ctx context.Context, userID int64, input SubmitInput) (model.MatchingRequest, error) {
	if userID <= 0 {
		return model.MatchingRequest{}, ErrValidation
	}
	if input.Date.IsZero() {
		return model.MatchingRequest{}, ErrValidation
	}
	if !input.TimeSlot.Valid() || !input.Category.Valid() {
		return model.MatchingRequest{}, ErrValidation
	}
	if len(input.Memo) > maxMemoLength {
		return model.MatchingRequest{}, ErrValidation
	}
	if s.store == nil {
		return model.MatchingRequest{}, fmt.Errorf("request store is nil")
	}

	created, err := s.store.Create(ctx, model.MatchingRequest{
		Date:     truncateToDay(input.Date),
		TimeSlot: input.TimeSlot,
		Category: input.Category,
		UserID:   userID,
		Memo:     strings.TrimSpace(input.Memo),
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrDuplicateRequest) {
			return model.MatchingRequest{}, ErrDuplicate
		}
		return model.MatchingRequest{}, err
	}

	return created, nil
}

func (s *Service) Cancel(ctx context.Context, requestID, userID int64) error {
	if requestID <= 0 || userID <= 0 {
		return ErrValidation
	}
	if s.store == nil {
		return fmt.Errorf("request store is nil")
	}

	req, err := s.store.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrRequestNotFound) {
			return ErrNotFound
		}
		return err
	}
	if req.UserID != userID {
		return ErrForbidden
	}

	deleted, err := s.store.Delete(ctx, requestID)
	if err != nil {
		return err
	}
	if !deleted {
		// Consumed by the matcher between the read and the delete.
		return ErrNotFound
	}

	return nil
}

func (s *Service) ListMine(ctx context.Context, userID int64) ([]model.MatchingRequest, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.store == nil {
		return nil, fmt.Errorf("request store is nil")
	}

	return s.store.ListForUser(ctx, userID)
}

// PurgeAll is the administrative bulk wipe of every pending request.
func (s *Service) PurgeAll(ctx context.Context) (int64, error) {
	if s.store == nil {
		return 0, fmt.Errorf("request store is nil")
	}

	return s.store.DeleteAll(ctx)
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

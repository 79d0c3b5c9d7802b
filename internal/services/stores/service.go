package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/babmate/backend/internal/domain/enums"
	"github.com/babmate/backend/internal/domain/model"
	"github.com/babmate/backend/internal/pkg/validate"
	pgrepo "github.com/babmate/backend/internal/repo/postgres"
)

var (
	ErrValidation = errors.New("validation error")
	ErrNotFound   = errors.New("store not found")
)

type StoreDirectory interface {
	List(ctx context.Context) ([]model.Store, error)
	ListByCategory(ctx context.Context, category enums.Category) ([]model.Store, error)
	GetByID(ctx context.Context, id int64) (model.Store, error)
	Create(ctx context.Context, store model.Store) (model.Store, error)
}

type Service struct {
	directory StoreDirectory
}

func NewService(directory StoreDirectory) *Service {
	return &Service{directory: directory}
}

func (s *Service) List(ctx context.Context, category string) ([]model.Store, error) {
	if s.directory == nil {
		return nil, fmt.Errorf("store directory is nil")
	}
	if category == "" {
		return s.directory.List(ctx)
	}

	cat := enums.Category(category)
	if !cat.Valid() {
		return nil, ErrValidation
	}
	return s.directory.ListByCategory(ctx, cat)
}

func (s *Service) Get(ctx context.Context, id int64) (model.Store, error) {
	if id <= 0 {
		return model.Store{}, ErrValidation
	}
	if s.directory == nil {
		return model.Store{}, fmt.Errorf("store directory is nil")
	}

	store, err := s.directory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgrepo.ErrStoreNotFound) {
			return model.Store{}, ErrNotFound
		}
		return model.Store{}, err
	}
	return store, nil
}

// Create registers a venue with its weekly hours. Store management is an
// administrative surface; the matcher itself never writes here.
func (s *Service) Create(ctx context.Context, store model.Store) (model.Store, error) {
	if s.directory == nil {
		return model.Store{}, fmt.Errorf("store directory is nil")
	}

	store.Name = strings.TrimSpace(store.Name)
	if !validate.Required(store.Name) || !store.Category.Valid() {
		return model.Store{}, ErrValidation
	}
	for _, hours := range store.BusinessHours {
		if err := validateHours(hours); err != nil {
			return model.Store{}, err
		}
	}

	return s.directory.Create(ctx, store)
}

func validateHours(hours model.BusinessHour) error {
	if !hours.DayOfWeek.Valid() {
		return ErrValidation
	}
	if !validate.ClockTime(hours.OpeningTime) || !validate.ClockTime(hours.ClosingTime) {
		return ErrValidation
	}
	if hours.OpeningTime > hours.ClosingTime {
		return ErrValidation
	}
	for _, optional := range []string{hours.LastOrderTime, hours.BreakStart, hours.BreakEnd} {
		if optional != "" && !validate.ClockTime(optional) {
			return ErrValidation
		}
	}
	// A break window must be fully specified and ordered.
	if (hours.BreakStart == "") != (hours.BreakEnd == "") {
		return ErrValidation
	}
	if hours.BreakStart != "" && hours.BreakStart > hours.BreakEnd {
		return ErrValidation
	}
	return nil
}

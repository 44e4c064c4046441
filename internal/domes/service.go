package domes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetaria/pkg/cache"

	"github.com/google/uuid"
)

// ErrDomeInUse is returned when a geometry change or deletion is
// attempted on a dome that already has sessions scheduled. Shrinking
// the grid could strand sold tickets outside it.
var ErrDomeInUse = errors.New("dome has scheduled sessions")

const catalogTTL = 5 * time.Minute

type Service interface {
	Create(ctx context.Context, req CreateDomeRequest) (*PlanetariumDome, error)
	GetByID(ctx context.Context, id string) (*PlanetariumDome, error)
	List(ctx context.Context) ([]PlanetariumDome, error)
	Update(ctx context.Context, id string, req UpdateDomeRequest) (*PlanetariumDome, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo  Repository
	cache cache.Service
}

func NewService(repo Repository, cacheService cache.Service) Service {
	return &service{repo: repo, cache: cacheService}
}

func (s *service) Create(ctx context.Context, req CreateDomeRequest) (*PlanetariumDome, error) {
	dome := &PlanetariumDome{
		Name:         req.Name,
		Rows:         req.Rows,
		SeatsInRow:   req.SeatsInRow,
		PricePerSeat: req.PricePerSeat,
	}

	if err := dome.ValidateGeometry(); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, dome); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return dome, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*PlanetariumDome, error) {
	domeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid dome ID: %w", err)
	}

	if s.cache != nil {
		var cached PlanetariumDome
		err := s.cache.GetOrSet(ctx, cache.DomeKey(id), catalogTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, domeID)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, ErrDomeNotFound) {
			return nil, ErrDomeNotFound
		}
	}

	return s.repo.GetByID(ctx, domeID)
}

func (s *service) List(ctx context.Context) ([]PlanetariumDome, error) {
	if s.cache != nil {
		var cached []PlanetariumDome
		err := s.cache.GetOrSet(ctx, cache.DomeListKey(), catalogTTL, func() (interface{}, error) {
			return s.repo.List(ctx)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}

	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateDomeRequest) (*PlanetariumDome, error) {
	domeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid dome ID: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, domeID)
	if err != nil {
		return nil, err
	}

	geometryChange := (req.Rows != nil && *req.Rows != existing.Rows) ||
		(req.SeatsInRow != nil && *req.SeatsInRow != existing.SeatsInRow)

	if geometryChange {
		sessions, err := s.repo.SessionCount(ctx, domeID)
		if err != nil {
			return nil, err
		}
		if sessions > 0 {
			return nil, ErrDomeInUse
		}
	}

	if req.Name != nil {
		existing.Name = *req.Name
	}
	if req.Rows != nil {
		existing.Rows = *req.Rows
	}
	if req.SeatsInRow != nil {
		existing.SeatsInRow = *req.SeatsInRow
	}
	if req.PricePerSeat != nil {
		existing.PricePerSeat = *req.PricePerSeat
	}

	if err := existing.ValidateGeometry(); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return existing, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	domeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid dome ID: %w", err)
	}

	sessions, err := s.repo.SessionCount(ctx, domeID)
	if err != nil {
		return err
	}
	if sessions > 0 {
		return ErrDomeInUse
	}

	if err := s.repo.Delete(ctx, domeID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, cache.DomePattern())
}

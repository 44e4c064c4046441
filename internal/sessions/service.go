package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetaria/internal/domes"
	"planetaria/internal/shows"
	"planetaria/pkg/cache"

	"github.com/google/uuid"
)

// ErrSessionHasTickets guards deletion of a session with sold seats.
// Tickets are released by deleting their reservation, not by dropping
// the session out from under them.
var ErrSessionHasTickets = errors.New("session has booked tickets")

const scheduleTTL = time.Minute

type Service interface {
	Create(ctx context.Context, req CreateSessionRequest) (*ShowSession, error)
	GetByID(ctx context.Context, id string) (*ShowSession, error)
	List(ctx context.Context, filters SessionFilters) ([]SessionListItem, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo     Repository
	showRepo shows.Repository
	domeRepo domes.Repository
	cache    cache.Service
}

func NewService(repo Repository, showRepo shows.Repository, domeRepo domes.Repository, cacheService cache.Service) Service {
	return &service{
		repo:     repo,
		showRepo: showRepo,
		domeRepo: domeRepo,
		cache:    cacheService,
	}
}

func (s *service) Create(ctx context.Context, req CreateSessionRequest) (*ShowSession, error) {
	showID, err := uuid.Parse(req.AstronomyShowID)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID: %w", err)
	}
	domeID, err := uuid.Parse(req.PlanetariumDomeID)
	if err != nil {
		return nil, fmt.Errorf("invalid dome ID: %w", err)
	}

	if _, err := s.showRepo.GetByID(ctx, showID); err != nil {
		return nil, err
	}
	if _, err := s.domeRepo.GetByID(ctx, domeID); err != nil {
		return nil, err
	}

	session := &ShowSession{
		AstronomyShowID:   showID,
		PlanetariumDomeID: domeID,
		ShowTime:          req.ShowTime,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	s.invalidate(ctx)
	return s.repo.GetByID(ctx, session.ID)
}

func (s *service) GetByID(ctx context.Context, id string) (*ShowSession, error) {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	if s.cache != nil {
		var cached ShowSession
		err := s.cache.GetOrSet(ctx, cache.SessionKey(id), scheduleTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, sessionID)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
	}

	return s.repo.GetByID(ctx, sessionID)
}

func (s *service) List(ctx context.Context, filters SessionFilters) ([]SessionListItem, error) {
	// The schedule changes with every booking, so entries are cached
	// only briefly. Filtered queries get their own key.
	if s.cache != nil {
		var cached []SessionListItem
		err := s.cache.GetOrSet(ctx, cache.SessionListKey(filters.cacheKey()), scheduleTTL, func() (interface{}, error) {
			return s.repo.List(ctx, filters)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}

	return s.repo.List(ctx, filters)
}

func (s *service) Delete(ctx context.Context, id string) error {
	sessionID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid session ID: %w", err)
	}

	sold, err := s.repo.TicketCount(ctx, sessionID)
	if err != nil {
		return err
	}
	if sold > 0 {
		return ErrSessionHasTickets
	}

	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return err
	}

	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, cache.SessionPattern())
}

package shows

import (
	"context"
	"errors"
	"fmt"
	"time"

	"planetaria/internal/themes"
	"planetaria/pkg/cache"

	"github.com/google/uuid"
)

const catalogTTL = 5 * time.Minute

type Service interface {
	Create(ctx context.Context, req CreateShowRequest) (*AstronomyShow, error)
	GetByID(ctx context.Context, id string) (*AstronomyShow, error)
	List(ctx context.Context, filters ShowFilters) ([]AstronomyShow, error)
	Update(ctx context.Context, id string, req UpdateShowRequest) (*AstronomyShow, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo      Repository
	themeRepo themes.Repository
	cache     cache.Service
}

func NewService(repo Repository, themeRepo themes.Repository, cacheService cache.Service) Service {
	return &service{
		repo:      repo,
		themeRepo: themeRepo,
		cache:     cacheService,
	}
}

func (s *service) Create(ctx context.Context, req CreateShowRequest) (*AstronomyShow, error) {
	showThemes, err := ResolveThemes(ctx, s.themeRepo, req.ThemeIDs)
	if err != nil {
		return nil, err
	}

	show := &AstronomyShow{
		Title:       req.Title,
		Description: req.Description,
		Themes:      showThemes,
	}

	if err := s.repo.Create(ctx, show); err != nil {
		return nil, fmt.Errorf("failed to create show: %w", err)
	}

	s.invalidate(ctx)
	return show, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*AstronomyShow, error) {
	showID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID: %w", err)
	}

	if s.cache != nil {
		var cached AstronomyShow
		err := s.cache.GetOrSet(ctx, cache.ShowKey(id), catalogTTL, func() (interface{}, error) {
			return s.repo.GetByID(ctx, showID)
		}, &cached)
		if err == nil {
			return &cached, nil
		}
		if errors.Is(err, ErrShowNotFound) {
			return nil, ErrShowNotFound
		}
	}

	return s.repo.GetByID(ctx, showID)
}

func (s *service) List(ctx context.Context, filters ShowFilters) ([]AstronomyShow, error) {
	// Only the unfiltered listing is cached, filtered queries go
	// straight to the database.
	if filters.Title == "" && filters.ThemeIDs == "" && s.cache != nil {
		var cached []AstronomyShow
		err := s.cache.GetOrSet(ctx, cache.ShowListKey(), catalogTTL, func() (interface{}, error) {
			return s.repo.List(ctx, filters)
		}, &cached)
		if err == nil {
			return cached, nil
		}
	}

	return s.repo.List(ctx, filters)
}

func (s *service) Update(ctx context.Context, id string, req UpdateShowRequest) (*AstronomyShow, error) {
	showID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid show ID: %w", err)
	}

	existing, err := s.repo.GetByID(ctx, showID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Description != nil {
		existing.Description = *req.Description
	}

	replaceThemes := req.ThemeIDs != nil
	if replaceThemes {
		showThemes, err := ResolveThemes(ctx, s.themeRepo, req.ThemeIDs)
		if err != nil {
			return nil, err
		}
		existing.Themes = showThemes
	}

	if err := s.repo.Update(ctx, existing, replaceThemes); err != nil {
		return nil, err
	}

	s.invalidate(ctx)
	return s.repo.GetByID(ctx, showID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	showID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid show ID: %w", err)
	}
	if err := s.repo.Delete(ctx, showID); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	_ = s.cache.DeletePattern(ctx, cache.ShowPattern())
}

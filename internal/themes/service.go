package themes

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

type Service interface {
	Create(ctx context.Context, req CreateThemeRequest) (*ShowTheme, error)
	GetByID(ctx context.Context, id string) (*ShowTheme, error)
	List(ctx context.Context) ([]ShowTheme, error)
	Update(ctx context.Context, id string, req UpdateThemeRequest) (*ShowTheme, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, req CreateThemeRequest) (*ShowTheme, error) {
	theme := &ShowTheme{
		Name: strings.TrimSpace(req.Name),
	}
	if theme.Name == "" {
		return nil, fmt.Errorf("theme name cannot be empty")
	}
	if err := s.repo.Create(ctx, theme); err != nil {
		return nil, err
	}
	return theme, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*ShowTheme, error) {
	themeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid theme ID: %w", err)
	}
	return s.repo.GetByID(ctx, themeID)
}

func (s *service) List(ctx context.Context) ([]ShowTheme, error) {
	return s.repo.List(ctx)
}

func (s *service) Update(ctx context.Context, id string, req UpdateThemeRequest) (*ShowTheme, error) {
	themeID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid theme ID: %w", err)
	}

	theme := &ShowTheme{
		ID:   themeID,
		Name: strings.TrimSpace(req.Name),
	}
	if theme.Name == "" {
		return nil, fmt.Errorf("theme name cannot be empty")
	}
	if err := s.repo.Update(ctx, theme); err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, themeID)
}

func (s *service) Delete(ctx context.Context, id string) error {
	themeID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid theme ID: %w", err)
	}
	return s.repo.Delete(ctx, themeID)
}

package shows

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"planetaria/internal/themes"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrShowNotFound = errors.New("astronomy show not found")

type Repository interface {
	Create(ctx context.Context, show *AstronomyShow) error
	GetByID(ctx context.Context, id uuid.UUID) (*AstronomyShow, error)
	List(ctx context.Context, filters ShowFilters) ([]AstronomyShow, error)
	Update(ctx context.Context, show *AstronomyShow, replaceThemes bool) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, show *AstronomyShow) error {
	return r.db.WithContext(ctx).Create(show).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*AstronomyShow, error) {
	var show AstronomyShow
	err := r.db.WithContext(ctx).Preload("Themes").Where("id = ?", id).First(&show).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrShowNotFound
		}
		return nil, err
	}
	return &show, nil
}

func (r *repository) List(ctx context.Context, filters ShowFilters) ([]AstronomyShow, error) {
	query := r.db.WithContext(ctx).Model(&AstronomyShow{}).Preload("Themes")

	if filters.Title != "" {
		query = query.Where("title ILIKE ?", "%"+filters.Title+"%")
	}

	if filters.ThemeIDs != "" {
		ids, err := parseThemeIDs(filters.ThemeIDs)
		if err != nil {
			return nil, err
		}
		query = query.
			Joins("JOIN astronomy_show_themes ast ON ast.astronomy_show_id = astronomy_shows.id").
			Where("ast.show_theme_id IN ?", ids).
			Distinct()
	}

	var result []AstronomyShow
	err := query.Order("title asc").Find(&result).Error
	return result, err
}

func parseThemeIDs(raw string) ([]uuid.UUID, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uuid.UUID, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := uuid.Parse(part)
		if err != nil {
			return nil, fmt.Errorf("invalid theme ID %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func (r *repository) Update(ctx context.Context, show *AstronomyShow, replaceThemes bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&AstronomyShow{}).
			Where("id = ?", show.ID).
			Updates(map[string]interface{}{
				"title":       show.Title,
				"description": show.Description,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShowNotFound
		}

		if replaceThemes {
			if err := tx.Model(show).Association("Themes").Replace(show.Themes); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		show := AstronomyShow{ID: id}
		if err := tx.Model(&show).Association("Themes").Clear(); err != nil {
			return err
		}
		result := tx.Where("id = ?", id).Delete(&AstronomyShow{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShowNotFound
		}
		return nil
	})
}

// ResolveThemes is here so the service does not need its own themes
// repository handle for validation.
func ResolveThemes(ctx context.Context, repo themes.Repository, ids []string) ([]themes.ShowTheme, error) {
	parsed := make([]uuid.UUID, 0, len(ids))
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid theme ID %q: %w", raw, err)
		}
		parsed = append(parsed, id)
	}

	found, err := repo.GetByIDs(ctx, parsed)
	if err != nil {
		return nil, err
	}
	if len(found) != len(parsed) {
		return nil, themes.ErrThemeNotFound
	}
	return found, nil
}

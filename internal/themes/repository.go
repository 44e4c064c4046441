package themes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrThemeNotFound = errors.New("show theme not found")
	ErrThemeExists   = errors.New("show theme already exists")
)

type Repository interface {
	Create(ctx context.Context, theme *ShowTheme) error
	GetByID(ctx context.Context, id uuid.UUID) (*ShowTheme, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]ShowTheme, error)
	List(ctx context.Context) ([]ShowTheme, error)
	Update(ctx context.Context, theme *ShowTheme) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, theme *ShowTheme) error {
	err := r.db.WithContext(ctx).Create(theme).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrThemeExists
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ShowTheme, error) {
	var theme ShowTheme
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&theme).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrThemeNotFound
		}
		return nil, err
	}
	return &theme, nil
}

func (r *repository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]ShowTheme, error) {
	var result []ShowTheme
	if len(ids) == 0 {
		return result, nil
	}
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&result).Error
	return result, err
}

func (r *repository) List(ctx context.Context) ([]ShowTheme, error) {
	var result []ShowTheme
	err := r.db.WithContext(ctx).Order("name asc").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, theme *ShowTheme) error {
	result := r.db.WithContext(ctx).Model(&ShowTheme{}).
		Where("id = ?", theme.ID).
		Update("name", theme.Name)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrThemeExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrThemeNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ShowTheme{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrThemeNotFound
	}
	return nil
}

package domes

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrDomeNotFound = errors.New("planetarium dome not found")
	ErrDomeExists   = errors.New("planetarium dome with this name already exists")
)

type Repository interface {
	Create(ctx context.Context, dome *PlanetariumDome) error
	GetByID(ctx context.Context, id uuid.UUID) (*PlanetariumDome, error)
	List(ctx context.Context) ([]PlanetariumDome, error)
	Update(ctx context.Context, dome *PlanetariumDome) error
	Delete(ctx context.Context, id uuid.UUID) error
	SessionCount(ctx context.Context, domeID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, dome *PlanetariumDome) error {
	err := r.db.WithContext(ctx).Create(dome).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDomeExists
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*PlanetariumDome, error) {
	var dome PlanetariumDome
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dome).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDomeNotFound
		}
		return nil, err
	}
	return &dome, nil
}

func (r *repository) List(ctx context.Context) ([]PlanetariumDome, error) {
	var result []PlanetariumDome
	err := r.db.WithContext(ctx).Order("name asc").Find(&result).Error
	return result, err
}

func (r *repository) Update(ctx context.Context, dome *PlanetariumDome) error {
	result := r.db.WithContext(ctx).Model(&PlanetariumDome{}).
		Where("id = ?", dome.ID).
		Updates(map[string]interface{}{
			"name":           dome.Name,
			"rows":           dome.Rows,
			"seats_in_row":   dome.SeatsInRow,
			"price_per_seat": dome.PricePerSeat,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return ErrDomeExists
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDomeNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&PlanetariumDome{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrDomeNotFound
	}
	return nil
}

// SessionCount reports how many sessions are scheduled in the dome.
// Queried raw to keep this package below the sessions package.
func (r *repository) SessionCount(ctx context.Context, domeID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("show_sessions").
		Where("planetarium_dome_id = ?", domeID).
		Count(&count).Error
	return count, err
}

package sessions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrSessionNotFound = errors.New("show session not found")

type Repository interface {
	Create(ctx context.Context, session *ShowSession) error
	GetByID(ctx context.Context, id uuid.UUID) (*ShowSession, error)
	List(ctx context.Context, filters SessionFilters) ([]SessionListItem, error)
	Delete(ctx context.Context, id uuid.UUID) error
	TicketCount(ctx context.Context, sessionID uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, session *ShowSession) error {
	return r.db.WithContext(ctx).Create(session).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ShowSession, error) {
	var session ShowSession
	err := r.db.WithContext(ctx).
		Preload("AstronomyShow").
		Preload("AstronomyShow.Themes").
		Preload("PlanetariumDome").
		Where("id = ?", id).
		First(&session).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &session, nil
}

// List returns the schedule with a live tickets_available count per
// session, computed against the dome capacity in one query.
func (r *repository) List(ctx context.Context, filters SessionFilters) ([]SessionListItem, error) {
	query := r.db.WithContext(ctx).
		Table("show_sessions ss").
		Select(`ss.id,
			s.title AS show_title,
			d.name AS dome_name,
			d.rows * d.seats_in_row AS dome_capacity,
			ss.show_time,
			d.rows * d.seats_in_row - COUNT(t.id) AS tickets_available`).
		Joins("JOIN astronomy_shows s ON s.id = ss.astronomy_show_id").
		Joins("JOIN planetarium_domes d ON d.id = ss.planetarium_dome_id").
		Joins("LEFT JOIN tickets t ON t.show_session_id = ss.id").
		Group("ss.id, s.title, d.name, d.rows, d.seats_in_row, ss.show_time")

	if filters.AstronomyShow != "" {
		query = query.Where("s.title ILIKE ?", "%"+filters.AstronomyShow+"%")
	}
	if filters.PlanetariumDome != "" {
		query = query.Where("d.name ILIKE ?", "%"+filters.PlanetariumDome+"%")
	}

	var result []SessionListItem
	err := query.Order("ss.show_time asc").Scan(&result).Error
	return result, err
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ShowSession{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// TicketCount reports sold tickets for a session. Raw table query so
// this package stays below the tickets package.
func (r *repository) TicketCount(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("tickets").
		Where("show_session_id = ?", sessionID).
		Count(&count).Error
	return count, err
}

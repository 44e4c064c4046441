package reservations

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrReservationNotFound = errors.New("reservation not found")

type Repository interface {
	Create(ctx context.Context, reservation *Reservation) error
	GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error)
	ListAll(ctx context.Context) ([]Reservation, error)
	DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, reservation *Reservation) error {
	return r.db.WithContext(ctx).Create(reservation).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	var reservation Reservation
	err := r.db.WithContext(ctx).Preload("User").Where("id = ?", id).First(&reservation).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &reservation, nil
}

func (r *repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	var result []Reservation
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&result).Error
	return result, err
}

func (r *repository) ListAll(ctx context.Context) ([]Reservation, error) {
	var result []Reservation
	err := r.db.WithContext(ctx).
		Preload("User").
		Order("created_at desc").
		Find(&result).Error
	return result, err
}

// DeleteCascade removes the reservation and its tickets in one
// transaction and returns how many seats were released. The ticket
// delete goes through a raw table reference to keep this package
// below the tickets package.
func (r *repository) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	var released int64

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ticketResult := tx.Exec("DELETE FROM tickets WHERE reservation_id = ?", id)
		if ticketResult.Error != nil {
			return ticketResult.Error
		}
		released = ticketResult.RowsAffected

		result := tx.Where("id = ?", id).Delete(&Reservation{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReservationNotFound
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return released, nil
}

package tickets

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, ticket *Ticket) error
	GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error)
	ListAll(ctx context.Context) ([]Ticket, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]Ticket, error)
	CountByReservations(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]int64, error)
	UpdateSeat(ctx context.Context, ticket *Ticket) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// Create inserts the ticket. The insert is the atomic seat claim:
// gorm.Config.TranslateError turns the unique constraint violation
// into gorm.ErrDuplicatedKey, which is surfaced as a SeatConflictError
// here. No check-then-insert anywhere.
func (r *repository) Create(ctx context.Context, ticket *Ticket) error {
	err := r.db.WithContext(ctx).Create(ticket).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &SeatConflictError{
			SessionID: ticket.ShowSessionID,
			Row:       ticket.Row,
			Seat:      ticket.Seat,
		}
	}
	return err
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	var ticket Ticket
	err := r.db.WithContext(ctx).
		Preload("ShowSession").
		Preload("ShowSession.AstronomyShow").
		Preload("ShowSession.PlanetariumDome").
		Preload("Reservation").
		Preload("Reservation.User").
		Where("id = ?", id).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTicketNotFound
		}
		return nil, err
	}
	return &ticket, nil
}

func (r *repository) ListAll(ctx context.Context) ([]Ticket, error) {
	var result []Ticket
	err := r.db.WithContext(ctx).
		Preload("ShowSession").
		Preload("ShowSession.AstronomyShow").
		Preload("ShowSession.PlanetariumDome").
		Preload("Reservation").
		Preload("Reservation.User").
		Order("created_at desc").
		Find(&result).Error
	return result, err
}

func (r *repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	var result []Ticket
	err := r.db.WithContext(ctx).
		Preload("ShowSession").
		Preload("ShowSession.AstronomyShow").
		Preload("ShowSession.PlanetariumDome").
		Preload("Reservation").
		Preload("Reservation.User").
		Joins("JOIN reservations res ON res.id = tickets.reservation_id").
		Where("res.user_id = ?", userID).
		Order("tickets.created_at desc").
		Find(&result).Error
	return result, err
}

// CountByReservations returns ticket counts grouped per reservation,
// feeding the read-time price aggregation.
func (r *repository) CountByReservations(ctx context.Context, reservationIDs []uuid.UUID) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ReservationID uuid.UUID
		Count         int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&Ticket{}).
		Select("reservation_id, COUNT(*) AS count").
		Where("reservation_id IN ?", reservationIDs).
		Group("reservation_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, rec := range rows {
		counts[rec.ReservationID] = rec.Count
	}
	return counts, nil
}

// UpdateSeat replaces the ticket's seat coordinates under the same
// unique constraint that guards inserts.
func (r *repository) UpdateSeat(ctx context.Context, ticket *Ticket) error {
	result := r.db.WithContext(ctx).Model(&Ticket{}).
		Where("id = ?", ticket.ID).
		Updates(map[string]interface{}{
			"row":             ticket.Row,
			"seat":            ticket.Seat,
			"show_session_id": ticket.ShowSessionID,
		})
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return &SeatConflictError{
				SessionID: ticket.ShowSessionID,
				Row:       ticket.Row,
				Seat:      ticket.Seat,
			}
		}
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Ticket{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTicketNotFound
	}
	return nil
}

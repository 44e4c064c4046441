package reservations

import (
	"context"
	"errors"
	"fmt"

	"planetaria/internal/notifications"
	"planetaria/internal/users"
	"planetaria/pkg/logger"

	"github.com/google/uuid"
)

// ErrPermissionDenied is returned when a caller touches a reservation
// they do not own and they are not an admin.
var ErrPermissionDenied = errors.New("permission denied")

type Service interface {
	Create(ctx context.Context, caller users.Identity) (*Reservation, error)
	GetByID(ctx context.Context, caller users.Identity, id string) (*Reservation, error)
	List(ctx context.Context, caller users.Identity) ([]Reservation, error)
	Delete(ctx context.Context, caller users.Identity, id string) error
}

type service struct {
	repo      Repository
	publisher notifications.Publisher
	log       *logger.Logger
}

func NewService(repo Repository, publisher notifications.Publisher, log *logger.Logger) Service {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// canAccess is the single ownership rule: the owner or an admin.
func canAccess(caller users.Identity, reservation *Reservation) bool {
	return caller.ID == reservation.UserID || caller.IsPrivileged()
}

func (s *service) Create(ctx context.Context, caller users.Identity) (*Reservation, error) {
	reservation := &Reservation{
		UserID: caller.ID,
	}
	if err := s.repo.Create(ctx, reservation); err != nil {
		return nil, fmt.Errorf("failed to create reservation: %w", err)
	}
	return s.repo.GetByID(ctx, reservation.ID)
}

func (s *service) GetByID(ctx context.Context, caller users.Identity, id string) (*Reservation, error) {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID: %w", err)
	}

	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !canAccess(caller, reservation) {
		return nil, ErrPermissionDenied
	}
	return reservation, nil
}

func (s *service) List(ctx context.Context, caller users.Identity) ([]Reservation, error) {
	if caller.IsPrivileged() {
		return s.repo.ListAll(ctx)
	}
	return s.repo.ListByUser(ctx, caller.ID)
}

func (s *service) Delete(ctx context.Context, caller users.Identity, id string) error {
	reservationID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid reservation ID: %w", err)
	}

	reservation, err := s.repo.GetByID(ctx, reservationID)
	if err != nil {
		return err
	}
	if !canAccess(caller, reservation) {
		return ErrPermissionDenied
	}

	released, err := s.repo.DeleteCascade(ctx, reservationID)
	if err != nil {
		return err
	}

	s.log.LogReservationDeleted(ctx, reservationID.String(), caller.ID.String(), int(released))

	// Event delivery is best effort, the delete already committed
	event := notifications.NewBookingEvent(notifications.EventReservationDeleted, reservation.UserID, reservationID)
	event.TicketCount = int(released)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish reservation.deleted", err, map[string]interface{}{
			"reservation_id": reservationID.String(),
		})
	}

	return nil
}

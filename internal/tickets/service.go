package tickets

import (
	"context"
	"fmt"

	"planetaria/internal/notifications"
	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/users"
	"planetaria/pkg/logger"

	"github.com/google/uuid"
)

type Service interface {
	Book(ctx context.Context, caller users.Identity, req BookTicketRequest) (*Ticket, error)
	Update(ctx context.Context, caller users.Identity, id string, req UpdateTicketRequest) (*Ticket, error)
	Delete(ctx context.Context, caller users.Identity, id string) error
	List(ctx context.Context, caller users.Identity) ([]TicketResponse, error)
	ListForTelegram(ctx context.Context, telegramUsername string) ([]TicketResponse, error)
}

type service struct {
	repo            Repository
	reservationRepo reservations.Repository
	sessionRepo     sessions.Repository
	userRepo        users.Repository
	publisher       notifications.Publisher
	log             *logger.Logger
}

func NewService(
	repo Repository,
	reservationRepo reservations.Repository,
	sessionRepo sessions.Repository,
	userRepo users.Repository,
	publisher notifications.Publisher,
	log *logger.Logger,
) Service {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	if log == nil {
		log = logger.GetDefault()
	}
	return &service{
		repo:            repo,
		reservationRepo: reservationRepo,
		sessionRepo:     sessionRepo,
		userRepo:        userRepo,
		publisher:       publisher,
		log:             log,
	}
}

func canAccess(caller users.Identity, reservation *reservations.Reservation) bool {
	return caller.ID == reservation.UserID || caller.IsPrivileged()
}

// Book validates and claims one seat. Steps run in a fixed order:
// ownership, session resolution, bounds, then a single INSERT whose
// unique constraint settles races. No partial state on any failure.
func (s *service) Book(ctx context.Context, caller users.Identity, req BookTicketRequest) (*Ticket, error) {
	reservationID, err := uuid.Parse(req.Reservation)
	if err != nil {
		return nil, fmt.Errorf("invalid reservation ID: %w", err)
	}
	sessionID, err := uuid.Parse(req.ShowSession)
	if err != nil {
		return nil, fmt.Errorf("invalid session ID: %w", err)
	}

	// Absent coordinates fall through as zero and fail the bounds check.
	var row, seat int
	if req.Row != nil {
		row = *req.Row
	}
	if req.Seat != nil {
		seat = *req.Seat
	}

	reservation, err := s.reservationRepo.GetByID(ctx, reservationID)
	if err != nil {
		return nil, err
	}
	if !canAccess(caller, reservation) {
		return nil, ErrPermissionDenied
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := checkBounds(session, row, seat); err != nil {
		return nil, err
	}

	ticket := &Ticket{
		Row:           row,
		Seat:          seat,
		ShowSessionID: sessionID,
		ReservationID: reservationID,
	}
	if err := s.repo.Create(ctx, ticket); err != nil {
		if conflict, ok := err.(*SeatConflictError); ok {
			s.log.LogSeatConflict(ctx, conflict.SessionID.String(), conflict.Row, conflict.Seat)
		}
		return nil, err
	}

	s.log.LogTicketBooked(ctx, ticket.ID.String(), sessionID.String(), reservation.UserID.String(), row, seat)

	event := notifications.NewBookingEvent(notifications.EventTicketBooked, reservation.UserID, reservationID)
	event.TicketID = &ticket.ID
	event.SessionID = &sessionID
	event.Row = row
	event.Seat = seat
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.ErrorWithContext(ctx, "failed to publish ticket.booked", err, map[string]interface{}{
			"ticket_id": ticket.ID.String(),
		})
	}

	return s.repo.GetByID(ctx, ticket.ID)
}

func checkBounds(session *sessions.ShowSession, row, seat int) error {
	dome := session.PlanetariumDome
	if dome == nil {
		return fmt.Errorf("session %s has no dome loaded", session.ID)
	}
	if row < 1 || row > dome.Rows {
		return &OutOfRangeError{Field: "row", Value: row, Min: 1, Max: dome.Rows}
	}
	if seat < 1 || seat > dome.SeatsInRow {
		return &OutOfRangeError{Field: "seat", Value: seat, Min: 1, Max: dome.SeatsInRow}
	}
	return nil
}

// Update moves a ticket to a new seat. Validate-then-replace under the
// same constraint that guards inserts; conflicts with other tickets
// surface as SeatConflictError.
func (s *service) Update(ctx context.Context, caller users.Identity, id string, req UpdateTicketRequest) (*Ticket, error) {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("invalid ticket ID: %w", err)
	}

	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if ticket.Reservation == nil || !canAccess(caller, ticket.Reservation) {
		return nil, ErrPermissionDenied
	}

	if req.Row != nil {
		ticket.Row = *req.Row
	}
	if req.Seat != nil {
		ticket.Seat = *req.Seat
	}
	if req.ShowSession != nil {
		sessionID, err := uuid.Parse(*req.ShowSession)
		if err != nil {
			return nil, fmt.Errorf("invalid session ID: %w", err)
		}
		ticket.ShowSessionID = sessionID
	}

	session, err := s.sessionRepo.GetByID(ctx, ticket.ShowSessionID)
	if err != nil {
		return nil, err
	}
	if err := checkBounds(session, ticket.Row, ticket.Seat); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateSeat(ctx, ticket); err != nil {
		if conflict, ok := err.(*SeatConflictError); ok {
			s.log.LogSeatConflict(ctx, conflict.SessionID.String(), conflict.Row, conflict.Seat)
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, ticketID)
}

func (s *service) Delete(ctx context.Context, caller users.Identity, id string) error {
	ticketID, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("invalid ticket ID: %w", err)
	}

	ticket, err := s.repo.GetByID(ctx, ticketID)
	if err != nil {
		return err
	}
	if ticket.Reservation == nil || !canAccess(caller, ticket.Reservation) {
		return ErrPermissionDenied
	}

	return s.repo.Delete(ctx, ticketID)
}

// List returns the caller's tickets, or every ticket for admins, with
// the reservation annotations attached.
func (s *service) List(ctx context.Context, caller users.Identity) ([]TicketResponse, error) {
	var (
		list []Ticket
		err  error
	)
	if caller.IsPrivileged() {
		list, err = s.repo.ListAll(ctx)
	} else {
		list, err = s.repo.ListByOwner(ctx, caller.ID)
	}
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, list)
}

// ListForTelegram resolves a telegram username to its user and lists
// that user's tickets. Used by the bot client in place of a bearer
// token.
func (s *service) ListForTelegram(ctx context.Context, telegramUsername string) ([]TicketResponse, error) {
	user, err := s.userRepo.GetByTelegramUsername(ctx, telegramUsername)
	if err != nil {
		return nil, err
	}

	list, err := s.repo.ListByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return s.annotate(ctx, list)
}

// annotate computes read-time aggregates: per-reservation ticket count
// and total_price = count x price_per_seat of the listed ticket's
// session dome. Computed fresh on every read, never cached.
func (s *service) annotate(ctx context.Context, list []Ticket) ([]TicketResponse, error) {
	reservationIDs := make([]uuid.UUID, 0, len(list))
	seen := make(map[uuid.UUID]struct{}, len(list))
	for _, t := range list {
		if _, ok := seen[t.ReservationID]; !ok {
			seen[t.ReservationID] = struct{}{}
			reservationIDs = append(reservationIDs, t.ReservationID)
		}
	}

	counts, err := s.repo.CountByReservations(ctx, reservationIDs)
	if err != nil {
		return nil, err
	}

	result := make([]TicketResponse, 0, len(list))
	for _, t := range list {
		resp := TicketResponse{
			ID:          t.ID,
			Row:         t.Row,
			Seat:        t.Seat,
			TicketCount: counts[t.ReservationID],
		}

		if t.ShowSession != nil {
			resp.ShowSessionInfo = t.ShowSession.Label()
			if t.ShowSession.PlanetariumDome != nil {
				resp.TotalPrice = t.ShowSession.PlanetariumDome.PricePerSeat * float64(resp.TicketCount)
			}
		}

		if t.Reservation != nil {
			resp.Reservation = ReservationInfo{
				ID:        t.Reservation.ID,
				CreatedAt: t.Reservation.CreatedAt,
			}
			if t.Reservation.User != nil {
				resp.Reservation.User = t.Reservation.User.Email
			}
		}

		result = append(result, resp)
	}
	return result, nil
}

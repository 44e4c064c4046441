package tickets

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"planetaria/internal/domes"
	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/shows"
	"planetaria/internal/users"

	"github.com/google/uuid"
)

// ----- in-memory fakes -----

type seatKey struct {
	session uuid.UUID
	row     int
	seat    int
}

type fakeTicketRepo struct {
	mu           sync.Mutex
	tickets      map[uuid.UUID]*Ticket
	seats        map[seatKey]uuid.UUID
	reservations *fakeReservationRepo
	sessions     *fakeSessionRepo
}

func newFakeTicketRepo(resRepo *fakeReservationRepo, sessRepo *fakeSessionRepo) *fakeTicketRepo {
	return &fakeTicketRepo{
		tickets:      make(map[uuid.UUID]*Ticket),
		seats:        make(map[seatKey]uuid.UUID),
		reservations: resRepo,
		sessions:     sessRepo,
	}
}

func (f *fakeTicketRepo) Create(ctx context.Context, ticket *Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := seatKey{ticket.ShowSessionID, ticket.Row, ticket.Seat}
	if _, taken := f.seats[key]; taken {
		return &SeatConflictError{SessionID: ticket.ShowSessionID, Row: ticket.Row, Seat: ticket.Seat}
	}

	ticket.ID = uuid.New()
	ticket.CreatedAt = time.Now()
	f.seats[key] = ticket.ID
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.tickets[id]
	if !ok {
		return nil, ErrTicketNotFound
	}
	return f.hydrate(stored), nil
}

// hydrate mimics the preloads the real repository does.
func (f *fakeTicketRepo) hydrate(stored *Ticket) *Ticket {
	t := *stored
	if res, ok := f.reservations.items[t.ReservationID]; ok {
		copied := *res
		t.Reservation = &copied
	}
	if sess, ok := f.sessions.items[t.ShowSessionID]; ok {
		copied := *sess
		t.ShowSession = &copied
	}
	return &t
}

func (f *fakeTicketRepo) ListAll(ctx context.Context) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []Ticket
	for _, stored := range f.tickets {
		result = append(result, *f.hydrate(stored))
	}
	return result, nil
}

func (f *fakeTicketRepo) ListByOwner(ctx context.Context, userID uuid.UUID) ([]Ticket, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var result []Ticket
	for _, stored := range f.tickets {
		res, ok := f.reservations.items[stored.ReservationID]
		if ok && res.UserID == userID {
			result = append(result, *f.hydrate(stored))
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) CountByReservations(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	counts := make(map[uuid.UUID]int64)
	for _, stored := range f.tickets {
		counts[stored.ReservationID]++
	}
	result := make(map[uuid.UUID]int64, len(ids))
	for _, id := range ids {
		result[id] = counts[id]
	}
	return result, nil
}

func (f *fakeTicketRepo) UpdateSeat(ctx context.Context, ticket *Ticket) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.tickets[ticket.ID]
	if !ok {
		return ErrTicketNotFound
	}

	key := seatKey{ticket.ShowSessionID, ticket.Row, ticket.Seat}
	if holder, taken := f.seats[key]; taken && holder != ticket.ID {
		return &SeatConflictError{SessionID: ticket.ShowSessionID, Row: ticket.Row, Seat: ticket.Seat}
	}

	delete(f.seats, seatKey{stored.ShowSessionID, stored.Row, stored.Seat})
	f.seats[key] = ticket.ID
	stored.Row = ticket.Row
	stored.Seat = ticket.Seat
	stored.ShowSessionID = ticket.ShowSessionID
	return nil
}

func (f *fakeTicketRepo) Delete(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored, ok := f.tickets[id]
	if !ok {
		return ErrTicketNotFound
	}
	delete(f.seats, seatKey{stored.ShowSessionID, stored.Row, stored.Seat})
	delete(f.tickets, id)
	return nil
}

type fakeReservationRepo struct {
	items map[uuid.UUID]*reservations.Reservation
}

func (f *fakeReservationRepo) Create(ctx context.Context, r *reservations.Reservation) error {
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	f.items[r.ID] = r
	return nil
}

func (f *fakeReservationRepo) GetByID(ctx context.Context, id uuid.UUID) (*reservations.Reservation, error) {
	r, ok := f.items[id]
	if !ok {
		return nil, reservations.ErrReservationNotFound
	}
	return r, nil
}

func (f *fakeReservationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]reservations.Reservation, error) {
	var result []reservations.Reservation
	for _, r := range f.items {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeReservationRepo) ListAll(ctx context.Context) ([]reservations.Reservation, error) {
	var result []reservations.Reservation
	for _, r := range f.items {
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeReservationRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := f.items[id]; !ok {
		return 0, reservations.ErrReservationNotFound
	}
	delete(f.items, id)
	return 0, nil
}

type fakeSessionRepo struct {
	items map[uuid.UUID]*sessions.ShowSession
}

func (f *fakeSessionRepo) Create(ctx context.Context, s *sessions.ShowSession) error {
	f.items[s.ID] = s
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*sessions.ShowSession, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, sessions.ErrSessionNotFound
	}
	return s, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filters sessions.SessionFilters) ([]sessions.SessionListItem, error) {
	return nil, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.items, id)
	return nil
}

func (f *fakeSessionRepo) TicketCount(ctx context.Context, id uuid.UUID) (int64, error) {
	return 0, nil
}

type fakeUserRepo struct {
	items map[string]*users.User
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*users.User, error) {
	for _, u := range f.items {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, users.ErrUserNotFound
}

func (f *fakeUserRepo) GetByTelegramUsername(ctx context.Context, username string) (*users.User, error) {
	u, ok := f.items[username]
	if !ok {
		return nil, users.ErrUserNotFound
	}
	return u, nil
}

// ----- harness -----

type harness struct {
	svc      Service
	caller   users.Identity
	resID    uuid.UUID
	sessID   uuid.UUID
	resRepo  *fakeReservationRepo
	sessRepo *fakeSessionRepo
	tickRepo *fakeTicketRepo
	userRepo *fakeUserRepo
}

// newHarness builds a service around a 5x10 dome at 5.00 per seat with
// one reservation owned by the caller.
func newHarness(t *testing.T) *harness {
	t.Helper()

	userID := uuid.New()
	telegram := "stargazer"
	owner := &users.User{
		ID:               userID,
		Email:            "owner@example.com",
		Role:             users.RoleUser,
		TelegramUsername: &telegram,
	}

	resRepo := &fakeReservationRepo{items: make(map[uuid.UUID]*reservations.Reservation)}
	reservation := &reservations.Reservation{UserID: userID, User: owner}
	if err := resRepo.Create(context.Background(), reservation); err != nil {
		t.Fatalf("create reservation: %v", err)
	}

	dome := &domes.PlanetariumDome{
		ID:           uuid.New(),
		Name:         "Main Dome",
		Rows:         5,
		SeatsInRow:   10,
		PricePerSeat: 5.00,
	}
	show := &shows.AstronomyShow{ID: uuid.New(), Title: "Mars Tonight"}
	session := &sessions.ShowSession{
		ID:                uuid.New(),
		AstronomyShowID:   show.ID,
		AstronomyShow:     show,
		PlanetariumDomeID: dome.ID,
		PlanetariumDome:   dome,
		ShowTime:          time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
	}
	sessRepo := &fakeSessionRepo{items: map[uuid.UUID]*sessions.ShowSession{session.ID: session}}

	tickRepo := newFakeTicketRepo(resRepo, sessRepo)
	userRepo := &fakeUserRepo{items: map[string]*users.User{telegram: owner}}

	svc := NewService(tickRepo, resRepo, sessRepo, userRepo, nil, nil)

	return &harness{
		svc:      svc,
		caller:   users.Identity{ID: userID, Role: users.RoleUser},
		resID:    reservation.ID,
		sessID:   session.ID,
		resRepo:  resRepo,
		sessRepo: sessRepo,
		tickRepo: tickRepo,
		userRepo: userRepo,
	}
}

func (h *harness) book(row, seat int) (*Ticket, error) {
	return h.svc.Book(context.Background(), h.caller, BookTicketRequest{
		Row:         &row,
		Seat:        &seat,
		ShowSession: h.sessID.String(),
		Reservation: h.resID.String(),
	})
}

func seatRef(v int) *int { return &v }

// ----- tests -----

func TestBookFirstSeatSucceeds(t *testing.T) {
	h := newHarness(t)

	ticket, err := h.book(3, 5)
	if err != nil {
		t.Fatalf("expected booking to succeed, got %v", err)
	}
	if ticket.Row != 3 || ticket.Seat != 5 {
		t.Errorf("booked seat = (%d, %d), want (3, 5)", ticket.Row, ticket.Seat)
	}
	if ticket.ShowSession == nil || ticket.ShowSession.PlanetariumDome == nil {
		t.Error("expected session and dome to be attached")
	}
}

func TestBookDuplicateSeatConflicts(t *testing.T) {
	h := newHarness(t)

	if _, err := h.book(3, 5); err != nil {
		t.Fatalf("first booking failed: %v", err)
	}

	_, err := h.book(3, 5)
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
	if conflict.Row != 3 || conflict.Seat != 5 {
		t.Errorf("conflict reports seat (%d, %d), want (3, 5)", conflict.Row, conflict.Seat)
	}
}

func TestBookOutOfRange(t *testing.T) {
	h := newHarness(t)

	tests := []struct {
		name      string
		row, seat int
		field     string
		max       int
	}{
		{"row zero", 0, 1, "row", 5},
		{"row above grid", 6, 1, "row", 5},
		{"seat zero", 1, 0, "seat", 10},
		{"seat above grid", 3, 11, "seat", 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.book(tt.row, tt.seat)
			var oor *OutOfRangeError
			if !errors.As(err, &oor) {
				t.Fatalf("expected OutOfRangeError, got %v", err)
			}
			if oor.Field != tt.field {
				t.Errorf("field = %q, want %q", oor.Field, tt.field)
			}
			if oor.Min != 1 || oor.Max != tt.max {
				t.Errorf("range = [%d, %d], want [1, %d]", oor.Min, oor.Max, tt.max)
			}
		})
	}
}

func TestBookOutOfRangePersistsNothing(t *testing.T) {
	h := newHarness(t)

	if _, err := h.book(6, 1); err == nil {
		t.Fatal("expected out of range error")
	}

	list, err := h.svc.List(context.Background(), h.caller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no persisted tickets, got %d", len(list))
	}
}

func TestBookOmittedCoordinatesOutOfRange(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Book(context.Background(), h.caller, BookTicketRequest{
		ShowSession: h.sessID.String(),
		Reservation: h.resID.String(),
	})
	var oor *OutOfRangeError
	if !errors.As(err, &oor) || oor.Field != "row" {
		t.Fatalf("expected row out of range for omitted coordinates, got %v", err)
	}
}

func TestBookUnknownReservationAndSession(t *testing.T) {
	h := newHarness(t)

	_, err := h.svc.Book(context.Background(), h.caller, BookTicketRequest{
		Row: seatRef(1), Seat: seatRef(1),
		ShowSession: h.sessID.String(),
		Reservation: uuid.NewString(),
	})
	if !errors.Is(err, reservations.ErrReservationNotFound) {
		t.Errorf("expected reservation not found, got %v", err)
	}

	_, err = h.svc.Book(context.Background(), h.caller, BookTicketRequest{
		Row: seatRef(1), Seat: seatRef(1),
		ShowSession: uuid.NewString(),
		Reservation: h.resID.String(),
	})
	if !errors.Is(err, sessions.ErrSessionNotFound) {
		t.Errorf("expected session not found, got %v", err)
	}
}

func TestBookForeignReservationDenied(t *testing.T) {
	h := newHarness(t)

	stranger := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	_, err := h.svc.Book(context.Background(), stranger, BookTicketRequest{
		Row: seatRef(1), Seat: seatRef(1),
		ShowSession: h.sessID.String(),
		Reservation: h.resID.String(),
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied, got %v", err)
	}

	admin := users.Identity{ID: uuid.New(), Role: users.RoleAdmin}
	if _, err := h.svc.Book(context.Background(), admin, BookTicketRequest{
		Row: seatRef(1), Seat: seatRef(1),
		ShowSession: h.sessID.String(),
		Reservation: h.resID.String(),
	}); err != nil {
		t.Errorf("expected admin booking to succeed, got %v", err)
	}
}

func TestConcurrentBookingExactlyOneWins(t *testing.T) {
	h := newHarness(t)

	const n = 50
	var wg sync.WaitGroup
	results := make(chan error, n)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.book(2, 7)
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var successes, conflicts int
	for err := range results {
		switch {
		case err == nil:
			successes++
		default:
			var conflict *SeatConflictError
			if !errors.As(err, &conflict) {
				t.Errorf("unexpected error type: %v", err)
				continue
			}
			conflicts++
		}
	}

	if successes != 1 {
		t.Errorf("successes = %d, want exactly 1", successes)
	}
	if conflicts != n-1 {
		t.Errorf("conflicts = %d, want %d", conflicts, n-1)
	}
}

func TestListAnnotations(t *testing.T) {
	h := newHarness(t)

	if _, err := h.book(3, 5); err != nil {
		t.Fatalf("book: %v", err)
	}
	if _, err := h.book(3, 6); err != nil {
		t.Fatalf("book: %v", err)
	}

	list, err := h.svc.List(context.Background(), h.caller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("listed %d tickets, want 2", len(list))
	}

	for _, item := range list {
		if item.TicketCount != 2 {
			t.Errorf("ticket_count = %d, want 2", item.TicketCount)
		}
		if item.TotalPrice != 10.00 {
			t.Errorf("total_price = %.2f, want 10.00", item.TotalPrice)
		}
		if item.ShowSessionInfo == "" {
			t.Error("expected show_session_info to be set")
		}
		if item.Reservation.User != "owner@example.com" {
			t.Errorf("reservation user = %q, want owner email", item.Reservation.User)
		}
	}
}

// Full scenario from the booking flow: 5x10 dome at 5.00.
func TestBookingScenario(t *testing.T) {
	h := newHarness(t)

	if _, err := h.book(3, 5); err != nil {
		t.Fatalf("booking (3,5) should succeed, got %v", err)
	}

	_, err := h.book(3, 5)
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("rebooking (3,5) should conflict, got %v", err)
	}

	_, err = h.book(6, 1)
	var oor *OutOfRangeError
	if !errors.As(err, &oor) || oor.Field != "row" {
		t.Fatalf("booking (6,1) should be out of range on row, got %v", err)
	}

	_, err = h.book(3, 11)
	if !errors.As(err, &oor) || oor.Field != "seat" {
		t.Fatalf("booking (3,11) should be out of range on seat, got %v", err)
	}

	if _, err := h.book(4, 1); err != nil {
		t.Fatalf("booking (4,1) should succeed, got %v", err)
	}

	list, err := h.svc.List(context.Background(), h.caller)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("listed %d tickets, want 2", len(list))
	}
	for _, item := range list {
		if item.TicketCount != 2 || item.TotalPrice != 10.00 {
			t.Errorf("annotation = count %d / total %.2f, want 2 / 10.00", item.TicketCount, item.TotalPrice)
		}
	}
}

func TestListForTelegram(t *testing.T) {
	h := newHarness(t)

	if _, err := h.book(1, 1); err != nil {
		t.Fatalf("book: %v", err)
	}

	list, err := h.svc.ListForTelegram(context.Background(), "stargazer")
	if err != nil {
		t.Fatalf("telegram list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("listed %d tickets, want 1", len(list))
	}

	if _, err := h.svc.ListForTelegram(context.Background(), "nobody"); !errors.Is(err, users.ErrUserNotFound) {
		t.Errorf("expected user not found, got %v", err)
	}
}

func TestUpdateTicketMovesSeat(t *testing.T) {
	h := newHarness(t)

	booked, err := h.book(1, 1)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	newRow, newSeat := 2, 2
	updated, err := h.svc.Update(context.Background(), h.caller, booked.ID.String(), UpdateTicketRequest{
		Row: &newRow, Seat: &newSeat,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Row != 2 || updated.Seat != 2 {
		t.Errorf("seat after update = (%d, %d), want (2, 2)", updated.Row, updated.Seat)
	}

	// Old seat must be free again
	if _, err := h.book(1, 1); err != nil {
		t.Errorf("expected old seat to be rebookable, got %v", err)
	}
}

func TestUpdateTicketConflictsWithOtherTicket(t *testing.T) {
	h := newHarness(t)

	if _, err := h.book(1, 1); err != nil {
		t.Fatalf("book: %v", err)
	}
	second, err := h.book(1, 2)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	seat := 1
	_, err = h.svc.Update(context.Background(), h.caller, second.ID.String(), UpdateTicketRequest{Seat: &seat})
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected SeatConflictError, got %v", err)
	}
}

func TestUpdateTicketOutOfRange(t *testing.T) {
	h := newHarness(t)

	booked, err := h.book(1, 1)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	row := 99
	_, err = h.svc.Update(context.Background(), h.caller, booked.ID.String(), UpdateTicketRequest{Row: &row})
	var oor *OutOfRangeError
	if !errors.As(err, &oor) {
		t.Fatalf("expected OutOfRangeError, got %v", err)
	}
}

func TestDeleteTicketAccessControl(t *testing.T) {
	h := newHarness(t)

	booked, err := h.book(1, 1)
	if err != nil {
		t.Fatalf("book: %v", err)
	}

	stranger := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	if err := h.svc.Delete(context.Background(), stranger, booked.ID.String()); !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("expected permission denied for stranger, got %v", err)
	}

	if err := h.svc.Delete(context.Background(), h.caller, booked.ID.String()); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}

	// Seat freed
	if _, err := h.book(1, 1); err != nil {
		t.Errorf("expected deleted seat to be rebookable, got %v", err)
	}
}

func TestBookManySeatsAllSucceed(t *testing.T) {
	h := newHarness(t)

	for row := 1; row <= 5; row++ {
		for seat := 1; seat <= 10; seat++ {
			if _, err := h.book(row, seat); err != nil {
				t.Fatalf("booking (%d,%d) failed: %v", row, seat, err)
			}
		}
	}

	// Grid exhausted, every retry conflicts
	_, err := h.book(1, 1)
	var conflict *SeatConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("expected conflict on full grid, got %v", err)
	}
}

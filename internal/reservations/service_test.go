package reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"planetaria/internal/notifications"
	"planetaria/internal/users"

	"github.com/google/uuid"
)

type fakeRepo struct {
	mu      sync.Mutex
	items   map[uuid.UUID]*Reservation
	tickets map[uuid.UUID]int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		items:   make(map[uuid.UUID]*Reservation),
		tickets: make(map[uuid.UUID]int64),
	}
}

func (f *fakeRepo) Create(ctx context.Context, r *Reservation) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.New()
	r.CreatedAt = time.Now()
	stored := *r
	f.items[r.ID] = &stored
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.items[id]
	if !ok {
		return nil, ErrReservationNotFound
	}
	copied := *r
	return &copied, nil
}

func (f *fakeRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []Reservation
	for _, r := range f.items {
		if r.UserID == userID {
			result = append(result, *r)
		}
	}
	return result, nil
}

func (f *fakeRepo) ListAll(ctx context.Context) ([]Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []Reservation
	for _, r := range f.items {
		result = append(result, *r)
	}
	return result, nil
}

func (f *fakeRepo) DeleteCascade(ctx context.Context, id uuid.UUID) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.items[id]; !ok {
		return 0, ErrReservationNotFound
	}
	released := f.tickets[id]
	delete(f.items, id)
	delete(f.tickets, id)
	return released, nil
}

type capturingPublisher struct {
	mu     sync.Mutex
	events []*notifications.BookingEvent
}

func (p *capturingPublisher) Publish(ctx context.Context, event *notifications.BookingEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *capturingPublisher) Close() error { return nil }

func TestCreateAndGetReservation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	caller := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	created, err := svc.Create(context.Background(), caller)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.UserID != caller.ID {
		t.Errorf("reservation owner = %s, want caller", created.UserID)
	}

	got, err := svc.GetByID(context.Background(), caller, created.ID.String())
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("fetched reservation %s, want %s", got.ID, created.ID)
	}
}

func TestGetReservationAccessControl(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	owner := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	created, err := svc.Create(context.Background(), owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	if _, err := svc.GetByID(context.Background(), stranger, created.ID.String()); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger access: got %v, want permission denied", err)
	}

	admin := users.Identity{ID: uuid.New(), Role: users.RoleAdmin}
	if _, err := svc.GetByID(context.Background(), admin, created.ID.String()); err != nil {
		t.Errorf("admin access: got %v, want nil", err)
	}
}

func TestListScoping(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)

	alice := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	bob := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	for i := 0; i < 2; i++ {
		if _, err := svc.Create(context.Background(), alice); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	if _, err := svc.Create(context.Background(), bob); err != nil {
		t.Fatalf("create: %v", err)
	}

	aliceList, err := svc.List(context.Background(), alice)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(aliceList) != 2 {
		t.Errorf("user sees %d reservations, want 2", len(aliceList))
	}
	for _, r := range aliceList {
		if r.UserID != alice.ID {
			t.Errorf("user list leaked reservation of %s", r.UserID)
		}
	}

	admin := users.Identity{ID: uuid.New(), Role: users.RoleAdmin}
	adminList, err := svc.List(context.Background(), admin)
	if err != nil {
		t.Fatalf("admin list: %v", err)
	}
	if len(adminList) != 3 {
		t.Errorf("admin sees %d reservations, want 3", len(adminList))
	}
}

func TestDeleteCascadePublishesEvent(t *testing.T) {
	repo := newFakeRepo()
	publisher := &capturingPublisher{}
	svc := NewService(repo, publisher, nil)
	owner := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	created, err := svc.Create(context.Background(), owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	repo.tickets[created.ID] = 3

	if err := svc.Delete(context.Background(), owner, created.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(context.Background(), created.ID); !errors.Is(err, ErrReservationNotFound) {
		t.Error("reservation still present after delete")
	}

	if len(publisher.events) != 1 {
		t.Fatalf("published %d events, want 1", len(publisher.events))
	}
	event := publisher.events[0]
	if event.Type != notifications.EventReservationDeleted {
		t.Errorf("event type = %s, want %s", event.Type, notifications.EventReservationDeleted)
	}
	if event.ReservationID != created.ID {
		t.Errorf("event reservation = %s, want %s", event.ReservationID, created.ID)
	}
	if event.TicketCount != 3 {
		t.Errorf("event ticket_count = %d, want 3", event.TicketCount)
	}
}

func TestDeleteAccessControl(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	owner := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	created, err := svc.Create(context.Background(), owner)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	stranger := users.Identity{ID: uuid.New(), Role: users.RoleUser}
	if err := svc.Delete(context.Background(), stranger, created.ID.String()); !errors.Is(err, ErrPermissionDenied) {
		t.Errorf("stranger delete: got %v, want permission denied", err)
	}

	admin := users.Identity{ID: uuid.New(), Role: users.RoleAdmin}
	if err := svc.Delete(context.Background(), admin, created.ID.String()); err != nil {
		t.Errorf("admin delete: got %v, want nil", err)
	}
}

func TestDeleteUnknownReservation(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	caller := users.Identity{ID: uuid.New(), Role: users.RoleUser}

	if err := svc.Delete(context.Background(), caller, uuid.NewString()); !errors.Is(err, ErrReservationNotFound) {
		t.Errorf("got %v, want not found", err)
	}

	if err := svc.Delete(context.Background(), caller, "not-a-uuid"); err == nil {
		t.Error("expected error for malformed id")
	}
}

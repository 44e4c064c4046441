package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"planetaria/internal/domes"
	"planetaria/internal/shows"
	"planetaria/pkg/cache"

	"github.com/google/uuid"
)

type fakeSessionRepo struct {
	items   map[uuid.UUID]*ShowSession
	tickets map[uuid.UUID]int64
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{
		items:   make(map[uuid.UUID]*ShowSession),
		tickets: make(map[uuid.UUID]int64),
	}
}

func (f *fakeSessionRepo) Create(ctx context.Context, session *ShowSession) error {
	session.ID = uuid.New()
	f.items[session.ID] = session
	return nil
}

func (f *fakeSessionRepo) GetByID(ctx context.Context, id uuid.UUID) (*ShowSession, error) {
	session, ok := f.items[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionRepo) List(ctx context.Context, filters SessionFilters) ([]SessionListItem, error) {
	var result []SessionListItem
	for _, session := range f.items {
		result = append(result, SessionListItem{ID: session.ID, ShowTime: session.ShowTime})
	}
	return result, nil
}

func (f *fakeSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return ErrSessionNotFound
	}
	delete(f.items, id)
	return nil
}

func (f *fakeSessionRepo) TicketCount(ctx context.Context, sessionID uuid.UUID) (int64, error) {
	return f.tickets[sessionID], nil
}

type fakeShowRepo struct {
	items map[uuid.UUID]*shows.AstronomyShow
}

func (f *fakeShowRepo) Create(ctx context.Context, show *shows.AstronomyShow) error {
	f.items[show.ID] = show
	return nil
}

func (f *fakeShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*shows.AstronomyShow, error) {
	show, ok := f.items[id]
	if !ok {
		return nil, shows.ErrShowNotFound
	}
	return show, nil
}

func (f *fakeShowRepo) List(ctx context.Context, filters shows.ShowFilters) ([]shows.AstronomyShow, error) {
	return nil, nil
}

func (f *fakeShowRepo) Update(ctx context.Context, show *shows.AstronomyShow, replaceThemes bool) error {
	return nil
}

func (f *fakeShowRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

type fakeDomeRepo struct {
	items map[uuid.UUID]*domes.PlanetariumDome
}

func (f *fakeDomeRepo) Create(ctx context.Context, dome *domes.PlanetariumDome) error {
	f.items[dome.ID] = dome
	return nil
}

func (f *fakeDomeRepo) GetByID(ctx context.Context, id uuid.UUID) (*domes.PlanetariumDome, error) {
	dome, ok := f.items[id]
	if !ok {
		return nil, domes.ErrDomeNotFound
	}
	return dome, nil
}

func (f *fakeDomeRepo) List(ctx context.Context) ([]domes.PlanetariumDome, error) { return nil, nil }

func (f *fakeDomeRepo) Update(ctx context.Context, dome *domes.PlanetariumDome) error { return nil }

func (f *fakeDomeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (f *fakeDomeRepo) SessionCount(ctx context.Context, domeID uuid.UUID) (int64, error) {
	return 0, nil
}

// fakeCache always misses and records the keys it was asked for.
type fakeCache struct {
	keys     []string
	patterns []string
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	return cache.ErrCacheMiss
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error { return nil }

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	f.patterns = append(f.patterns, pattern)
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) bool { return false }

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	f.keys = append(f.keys, key)
	data, err := fetcher()
	if err != nil {
		return fmt.Errorf("fetcher error: %w", err)
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func newSessionService() (Service, *fakeSessionRepo, uuid.UUID, uuid.UUID) {
	show := &shows.AstronomyShow{ID: uuid.New(), Title: "Mars Tonight"}
	dome := &domes.PlanetariumDome{ID: uuid.New(), Name: "Main", Rows: 5, SeatsInRow: 10, PricePerSeat: 5.00}

	repo := newFakeSessionRepo()
	showRepo := &fakeShowRepo{items: map[uuid.UUID]*shows.AstronomyShow{show.ID: show}}
	domeRepo := &fakeDomeRepo{items: map[uuid.UUID]*domes.PlanetariumDome{dome.ID: dome}}

	return NewService(repo, showRepo, domeRepo, nil), repo, show.ID, dome.ID
}

func TestCreateSessionResolvesReferences(t *testing.T) {
	svc, _, showID, domeID := newSessionService()
	showTime := time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC)

	session, err := svc.Create(context.Background(), CreateSessionRequest{
		AstronomyShowID:   showID.String(),
		PlanetariumDomeID: domeID.String(),
		ShowTime:          showTime,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !session.ShowTime.Equal(showTime) {
		t.Errorf("show time = %v, want %v", session.ShowTime, showTime)
	}

	_, err = svc.Create(context.Background(), CreateSessionRequest{
		AstronomyShowID:   uuid.NewString(),
		PlanetariumDomeID: domeID.String(),
		ShowTime:          showTime,
	})
	if !errors.Is(err, shows.ErrShowNotFound) {
		t.Errorf("unknown show: got %v, want show not found", err)
	}

	_, err = svc.Create(context.Background(), CreateSessionRequest{
		AstronomyShowID:   showID.String(),
		PlanetariumDomeID: uuid.NewString(),
		ShowTime:          showTime,
	})
	if !errors.Is(err, domes.ErrDomeNotFound) {
		t.Errorf("unknown dome: got %v, want dome not found", err)
	}
}

func TestDeleteSessionWithTicketsRefused(t *testing.T) {
	svc, repo, showID, domeID := newSessionService()

	session, err := svc.Create(context.Background(), CreateSessionRequest{
		AstronomyShowID:   showID.String(),
		PlanetariumDomeID: domeID.String(),
		ShowTime:          time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	repo.tickets[session.ID] = 3
	if err := svc.Delete(context.Background(), session.ID.String()); !errors.Is(err, ErrSessionHasTickets) {
		t.Errorf("delete with tickets: got %v, want session has tickets", err)
	}

	repo.tickets[session.ID] = 0
	if err := svc.Delete(context.Background(), session.ID.String()); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), session.ID.String()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("got %v, want not found after delete", err)
	}
}

func TestScheduleCacheKeys(t *testing.T) {
	show := &shows.AstronomyShow{ID: uuid.New(), Title: "Mars Tonight"}
	dome := &domes.PlanetariumDome{ID: uuid.New(), Name: "Main", Rows: 5, SeatsInRow: 10, PricePerSeat: 5.00}

	repo := newFakeSessionRepo()
	showRepo := &fakeShowRepo{items: map[uuid.UUID]*shows.AstronomyShow{show.ID: show}}
	domeRepo := &fakeDomeRepo{items: map[uuid.UUID]*domes.PlanetariumDome{dome.ID: dome}}
	c := &fakeCache{}
	svc := NewService(repo, showRepo, domeRepo, c)

	session, err := svc.Create(context.Background(), CreateSessionRequest{
		AstronomyShowID:   show.ID.String(),
		PlanetariumDomeID: dome.ID.String(),
		ShowTime:          time.Date(2026, 3, 1, 19, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(c.patterns) == 0 || c.patterns[0] != "planetaria:sessions:*" {
		t.Fatalf("invalidation patterns = %v, want planetaria:sessions:*", c.patterns)
	}

	if _, err := svc.List(context.Background(), SessionFilters{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.List(context.Background(), SessionFilters{AstronomyShow: "Mars"}); err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), session.ID.String()); err != nil {
		t.Fatalf("get: %v", err)
	}

	want := []string{
		"planetaria:sessions:list",
		"planetaria:sessions:list:show=Mars:dome=",
		"planetaria:sessions:" + session.ID.String(),
	}
	if len(c.keys) != len(want) {
		t.Fatalf("cache keys = %v, want %v", c.keys, want)
	}
	for i := range want {
		if c.keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, c.keys[i], want[i])
		}
	}
}

func TestSessionLabel(t *testing.T) {
	show := &shows.AstronomyShow{Title: "Mars Tonight"}
	session := &ShowSession{
		AstronomyShow: show,
		ShowTime:      time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC),
	}
	if got := session.Label(); got != "Mars Tonight 2026-03-01 19:30" {
		t.Errorf("Label() = %q", got)
	}

	bare := &ShowSession{ShowTime: time.Date(2026, 3, 1, 19, 30, 0, 0, time.UTC)}
	if got := bare.Label(); got != "2026-03-01 19:30" {
		t.Errorf("Label() without show = %q", got)
	}
}

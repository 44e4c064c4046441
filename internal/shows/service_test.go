package shows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"planetaria/internal/themes"
	"planetaria/pkg/cache"

	"github.com/google/uuid"
)

type fakeShowRepo struct {
	items map[uuid.UUID]*AstronomyShow
}

func (f *fakeShowRepo) Create(ctx context.Context, show *AstronomyShow) error {
	show.ID = uuid.New()
	f.items[show.ID] = show
	return nil
}

func (f *fakeShowRepo) GetByID(ctx context.Context, id uuid.UUID) (*AstronomyShow, error) {
	show, ok := f.items[id]
	if !ok {
		return nil, ErrShowNotFound
	}
	return show, nil
}

func (f *fakeShowRepo) List(ctx context.Context, filters ShowFilters) ([]AstronomyShow, error) {
	var result []AstronomyShow
	for _, show := range f.items {
		result = append(result, *show)
	}
	return result, nil
}

func (f *fakeShowRepo) Update(ctx context.Context, show *AstronomyShow, replaceThemes bool) error {
	if _, ok := f.items[show.ID]; !ok {
		return ErrShowNotFound
	}
	f.items[show.ID] = show
	return nil
}

func (f *fakeShowRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := f.items[id]; !ok {
		return ErrShowNotFound
	}
	delete(f.items, id)
	return nil
}

type fakeThemeRepo struct {
	items map[uuid.UUID]themes.ShowTheme
}

func (f *fakeThemeRepo) Create(ctx context.Context, theme *themes.ShowTheme) error { return nil }

func (f *fakeThemeRepo) GetByID(ctx context.Context, id uuid.UUID) (*themes.ShowTheme, error) {
	theme, ok := f.items[id]
	if !ok {
		return nil, themes.ErrThemeNotFound
	}
	return &theme, nil
}

func (f *fakeThemeRepo) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]themes.ShowTheme, error) {
	var result []themes.ShowTheme
	for _, id := range ids {
		if theme, ok := f.items[id]; ok {
			result = append(result, theme)
		}
	}
	return result, nil
}

func (f *fakeThemeRepo) List(ctx context.Context) ([]themes.ShowTheme, error) { return nil, nil }

func (f *fakeThemeRepo) Update(ctx context.Context, theme *themes.ShowTheme) error { return nil }

func (f *fakeThemeRepo) Delete(ctx context.Context, id uuid.UUID) error { return nil }

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

func TestCatalogCacheKeys(t *testing.T) {
	theme := themes.ShowTheme{ID: uuid.New(), Name: "Planets"}
	repo := &fakeShowRepo{items: make(map[uuid.UUID]*AstronomyShow)}
	themeRepo := &fakeThemeRepo{items: map[uuid.UUID]themes.ShowTheme{theme.ID: theme}}
	c := &fakeCache{}
	svc := NewService(repo, themeRepo, c)

	show, err := svc.Create(context.Background(), CreateShowRequest{
		Title:       "Mars Tonight",
		Description: "A tour of the red planet",
		ThemeIDs:    []string{theme.ID.String()},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(c.patterns) == 0 || c.patterns[0] != "planetaria:shows:*" {
		t.Fatalf("invalidation patterns = %v, want planetaria:shows:*", c.patterns)
	}

	if _, err := svc.List(context.Background(), ShowFilters{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := svc.GetByID(context.Background(), show.ID.String()); err != nil {
		t.Fatalf("get: %v", err)
	}

	want := []string{
		"planetaria:shows:list",
		"planetaria:shows:" + show.ID.String(),
	}
	if len(c.keys) != len(want) {
		t.Fatalf("cache keys = %v, want %v", c.keys, want)
	}
	for i := range want {
		if c.keys[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, c.keys[i], want[i])
		}
	}

	// Filtered queries go straight to the database
	if _, err := svc.List(context.Background(), ShowFilters{Title: "Mars"}); err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	if len(c.keys) != len(want) {
		t.Errorf("filtered list touched the cache: %v", c.keys)
	}
}

func TestGetUnknownShowThroughCache(t *testing.T) {
	repo := &fakeShowRepo{items: make(map[uuid.UUID]*AstronomyShow)}
	themeRepo := &fakeThemeRepo{items: make(map[uuid.UUID]themes.ShowTheme)}
	svc := NewService(repo, themeRepo, &fakeCache{})

	_, err := svc.GetByID(context.Background(), uuid.NewString())
	if !errors.Is(err, ErrShowNotFound) {
		t.Errorf("got %v, want show not found", err)
	}
}

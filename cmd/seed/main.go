package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"planetaria/internal/domes"
	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/shared/config"
	"planetaria/internal/shared/database"
	"planetaria/internal/shows"
	"planetaria/internal/themes"
	"planetaria/internal/tickets"
	"planetaria/internal/users"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Planetaria Database Seeder...")

	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"tickets",
		"reservations",
		"show_sessions",
		"astronomy_show_themes",
		"astronomy_shows",
		"show_themes",
		"planetarium_domes",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	userIDs, err := s.SeedUsers(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	themeIDs, err := s.SeedThemes(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed themes: %w", err)
	}

	showIDs, err := s.SeedShows(ctx, themeIDs)
	if err != nil {
		return fmt.Errorf("failed to seed shows: %w", err)
	}

	domeIDs, err := s.SeedDomes(ctx)
	if err != nil {
		return fmt.Errorf("failed to seed domes: %w", err)
	}

	sessionIDs, err := s.SeedSessions(ctx, showIDs, domeIDs)
	if err != nil {
		return fmt.Errorf("failed to seed sessions: %w", err)
	}

	if err := s.SeedBookings(ctx, userIDs, sessionIDs); err != nil {
		return fmt.Errorf("failed to seed bookings: %w", err)
	}

	return nil
}

// SeedUsers creates one admin and a couple of visitors. Password for
// every account is "password123".
func (s *Seeder) SeedUsers(ctx context.Context) ([]uuid.UUID, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	stargazer := "stargazer"
	moonchild := "moonchild"
	seedUsers := []users.User{
		{
			FirstName: "Admin",
			LastName:  "Planetaria",
			Email:     "admin@planetaria.dev",
			Password:  string(hashed),
			Role:      users.RoleAdmin,
		},
		{
			FirstName:        "Ada",
			LastName:         "Lovelace",
			Email:            "ada@planetaria.dev",
			Password:         string(hashed),
			Role:             users.RoleUser,
			TelegramUsername: &stargazer,
		},
		{
			FirstName:        "Carl",
			LastName:         "Sagan",
			Email:            "carl@planetaria.dev",
			Password:         string(hashed),
			Role:             users.RoleUser,
			TelegramUsername: &moonchild,
		},
	}

	ids := make([]uuid.UUID, 0, len(seedUsers))
	for i := range seedUsers {
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&seedUsers[i]).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created user: %s (%s)\n", seedUsers[i].Email, seedUsers[i].Role)
		ids = append(ids, seedUsers[i].ID)
	}
	return ids, nil
}

func (s *Seeder) SeedThemes(ctx context.Context) ([]uuid.UUID, error) {
	names := []string{"Planets", "Deep Sky", "Black Holes", "Space History", "Kids"}

	ids := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		theme := themes.ShowTheme{Name: name}
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&theme).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created theme: %s\n", name)
		ids = append(ids, theme.ID)
	}
	return ids, nil
}

func (s *Seeder) SeedShows(ctx context.Context, themeIDs []uuid.UUID) ([]uuid.UUID, error) {
	themeRepo := themes.NewRepository(s.db.PostgreSQL)

	seedShows := []struct {
		title       string
		description string
		themes      []uuid.UUID
	}{
		{"Mars Tonight", "A live tour of the red planet as it stands in tonight's sky.", themeIDs[:1]},
		{"Journey to the Edge", "From the solar system to the cosmic horizon in 45 minutes.", themeIDs[1:3]},
		{"First Light", "The story of the first telescopes and what they saw.", themeIDs[3:4]},
		{"Rockets for Beginners", "How rockets fly, told for the youngest astronauts.", themeIDs[4:5]},
	}

	ids := make([]uuid.UUID, 0, len(seedShows))
	for _, spec := range seedShows {
		showThemes, err := themeRepo.GetByIDs(ctx, spec.themes)
		if err != nil {
			return nil, err
		}
		show := shows.AstronomyShow{
			Title:       spec.title,
			Description: spec.description,
			Themes:      showThemes,
		}
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&show).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created show: %s\n", spec.title)
		ids = append(ids, show.ID)
	}
	return ids, nil
}

func (s *Seeder) SeedDomes(ctx context.Context) ([]uuid.UUID, error) {
	seedDomes := []domes.PlanetariumDome{
		{Name: "Main Dome", Rows: 12, SeatsInRow: 20, PricePerSeat: 8.50},
		{Name: "Small Dome", Rows: 5, SeatsInRow: 10, PricePerSeat: 5.00},
		{Name: "VR Lab", Rows: 2, SeatsInRow: 8, PricePerSeat: 15.00},
	}

	ids := make([]uuid.UUID, 0, len(seedDomes))
	for i := range seedDomes {
		if err := seedDomes[i].ValidateGeometry(); err != nil {
			return nil, err
		}
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&seedDomes[i]).Error; err != nil {
			return nil, err
		}
		fmt.Printf("  Created dome: %s (%d seats)\n", seedDomes[i].Name, seedDomes[i].Capacity())
		ids = append(ids, seedDomes[i].ID)
	}
	return ids, nil
}

// SeedSessions schedules every show once over the coming days, rotating
// through the domes.
func (s *Seeder) SeedSessions(ctx context.Context, showIDs, domeIDs []uuid.UUID) ([]uuid.UUID, error) {
	base := time.Now().Truncate(time.Hour).Add(24 * time.Hour)

	ids := make([]uuid.UUID, 0, len(showIDs)*2)
	for i, showID := range showIDs {
		for j := 0; j < 2; j++ {
			session := sessions.ShowSession{
				AstronomyShowID:   showID,
				PlanetariumDomeID: domeIDs[(i+j)%len(domeIDs)],
				ShowTime:          base.Add(time.Duration(i*24+j*3) * time.Hour),
			}
			if err := s.db.PostgreSQL.WithContext(ctx).Create(&session).Error; err != nil {
				return nil, err
			}
			ids = append(ids, session.ID)
		}
	}
	fmt.Printf("  Created %d sessions\n", len(ids))
	return ids, nil
}

// SeedBookings gives the first visitor a reservation with two seats in
// the first session.
func (s *Seeder) SeedBookings(ctx context.Context, userIDs, sessionIDs []uuid.UUID) error {
	if len(userIDs) < 2 || len(sessionIDs) == 0 {
		return nil
	}

	reservation := reservations.Reservation{UserID: userIDs[1]}
	if err := s.db.PostgreSQL.WithContext(ctx).Create(&reservation).Error; err != nil {
		return err
	}

	for seat := 1; seat <= 2; seat++ {
		ticket := tickets.Ticket{
			Row:           1,
			Seat:          seat,
			ShowSessionID: sessionIDs[0],
			ReservationID: reservation.ID,
		}
		if err := s.db.PostgreSQL.WithContext(ctx).Create(&ticket).Error; err != nil {
			return err
		}
	}

	fmt.Println("  Created 1 reservation with 2 tickets")
	return nil
}

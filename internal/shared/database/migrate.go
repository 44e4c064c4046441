package database

import (
	"planetaria/internal/domes"
	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/shows"
	"planetaria/internal/themes"
	"planetaria/internal/tickets"
	"planetaria/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&themes.ShowTheme{},
		&shows.AstronomyShow{},
		&domes.PlanetariumDome{},
		&sessions.ShowSession{},
		&reservations.Reservation{},
		&tickets.Ticket{},
	)
}

package database

import (
	"gorm.io/gorm"
)

// MigrateConstraints installs the constraints the booking engine relies on.
// AutoMigrate cannot express them, so they are applied as raw DDL.
func MigrateConstraints(db *gorm.DB) error {
	// Unique index that makes a ticket insert the atomic claim of a
	// seat for a session. Every booking and every seat change goes
	// through this index; it is the only thing preventing double
	// booking under concurrency. "row" is quoted, it is a reserved
	// word in Postgres.
	err := db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS unique_seat_per_session
		ON tickets (show_session_id, "row", seat);
	`).Error
	if err != nil {
		return err
	}

	// Index for listing a reservation's tickets and computing counts
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_reservation_id
		ON tickets (reservation_id);
	`).Error
	if err != nil {
		return err
	}

	// Index for session-scoped seat lookups
	err = db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_tickets_session_id
		ON tickets (show_session_id);
	`).Error
	if err != nil {
		return err
	}

	return nil
}

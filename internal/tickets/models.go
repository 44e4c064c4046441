package tickets

import (
	"time"

	"planetaria/internal/reservations"
	"planetaria/internal/sessions"

	"github.com/google/uuid"
)

// Ticket claims one seat of one session for a reservation. The
// (show_session_id, row, seat) triple is guarded by a DB unique
// constraint; inserting the row IS the claim.
type Ticket struct {
	ID            uuid.UUID                 `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Row           int                       `json:"row" gorm:"column:row;not null;uniqueIndex:unique_seat_per_session,priority:2"`
	Seat          int                       `json:"seat" gorm:"not null;uniqueIndex:unique_seat_per_session,priority:3"`
	ShowSessionID uuid.UUID                 `json:"show_session_id" gorm:"type:uuid;not null;uniqueIndex:unique_seat_per_session,priority:1"`
	ShowSession   *sessions.ShowSession     `json:"show_session,omitempty" gorm:"foreignKey:ShowSessionID"`
	ReservationID uuid.UUID                 `json:"reservation_id" gorm:"type:uuid;not null;index"`
	Reservation   *reservations.Reservation `json:"reservation,omitempty" gorm:"foreignKey:ReservationID"`
	CreatedAt     time.Time                 `json:"created_at"`
	UpdatedAt     time.Time                 `json:"updated_at"`
}

func (Ticket) TableName() string {
	return "tickets"
}

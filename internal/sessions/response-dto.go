package sessions

import (
	"time"

	"github.com/google/uuid"
)

// SessionListItem is the schedule view with seat availability.
type SessionListItem struct {
	ID               uuid.UUID `json:"id"`
	ShowTitle        string    `json:"show_title"`
	DomeName         string    `json:"planetarium_dome_name"`
	DomeCapacity     int       `json:"planetarium_dome_capacity"`
	ShowTime         time.Time `json:"show_time"`
	TicketsAvailable int       `json:"tickets_available"`
}

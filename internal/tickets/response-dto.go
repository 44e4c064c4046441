package tickets

import (
	"time"

	"github.com/google/uuid"
)

// ReservationInfo is the owner context attached to a listed ticket.
type ReservationInfo struct {
	ID        uuid.UUID `json:"id"`
	User      string    `json:"user"`
	CreatedAt time.Time `json:"created_at"`
}

// TicketResponse is the annotated listing shape. TotalPrice and
// TicketCount describe the whole reservation the ticket belongs to,
// priced at the listed ticket's session dome rate.
type TicketResponse struct {
	ID              uuid.UUID       `json:"id"`
	Row             int             `json:"row"`
	Seat            int             `json:"seat"`
	ShowSessionInfo string          `json:"show_session_info"`
	Reservation     ReservationInfo `json:"reservation_info"`
	TotalPrice      float64         `json:"total_price"`
	TicketCount     int64           `json:"ticket_count"`
}

package notifications

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

type EventType string

const (
	EventTicketBooked       EventType = "ticket.booked"
	EventReservationDeleted EventType = "reservation.deleted"
)

// BookingEvent is the message published for booking lifecycle changes.
// Downstream consumers (confirmation mailer, the Telegram bot) key on
// Type.
type BookingEvent struct {
	ID            uuid.UUID  `json:"id"`
	Type          EventType  `json:"type"`
	UserID        uuid.UUID  `json:"user_id"`
	ReservationID uuid.UUID  `json:"reservation_id"`
	TicketID      *uuid.UUID `json:"ticket_id,omitempty"`
	SessionID     *uuid.UUID `json:"show_session_id,omitempty"`
	Row           int        `json:"row,omitempty"`
	Seat          int        `json:"seat,omitempty"`
	TicketCount   int        `json:"ticket_count,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func NewBookingEvent(eventType EventType, userID, reservationID uuid.UUID) *BookingEvent {
	return &BookingEvent{
		ID:            uuid.New(),
		Type:          eventType,
		UserID:        userID,
		ReservationID: reservationID,
		OccurredAt:    time.Now().UTC(),
	}
}

func (e *BookingEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey routes all events of one reservation to one partition
// so consumers see them in order.
func (e *BookingEvent) PartitionKey() string {
	return e.ReservationID.String()
}

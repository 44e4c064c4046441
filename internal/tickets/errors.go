package tickets

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrTicketNotFound   = errors.New("ticket not found")
	ErrPermissionDenied = errors.New("permission denied")
)

// OutOfRangeError reports a row or seat outside the dome grid. Nothing
// is persisted when it is returned.
type OutOfRangeError struct {
	Field string `json:"field"` // "row" or "seat"
	Value int    `json:"value"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s must be in range [%d, %d], got %d", e.Field, e.Min, e.Max, e.Value)
}

// SeatConflictError reports a booking attempt that lost the unique
// constraint race for a seat.
type SeatConflictError struct {
	SessionID uuid.UUID `json:"show_session"`
	Row       int       `json:"row"`
	Seat      int       `json:"seat"`
}

func (e *SeatConflictError) Error() string {
	return fmt.Sprintf("seat (row %d, seat %d) is already reserved for session %s", e.Row, e.Seat, e.SessionID)
}

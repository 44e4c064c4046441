package reservations

import (
	"time"

	"planetaria/internal/users"

	"github.com/google/uuid"
)

// Reservation groups the tickets one user books together. It is the
// unit of ownership: access to a ticket is access to its reservation.
type Reservation struct {
	ID        uuid.UUID   `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	UserID    uuid.UUID   `json:"user_id" gorm:"type:uuid;not null;index"`
	User      *users.User `json:"user,omitempty" gorm:"foreignKey:UserID"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

func (Reservation) TableName() string {
	return "reservations"
}

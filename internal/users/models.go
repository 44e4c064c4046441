package users

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	FirstName string    `json:"first_name" gorm:"not null"`
	LastName  string    `json:"last_name" gorm:"not null"`
	Password  string    `json:"-" gorm:"not null"` // hide in json
	Role      Role      `json:"role" gorm:"not null;default:'USER'"`
	Email     string    `json:"email" gorm:"uniqueIndex;not null"`

	// Identity used by out-of-band clients (the Telegram bot) to
	// look up their tickets without a bearer token.
	TelegramUsername *string `json:"telegram_username,omitempty" gorm:"uniqueIndex"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func IsValidRole(role string) bool {
	switch role {
	case string(RoleUser), string(RoleAdmin):
		return true
	default:
		return false
	}
}

// Identity is the authenticated caller as seen by the domain services.
// Built from JWT claims by the controllers, or resolved from a
// telegram_username lookup for integration clients.
type Identity struct {
	ID   uuid.UUID
	Role Role
}

// IsPrivileged reports whether the caller may see and mutate resources
// owned by other users.
func (i Identity) IsPrivileged() bool {
	return i.Role == RoleAdmin
}

package shows

import (
	"time"

	"planetaria/internal/themes"

	"github.com/google/uuid"
)

// AstronomyShow is a catalog entry that sessions are scheduled for.
type AstronomyShow struct {
	ID          uuid.UUID         `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Title       string            `json:"title" gorm:"not null;size:255;index"`
	Description string            `json:"description" gorm:"type:text"`
	Themes      []themes.ShowTheme `json:"themes" gorm:"many2many:astronomy_show_themes;"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

func (AstronomyShow) TableName() string {
	return "astronomy_shows"
}

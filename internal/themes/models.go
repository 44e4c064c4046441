package themes

import (
	"time"

	"github.com/google/uuid"
)

// ShowTheme is a topic label attached to astronomy shows.
type ShowTheme struct {
	ID        uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ShowTheme) TableName() string {
	return "show_themes"
}

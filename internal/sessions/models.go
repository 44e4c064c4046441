package sessions

import (
	"time"

	"planetaria/internal/domes"
	"planetaria/internal/shows"

	"github.com/google/uuid"
)

// ShowSession schedules an astronomy show in a dome at a point in time.
type ShowSession struct {
	ID                uuid.UUID              `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	AstronomyShowID   uuid.UUID              `json:"astronomy_show_id" gorm:"type:uuid;not null;index"`
	AstronomyShow     *shows.AstronomyShow   `json:"astronomy_show,omitempty" gorm:"foreignKey:AstronomyShowID"`
	PlanetariumDomeID uuid.UUID              `json:"planetarium_dome_id" gorm:"type:uuid;not null;index"`
	PlanetariumDome   *domes.PlanetariumDome `json:"planetarium_dome,omitempty" gorm:"foreignKey:PlanetariumDomeID"`
	ShowTime          time.Time              `json:"show_time" gorm:"not null;index"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

func (ShowSession) TableName() string {
	return "show_sessions"
}

// Label is the human readable form used on ticket annotations.
func (s *ShowSession) Label() string {
	if s.AstronomyShow == nil {
		return s.ShowTime.Format("2006-01-02 15:04")
	}
	return s.AstronomyShow.Title + " " + s.ShowTime.Format("2006-01-02 15:04")
}

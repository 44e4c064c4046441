package sessions

import (
	"fmt"
	"time"
)

type CreateSessionRequest struct {
	AstronomyShowID   string    `json:"astronomy_show_id" binding:"required,uuid"`
	PlanetariumDomeID string    `json:"planetarium_dome_id" binding:"required,uuid"`
	ShowTime          time.Time `json:"show_time" binding:"required"`
}

// SessionFilters narrows the schedule listing by show title and dome
// name substrings.
type SessionFilters struct {
	AstronomyShow   string `form:"astronomy_show"`
	PlanetariumDome string `form:"planetarium_dome"`
}

// cacheKey canonicalizes the filters so equal queries share one cache
// entry. Empty filters map to the bare listing key.
func (f SessionFilters) cacheKey() string {
	if f.AstronomyShow == "" && f.PlanetariumDome == "" {
		return ""
	}
	return fmt.Sprintf("show=%s:dome=%s", f.AstronomyShow, f.PlanetariumDome)
}

package domes

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Geometry limits for a dome. Price bounds are per seat and inclusive.
const (
	MinRows       = 1
	MaxRows       = 30
	MinSeatsInRow = 1
	MaxSeatsInRow = 30
	MinPrice      = 1.00
	MaxPrice      = 30.00
)

// PlanetariumDome is a hall with a fixed rectangular seat grid. Every
// seat in the dome costs the same for a given session.
type PlanetariumDome struct {
	ID           uuid.UUID `json:"id" gorm:"primaryKey;type:uuid;default:uuid_generate_v4()"`
	Name         string    `json:"name" gorm:"uniqueIndex;not null;size:255"`
	Rows         int       `json:"rows" gorm:"not null"`
	SeatsInRow   int       `json:"seats_in_row" gorm:"not null"`
	PricePerSeat float64   `json:"price_per_seat" gorm:"not null;type:decimal(6,2)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (PlanetariumDome) TableName() string {
	return "planetarium_domes"
}

// Capacity is the total number of bookable seats.
func (d *PlanetariumDome) Capacity() int {
	return d.Rows * d.SeatsInRow
}

// InBounds reports whether the 1-based row and seat fall inside the grid.
func (d *PlanetariumDome) InBounds(row, seat int) bool {
	return row >= 1 && row <= d.Rows && seat >= 1 && seat <= d.SeatsInRow
}

// ValidateGeometry checks the grid dimensions and price against the
// allowed ranges.
func (d *PlanetariumDome) ValidateGeometry() error {
	if d.Rows < MinRows || d.Rows > MaxRows {
		return fmt.Errorf("rows must be between %d and %d, got %d", MinRows, MaxRows, d.Rows)
	}
	if d.SeatsInRow < MinSeatsInRow || d.SeatsInRow > MaxSeatsInRow {
		return fmt.Errorf("seats_in_row must be between %d and %d, got %d", MinSeatsInRow, MaxSeatsInRow, d.SeatsInRow)
	}
	if d.PricePerSeat < MinPrice || d.PricePerSeat > MaxPrice {
		return fmt.Errorf("price_per_seat must be between %.2f and %.2f, got %.2f", MinPrice, MaxPrice, d.PricePerSeat)
	}
	return nil
}

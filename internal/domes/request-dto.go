package domes

type CreateDomeRequest struct {
	Name         string  `json:"name" binding:"required,min=1,max=255"`
	Rows         int     `json:"rows" binding:"required"`
	SeatsInRow   int     `json:"seats_in_row" binding:"required"`
	PricePerSeat float64 `json:"price_per_seat" binding:"required"`
}

type UpdateDomeRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=1,max=255"`
	Rows         *int     `json:"rows"`
	SeatsInRow   *int     `json:"seats_in_row"`
	PricePerSeat *float64 `json:"price_per_seat"`
}

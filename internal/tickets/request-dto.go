package tickets

// BookTicketRequest claims one seat. Row and seat are pointers so a
// zero coordinate survives binding and gets a proper range error from
// the bounds check.
type BookTicketRequest struct {
	Row         *int   `json:"row" binding:"required"`
	Seat        *int   `json:"seat" binding:"required"`
	ShowSession string `json:"show_session" binding:"required,uuid"`
	Reservation string `json:"reservation" binding:"required,uuid"`
}

// UpdateTicketRequest moves a ticket to another seat, optionally in
// another session. Omitted fields keep their current value.
type UpdateTicketRequest struct {
	Row         *int    `json:"row"`
	Seat        *int    `json:"seat"`
	ShowSession *string `json:"show_session" binding:"omitempty,uuid"`
}

// TicketFilters carries the bot identity lookup on listings.
type TicketFilters struct {
	TelegramUsername string `form:"telegram_username"`
}

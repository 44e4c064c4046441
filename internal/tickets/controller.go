package tickets

import (
	"errors"
	"net/http"

	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/shared/middleware"
	"planetaria/internal/shared/utils/response"
	"planetaria/internal/users"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Book(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req BookTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	ticket, err := c.service.Book(ctx.Request.Context(), caller, req)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusCreated, "Ticket booked successfully", ticket)
}

func (c *Controller) List(ctx *gin.Context) {
	var filters TicketFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	// The bot client identifies by telegram username instead of a
	// bearer token.
	if filters.TelegramUsername != "" {
		result, err := c.service.ListForTelegram(ctx.Request.Context(), filters.TelegramUsername)
		if err != nil {
			if errors.Is(err, users.ErrUserNotFound) {
				response.Error(ctx, http.StatusNotFound, "No user with this telegram username", nil)
				return
			}
			response.Error(ctx, http.StatusInternalServerError, "Failed to list tickets", nil)
			return
		}
		response.Success(ctx, http.StatusOK, "Tickets retrieved successfully", result)
		return
	}

	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	result, err := c.service.List(ctx.Request.Context(), caller)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list tickets", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Tickets retrieved successfully", result)
}

func (c *Controller) Update(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	var req UpdateTicketRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	ticket, err := c.service.Update(ctx.Request.Context(), caller, ctx.Param("id"), req)
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Ticket updated successfully", ticket)
}

func (c *Controller) Delete(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	err := c.service.Delete(ctx.Request.Context(), caller, ctx.Param("id"))
	if err != nil {
		c.respondBookingError(ctx, err)
		return
	}

	response.Success(ctx, http.StatusOK, "Ticket deleted successfully", nil)
}

// respondBookingError maps the booking error taxonomy onto HTTP. A raw
// storage error never reaches the client.
func (c *Controller) respondBookingError(ctx *gin.Context, err error) {
	var outOfRange *OutOfRangeError
	var conflict *SeatConflictError

	switch {
	case errors.As(err, &outOfRange):
		response.Error(ctx, http.StatusBadRequest, "Seat is out of range", gin.H{
			"field":   outOfRange.Field,
			"min":     outOfRange.Min,
			"max":     outOfRange.Max,
			"message": outOfRange.Error(),
		})
	case errors.As(err, &conflict):
		response.Error(ctx, http.StatusConflict, "Seat is already reserved", gin.H{
			"show_session": conflict.SessionID,
			"row":          conflict.Row,
			"seat":         conflict.Seat,
		})
	case errors.Is(err, reservations.ErrReservationNotFound):
		response.Error(ctx, http.StatusNotFound, "Reservation not found", nil)
	case errors.Is(err, sessions.ErrSessionNotFound):
		response.Error(ctx, http.StatusNotFound, "Session not found", nil)
	case errors.Is(err, ErrTicketNotFound):
		response.Error(ctx, http.StatusNotFound, "Ticket not found", nil)
	case errors.Is(err, ErrPermissionDenied):
		response.Error(ctx, http.StatusForbidden, "You do not have access to this reservation", nil)
	default:
		response.Error(ctx, http.StatusInternalServerError, "Failed to process ticket", nil)
	}
}

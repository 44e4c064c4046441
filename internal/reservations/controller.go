package reservations

import (
	"errors"
	"net/http"

	"planetaria/internal/shared/middleware"
	"planetaria/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Create(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	reservation, err := c.service.Create(ctx.Request.Context(), caller)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to create reservation", nil)
		return
	}

	response.Success(ctx, http.StatusCreated, "Reservation created successfully", reservation)
}

func (c *Controller) Get(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	reservation, err := c.service.GetByID(ctx.Request.Context(), caller, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.Error(ctx, http.StatusNotFound, "Reservation not found", nil)
		case errors.Is(err, ErrPermissionDenied):
			response.Error(ctx, http.StatusForbidden, "You do not have access to this reservation", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to get reservation", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Reservation retrieved successfully", reservation)
}

func (c *Controller) List(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	result, err := c.service.List(ctx.Request.Context(), caller)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list reservations", nil)
		return
	}

	response.Success(ctx, http.StatusOK, "Reservations retrieved successfully", result)
}

func (c *Controller) Delete(ctx *gin.Context) {
	caller, ok := middleware.CallerIdentity(ctx)
	if !ok {
		response.Error(ctx, http.StatusUnauthorized, "User not authenticated", nil)
		return
	}

	err := c.service.Delete(ctx.Request.Context(), caller, ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.Error(ctx, http.StatusNotFound, "Reservation not found", nil)
		case errors.Is(err, ErrPermissionDenied):
			response.Error(ctx, http.StatusForbidden, "You do not have access to this reservation", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to delete reservation", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Reservation deleted successfully", nil)
}

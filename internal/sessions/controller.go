package sessions

import (
	"errors"
	"net/http"

	"planetaria/internal/domes"
	"planetaria/internal/shared/utils/response"
	"planetaria/internal/shows"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	session, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, shows.ErrShowNotFound):
			response.Error(ctx, http.StatusNotFound, "Show not found", nil)
		case errors.Is(err, domes.ErrDomeNotFound):
			response.Error(ctx, http.StatusNotFound, "Dome not found", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to create session", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusCreated, "Session created successfully", session)
}

func (c *Controller) Get(ctx *gin.Context) {
	session, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			response.Error(ctx, http.StatusNotFound, "Session not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to get session", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Session retrieved successfully", session)
}

func (c *Controller) List(ctx *gin.Context) {
	var filters SessionFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := c.service.List(ctx.Request.Context(), filters)
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list sessions", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Sessions retrieved successfully", result)
}

func (c *Controller) Delete(ctx *gin.Context) {
	err := c.service.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			response.Error(ctx, http.StatusNotFound, "Session not found", nil)
		case errors.Is(err, ErrSessionHasTickets):
			response.Error(ctx, http.StatusConflict, "Session cannot be deleted while tickets are booked", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to delete session", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Session deleted successfully", nil)
}

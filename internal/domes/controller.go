package domes

import (
	"errors"
	"net/http"

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
	var req CreateDomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	dome, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrDomeExists) {
			response.Error(ctx, http.StatusConflict, "Dome with this name already exists", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to create dome", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Dome created successfully", dome)
}

func (c *Controller) Get(ctx *gin.Context) {
	dome, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrDomeNotFound) {
			response.Error(ctx, http.StatusNotFound, "Dome not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to get dome", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Dome retrieved successfully", dome)
}

func (c *Controller) List(ctx *gin.Context) {
	result, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list domes", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Domes retrieved successfully", result)
}

func (c *Controller) Update(ctx *gin.Context) {
	var req UpdateDomeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	dome, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDomeNotFound):
			response.Error(ctx, http.StatusNotFound, "Dome not found", nil)
		case errors.Is(err, ErrDomeInUse):
			response.Error(ctx, http.StatusConflict, "Dome geometry cannot change while sessions are scheduled", nil)
		case errors.Is(err, ErrDomeExists):
			response.Error(ctx, http.StatusConflict, "Dome with this name already exists", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to update dome", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Dome updated successfully", dome)
}

func (c *Controller) Delete(ctx *gin.Context) {
	err := c.service.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrDomeNotFound):
			response.Error(ctx, http.StatusNotFound, "Dome not found", nil)
		case errors.Is(err, ErrDomeInUse):
			response.Error(ctx, http.StatusConflict, "Dome cannot be deleted while sessions are scheduled", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to delete dome", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Dome deleted successfully", nil)
}

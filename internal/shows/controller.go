package shows

import (
	"errors"
	"net/http"

	"planetaria/internal/shared/utils/response"
	"planetaria/internal/themes"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (c *Controller) Create(ctx *gin.Context) {
	var req CreateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	show, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, themes.ErrThemeNotFound) {
			response.Error(ctx, http.StatusBadRequest, "One or more themes do not exist", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to create show", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Show created successfully", show)
}

func (c *Controller) Get(ctx *gin.Context) {
	show, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			response.Error(ctx, http.StatusNotFound, "Show not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to get show", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Show retrieved successfully", show)
}

func (c *Controller) List(ctx *gin.Context) {
	var filters ShowFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	result, err := c.service.List(ctx.Request.Context(), filters)
	if err != nil {
		response.Error(ctx, http.StatusBadRequest, "Failed to list shows", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Shows retrieved successfully", result)
}

func (c *Controller) Update(ctx *gin.Context) {
	var req UpdateShowRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	show, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrShowNotFound):
			response.Error(ctx, http.StatusNotFound, "Show not found", nil)
		case errors.Is(err, themes.ErrThemeNotFound):
			response.Error(ctx, http.StatusBadRequest, "One or more themes do not exist", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to update show", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Show updated successfully", show)
}

func (c *Controller) Delete(ctx *gin.Context) {
	err := c.service.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrShowNotFound) {
			response.Error(ctx, http.StatusNotFound, "Show not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to delete show", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Show deleted successfully", nil)
}

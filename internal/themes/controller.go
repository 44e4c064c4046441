package themes

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
	var req CreateThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	theme, err := c.service.Create(ctx.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrThemeExists) {
			response.Error(ctx, http.StatusConflict, "Theme with this name already exists", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to create theme", err.Error())
		return
	}

	response.Success(ctx, http.StatusCreated, "Theme created successfully", theme)
}

func (c *Controller) Get(ctx *gin.Context) {
	theme, err := c.service.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrThemeNotFound) {
			response.Error(ctx, http.StatusNotFound, "Theme not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to get theme", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Theme retrieved successfully", theme)
}

func (c *Controller) List(ctx *gin.Context) {
	result, err := c.service.List(ctx.Request.Context())
	if err != nil {
		response.Error(ctx, http.StatusInternalServerError, "Failed to list themes", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Themes retrieved successfully", result)
}

func (c *Controller) Update(ctx *gin.Context) {
	var req UpdateThemeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.Error(ctx, http.StatusBadRequest, "Invalid request data", err.Error())
		return
	}

	theme, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrThemeNotFound):
			response.Error(ctx, http.StatusNotFound, "Theme not found", nil)
		case errors.Is(err, ErrThemeExists):
			response.Error(ctx, http.StatusConflict, "Theme with this name already exists", nil)
		default:
			response.Error(ctx, http.StatusBadRequest, "Failed to update theme", err.Error())
		}
		return
	}

	response.Success(ctx, http.StatusOK, "Theme updated successfully", theme)
}

func (c *Controller) Delete(ctx *gin.Context) {
	err := c.service.Delete(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrThemeNotFound) {
			response.Error(ctx, http.StatusNotFound, "Theme not found", nil)
			return
		}
		response.Error(ctx, http.StatusBadRequest, "Failed to delete theme", err.Error())
		return
	}

	response.Success(ctx, http.StatusOK, "Theme deleted successfully", nil)
}

package tickets

import (
	"planetaria/internal/shared/config"
	"planetaria/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

type Router struct {
	controller *Controller
	config     *config.Config
}

func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{controller: controller, config: cfg}
}

func (r *Router) SetupRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/tickets")
	{
		// Listing accepts either a bearer token or a telegram_username
		// query parameter, so auth is optional here.
		group.GET("", middleware.OptionalAuthWithConfig(r.config), r.controller.List)

		authed := group.Group("")
		authed.Use(middleware.JWTAuthWithConfig(r.config))
		{
			authed.POST("", r.controller.Book)
			authed.PUT("/:id", r.controller.Update)
			authed.DELETE("/:id", r.controller.Delete)
		}
	}
}

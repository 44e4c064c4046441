package reservations

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
	group := rg.Group("/reservations")
	group.Use(middleware.JWTAuthWithConfig(r.config))
	{
		group.POST("", r.controller.Create)
		group.GET("", r.controller.List)
		group.GET("/:id", r.controller.Get)
		group.DELETE("/:id", r.controller.Delete)
	}
}

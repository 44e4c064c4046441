package sessions

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
	group := rg.Group("/show_sessions")
	{
		group.GET("", r.controller.List)
		group.GET("/:id", r.controller.Get)

		admin := group.Group("")
		admin.Use(middleware.JWTAuthWithConfig(r.config), middleware.RequireAdmin())
		{
			admin.POST("", r.controller.Create)
			admin.DELETE("/:id", r.controller.Delete)
		}
	}
}

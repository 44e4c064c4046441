// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"planetaria/internal/auth"
	"planetaria/internal/domes"
	"planetaria/internal/notifications"
	"planetaria/internal/reservations"
	"planetaria/internal/sessions"
	"planetaria/internal/shared/config"
	"planetaria/internal/shared/database"
	"planetaria/internal/shows"
	"planetaria/internal/themes"
	"planetaria/internal/tickets"
	"planetaria/internal/users"
	"planetaria/pkg/cache"
	"planetaria/pkg/logger"
	"planetaria/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config    *config.Config
	db        *database.DB
	publisher notifications.Publisher
	log       *logger.Logger

	// built once and shared across route groups
	cacheService    cache.Service
	themeRepo       themes.Repository
	showRepo        shows.Repository
	domeRepo        domes.Repository
	sessionRepo     sessions.Repository
	reservationRepo reservations.Repository
	userRepo        users.Repository
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, publisher notifications.Publisher, log *logger.Logger) *Router {
	if publisher == nil {
		publisher = notifications.NewNoopPublisher()
	}
	if log == nil {
		log = logger.GetDefault()
	}

	pg := db.GetPostgreSQL()
	return &Router{
		config:    cfg,
		db:        db,
		publisher: publisher,
		log:       log,

		cacheService:    cache.NewService(db.GetRedisClient()),
		themeRepo:       themes.NewRepository(pg),
		showRepo:        shows.NewRepository(pg),
		domeRepo:        domes.NewRepository(pg),
		sessionRepo:     sessions.NewRepository(pg),
		reservationRepo: reservations.NewRepository(pg),
		userRepo:        users.NewRepository(pg),
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	r.setupHealthRoutes(engine)

	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)
		r.setupCatalogRoutes(api)
		r.setupBookingRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "planetaria",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "planetaria",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":      "operational",
			"api_version": r.config.APIVersion,
			"timestamp":   time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	failures := ratelimit.NewFailureWindow(r.db.GetRedisClient(), r.config.RateLimit.FailedLoginWindow)
	authService := auth.NewService(authRepo, r.config, failures, r.log)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupCatalogRoutes configures themes, shows, domes and sessions
func (r *Router) setupCatalogRoutes(rg *gin.RouterGroup) {
	themeService := themes.NewService(r.themeRepo)
	themes.NewRouter(themes.NewController(themeService), r.config).SetupRoutes(rg)

	showService := shows.NewService(r.showRepo, r.themeRepo, r.cacheService)
	shows.NewRouter(shows.NewController(showService), r.config).SetupRoutes(rg)

	domeService := domes.NewService(r.domeRepo, r.cacheService)
	domes.NewRouter(domes.NewController(domeService), r.config).SetupRoutes(rg)

	sessionService := sessions.NewService(r.sessionRepo, r.showRepo, r.domeRepo, r.cacheService)
	sessions.NewRouter(sessions.NewController(sessionService), r.config).SetupRoutes(rg)
}

// setupBookingRoutes configures reservations and tickets
func (r *Router) setupBookingRoutes(rg *gin.RouterGroup) {
	reservationService := reservations.NewService(r.reservationRepo, r.publisher, r.log)
	reservations.NewRouter(reservations.NewController(reservationService), r.config).SetupRoutes(rg)

	ticketRepo := tickets.NewRepository(r.db.GetPostgreSQL())
	ticketService := tickets.NewService(ticketRepo, r.reservationRepo, r.sessionRepo, r.userRepo, r.publisher, r.log)
	tickets.NewRouter(tickets.NewController(ticketService), r.config).SetupRoutes(rg)
}

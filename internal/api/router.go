package api

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/nicketronix/promptpilot-backend/config"
	"github.com/nicketronix/promptpilot-backend/internal/api/v1/health"
	"github.com/nicketronix/promptpilot-backend/internal/api/v1/prompt"
	"github.com/nicketronix/promptpilot-backend/internal/api/v1/user"
	"github.com/nicketronix/promptpilot-backend/internal/middleware"
	"github.com/nicketronix/promptpilot-backend/internal/services"
)

// Services are the dependencies the HTTP layer dispatches to.
type Services struct {
	Prompts *services.PromptService
	Users   *services.UserService
}

func NewRouter(cfg *config.Config, svc Services) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", middleware.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           5 * time.Minute,
	}))

	health.RegisterRoutes(router)

	apiGroup := router.Group("/api")
	{
		prompt.RegisterRoutes(apiGroup, prompt.NewHandler(svc.Prompts))
		user.RegisterRoutes(apiGroup, user.NewHandler(svc.Users))
	}

	return router
}

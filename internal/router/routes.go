package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/sdr-agent/internal/auth"
	"github.com/octobees/sdr-agent/internal/config"
	"github.com/octobees/sdr-agent/internal/handler"
	middlewarepkg "github.com/octobees/sdr-agent/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth      *handler.AuthHandler
	Users     *handler.UserAdminHandler
	Campaigns *handler.CampaignHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)

	campaignLimiter := middlewarepkg.CampaignRateLimiter(cfg.RateLimitCampaign)
	secured.POST("/campaigns", handlers.Campaigns.Run, campaignLimiter)
	secured.POST("/campaigns/prospect", handlers.Campaigns.RunProspect, campaignLimiter)
	secured.GET("/campaigns/:id", handlers.Campaigns.Get)
	secured.GET("/campaigns/:id/report", handlers.Campaigns.Report)
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/sdr-agent/internal/auth"
	"github.com/octobees/sdr-agent/internal/config"
	"github.com/octobees/sdr-agent/internal/database"
	"github.com/octobees/sdr-agent/internal/handler"
	"github.com/octobees/sdr-agent/internal/icp"
	"github.com/octobees/sdr-agent/internal/integration"
	"github.com/octobees/sdr-agent/internal/llm"
	middlewarepkg "github.com/octobees/sdr-agent/internal/middleware"
	"github.com/octobees/sdr-agent/internal/outreach"
	"github.com/octobees/sdr-agent/internal/repository"
	"github.com/octobees/sdr-agent/internal/research"
	"github.com/octobees/sdr-agent/internal/router"
	"github.com/octobees/sdr-agent/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	for _, key := range cfg.MissingRequired() {
		log.Printf("missing %s, running in demo mode for the affected integration", key)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer pool.Close()

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	campaignsRepo := repository.NewPGXCampaignsRepository(pool)

	completer := llm.NewClient(cfg.OpenAI.BaseURL, cfg.OpenAI.APIKey, cfg.OpenAI.Model, nil)

	var newsWorker research.NewsPoster
	if cfg.NewsWorkerBaseURL != "" {
		newsWorker = research.NewWorkerClient(nil, cfg.NewsWorkerBaseURL)
	}
	researcher := research.NewResearcher(completer, newsWorker)
	matcher := icp.NewIdentifier(completer)
	drafter := outreach.NewGenerator(completer, cfg.Agent.Name, cfg.Agent.Company)

	emailSender := integration.NewSendGridSender(nil, cfg.SendGrid.BaseURL, cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail)
	dispatcher := integration.NewDispatcher(emailSender, nil)

	var crm service.CRM
	switch cfg.CRMBackend {
	case "hubspot":
		crm = integration.NewHubSpotClient(nil, cfg.HubSpot)
	default:
		crm = integration.NewSalesforceClient(nil, cfg.Salesforce)
	}

	orchestrator := service.NewOrchestrator(researcher, matcher, drafter, dispatcher, crm)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	campaignsService := service.NewCampaignsService(orchestrator, campaignsRepo)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging())
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserAdminHandler(userService),
		Campaigns: handler.NewCampaignHandler(campaignsService),
	})

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	log.Printf("listening port=%s crm_backend=%s", cfg.Port, cfg.CRMBackend)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		log.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}
}

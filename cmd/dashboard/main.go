package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"election-tracker-backend/internal/common/config"
	"election-tracker-backend/internal/common/logger"
	"election-tracker-backend/internal/common/middleware"
	dashboardhttp "election-tracker-backend/internal/features/dashboard/delivery/http"
	dashboardservice "election-tracker-backend/internal/features/dashboard/service"
	rostersheets "election-tracker-backend/internal/features/roster/repository/sheets"
	rosterservice "election-tracker-backend/internal/features/roster/service"
	settingssheets "election-tracker-backend/internal/features/settings/repository/sheets"
	votessheets "election-tracker-backend/internal/features/votes/repository/sheets"
	votesservice "election-tracker-backend/internal/features/votes/service"
	"election-tracker-backend/internal/platform/sheets"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("dashboard", true)
		logger.Fatal().Err(err).Msg("loading configuration failed")
	}
	logger.Init("dashboard", cfg.Debug)
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client, err := sheets.NewClient(ctx, cfg.Sheets.CredentialsFile, cfg.Sheets.SpreadsheetID)
	if err != nil {
		logger.Fatal().Err(err).Msg("connecting to the spreadsheet failed")
	}

	rosterSvc := rosterservice.New(
		rostersheets.NewDelegateRepository(client),
		rostersheets.NewSupervisorRepository(client),
		rostersheets.NewVoterRepository(client),
	)
	dashSvc := dashboardservice.New(
		rosterSvc,
		votessheets.NewRepository(client),
		settingssheets.NewRepository(client),
		votesservice.ParseMode(cfg.Stats.Mode),
		cfg.Centers,
	)

	router := gin.New()
	router.Use(middleware.Logger(), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if cfg.Server.Origin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{cfg.Server.Origin}
		corsCfg.AllowCredentials = true
	}
	router.Use(cors.New(corsCfg))

	router.SetHTMLTemplate(dashboardhttp.Templates())

	handler := dashboardhttp.NewDashboardHandler(dashSvc, dashboardhttp.Credentials{
		User:          cfg.Dashboard.User,
		Pass:          cfg.Dashboard.Pass,
		SessionSecret: cfg.Dashboard.SessionSecret,
	})
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    ":" + strconv.Itoa(cfg.Server.Port),
		Handler: router,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()
	logger.Info().Int("port", cfg.Server.Port).Str("mode", cfg.Stats.Mode).Msg("dashboard listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("shutting down http server failed")
	}
	logger.Info().Msg("dashboard stopped")
}

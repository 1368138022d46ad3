package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dfryer1193/postboard/blog/application"
	"github.com/dfryer1193/postboard/blog/persistence"
	"github.com/dfryer1193/postboard/internal/config"
	"github.com/dfryer1193/postboard/internal/logging"
	"github.com/dfryer1193/postboard/internal/middleware"
	"github.com/dfryer1193/postboard/internal/rest"
	"github.com/dfryer1193/postboard/shared/db/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const shutdownTimeout = 5 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logging.Setup(cfg.LogLevel, cfg.LogPretty); err != nil {
		log.Fatal().Err(err).Msg("Failed to configure logging")
	}
	gin.SetMode(cfg.GinMode)

	database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
	if err := database.Connect(); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close database")
		}
	}()

	store := persistence.NewPostStore(persistence.NewKeyValueStore(database.DB()), cfg.StorageKey)
	postService := application.NewPostService(store, application.NewValidator(nil))
	postService.Load(context.Background())

	corsHandler, err := middleware.CORS(cfg.AllowedOrigins)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to configure CORS")
	}

	r := gin.New()
	r.Use(middleware.LoggingMiddleware())
	r.Use(gin.CustomRecovery(middleware.HandlePanics()))
	r.Use(corsHandler)
	rest.NewApi(r, postService, application.NewCardRenderer())

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: r,
	}

	go func() {
		log.Info().Int("port", cfg.Port).Str("storageKey", cfg.StorageKey).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

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

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/MrJamesThe3rd/mockuments/internal/app"
	"github.com/MrJamesThe3rd/mockuments/internal/config"
	mockumentsHttp "github.com/MrJamesThe3rd/mockuments/internal/http"
	catalogHandler "github.com/MrJamesThe3rd/mockuments/internal/http/catalog"
	exportHandler "github.com/MrJamesThe3rd/mockuments/internal/http/export"
	"github.com/MrJamesThe3rd/mockuments/internal/http/health"
	previewHandler "github.com/MrJamesThe3rd/mockuments/internal/http/preview"
	"github.com/MrJamesThe3rd/mockuments/internal/logger"
	"github.com/MrJamesThe3rd/mockuments/internal/output"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	lg, closer, err := logger.Setup(cfg.Log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg, lg)
	if err != nil {
		lg.Fatal().Err(err).Msg("failed to start")
	}

	if err := a.Gotenberg.Ping(ctx); err != nil {
		lg.Warn().Err(err).Str("url", cfg.Gotenberg.URL).Msg("gotenberg is not reachable, exports will fail until it is")
	}

	var (
		catalogH = catalogHandler.NewHandler(a.Catalog, a.Regions)
		previewH = previewHandler.NewHandler(a.Preview, a.Surface)
		exportH  = exportHandler.NewHandler(a.Export, func(ctx context.Context) (output.Sink, error) {
			return a.Sink(ctx, "")
		})
		healthH = health.NewHandler(a.Gotenberg)
	)

	router := mockumentsHttp.New(&lg, catalogH, previewH, exportH, healthH)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			lg.Error().Err(err).Msg("shutdown failed")
		}
	}()

	lg.Info().Str("addr", srv.Addr).Str("app", cfg.App.Name).Msg("starting server")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		lg.Fatal().Err(err).Msg("server failed")
	}
}

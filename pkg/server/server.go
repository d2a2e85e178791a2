package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	handlers "github.com/aqtools/air-atlas/pkg/handlers/airquality"
	airatlasmiddleware "github.com/aqtools/air-atlas/pkg/server/middleware"
	"github.com/aqtools/air-atlas/pkg/services/analysis"
	"github.com/aqtools/air-atlas/pkg/services/charts"
)

type WebAPI struct {
	router *chi.Mux
	logger *zerolog.Logger
	server *http.Server
}

type Dependencies struct {
	Explorer analysis.Explorer
	Charts   charts.Service
	Logger   zerolog.Logger
}

type Config struct {
	Addr            string
	ShutdownTimeout time.Duration
	Dependencies    Dependencies
}

func ConfigureRouter(config Config) *chi.Mux {
	aqHandler := handlers.NewHandler(config.Dependencies.Explorer, config.Dependencies.Charts)

	router := chi.NewRouter()

	router.Use(airatlasmiddleware.Logger(&config.Dependencies.Logger))
	router.Use(middleware.Recoverer)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/dataset", aqHandler.Describe)
		r.Get("/dataset/options", aqHandler.Options)
		r.Get("/dataset/summary", aqHandler.Summary)
		r.Get("/dataset/records", aqHandler.Records)
		r.Get("/dataset/top", aqHandler.Top)
		r.Get("/dataset/trend", aqHandler.Trend)
		r.Get("/dataset/forecast", aqHandler.Forecast)
		r.Get("/dataset/heatmap", aqHandler.Heatmap)
		r.Get("/dataset/geo", aqHandler.Geo)
		r.Get("/dataset/export", aqHandler.Export)
		r.Post("/dataset/chart", aqHandler.Chart)
	})

	return router
}

func NewWebAPI(config Config) *WebAPI {
	router := ConfigureRouter(config)
	logger := config.Dependencies.Logger

	return &WebAPI{
		router: router,
		logger: &logger,
		server: &http.Server{
			Addr:    config.Addr,
			Handler: router,
		},
	}
}

func (w *WebAPI) Start() error {
	serverErrors := make(chan error, 1)
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		w.logger.Info().Str("addr", w.server.Addr).Msg("starting server")
		serverErrors <- w.server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-shutdown:
		w.logger.Info().Msg("shutdown initiated")

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		err := w.server.Shutdown(ctx)
		if err != nil {
			w.logger.Error().Err(err).Msg("graceful shutdown failed")
			err = w.server.Close()
		}

		if err != nil {
			return err
		}
	}

	return nil
}

package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"synopsis/internal/api/handlers"
	"synopsis/internal/api/middleware"
	"synopsis/internal/config"
	"synopsis/internal/store"
)

// Server represents the HTTP server
type Server struct {
	server      *http.Server
	content     *store.Store
	collections *store.CollectionStore
	logger      *logrus.Logger
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config, content *store.Store, collections *store.CollectionStore, logger *logrus.Logger) *Server {
	s := &Server{
		content:     content,
		collections: collections,
		logger:      logger,
	}

	router := chi.NewRouter()
	router.Use(middleware.Logging(logger))
	s.setupRoutes(router)

	s.server = &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(router *chi.Mux) {
	healthHandler := handlers.NewHealthHandler(s.logger)
	statsHandler := handlers.NewStatsHandler(s.content, s.logger)
	contentHandler := handlers.NewContentHandler(s.content, s.logger)
	episodeHandler := handlers.NewEpisodeHandler(s.content, s.logger)
	collectionHandler := handlers.NewCollectionHandler(s.collections, s.logger)

	router.Get("/health", healthHandler.Health)

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/stats", statsHandler.Stats)
		r.Get("/genres", statsHandler.Genres)
		r.Get("/watchlist", contentHandler.Watchlist)

		r.Route("/content", func(r chi.Router) {
			r.Get("/", contentHandler.List)
			r.Post("/movies", contentHandler.CreateMovie)
			r.Post("/series", contentHandler.CreateSeries)

			r.Route("/{contentID}", func(r chi.Router) {
				r.Get("/", contentHandler.Get)
				r.Patch("/", contentHandler.Update)
				r.Delete("/", contentHandler.Delete)
				r.Post("/favorite", contentHandler.ToggleFavorite)
				r.Put("/status", contentHandler.SetWatchStatus)

				r.Post("/seasons", episodeHandler.AddSeason)
				r.Route("/seasons/{seasonID}", func(r chi.Router) {
					r.Post("/episodes", episodeHandler.AddEpisode)
					r.Patch("/episodes/{episodeID}", episodeHandler.UpdateEpisode)
					r.Put("/episodes/{episodeID}/watched", episodeHandler.MarkWatched)
				})
			})
		})

		r.Route("/collections", func(r chi.Router) {
			r.Get("/", collectionHandler.List)
			r.Post("/", collectionHandler.Create)

			r.Route("/{collectionID}", func(r chi.Router) {
				r.Patch("/", collectionHandler.Update)
				r.Delete("/", collectionHandler.Delete)
				r.Put("/items/{contentID}", collectionHandler.AddItem)
				r.Delete("/items/{contentID}", collectionHandler.RemoveItem)
			})
		})
	})
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	s.logger.WithField("addr", s.server.Addr).Info("Starting HTTP server")

	errChan := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		return s.Shutdown(context.Background())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.server.Shutdown(shutdownCtx)
}

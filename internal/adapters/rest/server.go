package rest

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	core_port "nhadat-service/internal/core/port"
)

type Server struct {
	httpServer *http.Server
	logger     core_port.LoggerPort
}

func NewServer(port string,
	imageHandler *ImageHandler,
	propertyHandler *PropertyHandler,
	favoritesHandler *FavoritesHandler,
	dictionaryHandler *DictionaryHandler,
	auth core_port.AuthPort,
	baseLogger core_port.LoggerPort) *Server {

	r := NewRouter(imageHandler, propertyHandler, favoritesHandler, dictionaryHandler, auth, baseLogger)

	return &Server{
		httpServer: &http.Server{
			Addr:    ":" + port,
			Handler: r,
		},
		logger: baseLogger,
	}
}

// NewRouter assembles the full middleware chain and route table.
func NewRouter(
	imageHandler *ImageHandler,
	propertyHandler *PropertyHandler,
	favoritesHandler *FavoritesHandler,
	dictionaryHandler *DictionaryHandler,
	auth core_port.AuthPort,
	baseLogger core_port.LoggerPort) chi.Router {

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)

	// Preflight requests are answered here and never reach the handlers.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"authorization", "x-client-info", "apikey", "content-type"},
		MaxAge:         300,
	}))

	r.Route("/api/v1", func(r chi.Router) {
		// The validator gates credentials itself, so it stays outside the
		// auth middleware and reports auth failures as verdicts.
		r.Post("/images/validate", imageHandler.ValidateImage)

		r.Get("/properties", propertyHandler.FindProperties)
		r.Get("/properties/{propertyID}", propertyHandler.GetPropertyDetails)
		r.Get("/dictionaries", dictionaryHandler.GetDictionaries)

		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(auth))

			r.Post("/properties", propertyHandler.SubmitProperty)
			r.Put("/properties/{propertyID}", propertyHandler.UpdateProperty)
			r.Post("/properties/{propertyID}/images", propertyHandler.AttachPropertyImage)

			r.Get("/favorites", favoritesHandler.GetUserFavorites)
			r.Get("/favorites/ids", favoritesHandler.GetUserFavoriteIds)
			r.Post("/favorites", favoritesHandler.AddToFavorites)
			r.Delete("/favorites/{propertyID}", favoritesHandler.RemoveFromFavorites)
		})
	})

	return r
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", core_port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}

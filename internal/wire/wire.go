// internal/wire/wire.go
package wire

import (
	"net/http"

	"onnrides/internal/adaptor"
	"onnrides/internal/data/repository"
	"onnrides/internal/usecase"
	"onnrides/pkg/cache"
	"onnrides/pkg/database"
	"onnrides/pkg/middleware"
	"onnrides/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired HTTP surface
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, db database.PgxIface, c *cache.Cache, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, db, c, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

// setupRouter configures the chi router
func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler.Auth, repo, config, logger)
	wireVehicle(r, handler.Vehicle, repo, config, logger)
	wireBooking(r, handler.Booking, repo, config, logger)
	wireWebhook(r, handler.Webhook, logger)
	wireAdmin(r, handler.Finance, repo, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}

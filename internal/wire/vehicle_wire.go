package wire

import (
	"onnrides/internal/adaptor"
	"onnrides/internal/data/repository"
	"onnrides/pkg/middleware"
	"onnrides/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireVehicle(
	r chi.Router,
	vehicleHandler *adaptor.VehicleHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// GET /api/vehicles - Browse available vehicles (public)
	r.Get("/api/vehicles", vehicleHandler.GetAvailableVehicles)

	// GET /api/vehicles/{id} - Vehicle details (public)
	r.Get("/api/vehicles/{id}", vehicleHandler.GetVehicleByID)

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/vehicles", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Post("/", vehicleHandler.CreateVehicle)
		r.Put("/{id}", vehicleHandler.UpdateVehicle)
		r.Put("/{id}/status", vehicleHandler.UpdateVehicleStatus)
		r.Delete("/{id}", vehicleHandler.DeleteVehicle)
	})
}

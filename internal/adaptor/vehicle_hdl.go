package adaptor

import (
	"encoding/json"
	"net/http"
	"strings"

	"onnrides/internal/dto/request"
	"onnrides/internal/usecase"
	"onnrides/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type VehicleHandler struct {
	service usecase.VehicleService
	log     *zap.Logger
}

func NewVehicleHandler(service usecase.VehicleService, log *zap.Logger) *VehicleHandler {
	return &VehicleHandler{
		service: service,
		log:     log.With(zap.String("handler", "vehicle")),
	}
}

// GetAvailableVehicles handles GET /api/vehicles (public)
func (h *VehicleHandler) GetAvailableVehicles(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := paginationFromQuery(r)

	vehicles, err := h.service.GetAvailableVehicles(r.Context(), query.Get("type"), query.Get("location"), req)
	if err != nil {
		h.handleServiceError(w, err, "get available vehicles")
		return
	}

	utils.ResponseSuccess(w, "success", vehicles)
}

// GetVehicleByID handles GET /api/vehicles/{id} (public)
func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	vehicle, err := h.service.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		h.handleServiceError(w, err, "get vehicle by ID")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// ==================== ADMIN METHODS ====================

// CreateVehicle handles POST /api/admin/vehicles (admin only)
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req request.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	vehicle, err := h.service.CreateVehicle(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "create vehicle")
		return
	}

	utils.ResponseCreated(w, "success", vehicle)
}

// UpdateVehicle handles PUT /api/admin/vehicles/{id} (admin only)
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	var req request.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	vehicle, err := h.service.UpdateVehicle(r.Context(), vehicleID, &req)
	if err != nil {
		h.handleServiceError(w, err, "update vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", vehicle)
}

// UpdateVehicleStatus handles PUT /api/admin/vehicles/{id}/status (admin only)
func (h *VehicleHandler) UpdateVehicleStatus(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.service.UpdateVehicleStatus(r.Context(), vehicleID, req.Status); err != nil {
		h.handleServiceError(w, err, "update vehicle status")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// DeleteVehicle handles DELETE /api/admin/vehicles/{id} (admin only)
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID := chi.URLParam(r, "id")
	if vehicleID == "" {
		utils.ResponseBadRequest(w, "Vehicle ID is required", nil)
		return
	}

	if err := h.service.DeleteVehicle(r.Context(), vehicleID); err != nil {
		h.handleServiceError(w, err, "delete vehicle")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps service errors onto HTTP responses
func (h *VehicleHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
	errMsg := err.Error()

	switch {
	case strings.Contains(errMsg, "not found"):
		h.log.Warn(operation+" failed - not found",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "validation failed"):
		h.log.Warn(operation+" validation failed",
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	case strings.Contains(errMsg, "invalid"):
		h.log.Warn("Invalid input for "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		h.log.Error("Failed to "+operation,
			zap.Error(err),
			zap.String("operation", operation))
		utils.ResponseInternalError(w, "Failed to "+operation)
	}
}

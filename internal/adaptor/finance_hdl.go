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

type FinanceHandler struct {
	finance usecase.FinanceService
	auth    usecase.AuthService
	log     *zap.Logger
}

func NewFinanceHandler(finance usecase.FinanceService, auth usecase.AuthService, log *zap.Logger) *FinanceHandler {
	return &FinanceHandler{
		finance: finance,
		auth:    auth,
		log:     log.With(zap.String("handler", "finance")),
	}
}

// DailySummary handles GET /api/admin/finance/daily?date=YYYY-MM-DD (admin only)
func (h *FinanceHandler) DailySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.finance.DailySummary(r.Context(), r.URL.Query().Get("date"))
	if err != nil {
		h.handleServiceError(w, err, "get daily summary")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// Reconcile handles POST /api/admin/finance/reconcile (admin only)
func (h *FinanceHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	var req request.ReconcileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	summary, err := h.finance.Reconcile(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err, "reconcile day")
		return
	}

	utils.ResponseSuccess(w, "success", summary)
}

// GetSettings handles GET /api/admin/settings (admin only)
func (h *FinanceHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.finance.GetSettings(r.Context())
	if err != nil {
		h.handleServiceError(w, err, "get settings")
		return
	}

	utils.ResponseSuccess(w, "success", settings)
}

// UpdateSetting handles PUT /api/admin/settings/{key} (admin only)
func (h *FinanceHandler) UpdateSetting(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	if key == "" {
		utils.ResponseBadRequest(w, "Setting key is required", nil)
		return
	}

	var req request.UpdateSettingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if validationErrors := utils.ValidateStruct(req); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return
	}

	if err := h.finance.UpdateSetting(r.Context(), key, &req); err != nil {
		h.handleServiceError(w, err, "update setting")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// ListUsers handles GET /api/admin/users (admin only)
func (h *FinanceHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	req := paginationFromQuery(r)

	users, err := h.auth.ListUsers(r.Context(), req)
	if err != nil {
		h.handleServiceError(w, err, "list users")
		return
	}

	utils.ResponseSuccess(w, "success", users)
}

// SetUserBlocked handles PUT /api/admin/users/{id}/block (admin only)
func (h *FinanceHandler) SetUserBlocked(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	if userID == "" {
		utils.ResponseBadRequest(w, "User ID is required", nil)
		return
	}

	var req struct {
		Blocked bool `json:"blocked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.auth.SetUserBlocked(r.Context(), userID, req.Blocked); err != nil {
		h.handleServiceError(w, err, "update user block state")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

// handleServiceError maps service errors onto HTTP responses
func (h *FinanceHandler) handleServiceError(w http.ResponseWriter, err error, operation string) {
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

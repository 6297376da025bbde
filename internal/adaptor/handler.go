package adaptor

import (
	"net/http"

	"onnrides/internal/dto/request"
	"onnrides/internal/usecase"
	"onnrides/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth    *AuthHandler
	Vehicle *VehicleHandler
	Booking *BookingHandler
	Webhook *WebhookHandler
	Finance *FinanceHandler
}

func NewHandler(service *usecase.Service, log *zap.Logger) *Handler {
	return &Handler{
		Auth:    NewAuthHandler(service.Auth, log),
		Vehicle: NewVehicleHandler(service.Vehicle, log),
		Booking: NewBookingHandler(service.Booking, log),
		Webhook: NewWebhookHandler(service.Webhook, log),
		Finance: NewFinanceHandler(service.Finance, service.Auth, log),
	}
}

func paginationFromQuery(r *http.Request) *request.PaginatedRequest {
	query := r.URL.Query()
	return &request.PaginatedRequest{
		Page:    utils.ParseInt(query.Get("page"), 1),
		PerPage: utils.ParseInt(query.Get("per_page"), 10),
	}
}

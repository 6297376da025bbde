package usecase

import (
	"onnrides/internal/data/repository"
	"onnrides/pkg/cache"
	"onnrides/pkg/database"
	"onnrides/pkg/utils"

	"go.uber.org/zap"
)

type Service struct {
	Auth    AuthService
	Vehicle VehicleService
	Booking BookingService
	Webhook WebhookService
	Finance FinanceService
	Notify  NotificationService
}

func NewService(repo *repository.Repository, db database.PgxIface, c *cache.Cache, config *utils.Config, log *zap.Logger) *Service {
	notify := NewNotificationService(repo, config, log)

	return &Service{
		Auth:    NewAuthService(repo, config, log),
		Vehicle: NewVehicleService(repo, c, log),
		Booking: NewBookingService(repo, db, c, config, notify, log),
		Webhook: NewWebhookService(repo, db, config, notify, log),
		Finance: NewFinanceService(repo, c, log),
		Notify:  notify,
	}
}

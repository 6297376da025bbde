package repository

import (
	"onnrides/pkg/database"

	"go.uber.org/zap"
)

type Repository struct {
	User           UserRepository
	Session        SessionRepository
	Vehicle        VehicleRepository
	Booking        BookingRepository
	Payment        PaymentRepository
	Setting        SettingRepository
	WhatsAppLog    WhatsAppLogRepository
	Reconciliation ReconciliationRepository
}

func NewRepository(db database.PgxIface, log *zap.Logger) *Repository {
	return &Repository{
		User:           NewUserRepository(db, log),
		Session:        NewSessionRepository(db, log),
		Vehicle:        NewVehicleRepository(db, log),
		Booking:        NewBookingRepository(db, log),
		Payment:        NewPaymentRepository(db, log),
		Setting:        NewSettingRepository(db, log),
		WhatsAppLog:    NewWhatsAppLogRepository(db, log),
		Reconciliation: NewReconciliationRepository(db, log),
	}
}

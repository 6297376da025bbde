package wire

import (
	"onnrides/internal/adaptor"
	"onnrides/internal/data/repository"
	"onnrides/pkg/middleware"
	"onnrides/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireBooking(
	r chi.Router,
	bookingHandler *adaptor.BookingHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== PUBLIC ROUTES ====================
	// POST /api/bookings/quote - Price a rental without committing (public)
	r.Post("/api/bookings/quote", bookingHandler.Quote)

	// ==================== PROTECTED ROUTES (require auth) ====================
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))

		// POST /api/bookings - Create new booking (authenticated users only)
		r.Post("/api/bookings", bookingHandler.CreateBooking)

		// GET /api/user/bookings - View booking history (user's own bookings)
		r.Get("/api/user/bookings", bookingHandler.GetUserBookings)
	})

	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/bookings", func(r chi.Router) {
		// Require both authentication AND admin role
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/bookings - List all bookings (admin)
		r.Get("/", bookingHandler.ListBookings)

		// GET /api/admin/bookings/{code} - View any booking details (admin)
		r.Get("/{code}", bookingHandler.GetBookingByCode)

		// PUT /api/admin/bookings/{code}/cancel - Cancel any booking (admin)
		r.Put("/{code}/cancel", bookingHandler.CancelBooking)

		// POST /api/admin/bookings/{code}/extend - Extend the rental period (admin)
		r.Post("/{code}/extend", bookingHandler.ExtendBooking)

		// POST /api/admin/bookings/{code}/collect - Record an offline payment (admin)
		r.Post("/{code}/collect", bookingHandler.CollectPayment)
		r.Post("/{code}/refund", bookingHandler.RefundBooking)
	})
}

package wire

import (
	"onnrides/internal/adaptor"
	"onnrides/internal/data/repository"
	"onnrides/pkg/middleware"
	"onnrides/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireAdmin(
	r chi.Router,
	financeHandler *adaptor.FinanceHandler,
	repo *repository.Repository,
	config *utils.Config,
	log *zap.Logger,
) {
	// ==================== ADMIN ROUTES ====================
	r.Route("/api/admin/finance", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		// GET /api/admin/finance/daily - Cash flow and transactions for a day
		r.Get("/daily", financeHandler.DailySummary)

		// POST /api/admin/finance/reconcile - Persist the close-of-day summary
		r.Post("/reconcile", financeHandler.Reconcile)
	})

	r.Route("/api/admin/settings", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", financeHandler.GetSettings)
		r.Put("/{key}", financeHandler.UpdateSetting)
	})

	r.Route("/api/admin/users", func(r chi.Router) {
		r.Use(middleware.AuthSession(repo.Session, log))
		r.Use(middleware.Admin(repo.User, log))

		r.Get("/", financeHandler.ListUsers)
		r.Put("/{id}/block", financeHandler.SetUserBlocked)
	})
}

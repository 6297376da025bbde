package wire

import (
	"onnrides/internal/adaptor"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireWebhook(
	r chi.Router,
	webhookHandler *adaptor.WebhookHandler,
	log *zap.Logger,
) {
	// Public but signed: the HMAC check inside the handler is the
	// authentication for this route.
	r.Post("/api/payments/webhook", webhookHandler.HandleRazorpay)
}

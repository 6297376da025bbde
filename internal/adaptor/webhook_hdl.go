package adaptor

import (
	"io"
	"net/http"
	"strings"

	"onnrides/internal/usecase"
	"onnrides/pkg/utils"

	"go.uber.org/zap"
)

// Gateways cap webhook bodies well under this; anything bigger is junk.
const maxWebhookBody = 1 << 20

type WebhookHandler struct {
	service usecase.WebhookService
	log     *zap.Logger
}

func NewWebhookHandler(service usecase.WebhookService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		service: service,
		log:     log.With(zap.String("handler", "webhook")),
	}
}

// HandleRazorpay handles POST /api/payments/webhook (public, signed)
func (h *WebhookHandler) HandleRazorpay(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		utils.ResponseBadRequest(w, "Failed to read request body", nil)
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if !h.service.VerifySignature(body, signature) {
		h.log.Warn("Webhook signature verification failed",
			zap.String("remote_addr", r.RemoteAddr))
		utils.ResponseBadRequest(w, "Invalid webhook signature", nil)
		return
	}

	if err := h.service.HandleEvent(r.Context(), body); err != nil {
		errMsg := err.Error()

		// A booking we do not know is acknowledged, not retried: the
		// gateway will never learn the code on a later attempt.
		if strings.Contains(errMsg, "not found") {
			h.log.Warn("Webhook referenced unknown booking", zap.Error(err))
			utils.ResponseSuccess(w, "ignored", nil)
			return
		}

		if strings.Contains(errMsg, "invalid") {
			h.log.Warn("Malformed webhook payload", zap.Error(err))
			utils.ResponseBadRequest(w, errMsg, nil)
			return
		}

		h.log.Error("Failed to process webhook", zap.Error(err))
		utils.ResponseInternalError(w, "Failed to process webhook")
		return
	}

	utils.ResponseSuccess(w, "success", nil)
}

package adaptor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

type stubWebhookService struct {
	valid  bool
	err    error
	events int
}

func (s *stubWebhookService) VerifySignature(body []byte, signature string) bool { return s.valid }

func (s *stubWebhookService) HandleEvent(ctx context.Context, body []byte) error {
	s.events++
	return s.err
}

func postWebhook(t *testing.T, service *stubWebhookService) *httptest.ResponseRecorder {
	t.Helper()

	handler := NewWebhookHandler(service, zap.NewNop())
	req := httptest.NewRequest(http.MethodPost, "/api/payments/webhook", strings.NewReader(`{"event":"payment_link.paid"}`))
	req.Header.Set("X-Razorpay-Signature", "sig")

	rec := httptest.NewRecorder()
	handler.HandleRazorpay(rec, req)
	return rec
}

func TestHandleRazorpaySignatureMismatch(t *testing.T) {
	service := &stubWebhookService{valid: false}

	rec := postWebhook(t, service)

	// A bad signature is the sender's malformed request, not a
	// credentials problem; nothing downstream may run.
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
	}
	if service.events != 0 {
		t.Errorf("events processed = %d, want 0", service.events)
	}
}

func TestHandleRazorpayValidSignature(t *testing.T) {
	service := &stubWebhookService{valid: true}

	rec := postWebhook(t, service)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if service.events != 1 {
		t.Errorf("events processed = %d, want 1", service.events)
	}
}

func TestHandleRazorpayErrorMapping(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
	}{
		{"unknown booking acknowledged", errors.New("booking OR-1 not found for webhook reference OR-1_1"), http.StatusOK},
		{"malformed payload rejected", errors.New("invalid webhook payload: missing payment id or reference"), http.StatusBadRequest},
		{"processing failure", errors.New("commit webhook payment: boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postWebhook(t, &stubWebhookService{valid: true, err: tt.err})
			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
		})
	}
}

package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"onnrides/internal/data/entity"
	"onnrides/pkg/utils"

	"go.uber.org/zap"
)

func signBody(body []byte, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyWebhookSignature(t *testing.T) {
	body := []byte(`{"event":"payment_link.paid"}`)
	secret := "whsec_test"

	tests := []struct {
		name      string
		signature string
		secret    string
		want      bool
	}{
		{"valid signature", signBody(body, secret), secret, true},
		{"wrong signature", signBody(body, "other"), secret, false},
		{"tampered body signature", signBody([]byte(`{}`), secret), secret, false},
		{"empty signature", "", secret, false},
		{"empty secret", signBody(body, secret), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifyWebhookSignature(body, tt.signature, tt.secret); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBookingCodeFromReference(t *testing.T) {
	tests := []struct {
		reference string
		want      string
	}{
		{"OR-20260110-0042_1736505600", "OR-20260110-0042"},
		{"OR-20260110-0042", "OR-20260110-0042"},
		{"code_a_b", "code_a"},
		{"_leading", "_leading"},
	}

	for _, tt := range tests {
		if got := BookingCodeFromReference(tt.reference); got != tt.want {
			t.Errorf("BookingCodeFromReference(%q) = %q, want %q", tt.reference, got, tt.want)
		}
	}
}

func TestNextPaymentState(t *testing.T) {
	tests := []struct {
		name            string
		booking         entity.Booking
		amount          float64
		wantStatus      entity.BookingStatus
		wantPayStatus   entity.BookingPaymentStatus
	}{
		{
			name: "first partial payment confirms booking",
			booking: entity.Booking{
				Status:        entity.BookingStatusPending,
				PaymentStatus: entity.BookingPaymentPending,
				PendingAmount: 1000,
			},
			amount:        300,
			wantStatus:    entity.BookingStatusConfirmed,
			wantPayStatus: entity.BookingPaymentPartiallyPaid,
		},
		{
			name: "full payment settles in one step",
			booking: entity.Booking{
				Status:        entity.BookingStatusPending,
				PaymentStatus: entity.BookingPaymentPending,
				PendingAmount: 1000,
			},
			amount:        1000,
			wantStatus:    entity.BookingStatusConfirmed,
			wantPayStatus: entity.BookingPaymentPaid,
		},
		{
			name: "second payment clears the balance",
			booking: entity.Booking{
				Status:        entity.BookingStatusConfirmed,
				PaymentStatus: entity.BookingPaymentPartiallyPaid,
				PendingAmount: 700,
			},
			amount:        700,
			wantStatus:    entity.BookingStatusConfirmed,
			wantPayStatus: entity.BookingPaymentPaid,
		},
		{
			name: "partial on confirmed stays partially paid",
			booking: entity.Booking{
				Status:        entity.BookingStatusConfirmed,
				PaymentStatus: entity.BookingPaymentPartiallyPaid,
				PendingAmount: 700,
			},
			amount:        200,
			wantStatus:    entity.BookingStatusConfirmed,
			wantPayStatus: entity.BookingPaymentPartiallyPaid,
		},
		{
			name: "overpayment still settles",
			booking: entity.Booking{
				Status:        entity.BookingStatusConfirmed,
				PaymentStatus: entity.BookingPaymentPartiallyPaid,
				PendingAmount: 500,
			},
			amount:        600,
			wantStatus:    entity.BookingStatusConfirmed,
			wantPayStatus: entity.BookingPaymentPaid,
		},
		{
			name: "active booking status untouched",
			booking: entity.Booking{
				Status:        entity.BookingStatusActive,
				PaymentStatus: entity.BookingPaymentPartiallyPaid,
				PendingAmount: 400,
			},
			amount:        400,
			wantStatus:    entity.BookingStatusActive,
			wantPayStatus: entity.BookingPaymentPaid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, payStatus := NextPaymentState(&tt.booking, tt.amount)
			if status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status, tt.wantStatus)
			}
			if payStatus != tt.wantPayStatus {
				t.Errorf("payment status = %s, want %s", payStatus, tt.wantPayStatus)
			}
		})
	}
}

func TestWebhookEnvelopeParsing(t *testing.T) {
	body := []byte(`{
		"event": "payment_link.paid",
		"payload": {
			"payment_link": {
				"entity": {
					"id": "plink_N8XKQ3",
					"reference_id": "OR-20260110-0042_1736505600"
				}
			},
			"payment": {
				"entity": {
					"id": "pay_N8XLm2",
					"amount": 49200,
					"method": "upi"
				}
			}
		}
	}`)

	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if envelope.Event != "payment_link.paid" {
		t.Errorf("event = %q", envelope.Event)
	}
	if got := envelope.Payload.PaymentLink.Entity.ReferenceID; got != "OR-20260110-0042_1736505600" {
		t.Errorf("reference_id = %q", got)
	}
	if got := envelope.Payload.Payment.Entity.ID; got != "pay_N8XLm2" {
		t.Errorf("payment id = %q", got)
	}
	if got := float64(envelope.Payload.Payment.Entity.Amount) / 100; got != 492 {
		t.Errorf("amount in rupees = %.2f, want 492", got)
	}
}

func newWebhookFixture(fb *fakeBookingRepo, fp *fakePaymentRepo) WebhookService {
	config := &utils.Config{}
	config.Razorpay.WebhookSecret = "whsec_test"
	return NewWebhookService(testRepository(fb, fp), newFakeDB(), config, fakeNotifier{}, zap.NewNop())
}

func paymentLinkEvent(event, reference, paymentID string, paise int64) []byte {
	body, _ := json.Marshal(map[string]any{
		"event": event,
		"payload": map[string]any{
			"payment_link": map[string]any{
				"entity": map[string]any{
					"id":           "plink_test",
					"reference_id": reference,
				},
			},
			"payment": map[string]any{
				"entity": map[string]any{
					"id":     paymentID,
					"amount": paise,
					"method": "upi",
				},
			},
		},
	})
	return body
}

func TestHandleEventRecordsPayment(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusPending, entity.BookingPaymentPending, 1000, 0, 1000)}
	fp := &fakePaymentRepo{}
	svc := newWebhookFixture(fb, fp)

	body := paymentLinkEvent("payment_link.paid", fb.booking.BookingCode+"_1724900000", "pay_ABC123", 100000)
	if err := svc.HandleEvent(context.Background(), body); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if len(fb.payments) != 1 {
		t.Fatalf("payments applied = %d, want 1", len(fb.payments))
	}
	if fb.payments[0].amount != 1000 {
		t.Errorf("applied amount = %v, want 1000 (paise converted)", fb.payments[0].amount)
	}
	if fb.booking.Status != entity.BookingStatusConfirmed {
		t.Errorf("status = %s, want %s", fb.booking.Status, entity.BookingStatusConfirmed)
	}
	if fb.booking.PaymentStatus != entity.BookingPaymentPaid {
		t.Errorf("payment status = %s, want %s", fb.booking.PaymentStatus, entity.BookingPaymentPaid)
	}
	if len(fp.created) != 1 || fp.created[0].Reference != "pay_ABC123" {
		t.Fatalf("payment row = %+v, want one row referenced pay_ABC123", fp.created)
	}
}

func TestHandleEventDuplicateDeliveryIsNoOp(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusPending, entity.BookingPaymentPending, 1000, 0, 1000)}
	fp := &fakePaymentRepo{}
	svc := newWebhookFixture(fb, fp)

	body := paymentLinkEvent("payment_link.paid", fb.booking.BookingCode+"_1724900000", "pay_ABC123", 100000)
	if err := svc.HandleEvent(context.Background(), body); err != nil {
		t.Fatalf("first delivery error = %v", err)
	}

	// Gateway retries replay the exact same payload; the replay is
	// acknowledged without touching money.
	if err := svc.HandleEvent(context.Background(), body); err != nil {
		t.Fatalf("replayed delivery error = %v", err)
	}

	if len(fp.created) != 1 {
		t.Errorf("payment rows = %d, want 1", len(fp.created))
	}
	if len(fb.payments) != 1 {
		t.Errorf("payments applied = %d, want 1", len(fb.payments))
	}
	if fb.booking.PaidAmount != 1000 {
		t.Errorf("paid amount = %v, want 1000", fb.booking.PaidAmount)
	}
}

func TestHandleEventIgnoresUnknownEvents(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusPending, entity.BookingPaymentPending, 1000, 0, 1000)}
	fp := &fakePaymentRepo{}
	svc := newWebhookFixture(fb, fp)

	body := paymentLinkEvent("order.paid", fb.booking.BookingCode+"_1", "pay_X", 100000)
	if err := svc.HandleEvent(context.Background(), body); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}
	if len(fp.created) != 0 || len(fb.payments) != 0 {
		t.Error("unknown event must not touch the booking or ledger")
	}
}

func TestHandleEventExpiredLinkFailsUnpaidBooking(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusPending, entity.BookingPaymentPending, 1000, 0, 1000)}
	fp := &fakePaymentRepo{}
	svc := newWebhookFixture(fb, fp)

	body := paymentLinkEvent("payment_link.expired", fb.booking.BookingCode+"_1", "", 0)
	if err := svc.HandleEvent(context.Background(), body); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if fb.booking.Status != entity.BookingStatusFailed {
		t.Errorf("status = %s, want %s", fb.booking.Status, entity.BookingStatusFailed)
	}
	if fb.booking.PaymentStatus != entity.BookingPaymentFailed {
		t.Errorf("payment status = %s, want %s", fb.booking.PaymentStatus, entity.BookingPaymentFailed)
	}
	if len(fp.created) != 0 {
		t.Errorf("payment rows = %d, want 0", len(fp.created))
	}
}

func TestHandleEventExpiredLinkSparesPartiallyPaidBooking(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPartiallyPaid, 1000, 400, 600)}
	svc := newWebhookFixture(fb, &fakePaymentRepo{})

	body := paymentLinkEvent("payment_link.expired", fb.booking.BookingCode+"_1", "", 0)
	if err := svc.HandleEvent(context.Background(), body); err != nil {
		t.Fatalf("HandleEvent() error = %v", err)
	}

	if fb.booking.Status != entity.BookingStatusConfirmed {
		t.Errorf("status = %s, want %s", fb.booking.Status, entity.BookingStatusConfirmed)
	}
}

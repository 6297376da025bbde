package usecase

import (
	"context"
	"testing"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/dto/request"
	"onnrides/pkg/utils"

	"go.uber.org/zap"
)

func TestValidateExtension(t *testing.T) {
	end := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  entity.BookingStatus
		newEnd  time.Time
		wantErr bool
	}{
		{"extend active booking", entity.BookingStatusActive, end.Add(24 * time.Hour), false},
		{"extend confirmed booking", entity.BookingStatusConfirmed, end.Add(time.Hour), false},
		{"same end date rejected", entity.BookingStatusActive, end, true},
		{"earlier end date rejected", entity.BookingStatusActive, end.Add(-time.Hour), true},
		{"cancelled booking rejected", entity.BookingStatusCancelled, end.Add(24 * time.Hour), true},
		{"completed booking rejected", entity.BookingStatusCompleted, end.Add(24 * time.Hour), true},
		{"failed booking rejected", entity.BookingStatusFailed, end.Add(24 * time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			booking := &entity.Booking{
				Status:  tt.status,
				EndDate: end,
			}
			err := ValidateExtension(booking, tt.newEnd)
			if tt.wantErr && err == nil {
				t.Error("expected error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestBookingIsTerminal(t *testing.T) {
	terminal := []entity.BookingStatus{
		entity.BookingStatusCompleted,
		entity.BookingStatusCancelled,
		entity.BookingStatusFailed,
	}
	live := []entity.BookingStatus{
		entity.BookingStatusPending,
		entity.BookingStatusConfirmed,
		entity.BookingStatusActive,
	}

	for _, status := range terminal {
		if !(&entity.Booking{Status: status}).IsTerminal() {
			t.Errorf("%s should be terminal", status)
		}
	}
	for _, status := range live {
		if (&entity.Booking{Status: status}).IsTerminal() {
			t.Errorf("%s should not be terminal", status)
		}
	}
}

func newBookingFixture(fb *fakeBookingRepo, fp *fakePaymentRepo) BookingService {
	return NewBookingService(testRepository(fb, fp), newFakeDB(), nil, &utils.Config{}, fakeNotifier{}, zap.NewNop())
}

func TestExtendBookingUncollectedReopensBalance(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid, 1000, 1000, 0)}
	fp := &fakePaymentRepo{}
	svc := newBookingFixture(fb, fp)

	newEnd := fb.booking.StartDate.Add(48 * time.Hour).Format(time.RFC3339)
	_, err := svc.ExtendBooking(context.Background(), fb.booking.BookingCode, &request.ExtendBookingRequest{
		NewEndDate:       newEnd,
		AdditionalAmount: 500,
	})
	if err != nil {
		t.Fatalf("ExtendBooking() error = %v", err)
	}

	if len(fb.extensions) != 1 {
		t.Fatalf("extensions recorded = %d, want 1", len(fb.extensions))
	}
	ext := fb.extensions[0]
	if ext.additionalAmount != 500 {
		t.Errorf("additional amount = %v, want 500", ext.additionalAmount)
	}
	if ext.paymentStatus != entity.BookingPaymentPartiallyPaid {
		t.Errorf("payment status = %s, want %s", ext.paymentStatus, entity.BookingPaymentPartiallyPaid)
	}

	// The settled booking owes again until the extra is collected.
	if fb.booking.PendingAmount != 500 {
		t.Errorf("pending amount = %v, want 500", fb.booking.PendingAmount)
	}
	if fb.booking.PaymentStatus != entity.BookingPaymentPartiallyPaid {
		t.Errorf("booking payment status = %s, want %s", fb.booking.PaymentStatus, entity.BookingPaymentPartiallyPaid)
	}
	if len(fp.created) != 0 {
		t.Errorf("payment rows created = %d, want 0", len(fp.created))
	}
	if len(fb.payments) != 0 {
		t.Errorf("payments applied = %d, want 0", len(fb.payments))
	}
}

func TestExtendBookingCollectedSettlesInOneTransaction(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid, 1000, 1000, 0)}
	fp := &fakePaymentRepo{}
	svc := newBookingFixture(fb, fp)

	newEnd := fb.booking.StartDate.Add(48 * time.Hour).Format(time.RFC3339)
	_, err := svc.ExtendBooking(context.Background(), fb.booking.BookingCode, &request.ExtendBookingRequest{
		NewEndDate:       newEnd,
		AdditionalAmount: 500,
		Collected:        true,
		PaymentMethod:    "cash",
	})
	if err != nil {
		t.Fatalf("ExtendBooking() error = %v", err)
	}

	if len(fb.payments) != 1 {
		t.Fatalf("payments applied = %d, want 1", len(fb.payments))
	}
	if fb.payments[0].amount != 500 {
		t.Errorf("applied amount = %v, want 500", fb.payments[0].amount)
	}
	if fb.booking.PaymentStatus != entity.BookingPaymentPaid {
		t.Errorf("payment status = %s, want %s", fb.booking.PaymentStatus, entity.BookingPaymentPaid)
	}
	if fb.booking.PendingAmount != 0 {
		t.Errorf("pending amount = %v, want 0", fb.booking.PendingAmount)
	}

	if len(fp.created) != 1 {
		t.Fatalf("payment rows created = %d, want 1", len(fp.created))
	}
	if fp.created[0].Amount != 500 || fp.created[0].Method != entity.PaymentMethodCash {
		t.Errorf("payment row = %v/%s, want 500/cash", fp.created[0].Amount, fp.created[0].Method)
	}
}

func TestCollectPaymentDefaultsToRemainingBalance(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPartiallyPaid, 1000, 400, 600)}
	fp := &fakePaymentRepo{}
	svc := newBookingFixture(fb, fp)

	// Omitting the amount collects everything still owed.
	_, err := svc.CollectPayment(context.Background(), fb.booking.BookingCode, &request.CollectPaymentRequest{
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("CollectPayment() error = %v", err)
	}

	if len(fp.created) != 1 {
		t.Fatalf("payment rows created = %d, want 1", len(fp.created))
	}
	if fp.created[0].Amount != 600 {
		t.Errorf("collected amount = %v, want 600", fp.created[0].Amount)
	}
	if fb.booking.PaymentStatus != entity.BookingPaymentPaid {
		t.Errorf("payment status = %s, want %s", fb.booking.PaymentStatus, entity.BookingPaymentPaid)
	}
	if fb.booking.PendingAmount != 0 {
		t.Errorf("pending amount = %v, want 0", fb.booking.PendingAmount)
	}
}

func TestCollectPaymentRejectsOvercollection(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPartiallyPaid, 1000, 400, 600)}
	svc := newBookingFixture(fb, &fakePaymentRepo{})

	_, err := svc.CollectPayment(context.Background(), fb.booking.BookingCode, &request.CollectPaymentRequest{Amount: 601})
	if err == nil {
		t.Fatal("CollectPayment() over pending expected error, got nil")
	}

	fb.booking.PendingAmount = 0
	if _, err := svc.CollectPayment(context.Background(), fb.booking.BookingCode, &request.CollectPaymentRequest{}); err == nil {
		t.Fatal("CollectPayment() with nothing pending expected error, got nil")
	}
}

func TestRefundBooking(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPaid, 1000, 1000, 0)}
	fp := &fakePaymentRepo{}
	svc := newBookingFixture(fb, fp)

	_, err := svc.RefundBooking(context.Background(), fb.booking.BookingCode, &request.RefundBookingRequest{
		PaymentMethod: "upi",
	})
	if err != nil {
		t.Fatalf("RefundBooking() error = %v", err)
	}

	if len(fb.refunds) != 1 {
		t.Fatalf("refunds applied = %d, want 1", len(fb.refunds))
	}
	if fb.refunds[0].amount != 1000 {
		t.Errorf("refund amount = %v, want 1000", fb.refunds[0].amount)
	}
	if fb.booking.Status != entity.BookingStatusCancelled {
		t.Errorf("status = %s, want %s", fb.booking.Status, entity.BookingStatusCancelled)
	}
	if fb.booking.PaymentStatus != entity.BookingPaymentRefunded {
		t.Errorf("payment status = %s, want %s", fb.booking.PaymentStatus, entity.BookingPaymentRefunded)
	}

	// The ledger row is negative so daily totals subtract it.
	if len(fp.created) != 1 {
		t.Fatalf("payment rows created = %d, want 1", len(fp.created))
	}
	row := fp.created[0]
	if row.Amount != -1000 {
		t.Errorf("ledger amount = %v, want -1000", row.Amount)
	}
	if row.Status != entity.PaymentStatusRefunded {
		t.Errorf("ledger status = %s, want %s", row.Status, entity.PaymentStatusRefunded)
	}
}

func TestRefundBookingKeepsCompletedStatus(t *testing.T) {
	fb := &fakeBookingRepo{booking: testBooking(entity.BookingStatusCompleted, entity.BookingPaymentPaid, 1000, 1000, 0)}
	svc := newBookingFixture(fb, &fakePaymentRepo{})

	_, err := svc.RefundBooking(context.Background(), fb.booking.BookingCode, &request.RefundBookingRequest{Amount: 300})
	if err != nil {
		t.Fatalf("RefundBooking() error = %v", err)
	}
	if fb.booking.Status != entity.BookingStatusCompleted {
		t.Errorf("status = %s, want %s", fb.booking.Status, entity.BookingStatusCompleted)
	}
	if fb.refunds[0].amount != 300 {
		t.Errorf("refund amount = %v, want 300", fb.refunds[0].amount)
	}
}

func TestRefundBookingRejections(t *testing.T) {
	tests := []struct {
		name    string
		booking *entity.Booking
		amount  float64
	}{
		{"nothing collected", testBooking(entity.BookingStatusPending, entity.BookingPaymentPending, 1000, 0, 1000), 0},
		{"already refunded", testBooking(entity.BookingStatusCancelled, entity.BookingPaymentRefunded, 1000, 0, 0), 0},
		{"more than paid", testBooking(entity.BookingStatusConfirmed, entity.BookingPaymentPartiallyPaid, 1000, 400, 600), 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fb := &fakeBookingRepo{booking: tt.booking}
			svc := newBookingFixture(fb, &fakePaymentRepo{})

			_, err := svc.RefundBooking(context.Background(), tt.booking.BookingCode, &request.RefundBookingRequest{Amount: tt.amount})
			if err == nil {
				t.Fatal("RefundBooking() expected error, got nil")
			}
			if len(fb.refunds) != 0 {
				t.Errorf("refunds applied = %d, want 0", len(fb.refunds))
			}
		})
	}
}

package usecase

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/pkg/database"
	"onnrides/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Gateway webhook event names this service acts on. Everything else is
// acknowledged and ignored so the gateway does not retry forever.
const (
	eventPaymentLinkPaid          = "payment_link.paid"
	eventPaymentLinkPartiallyPaid = "payment_link.partially_paid"
	eventPaymentLinkExpired       = "payment_link.expired"
)

type WebhookService interface {
	VerifySignature(body []byte, signature string) bool
	HandleEvent(ctx context.Context, body []byte) error
}

// webhookEnvelope is the slice of the Razorpay payload we care about.
type webhookEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		PaymentLink struct {
			Entity struct {
				ID          string `json:"id"`
				ReferenceID string `json:"reference_id"`
			} `json:"entity"`
		} `json:"payment_link"`
		Payment struct {
			Entity struct {
				ID     string `json:"id"`
				Amount int64  `json:"amount"`
				Method string `json:"method"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

type webhookService struct {
	repo   *repository.Repository
	db     database.PgxIface
	config *utils.Config
	notify NotificationService
	log    *zap.Logger
}

func NewWebhookService(repo *repository.Repository, db database.PgxIface, config *utils.Config, notify NotificationService, log *zap.Logger) WebhookService {
	return &webhookService{
		repo:   repo,
		db:     db,
		config: config,
		notify: notify,
		log:    log.With(zap.String("service", "webhook")),
	}
}

// VerifySignature checks the HMAC-SHA256 hex digest of the raw request
// body against the gateway's signature header.
func (s *webhookService) VerifySignature(body []byte, signature string) bool {
	return VerifyWebhookSignature(body, signature, s.config.Razorpay.WebhookSecret)
}

func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if secret == "" || signature == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// DerivePaymentStatus maps the paid/pending balances onto the payment
// status: settled once nothing is pending, partially paid once any
// money has landed, pending otherwise.
func DerivePaymentStatus(paidAmount, pendingAmount float64) entity.BookingPaymentStatus {
	switch {
	case pendingAmount <= 0:
		return entity.BookingPaymentPaid
	case paidAmount > 0:
		return entity.BookingPaymentPartiallyPaid
	default:
		return entity.BookingPaymentPending
	}
}

// NextPaymentState returns the booking status and payment status after
// a payment of the given amount lands on the booking. A first payment
// confirms a pending booking; the payment status settles once nothing
// is left pending.
func NextPaymentState(booking *entity.Booking, amount float64) (entity.BookingStatus, entity.BookingPaymentStatus) {
	status := booking.Status
	if status == entity.BookingStatusPending {
		status = entity.BookingStatusConfirmed
	}

	paymentStatus := entity.BookingPaymentPartiallyPaid
	if booking.PendingAmount-amount <= 0 {
		paymentStatus = entity.BookingPaymentPaid
	}

	return status, paymentStatus
}

// BookingCodeFromReference extracts the booking code from a payment
// link reference of the form "<code>_<suffix>".
func BookingCodeFromReference(reference string) string {
	if idx := strings.LastIndex(reference, "_"); idx > 0 {
		return reference[:idx]
	}
	return reference
}

func (s *webhookService) HandleEvent(ctx context.Context, body []byte) error {
	var envelope webhookEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("invalid webhook payload: %w", err)
	}

	switch envelope.Event {
	case eventPaymentLinkPaid, eventPaymentLinkPartiallyPaid:
	case eventPaymentLinkExpired:
		return s.expirePaymentLink(ctx, envelope.Payload.PaymentLink.Entity.ReferenceID)
	default:
		s.log.Debug("Ignoring webhook event", zap.String("event", envelope.Event))
		return nil
	}

	paymentID := envelope.Payload.Payment.Entity.ID
	reference := envelope.Payload.PaymentLink.Entity.ReferenceID
	if paymentID == "" || reference == "" {
		return fmt.Errorf("invalid webhook payload: missing payment id or reference")
	}

	// Gateway amounts arrive in the smallest currency unit.
	amount := float64(envelope.Payload.Payment.Entity.Amount) / 100

	code := BookingCodeFromReference(reference)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin webhook transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.repo.Booking.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found for webhook reference %s", code, reference)
	}

	// Gateway retries replay the same payment id; the first recorded
	// row wins and the replay is acknowledged without effect.
	exists, err := s.repo.Payment.ExistsByReference(ctx, tx, paymentID)
	if err != nil {
		return fmt.Errorf("check payment reference: %w", err)
	}
	if exists {
		s.log.Info("Duplicate webhook delivery ignored",
			zap.String("payment_id", paymentID),
			zap.String("booking_code", code),
		)
		return nil
	}

	status, paymentStatus := NextPaymentState(booking, amount)

	if err := s.repo.Booking.ApplyPayment(ctx, tx, booking.ID, amount, status, paymentStatus); err != nil {
		return fmt.Errorf("apply webhook payment: %w", err)
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID: booking.ID,
		Amount:    amount,
		Status:    entity.PaymentStatusCompleted,
		Method:    entity.PaymentMethodOnline,
		Reference: paymentID,
	}

	if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
		return fmt.Errorf("record webhook payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit webhook payment: %w", err)
	}

	s.log.Info("Webhook payment reconciled",
		zap.String("booking_code", code),
		zap.String("payment_id", paymentID),
		zap.Float64("amount", amount),
		zap.String("status", string(status)),
		zap.String("payment_status", string(paymentStatus)),
	)

	// Notifications run after the commit so delivery failures can
	// never roll back the money.
	booking.Status = status
	booking.PaymentStatus = paymentStatus
	booking.PaidAmount += amount
	booking.PendingAmount -= amount

	go func() {
		nctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		user, err := s.repo.User.FindByID(nctx, booking.UserID)
		if err != nil || user == nil {
			s.log.Warn("Skipping confirmation notification, user lookup failed",
				zap.String("booking_code", booking.BookingCode), zap.Error(err))
			return
		}

		if booking.Status == entity.BookingStatusConfirmed && user.Phone != nil {
			s.notify.SendBookingConfirmed(nctx, booking, *user.Phone)
		}
		s.notify.SendPaymentAlert(nctx, booking, amount, string(entity.PaymentMethodOnline), paymentID)
	}()

	return nil
}

// expirePaymentLink fails a booking whose payment link ran out before
// any money landed. Bookings with a partial payment keep their state;
// collecting the rest is an operator problem, not an expiry.
func (s *webhookService) expirePaymentLink(ctx context.Context, reference string) error {
	if reference == "" {
		return fmt.Errorf("invalid webhook payload: missing reference")
	}

	code := BookingCodeFromReference(reference)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin expiry transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.repo.Booking.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found for webhook reference %s", code, reference)
	}

	if booking.Status != entity.BookingStatusPending || booking.PaidAmount > 0 {
		s.log.Info("Ignoring payment link expiry for booking already in progress",
			zap.String("booking_code", code),
			zap.String("status", string(booking.Status)),
		)
		return nil
	}

	if err := s.repo.Booking.ApplyPayment(ctx, tx, booking.ID, 0, entity.BookingStatusFailed, entity.BookingPaymentFailed); err != nil {
		return fmt.Errorf("fail expired booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit expiry: %w", err)
	}

	s.log.Info("Booking failed after payment link expiry", zap.String("booking_code", code))
	return nil
}

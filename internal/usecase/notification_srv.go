package usecase

import (
	"context"
	"fmt"
	"net/http"
	"net/smtp"
	"net/url"
	"strings"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NotificationService delivers customer and admin notifications.
// Everything here is best-effort: failures are logged and audited,
// never propagated into the financial flow that triggered them.
type NotificationService interface {
	SendBookingConfirmed(ctx context.Context, booking *entity.Booking, phone string)
	SendPaymentAlert(ctx context.Context, booking *entity.Booking, amount float64, method, reference string)
}

type notificationService struct {
	repo   *repository.Repository
	config *utils.Config
	client *http.Client
	log    *zap.Logger
}

func NewNotificationService(repo *repository.Repository, config *utils.Config, log *zap.Logger) NotificationService {
	return &notificationService{
		repo:   repo,
		config: config,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log.With(zap.String("service", "notification")),
	}
}

func (s *notificationService) SendBookingConfirmed(ctx context.Context, booking *entity.Booking, phone string) {
	message := fmt.Sprintf(
		"Your OnnRides booking %s is confirmed! Pickup: %s. Paid: %.0f, balance due: %.0f.",
		booking.BookingCode,
		booking.StartDate.Format("02 Jan 2006 15:04"),
		booking.PaidAmount,
		booking.PendingAmount,
	)

	s.sendWhatsApp(ctx, phone, message, &booking.ID, "booking_confirmation")
}

func (s *notificationService) SendPaymentAlert(ctx context.Context, booking *entity.Booking, amount float64, method, reference string) {
	message := fmt.Sprintf(
		"Payment received: %.0f via %s for booking %s (ref %s).",
		amount, method, booking.BookingCode, reference,
	)

	if s.config.WhatsApp.AdminPhone != "" {
		s.sendWhatsApp(ctx, s.config.WhatsApp.AdminPhone, message, &booking.ID, "admin_payment_alert")
	}

	if s.config.Email.AdminTo != "" {
		if err := s.sendEmail(s.config.Email.AdminTo, "Payment received - "+booking.BookingCode, message); err != nil {
			s.log.Error("Failed to send admin payment email",
				zap.Error(err),
				zap.String("booking_code", booking.BookingCode),
			)
		}
	}
}

// sendWhatsApp posts a chat message to the UltraMsg-compatible gateway
// and records the attempt in whatsapp_logs either way.
func (s *notificationService) sendWhatsApp(ctx context.Context, phone, message string, bookingID *uuid.UUID, messageType string) {
	status := "sent"
	var sendErr *string

	if err := s.postMessage(ctx, phone, message); err != nil {
		status = "failed"
		msg := err.Error()
		sendErr = &msg
		s.log.Error("Failed to send whatsapp message",
			zap.Error(err),
			zap.String("message_type", messageType),
		)
	}

	entry := &entity.WhatsAppLog{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		Recipient:   phone,
		Message:     message,
		BookingID:   bookingID,
		Status:      status,
		Error:       sendErr,
		MessageType: messageType,
	}

	if err := s.repo.WhatsAppLog.Create(ctx, entry); err != nil {
		s.log.Error("Failed to audit whatsapp message", zap.Error(err))
	}
}

func (s *notificationService) postMessage(ctx context.Context, phone, message string) error {
	if !s.config.WhatsApp.Enabled {
		s.log.Debug("WhatsApp disabled, skipping send", zap.String("recipient", phone))
		return nil
	}

	endpoint := fmt.Sprintf("%s/%s/messages/chat", s.config.WhatsApp.APIURL, s.config.WhatsApp.Instance)

	form := url.Values{}
	form.Set("token", s.config.WhatsApp.Token)
	form.Set("to", phone)
	form.Set("body", message)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build whatsapp request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("send whatsapp message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp gateway returned %d", resp.StatusCode)
	}

	return nil
}

func (s *notificationService) sendEmail(to, subject, body string) error {
	if s.config.Email.Host == "" {
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.config.Email.Host, s.config.Email.Port)
	auth := smtp.PlainAuth("", s.config.Email.User, s.config.Email.Password, s.config.Email.Host)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		s.config.Email.From, to, subject, body)

	return smtp.SendMail(addr, auth, s.config.Email.From, []string{to}, []byte(msg))
}

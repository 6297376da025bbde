package entity

import (
	"github.com/google/uuid"
)

type WhatsAppLog struct {
	BaseSimple
	Recipient   string     `db:"recipient"`
	Message     string     `db:"message"`
	BookingID   *uuid.UUID `db:"booking_id"`
	Status      string     `db:"status"`
	Error       *string    `db:"error"`
	MessageType string     `db:"message_type"`
}

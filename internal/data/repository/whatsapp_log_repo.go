package repository

import (
	"context"
	"fmt"

	"onnrides/internal/data/entity"
	"onnrides/pkg/database"

	"go.uber.org/zap"
)

type WhatsAppLogRepository interface {
	Create(ctx context.Context, log *entity.WhatsAppLog) error
	FindRecent(ctx context.Context, limit int) ([]*entity.WhatsAppLog, error)
}

type whatsappLogRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewWhatsAppLogRepository(db database.PgxIface, log *zap.Logger) WhatsAppLogRepository {
	return &whatsappLogRepository{
		db:  db,
		log: log.With(zap.String("repository", "whatsapp_log")),
	}
}

func (r *whatsappLogRepository) Create(ctx context.Context, entry *entity.WhatsAppLog) error {
	query := `
		INSERT INTO whatsapp_logs (id, recipient, message, booking_id, status, error, message_type, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(ctx, query,
		entry.ID,
		entry.Recipient,
		entry.Message,
		entry.BookingID,
		entry.Status,
		entry.Error,
		entry.MessageType,
		entry.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create whatsapp log",
			zap.Error(err),
			zap.String("recipient", entry.Recipient),
		)
		return fmt.Errorf("create whatsapp log: %w", err)
	}

	return nil
}

func (r *whatsappLogRepository) FindRecent(ctx context.Context, limit int) ([]*entity.WhatsAppLog, error) {
	query := `
		SELECT id, recipient, message, booking_id, status, error, message_type, created_at
		FROM whatsapp_logs
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		r.log.Error("Failed to list whatsapp logs", zap.Error(err))
		return nil, fmt.Errorf("list whatsapp logs: %w", err)
	}
	defer rows.Close()

	var logs []*entity.WhatsAppLog
	for rows.Next() {
		var entry entity.WhatsAppLog
		err := rows.Scan(
			&entry.ID,
			&entry.Recipient,
			&entry.Message,
			&entry.BookingID,
			&entry.Status,
			&entry.Error,
			&entry.MessageType,
			&entry.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan whatsapp log row", zap.Error(err))
			return nil, fmt.Errorf("scan whatsapp log row: %w", err)
		}
		logs = append(logs, &entry)
	}

	return logs, nil
}

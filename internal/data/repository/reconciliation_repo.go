package repository

import (
	"context"
	"fmt"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/pkg/database"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type ReconciliationRepository interface {
	FindByDate(ctx context.Context, date time.Time) (*entity.DailyReconciliation, error)
	FindLatestBefore(ctx context.Context, date time.Time) (*entity.DailyReconciliation, error)
	Upsert(ctx context.Context, rec *entity.DailyReconciliation) error
}

type reconciliationRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewReconciliationRepository(db database.PgxIface, log *zap.Logger) ReconciliationRepository {
	return &reconciliationRepository{
		db:  db,
		log: log.With(zap.String("repository", "reconciliation")),
	}
}

const reconciliationColumns = `id, date, opening_balance, cash_collections, card_collections,
	       upi_collections, bank_collections, total_refunds, closing_balance, notes,
	       created_at, updated_at`

func scanReconciliation(row pgx.Row) (*entity.DailyReconciliation, error) {
	var rec entity.DailyReconciliation
	err := row.Scan(
		&rec.ID,
		&rec.Date,
		&rec.OpeningBalance,
		&rec.CashCollections,
		&rec.CardCollections,
		&rec.UPICollections,
		&rec.BankCollections,
		&rec.TotalRefunds,
		&rec.ClosingBalance,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *reconciliationRepository) FindByDate(ctx context.Context, date time.Time) (*entity.DailyReconciliation, error) {
	query := `SELECT ` + reconciliationColumns + ` FROM daily_reconciliations WHERE date = $1`

	rec, err := scanReconciliation(r.db.QueryRow(ctx, query, date.Format("2006-01-02")))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find reconciliation by date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("find reconciliation for %s: %w", date.Format("2006-01-02"), err)
	}

	return rec, nil
}

func (r *reconciliationRepository) FindLatestBefore(ctx context.Context, date time.Time) (*entity.DailyReconciliation, error) {
	query := `
		SELECT ` + reconciliationColumns + `
		FROM daily_reconciliations
		WHERE date < $1
		ORDER BY date DESC
		LIMIT 1
	`

	rec, err := scanReconciliation(r.db.QueryRow(ctx, query, date.Format("2006-01-02")))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find latest reconciliation",
			zap.Error(err),
			zap.Time("before", date),
		)
		return nil, fmt.Errorf("find latest reconciliation before %s: %w", date.Format("2006-01-02"), err)
	}

	return rec, nil
}

func (r *reconciliationRepository) Upsert(ctx context.Context, rec *entity.DailyReconciliation) error {
	query := `
		INSERT INTO daily_reconciliations (id, date, opening_balance, cash_collections,
		                                   card_collections, upi_collections, bank_collections,
		                                   total_refunds, closing_balance, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (date) DO UPDATE SET
			opening_balance = EXCLUDED.opening_balance,
			cash_collections = EXCLUDED.cash_collections,
			card_collections = EXCLUDED.card_collections,
			upi_collections = EXCLUDED.upi_collections,
			bank_collections = EXCLUDED.bank_collections,
			total_refunds = EXCLUDED.total_refunds,
			closing_balance = EXCLUDED.closing_balance,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`

	_, err := r.db.Exec(ctx, query,
		rec.ID,
		rec.Date.Format("2006-01-02"),
		rec.OpeningBalance,
		rec.CashCollections,
		rec.CardCollections,
		rec.UPICollections,
		rec.BankCollections,
		rec.TotalRefunds,
		rec.ClosingBalance,
		rec.Notes,
		rec.CreatedAt,
		rec.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to upsert reconciliation",
			zap.Error(err),
			zap.Time("date", rec.Date),
		)
		return fmt.Errorf("upsert reconciliation for %s: %w", rec.Date.Format("2006-01-02"), err)
	}

	return nil
}

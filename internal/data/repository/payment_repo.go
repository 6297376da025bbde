package repository

import (
	"context"
	"fmt"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// DailyTransaction is a ledger row joined with its booking for the
// daily finance report.
type DailyTransaction struct {
	PaymentID    uuid.UUID
	BookingCode  string
	CustomerName string
	Amount       float64
	Method       entity.PaymentMethod
	Type         string // "collection" or "refund"
	Timestamp    time.Time
}

type PaymentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error)
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error)

	// Transactional variants, composed by services inside one pgx.Tx
	// together with the booking updates they account for.
	Create(ctx context.Context, q database.Queryer, payment *entity.Payment) error
	ExistsByReference(ctx context.Context, q database.Queryer, reference string) (bool, error)

	// Daily finance aggregation
	SumByMethodForDate(ctx context.Context, date time.Time) (map[entity.PaymentMethod]float64, error)
	SumRefundsForDate(ctx context.Context, date time.Time) (float64, error)
	ListForDate(ctx context.Context, date time.Time) ([]*DailyTransaction, error)
}

type paymentRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewPaymentRepository(db database.PgxIface, log *zap.Logger) PaymentRepository {
	return &paymentRepository{
		db:  db,
		log: log.With(zap.String("repository", "payment")),
	}
}

func (r *paymentRepository) Create(ctx context.Context, q database.Queryer, payment *entity.Payment) error {
	query := `
		INSERT INTO payments (id, booking_id, amount, status, method, reference, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := q.Exec(ctx, query,
		payment.ID,
		payment.BookingID,
		payment.Amount,
		payment.Status,
		payment.Method,
		payment.Reference,
		payment.CreatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create payment",
			zap.Error(err),
			zap.String("booking_id", payment.BookingID.String()),
			zap.String("reference", payment.Reference),
		)
		return fmt.Errorf("create payment for booking %s: %w", payment.BookingID.String(), err)
	}

	return nil
}

func (r *paymentRepository) ExistsByReference(ctx context.Context, q database.Queryer, reference string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM payments WHERE reference = $1)`

	var exists bool
	err := q.QueryRow(ctx, query, reference).Scan(&exists)
	if err != nil {
		r.log.Error("Failed to check payment reference",
			zap.Error(err),
			zap.String("reference", reference),
		)
		return false, fmt.Errorf("check payment reference %s: %w", reference, err)
	}

	return exists, nil
}

func (r *paymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	query := `
		SELECT id, booking_id, amount, status, method, reference, created_at
		FROM payments
		WHERE id = $1
	`

	var payment entity.Payment
	err := r.db.QueryRow(ctx, query, id).Scan(
		&payment.ID,
		&payment.BookingID,
		&payment.Amount,
		&payment.Status,
		&payment.Method,
		&payment.Reference,
		&payment.CreatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find payment by ID",
			zap.Error(err),
			zap.String("payment_id", id.String()),
		)
		return nil, fmt.Errorf("find payment by ID %s: %w", id.String(), err)
	}

	return &payment, nil
}

func (r *paymentRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	query := `
		SELECT id, booking_id, amount, status, method, reference, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at
	`

	rows, err := r.db.Query(ctx, query, bookingID)
	if err != nil {
		r.log.Error("Failed to find payments by booking ID",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
		)
		return nil, fmt.Errorf("find payments by booking ID %s: %w", bookingID.String(), err)
	}
	defer rows.Close()

	var payments []*entity.Payment
	for rows.Next() {
		var payment entity.Payment
		err := rows.Scan(
			&payment.ID,
			&payment.BookingID,
			&payment.Amount,
			&payment.Status,
			&payment.Method,
			&payment.Reference,
			&payment.CreatedAt,
		)
		if err != nil {
			r.log.Error("Failed to scan payment row", zap.Error(err))
			return nil, fmt.Errorf("scan payment row: %w", err)
		}
		payments = append(payments, &payment)
	}

	return payments, nil
}

func (r *paymentRepository) SumByMethodForDate(ctx context.Context, date time.Time) (map[entity.PaymentMethod]float64, error) {
	query := `
		SELECT method, SUM(amount)
		FROM payments
		WHERE DATE(created_at) = $1 AND status = 'completed'
		GROUP BY method
	`

	rows, err := r.db.Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		r.log.Error("Failed to sum payments by method",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("sum payments by method for %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	sums := make(map[entity.PaymentMethod]float64)
	for rows.Next() {
		var method entity.PaymentMethod
		var total float64
		if err := rows.Scan(&method, &total); err != nil {
			r.log.Error("Failed to scan method sum row", zap.Error(err))
			return nil, fmt.Errorf("scan method sum row: %w", err)
		}
		sums[method] = total
	}

	return sums, nil
}

func (r *paymentRepository) SumRefundsForDate(ctx context.Context, date time.Time) (float64, error) {
	// Refunds are stored as negative amounts.
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM payments
		WHERE DATE(created_at) = $1 AND status = 'refunded'
	`

	var total float64
	err := r.db.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(&total)
	if err != nil {
		r.log.Error("Failed to sum refunds",
			zap.Error(err),
			zap.Time("date", date),
		)
		return 0, fmt.Errorf("sum refunds for %s: %w", date.Format("2006-01-02"), err)
	}

	return total, nil
}

func (r *paymentRepository) ListForDate(ctx context.Context, date time.Time) ([]*DailyTransaction, error) {
	query := `
		SELECT p.id,
		       b.booking_code,
		       COALESCE(u.name, 'Customer'),
		       p.amount,
		       p.method,
		       CASE WHEN p.status = 'refunded' THEN 'refund' ELSE 'collection' END,
		       p.created_at
		FROM payments p
		LEFT JOIN bookings b ON p.booking_id = b.id
		LEFT JOIN users u ON b.user_id = u.id
		WHERE DATE(p.created_at) = $1
		ORDER BY p.created_at DESC
	`

	rows, err := r.db.Query(ctx, query, date.Format("2006-01-02"))
	if err != nil {
		r.log.Error("Failed to list payments for date",
			zap.Error(err),
			zap.Time("date", date),
		)
		return nil, fmt.Errorf("list payments for %s: %w", date.Format("2006-01-02"), err)
	}
	defer rows.Close()

	var transactions []*DailyTransaction
	for rows.Next() {
		var tx DailyTransaction
		err := rows.Scan(
			&tx.PaymentID,
			&tx.BookingCode,
			&tx.CustomerName,
			&tx.Amount,
			&tx.Method,
			&tx.Type,
			&tx.Timestamp,
		)
		if err != nil {
			r.log.Error("Failed to scan transaction row", zap.Error(err))
			return nil, fmt.Errorf("scan transaction row: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	return transactions, nil
}

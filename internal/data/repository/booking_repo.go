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

type BookingRepository interface {
	Create(ctx context.Context, booking *entity.Booking) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error)
	FindByCode(ctx context.Context, code string) (*entity.Booking, error)
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error)
	CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error)
	FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error)
	CountAll(ctx context.Context) (int64, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error

	// Transactional variants. The caller owns the transaction and
	// passes it in as the Queryer; the row lock taken by
	// FindByCodeForUpdate lives until that transaction ends.
	FindByCodeForUpdate(ctx context.Context, q database.Queryer, code string) (*entity.Booking, error)
	ApplyPayment(ctx context.Context, q database.Queryer, bookingID uuid.UUID, amount float64, status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus) error
	ApplyRefund(ctx context.Context, q database.Queryer, bookingID uuid.UUID, amount float64, status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus) error
	Extend(ctx context.Context, q database.Queryer, bookingID uuid.UUID, newEndDate time.Time, totalHours int, additionalAmount float64, paymentStatus entity.BookingPaymentStatus) error
}

type bookingRepository struct {
	db  database.PgxIface
	log *zap.Logger
}

func NewBookingRepository(db database.PgxIface, log *zap.Logger) BookingRepository {
	return &bookingRepository{
		db:  db,
		log: log.With(zap.String("repository", "booking")),
	}
}

const bookingColumns = `id, booking_code, user_id, vehicle_id, start_date, end_date, total_hours,
	       total_price, paid_amount, pending_amount, status, payment_status,
	       pickup_location, dropoff_location, created_at, updated_at`

func scanBooking(row pgx.Row) (*entity.Booking, error) {
	var b entity.Booking
	err := row.Scan(
		&b.ID,
		&b.BookingCode,
		&b.UserID,
		&b.VehicleID,
		&b.StartDate,
		&b.EndDate,
		&b.TotalHours,
		&b.TotalPrice,
		&b.PaidAmount,
		&b.PendingAmount,
		&b.Status,
		&b.PaymentStatus,
		&b.PickupLocation,
		&b.DropoffLocation,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Create(ctx context.Context, booking *entity.Booking) error {
	query := `
		INSERT INTO bookings (id, booking_code, user_id, vehicle_id, start_date, end_date,
		                      total_hours, total_price, paid_amount, pending_amount, status,
		                      payment_status, pickup_location, dropoff_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.db.Exec(ctx, query,
		booking.ID,
		booking.BookingCode,
		booking.UserID,
		booking.VehicleID,
		booking.StartDate,
		booking.EndDate,
		booking.TotalHours,
		booking.TotalPrice,
		booking.PaidAmount,
		booking.PendingAmount,
		booking.Status,
		booking.PaymentStatus,
		booking.PickupLocation,
		booking.DropoffLocation,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	if err != nil {
		r.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("booking_code", booking.BookingCode),
			zap.String("user_id", booking.UserID.String()),
		)
		return fmt.Errorf("create booking %s: %w", booking.BookingCode, err)
	}

	return nil
}

func (r *bookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by ID",
			zap.Error(err),
			zap.String("booking_id", id.String()),
		)
		return nil, fmt.Errorf("find booking by ID %s: %w", id.String(), err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1`

	booking, err := scanBooking(r.db.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to find booking by code",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return nil, fmt.Errorf("find booking by code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(ctx, query, userID, limit, offset)
	if err != nil {
		r.log.Error("Failed to find bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
			zap.Int("limit", limit),
			zap.Int("offset", offset),
		)
		return nil, fmt.Errorf("find bookings by user ID %s: %w", userID.String(), err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountByUserID(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM bookings WHERE user_id = $1`

	var count int64
	err := r.db.QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings by user ID",
			zap.Error(err),
			zap.String("user_id", userID.String()),
		)
		return 0, fmt.Errorf("count bookings by user ID %s: %w", userID.String(), err)
	}

	return count, nil
}

func (r *bookingRepository) FindAll(ctx context.Context, limit, offset int) ([]*entity.Booking, error) {
	query := `
		SELECT ` + bookingColumns + `
		FROM bookings
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		r.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	defer rows.Close()

	var bookings []*entity.Booking
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			r.log.Error("Failed to scan booking row", zap.Error(err))
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}

func (r *bookingRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&count)
	if err != nil {
		r.log.Error("Failed to count bookings", zap.Error(err))
		return 0, fmt.Errorf("count bookings: %w", err)
	}

	return count, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	query := `UPDATE bookings SET status = $2, updated_at = NOW() WHERE id = $1`

	result, err := r.db.Exec(ctx, query, bookingID, status)
	if err != nil {
		r.log.Error("Failed to update booking status",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.String("status", string(status)),
		)
		return fmt.Errorf("update booking %s status to %s: %w", bookingID.String(), string(status), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) FindByCodeForUpdate(ctx context.Context, q database.Queryer, code string) (*entity.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_code = $1 FOR UPDATE`

	booking, err := scanBooking(q.QueryRow(ctx, query, code))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.log.Error("Failed to lock booking by code",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return nil, fmt.Errorf("lock booking by code %s: %w", code, err)
	}

	return booking, nil
}

func (r *bookingRepository) ApplyPayment(ctx context.Context, q database.Queryer, bookingID uuid.UUID, amount float64, status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus) error {
	query := `
		UPDATE bookings
		SET status = $2,
		    payment_status = $3,
		    paid_amount = paid_amount + $4,
		    pending_amount = pending_amount - $4,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, bookingID, status, paymentStatus, amount)
	if err != nil {
		r.log.Error("Failed to apply payment to booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Float64("amount", amount),
		)
		return fmt.Errorf("apply payment to booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

// ApplyRefund returns collected money to the customer. The pending
// amount is left alone; a refunded booking is closed out, not owed.
func (r *bookingRepository) ApplyRefund(ctx context.Context, q database.Queryer, bookingID uuid.UUID, amount float64, status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus) error {
	query := `
		UPDATE bookings
		SET status = $2,
		    payment_status = $3,
		    paid_amount = paid_amount - $4,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, bookingID, status, paymentStatus, amount)
	if err != nil {
		r.log.Error("Failed to apply refund to booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Float64("amount", amount),
		)
		return fmt.Errorf("apply refund to booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

func (r *bookingRepository) Extend(ctx context.Context, q database.Queryer, bookingID uuid.UUID, newEndDate time.Time, totalHours int, additionalAmount float64, paymentStatus entity.BookingPaymentStatus) error {
	query := `
		UPDATE bookings
		SET end_date = $2,
		    total_hours = $3,
		    total_price = total_price + $4,
		    pending_amount = pending_amount + $4,
		    payment_status = $5,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := q.Exec(ctx, query, bookingID, newEndDate, totalHours, additionalAmount, paymentStatus)
	if err != nil {
		r.log.Error("Failed to extend booking",
			zap.Error(err),
			zap.String("booking_id", bookingID.String()),
			zap.Time("new_end_date", newEndDate),
		)
		return fmt.Errorf("extend booking %s: %w", bookingID.String(), err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("booking %s not found", bookingID.String())
	}

	return nil
}

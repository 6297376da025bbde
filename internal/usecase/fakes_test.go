package usecase

import (
	"context"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/pkg/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// The fakes embed the interfaces they stand in for and override only
// the methods the service under test reaches; anything else panics on
// the nil embedded value, which is exactly what an unexpected call
// deserves in a test.

type fakeTx struct {
	pgx.Tx
	commits   int
	rollbacks int
}

func (t *fakeTx) Commit(ctx context.Context) error   { t.commits++; return nil }
func (t *fakeTx) Rollback(ctx context.Context) error { t.rollbacks++; return nil }

type fakeDB struct {
	database.PgxIface
	tx *fakeTx
}

func (d *fakeDB) Begin(ctx context.Context) (pgx.Tx, error) { return d.tx, nil }

func newFakeDB() *fakeDB {
	return &fakeDB{tx: &fakeTx{}}
}

type appliedPayment struct {
	amount        float64
	status        entity.BookingStatus
	paymentStatus entity.BookingPaymentStatus
}

type appliedExtension struct {
	newEndDate       time.Time
	totalHours       int
	additionalAmount float64
	paymentStatus    entity.BookingPaymentStatus
}

type fakeBookingRepo struct {
	repository.BookingRepository
	booking    *entity.Booking
	payments   []appliedPayment
	extensions []appliedExtension
	refunds    []appliedPayment
}

func (f *fakeBookingRepo) FindByCode(ctx context.Context, code string) (*entity.Booking, error) {
	if f.booking != nil && f.booking.BookingCode == code {
		return f.booking, nil
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindByCodeForUpdate(ctx context.Context, q database.Queryer, code string) (*entity.Booking, error) {
	return f.FindByCode(ctx, code)
}

func (f *fakeBookingRepo) ApplyPayment(ctx context.Context, q database.Queryer, bookingID uuid.UUID, amount float64, status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus) error {
	f.payments = append(f.payments, appliedPayment{amount, status, paymentStatus})
	f.booking.PaidAmount += amount
	f.booking.PendingAmount -= amount
	f.booking.Status = status
	f.booking.PaymentStatus = paymentStatus
	return nil
}

func (f *fakeBookingRepo) ApplyRefund(ctx context.Context, q database.Queryer, bookingID uuid.UUID, amount float64, status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus) error {
	f.refunds = append(f.refunds, appliedPayment{amount, status, paymentStatus})
	f.booking.PaidAmount -= amount
	f.booking.Status = status
	f.booking.PaymentStatus = paymentStatus
	return nil
}

func (f *fakeBookingRepo) Extend(ctx context.Context, q database.Queryer, bookingID uuid.UUID, newEndDate time.Time, totalHours int, additionalAmount float64, paymentStatus entity.BookingPaymentStatus) error {
	f.extensions = append(f.extensions, appliedExtension{newEndDate, totalHours, additionalAmount, paymentStatus})
	f.booking.EndDate = newEndDate
	f.booking.TotalHours = totalHours
	f.booking.TotalPrice += additionalAmount
	f.booking.PendingAmount += additionalAmount
	f.booking.PaymentStatus = paymentStatus
	return nil
}

type fakePaymentRepo struct {
	repository.PaymentRepository
	created []*entity.Payment
	sums    map[entity.PaymentMethod]float64
	refunds float64
}

func (f *fakePaymentRepo) Create(ctx context.Context, q database.Queryer, payment *entity.Payment) error {
	f.created = append(f.created, payment)
	return nil
}

func (f *fakePaymentRepo) ExistsByReference(ctx context.Context, q database.Queryer, reference string) (bool, error) {
	for _, p := range f.created {
		if p.Reference == reference {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) ([]*entity.Payment, error) {
	return f.created, nil
}

func (f *fakePaymentRepo) SumByMethodForDate(ctx context.Context, date time.Time) (map[entity.PaymentMethod]float64, error) {
	if f.sums == nil {
		return map[entity.PaymentMethod]float64{}, nil
	}
	return f.sums, nil
}

func (f *fakePaymentRepo) SumRefundsForDate(ctx context.Context, date time.Time) (float64, error) {
	return f.refunds, nil
}

func (f *fakePaymentRepo) ListForDate(ctx context.Context, date time.Time) ([]*repository.DailyTransaction, error) {
	return nil, nil
}

type fakeVehicleRepo struct {
	repository.VehicleRepository
}

func (f *fakeVehicleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Vehicle, error) {
	return nil, nil
}

type fakeUserRepo struct {
	repository.UserRepository
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	return nil, nil
}

type fakeSettingRepo struct {
	repository.SettingRepository
	values   map[string]float64
	upserted map[string]string
}

func (f *fakeSettingRepo) GetNumeric(ctx context.Context, key string, fallback float64) (float64, error) {
	if v, ok := f.values[key]; ok {
		return v, nil
	}
	return fallback, nil
}

func (f *fakeSettingRepo) Upsert(ctx context.Context, key, value string) error {
	if f.upserted == nil {
		f.upserted = map[string]string{}
	}
	f.upserted[key] = value
	return nil
}

type fakeReconciliationRepo struct {
	repository.ReconciliationRepository
	previous *entity.DailyReconciliation
	upserted *entity.DailyReconciliation
}

func (f *fakeReconciliationRepo) FindLatestBefore(ctx context.Context, date time.Time) (*entity.DailyReconciliation, error) {
	return f.previous, nil
}

func (f *fakeReconciliationRepo) Upsert(ctx context.Context, rec *entity.DailyReconciliation) error {
	f.upserted = rec
	return nil
}

type fakeNotifier struct{}

func (fakeNotifier) SendBookingConfirmed(ctx context.Context, booking *entity.Booking, phone string) {
}

func (fakeNotifier) SendPaymentAlert(ctx context.Context, booking *entity.Booking, amount float64, method, reference string) {
}

func testBooking(status entity.BookingStatus, paymentStatus entity.BookingPaymentStatus, total, paid, pending float64) *entity.Booking {
	now := time.Now()
	return &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:   "OR-20260815-0001",
		UserID:        uuid.New(),
		VehicleID:     uuid.New(),
		StartDate:     now,
		EndDate:       now.Add(24 * time.Hour),
		TotalHours:    24,
		TotalPrice:    total,
		PaidAmount:    paid,
		PendingAmount: pending,
		Status:        status,
		PaymentStatus: paymentStatus,
	}
}

func testRepository(booking *fakeBookingRepo, payment *fakePaymentRepo) *repository.Repository {
	return &repository.Repository{
		User:           &fakeUserRepo{},
		Vehicle:        &fakeVehicleRepo{},
		Booking:        booking,
		Payment:        payment,
		Setting:        &fakeSettingRepo{},
		Reconciliation: &fakeReconciliationRepo{},
	}
}

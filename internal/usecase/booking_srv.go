package usecase

import (
	"context"
	"fmt"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/internal/dto/request"
	"onnrides/internal/dto/response"
	"onnrides/pkg/cache"
	"onnrides/pkg/database"
	"onnrides/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type BookingService interface {
	// Public
	Quote(ctx context.Context, req *request.QuoteRequest) (*response.PriceBreakdownResponse, error)

	// Authenticated
	CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error)
	GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)

	// Admin
	GetBookingByCode(ctx context.Context, code string) (*response.BookingResponse, error)
	ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error)
	CancelBooking(ctx context.Context, code string) error
	ExtendBooking(ctx context.Context, code string, req *request.ExtendBookingRequest) (*response.BookingResponse, error)
	CollectPayment(ctx context.Context, code string, req *request.CollectPaymentRequest) (*response.BookingResponse, error)
	RefundBooking(ctx context.Context, code string, req *request.RefundBookingRequest) (*response.BookingResponse, error)
}

type bookingService struct {
	repo   *repository.Repository
	db     database.PgxIface
	cache  *cache.Cache
	config *utils.Config
	notify NotificationService
	log    *zap.Logger
}

func NewBookingService(repo *repository.Repository, db database.PgxIface, c *cache.Cache, config *utils.Config, notify NotificationService, log *zap.Logger) BookingService {
	return &bookingService{
		repo:   repo,
		db:     db,
		cache:  c,
		config: config,
		notify: notify,
		log:    log.With(zap.String("service", "booking")),
	}
}

// loadPercentages reads the configurable rates from settings, falling
// back to the config defaults.
func (s *bookingService) loadPercentages(ctx context.Context) (Percentages, error) {
	gst, err := cachedNumericSetting(ctx, s.cache, s.repo.Setting, entity.SettingGSTPercentage, s.config.Booking.GSTPercent)
	if err != nil {
		return Percentages{}, fmt.Errorf("load gst percentage: %w", err)
	}

	fee, err := cachedNumericSetting(ctx, s.cache, s.repo.Setting, entity.SettingServiceFeePercentage, s.config.Booking.ServiceFeePercent)
	if err != nil {
		return Percentages{}, fmt.Errorf("load service fee percentage: %w", err)
	}

	advance, err := cachedNumericSetting(ctx, s.cache, s.repo.Setting, entity.SettingAdvancePercentage, s.config.Booking.AdvancePercent)
	if err != nil {
		return Percentages{}, fmt.Errorf("load advance percentage: %w", err)
	}

	return Percentages{GST: gst, ServiceFee: fee, AdvancePayment: advance}, nil
}

func parseDateTime(value string) (time.Time, error) {
	parsed, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", value, err)
	}
	return parsed, nil
}

func (s *bookingService) Quote(ctx context.Context, req *request.QuoteRequest) (*response.PriceBreakdownResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Quote validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", req.VehicleID, err)
	}

	pickup, err := parseDateTime(req.PickupDate)
	if err != nil {
		return nil, err
	}
	dropoff, err := parseDateTime(req.DropoffDate)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found", req.VehicleID)
	}

	pct, err := s.loadPercentages(ctx)
	if err != nil {
		s.log.Error("Failed to load pricing percentages", zap.Error(err))
		return nil, fmt.Errorf("load pricing rates: %w", err)
	}

	breakdown, err := ComputePrice(pickup, dropoff, vehicle.PricePerHour, RateTiers{
		Price7Days:  vehicle.Price7Days,
		Price15Days: vehicle.Price15Days,
		Price30Days: vehicle.Price30Days,
	}, pct)
	if err != nil {
		return nil, err
	}

	if breakdown.DurationHours < vehicle.MinBookingHours {
		return nil, fmt.Errorf("invalid duration: minimum booking is %d hours", vehicle.MinBookingHours)
	}

	return breakdownToResponse(breakdown), nil
}

func (s *bookingService) CreateBooking(ctx context.Context, userID string, req *request.CreateBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		return nil, fmt.Errorf("invalid vehicle ID format %s: %w", req.VehicleID, err)
	}

	pickup, err := parseDateTime(req.PickupDate)
	if err != nil {
		return nil, err
	}
	dropoff, err := parseDateTime(req.DropoffDate)
	if err != nil {
		return nil, err
	}

	vehicle, err := s.repo.Vehicle.FindByID(ctx, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	if vehicle == nil {
		return nil, fmt.Errorf("vehicle %s not found", req.VehicleID)
	}

	if !vehicle.IsAvailable || vehicle.Status != entity.VehicleStatusActive {
		return nil, fmt.Errorf("vehicle %s is not available, cannot book", vehicle.Name)
	}

	if pickup.Before(time.Now().Add(-1 * time.Hour)) {
		return nil, fmt.Errorf("invalid pickup date: cannot book in the past")
	}

	pct, err := s.loadPercentages(ctx)
	if err != nil {
		s.log.Error("Failed to load pricing percentages", zap.Error(err))
		return nil, fmt.Errorf("load pricing rates: %w", err)
	}

	breakdown, err := ComputePrice(pickup, dropoff, vehicle.PricePerHour, RateTiers{
		Price7Days:  vehicle.Price7Days,
		Price15Days: vehicle.Price15Days,
		Price30Days: vehicle.Price30Days,
	}, pct)
	if err != nil {
		return nil, err
	}

	if breakdown.DurationHours < vehicle.MinBookingHours {
		return nil, fmt.Errorf("invalid duration: minimum booking is %d hours", vehicle.MinBookingHours)
	}

	now := time.Now()
	booking := &entity.Booking{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		BookingCode:     utils.GenerateBookingCode(),
		UserID:          userUUID,
		VehicleID:       vehicleID,
		StartDate:       pickup,
		EndDate:         dropoff,
		TotalHours:      breakdown.DurationHours,
		TotalPrice:      breakdown.TotalAmount,
		PaidAmount:      0,
		PendingAmount:   breakdown.TotalAmount,
		Status:          entity.BookingStatusPending,
		PaymentStatus:   entity.BookingPaymentPending,
		PickupLocation:  req.PickupLocation,
		DropoffLocation: req.DropoffLocation,
	}

	if err := s.repo.Booking.Create(ctx, booking); err != nil {
		s.log.Error("Failed to create booking",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("vehicle_id", req.VehicleID),
		)
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.log.Info("Booking created",
		zap.String("booking_id", booking.ID.String()),
		zap.String("booking_code", booking.BookingCode),
		zap.String("user_id", userID),
		zap.Int("total_hours", booking.TotalHours),
		zap.Float64("total_price", booking.TotalPrice),
	)

	resp := response.BookingToResponse(booking)
	resp.VehicleName = vehicle.Name
	resp.Pricing = breakdownToResponse(breakdown)
	return &resp, nil
}

func (s *bookingService) GetUserBookings(ctx context.Context, userID string, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID format %s: %w", userID, err)
	}

	bookings, err := s.repo.Booking.FindByUserID(ctx, userUUID, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to get user bookings",
			zap.Error(err),
			zap.String("user_id", userID),
		)
		return nil, fmt.Errorf("get user bookings: %w", err)
	}

	total, err := s.repo.Booking.CountByUserID(ctx, userUUID)
	if err != nil {
		s.log.Error("Failed to count user bookings", zap.Error(err))
		return nil, fmt.Errorf("count user bookings: %w", err)
	}

	return s.buildBookingPage(ctx, bookings, req, total), nil
}

func (s *bookingService) GetBookingByCode(ctx context.Context, code string) (*response.BookingResponse, error) {
	booking, err := s.repo.Booking.FindByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", code)
	}

	resp := response.BookingToResponse(booking)

	vehicle, _ := s.repo.Vehicle.FindByID(ctx, booking.VehicleID)
	if vehicle != nil {
		resp.VehicleName = vehicle.Name
	}

	payments, err := s.repo.Payment.FindByBookingID(ctx, booking.ID)
	if err == nil {
		for _, p := range payments {
			resp.Payments = append(resp.Payments, response.PaymentToResponse(p))
		}
	}

	return &resp, nil
}

func (s *bookingService) ListBookings(ctx context.Context, req *request.PaginatedRequest) (*response.PaginatedResponse[response.BookingResponse], error) {
	bookings, err := s.repo.Booking.FindAll(ctx, req.Limit(), req.Offset())
	if err != nil {
		s.log.Error("Failed to list bookings", zap.Error(err))
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	total, err := s.repo.Booking.CountAll(ctx)
	if err != nil {
		s.log.Error("Failed to count bookings", zap.Error(err))
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	return s.buildBookingPage(ctx, bookings, req, total), nil
}

func (s *bookingService) CancelBooking(ctx context.Context, code string) error {
	booking, err := s.repo.Booking.FindByCode(ctx, code)
	if err != nil {
		return fmt.Errorf("find booking: %w", err)
	}
	if booking == nil {
		return fmt.Errorf("booking %s not found", code)
	}

	if booking.IsTerminal() {
		return fmt.Errorf("booking status is %s, cannot cancel", booking.Status)
	}

	if err := s.repo.Booking.UpdateStatus(ctx, booking.ID, entity.BookingStatusCancelled); err != nil {
		s.log.Error("Failed to cancel booking",
			zap.Error(err),
			zap.String("booking_code", code),
		)
		return fmt.Errorf("cancel booking %s: %w", code, err)
	}

	s.log.Info("Booking cancelled", zap.String("booking_code", code))
	return nil
}

// ValidateExtension checks the extension invariants without touching
// storage: extensions are monotonic and only live bookings qualify.
func ValidateExtension(booking *entity.Booking, newEndDate time.Time) error {
	if booking.IsTerminal() {
		return fmt.Errorf("booking status is %s, cannot extend", booking.Status)
	}
	if !newEndDate.After(booking.EndDate) {
		return fmt.Errorf("invalid extension: new end date must be after current end date")
	}
	return nil
}

func (s *bookingService) ExtendBooking(ctx context.Context, code string, req *request.ExtendBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Extend booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	newEnd, err := parseDateTime(req.NewEndDate)
	if err != nil {
		return nil, err
	}

	if req.Collected && req.AdditionalAmount <= 0 {
		return nil, fmt.Errorf("invalid extension: collected payment requires a positive amount")
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin extension transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.repo.Booking.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", code)
	}

	if err := ValidateExtension(booking, newEnd); err != nil {
		return nil, err
	}

	totalHours, err := DurationHours(booking.StartDate, newEnd)
	if err != nil {
		return nil, err
	}

	// The added amount is due immediately, so a settled booking drops
	// back to partially paid until the balance is collected.
	extendedStatus := DerivePaymentStatus(booking.PaidAmount, booking.PendingAmount+req.AdditionalAmount)

	if err := s.repo.Booking.Extend(ctx, tx, booking.ID, newEnd, totalHours, req.AdditionalAmount, extendedStatus); err != nil {
		return nil, fmt.Errorf("extend booking %s: %w", code, err)
	}

	// When the caller declares the money collected, the financial
	// mutation and its ledger row commit or roll back together.
	if req.Collected {
		method := entity.PaymentMethod(req.PaymentMethod)
		if method == "" {
			method = entity.PaymentMethodCash
		}

		// The extension raised pending by the same amount this payment
		// clears, so the prior pending balance decides the final state.
		status, paymentStatus := NextPaymentState(booking, 0)

		if err := s.repo.Booking.ApplyPayment(ctx, tx, booking.ID, req.AdditionalAmount, status, paymentStatus); err != nil {
			return nil, fmt.Errorf("apply extension payment: %w", err)
		}

		payment := &entity.Payment{
			BaseSimple: entity.BaseSimple{
				ID:        uuid.New(),
				CreatedAt: time.Now(),
			},
			BookingID: booking.ID,
			Amount:    req.AdditionalAmount,
			Status:    entity.PaymentStatusCompleted,
			Method:    method,
			Reference: utils.GeneratePaymentReference(string(method)),
		}

		if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
			return nil, fmt.Errorf("record extension payment: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit extension: %w", err)
	}

	s.log.Info("Booking extended",
		zap.String("booking_code", code),
		zap.Time("new_end_date", newEnd),
		zap.Float64("additional_amount", req.AdditionalAmount),
		zap.Bool("collected", req.Collected),
	)

	return s.GetBookingByCode(ctx, code)
}

func (s *bookingService) CollectPayment(ctx context.Context, code string, req *request.CollectPaymentRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Collect payment validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = entity.PaymentMethodCash
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin collection transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.repo.Booking.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", code)
	}

	if booking.PendingAmount <= 0 {
		return nil, fmt.Errorf("booking %s has no pending payment, cannot collect", code)
	}

	amount := req.Amount
	if amount == 0 {
		amount = booking.PendingAmount
	}
	if amount < 0 {
		return nil, fmt.Errorf("invalid amount: must be positive")
	}
	if amount > booking.PendingAmount {
		return nil, fmt.Errorf("invalid amount: collection cannot exceed pending amount %.2f", booking.PendingAmount)
	}

	status, paymentStatus := NextPaymentState(booking, amount)

	if err := s.repo.Booking.ApplyPayment(ctx, tx, booking.ID, amount, status, paymentStatus); err != nil {
		return nil, fmt.Errorf("apply collected payment: %w", err)
	}

	reference := utils.GeneratePaymentReference(string(method))
	if req.PaymentReference != nil && *req.PaymentReference != "" {
		reference = *req.PaymentReference
	}

	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID: booking.ID,
		Amount:    amount,
		Status:    entity.PaymentStatusCompleted,
		Method:    method,
		Reference: reference,
	}

	if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("record collected payment: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit collection: %w", err)
	}

	s.log.Info("Payment collected",
		zap.String("booking_code", code),
		zap.Float64("amount", amount),
		zap.String("method", string(method)),
		zap.String("payment_status", string(paymentStatus)),
	)

	return s.GetBookingByCode(ctx, code)
}

func (s *bookingService) RefundBooking(ctx context.Context, code string, req *request.RefundBookingRequest) (*response.BookingResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Refund booking validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	method := entity.PaymentMethod(req.PaymentMethod)
	if method == "" {
		method = entity.PaymentMethodCash
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin refund transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	booking, err := s.repo.Booking.FindByCodeForUpdate(ctx, tx, code)
	if err != nil {
		return nil, fmt.Errorf("lock booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("booking %s not found", code)
	}

	if booking.PaymentStatus == entity.BookingPaymentRefunded {
		return nil, fmt.Errorf("booking %s is already refunded, cannot refund again", code)
	}
	if booking.PaidAmount <= 0 {
		return nil, fmt.Errorf("booking %s has no collected payment, cannot refund", code)
	}

	amount := req.Amount
	if amount == 0 {
		amount = booking.PaidAmount
	}
	if amount > booking.PaidAmount {
		return nil, fmt.Errorf("invalid amount: refund cannot exceed paid amount %.2f", booking.PaidAmount)
	}

	// A refunded booking that was still in flight is cancelled; a
	// completed one keeps its status and only the money moves back.
	status := booking.Status
	if !booking.IsTerminal() {
		status = entity.BookingStatusCancelled
	}

	if err := s.repo.Booking.ApplyRefund(ctx, tx, booking.ID, amount, status, entity.BookingPaymentRefunded); err != nil {
		return nil, fmt.Errorf("apply refund: %w", err)
	}

	// Refund ledger rows carry negative amounts so the daily cash
	// flow can sum them straight into the closing balance.
	payment := &entity.Payment{
		BaseSimple: entity.BaseSimple{
			ID:        uuid.New(),
			CreatedAt: time.Now(),
		},
		BookingID: booking.ID,
		Amount:    -amount,
		Status:    entity.PaymentStatusRefunded,
		Method:    method,
		Reference: utils.GeneratePaymentReference(string(method)),
	}

	if err := s.repo.Payment.Create(ctx, tx, payment); err != nil {
		return nil, fmt.Errorf("record refund: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit refund: %w", err)
	}

	s.log.Info("Booking refunded",
		zap.String("booking_code", code),
		zap.Float64("amount", amount),
		zap.String("method", string(method)),
	)

	return s.GetBookingByCode(ctx, code)
}

// ==================== HELPERS ====================

func (s *bookingService) buildBookingPage(ctx context.Context, bookings []*entity.Booking, req *request.PaginatedRequest, total int64) *response.PaginatedResponse[response.BookingResponse] {
	items := make([]response.BookingResponse, len(bookings))
	for i, booking := range bookings {
		resp := response.BookingToResponse(booking)
		vehicle, _ := s.repo.Vehicle.FindByID(ctx, booking.VehicleID)
		if vehicle != nil {
			resp.VehicleName = vehicle.Name
		}
		items[i] = resp
	}

	return response.NewPaginatedResponse(items, req.Page, req.PerPage, total)
}

func breakdownToResponse(b PriceBreakdown) *response.PriceBreakdownResponse {
	return &response.PriceBreakdownResponse{
		DurationHours:  b.DurationHours,
		BasePrice:      b.BasePrice,
		GST:            b.GST,
		ServiceFee:     b.ServiceFee,
		TotalAmount:    b.TotalAmount,
		AdvancePayment: b.AdvancePayment,
	}
}

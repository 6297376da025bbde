package usecase

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/internal/dto/request"
	"onnrides/internal/dto/response"
	"onnrides/pkg/cache"
	"onnrides/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FinanceService interface {
	DailySummary(ctx context.Context, date string) (*response.DailySummaryResponse, error)
	Reconcile(ctx context.Context, req *request.ReconcileRequest) (*response.DailySummaryResponse, error)
	GetSettings(ctx context.Context) ([]response.SettingResponse, error)
	UpdateSetting(ctx context.Context, key string, req *request.UpdateSettingRequest) error
}

type financeService struct {
	repo  *repository.Repository
	cache *cache.Cache
	log   *zap.Logger
}

func NewFinanceService(repo *repository.Repository, c *cache.Cache, log *zap.Logger) FinanceService {
	return &financeService{
		repo:  repo,
		cache: c,
		log:   log.With(zap.String("service", "finance")),
	}
}

const settingCacheTTL = 5 * time.Minute

func settingCacheKey(key string) string {
	return "setting:" + key
}

// cachedNumericSetting reads a numeric setting through the cache, with
// the settings table behind it and the config default behind that.
func cachedNumericSetting(ctx context.Context, c *cache.Cache, repo repository.SettingRepository, key string, fallback float64) (float64, error) {
	var value float64
	if err := c.GetJSON(ctx, settingCacheKey(key), &value); err == nil {
		return value, nil
	}

	value, err := repo.GetNumeric(ctx, key, fallback)
	if err != nil {
		return 0, err
	}

	c.SetJSON(ctx, settingCacheKey(key), value, settingCacheTTL)
	return value, nil
}

// buildCashFlow computes the day's cash flow from the payment ledger.
// The opening balance is the closing balance of the most recent
// reconciled day before the requested date, zero when none exists.
func (s *financeService) buildCashFlow(ctx context.Context, date time.Time) (*response.CashFlowResponse, error) {
	opening := 0.0
	previous, err := s.repo.Reconciliation.FindLatestBefore(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("find previous reconciliation: %w", err)
	}
	if previous != nil {
		opening = previous.ClosingBalance
	}

	sums, err := s.repo.Payment.SumByMethodForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("sum collections: %w", err)
	}

	refunds, err := s.repo.Payment.SumRefundsForDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("sum refunds: %w", err)
	}

	flow := &response.CashFlowResponse{
		OpeningBalance:  opening,
		CashCollections: sums[entity.PaymentMethodCash],
		CardCollections: sums[entity.PaymentMethodCard],
		UPICollections:  sums[entity.PaymentMethodUPI] + sums[entity.PaymentMethodOnline],
		BankCollections: sums[entity.PaymentMethodBankTransfer],
		TotalRefunds:    refunds,
	}
	flow.TotalCollections = flow.CashCollections + flow.CardCollections + flow.UPICollections + flow.BankCollections
	// Refund rows carry negative amounts, so TotalRefunds is already
	// negative and adding it shrinks the closing balance.
	flow.ClosingBalance = flow.OpeningBalance + flow.TotalCollections + flow.TotalRefunds

	return flow, nil
}

func (s *financeService) DailySummary(ctx context.Context, date string) (*response.DailySummaryResponse, error) {
	// An empty or malformed date falls back to today.
	day := utils.ParseDate(date)

	flow, err := s.buildCashFlow(ctx, day)
	if err != nil {
		s.log.Error("Failed to build cash flow", zap.Error(err), zap.String("date", date))
		return nil, err
	}

	transactions, err := s.repo.Payment.ListForDate(ctx, day)
	if err != nil {
		s.log.Error("Failed to list daily transactions", zap.Error(err), zap.String("date", date))
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	resp := &response.DailySummaryResponse{
		Date:         day.Format("2006-01-02"),
		CashFlow:     *flow,
		Transactions: make([]response.TransactionResponse, len(transactions)),
	}
	for i, t := range transactions {
		resp.Transactions[i] = response.TransactionResponse{
			PaymentID:    t.PaymentID.String(),
			BookingCode:  t.BookingCode,
			CustomerName: t.CustomerName,
			Amount:       t.Amount,
			Method:       string(t.Method),
			Type:         t.Type,
			Timestamp:    t.Timestamp,
		}
	}

	return resp, nil
}

func (s *financeService) Reconcile(ctx context.Context, req *request.ReconcileRequest) (*response.DailySummaryResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Reconcile validation failed", zap.Any("errors", errs))
		return nil, fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %s: expected YYYY-MM-DD", req.Date)
	}

	if day.After(time.Now()) {
		return nil, fmt.Errorf("invalid date: cannot reconcile a future day")
	}

	flow, err := s.buildCashFlow(ctx, day)
	if err != nil {
		s.log.Error("Failed to build cash flow for reconcile", zap.Error(err), zap.String("date", req.Date))
		return nil, err
	}

	now := time.Now()
	rec := &entity.DailyReconciliation{
		Base: entity.Base{
			ID:        uuid.New(),
			CreatedAt: now,
			UpdatedAt: now,
		},
		Date:            day,
		OpeningBalance:  flow.OpeningBalance,
		CashCollections: flow.CashCollections,
		CardCollections: flow.CardCollections,
		UPICollections:  flow.UPICollections,
		BankCollections: flow.BankCollections,
		TotalRefunds:    flow.TotalRefunds,
		ClosingBalance:  flow.ClosingBalance,
		Notes:           req.Notes,
	}

	if err := s.repo.Reconciliation.Upsert(ctx, rec); err != nil {
		s.log.Error("Failed to persist reconciliation", zap.Error(err), zap.String("date", req.Date))
		return nil, fmt.Errorf("persist reconciliation: %w", err)
	}

	s.log.Info("Day reconciled",
		zap.String("date", req.Date),
		zap.Float64("closing_balance", flow.ClosingBalance),
	)

	return s.DailySummary(ctx, req.Date)
}

func (s *financeService) GetSettings(ctx context.Context) ([]response.SettingResponse, error) {
	keys := []string{
		entity.SettingGSTPercentage,
		entity.SettingServiceFeePercentage,
		entity.SettingAdvancePercentage,
	}

	settings := make([]response.SettingResponse, 0, len(keys))
	for _, key := range keys {
		setting, err := s.repo.Setting.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get setting %s: %w", key, err)
		}
		if setting == nil {
			continue
		}
		settings = append(settings, response.SettingResponse{Key: setting.Key, Value: setting.Value})
	}

	return settings, nil
}

func (s *financeService) UpdateSetting(ctx context.Context, key string, req *request.UpdateSettingRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	switch key {
	case entity.SettingGSTPercentage, entity.SettingServiceFeePercentage, entity.SettingAdvancePercentage:
	default:
		return fmt.Errorf("setting %s not found", key)
	}

	if _, err := strconv.ParseFloat(req.Value, 64); err != nil {
		return fmt.Errorf("invalid value %s: must be numeric", req.Value)
	}

	if err := s.repo.Setting.Upsert(ctx, key, req.Value); err != nil {
		s.log.Error("Failed to update setting", zap.Error(err), zap.String("key", key))
		return fmt.Errorf("update setting %s: %w", key, err)
	}

	s.cache.Delete(ctx, settingCacheKey(key))
	s.log.Info("Setting updated", zap.String("key", key), zap.String("value", req.Value))
	return nil
}

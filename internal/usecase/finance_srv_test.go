package usecase

import (
	"context"
	"testing"

	"onnrides/internal/data/entity"
	"onnrides/internal/data/repository"
	"onnrides/internal/dto/request"

	"go.uber.org/zap"
)

func newFinanceFixture(payment *fakePaymentRepo, recon *fakeReconciliationRepo, setting *fakeSettingRepo) FinanceService {
	if setting == nil {
		setting = &fakeSettingRepo{}
	}
	repo := &repository.Repository{
		Payment:        payment,
		Setting:        setting,
		Reconciliation: recon,
	}
	return NewFinanceService(repo, nil, zap.NewNop())
}

func TestDailySummaryClosingBalance(t *testing.T) {
	tests := []struct {
		name        string
		opening     *entity.DailyReconciliation
		sums        map[entity.PaymentMethod]float64
		refunds     float64
		wantOpening float64
		wantTotal   float64
		wantClosing float64
	}{
		{
			name:        "refunds shrink the closing balance",
			sums:        map[entity.PaymentMethod]float64{entity.PaymentMethodCash: 600, entity.PaymentMethodUPI: 400},
			refunds:     -500,
			wantOpening: 0,
			wantTotal:   1000,
			wantClosing: 500,
		},
		{
			name:        "opening balance carries forward",
			opening:     &entity.DailyReconciliation{ClosingBalance: 200},
			sums:        map[entity.PaymentMethod]float64{entity.PaymentMethodCard: 1000},
			refunds:     -500,
			wantOpening: 200,
			wantTotal:   1000,
			wantClosing: 700,
		},
		{
			name:        "no refunds",
			sums:        map[entity.PaymentMethod]float64{entity.PaymentMethodCash: 1000},
			wantOpening: 0,
			wantTotal:   1000,
			wantClosing: 1000,
		},
		{
			name:        "refunds only",
			refunds:     -250,
			wantOpening: 0,
			wantTotal:   0,
			wantClosing: -250,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newFinanceFixture(
				&fakePaymentRepo{sums: tt.sums, refunds: tt.refunds},
				&fakeReconciliationRepo{previous: tt.opening},
				nil,
			)

			resp, err := svc.DailySummary(context.Background(), "2026-08-15")
			if err != nil {
				t.Fatalf("DailySummary() error = %v", err)
			}

			flow := resp.CashFlow
			if flow.OpeningBalance != tt.wantOpening {
				t.Errorf("OpeningBalance = %v, want %v", flow.OpeningBalance, tt.wantOpening)
			}
			if flow.TotalCollections != tt.wantTotal {
				t.Errorf("TotalCollections = %v, want %v", flow.TotalCollections, tt.wantTotal)
			}
			if flow.ClosingBalance != tt.wantClosing {
				t.Errorf("ClosingBalance = %v, want %v", flow.ClosingBalance, tt.wantClosing)
			}
		})
	}
}

func TestDailySummaryMergesOnlineIntoUPI(t *testing.T) {
	svc := newFinanceFixture(
		&fakePaymentRepo{sums: map[entity.PaymentMethod]float64{
			entity.PaymentMethodUPI:    300,
			entity.PaymentMethodOnline: 200,
		}},
		&fakeReconciliationRepo{},
		nil,
	)

	resp, err := svc.DailySummary(context.Background(), "2026-08-15")
	if err != nil {
		t.Fatalf("DailySummary() error = %v", err)
	}
	if resp.CashFlow.UPICollections != 500 {
		t.Errorf("UPICollections = %v, want 500", resp.CashFlow.UPICollections)
	}
}

func TestReconcilePersistsClosingBalance(t *testing.T) {
	recon := &fakeReconciliationRepo{}
	svc := newFinanceFixture(
		&fakePaymentRepo{
			sums:    map[entity.PaymentMethod]float64{entity.PaymentMethodCash: 1000},
			refunds: -500,
		},
		recon,
		nil,
	)

	resp, err := svc.Reconcile(context.Background(), &request.ReconcileRequest{Date: "2026-08-15"})
	if err != nil {
		t.Fatalf("Reconcile() error = %v", err)
	}

	if recon.upserted == nil {
		t.Fatal("Reconcile() persisted nothing")
	}
	if recon.upserted.ClosingBalance != 500 {
		t.Errorf("persisted ClosingBalance = %v, want 500", recon.upserted.ClosingBalance)
	}
	if recon.upserted.TotalRefunds != -500 {
		t.Errorf("persisted TotalRefunds = %v, want -500", recon.upserted.TotalRefunds)
	}
	if resp.Date != "2026-08-15" {
		t.Errorf("Date = %s, want 2026-08-15", resp.Date)
	}
}

func TestReconcileRejectsBadDates(t *testing.T) {
	svc := newFinanceFixture(&fakePaymentRepo{}, &fakeReconciliationRepo{}, nil)

	for _, date := range []string{"15-08-2026", "2999-01-01"} {
		if _, err := svc.Reconcile(context.Background(), &request.ReconcileRequest{Date: date}); err == nil {
			t.Errorf("Reconcile(%q) expected error, got nil", date)
		}
	}
}

func TestUpdateSetting(t *testing.T) {
	setting := &fakeSettingRepo{}
	svc := newFinanceFixture(&fakePaymentRepo{}, &fakeReconciliationRepo{}, setting)

	if err := svc.UpdateSetting(context.Background(), entity.SettingGSTPercentage, &request.UpdateSettingRequest{Value: "12.5"}); err != nil {
		t.Fatalf("UpdateSetting() error = %v", err)
	}
	if got := setting.upserted[entity.SettingGSTPercentage]; got != "12.5" {
		t.Errorf("upserted value = %q, want %q", got, "12.5")
	}

	if err := svc.UpdateSetting(context.Background(), "unknown_key", &request.UpdateSettingRequest{Value: "1"}); err == nil {
		t.Error("UpdateSetting() with unknown key expected error, got nil")
	}
	if err := svc.UpdateSetting(context.Background(), entity.SettingGSTPercentage, &request.UpdateSettingRequest{Value: "abc"}); err == nil {
		t.Error("UpdateSetting() with non-numeric value expected error, got nil")
	}
}

func TestCachedNumericSetting(t *testing.T) {
	setting := &fakeSettingRepo{values: map[string]float64{entity.SettingGSTPercentage: 18}}

	// A nil cache behaves as a permanent miss, so every read lands on
	// the settings table and its fallback.
	got, err := cachedNumericSetting(context.Background(), nil, setting, entity.SettingGSTPercentage, 5)
	if err != nil {
		t.Fatalf("cachedNumericSetting() error = %v", err)
	}
	if got != 18 {
		t.Errorf("cachedNumericSetting() = %v, want 18", got)
	}

	got, err = cachedNumericSetting(context.Background(), nil, setting, entity.SettingAdvancePercentage, 5)
	if err != nil {
		t.Fatalf("cachedNumericSetting() error = %v", err)
	}
	if got != 5 {
		t.Errorf("cachedNumericSetting() fallback = %v, want 5", got)
	}
}

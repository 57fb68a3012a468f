package analytics_test

import (
	"math"
	"testing"
	"time"

	"github.com/username/tradefolio/backend/src/analytics"
	"github.com/username/tradefolio/backend/src/models"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculatePNLAndROIWithNoSells(t *testing.T) {
	trade := models.Trade{
		ID:              "t1",
		CurrencyName:    "BTC",
		Price:           10,
		Amount:          10,
		USDTUsed:        100,
		Timestamp:       time.Now(),
		Sells:           nil,
		RemainingAmount: 10,
	}

	if pnl := analytics.CalculatePNL(trade); pnl != 0 {
		t.Errorf("expected PNL 0 for trade with no sells, got %f", pnl)
	}
	if roi := analytics.CalculateROI(trade); roi != 0 {
		t.Errorf("expected ROI 0 for trade with no sells, got %f", roi)
	}
}

func TestCalculatePNLFullySoldAtCost(t *testing.T) {
	trade := models.Trade{
		ID:       "t1",
		Amount:   10,
		USDTUsed: 100,
		Sells: []models.SellRecord{
			{ID: "s1", SellPrice: 10, SoldAmount: 10, USDTReceived: 100, Timestamp: time.Now()},
		},
		RemainingAmount: 0,
	}

	if pnl := analytics.CalculatePNL(trade); pnl != 0 {
		t.Errorf("expected PNL 0 when fully sold at cost, got %f", pnl)
	}
}

func TestCalculateROIGuardedWhenNothingSold(t *testing.T) {
	// The zero-cost-basis guard must return a literal 0 no matter how large
	// the invested amount is.
	trade := models.Trade{
		ID:              "t1",
		Price:           50000,
		Amount:          2,
		USDTUsed:        100000,
		RemainingAmount: 2,
	}
	if roi := analytics.CalculateROI(trade); roi != 0 {
		t.Errorf("expected ROI exactly 0, got %f", roi)
	}
}

func TestPartialSellScenario(t *testing.T) {
	tradeA := models.Trade{
		ID:       "a",
		Amount:   10,
		USDTUsed: 100,
		Sells: []models.SellRecord{
			{ID: "s1", SellPrice: 12, SoldAmount: 5, USDTReceived: 60, Timestamp: time.Now()},
		},
		RemainingAmount: 5,
	}
	tradeB := models.Trade{
		ID:              "b",
		Amount:          20,
		USDTUsed:        400,
		RemainingAmount: 20,
	}

	if pnl := analytics.CalculatePNL(tradeA); pnl != 10 {
		t.Errorf("expected PNL(A) == 10, got %f", pnl)
	}
	if roi := analytics.CalculateROI(tradeA); roi != 20 {
		t.Errorf("expected ROI(A) == 20, got %f", roi)
	}
	if pnl := analytics.CalculatePNL(tradeB); pnl != 0 {
		t.Errorf("expected PNL(B) == 0, got %f", pnl)
	}
	if roi := analytics.CalculateROI(tradeB); roi != 0 {
		t.Errorf("expected ROI(B) == 0, got %f", roi)
	}

	trades := []models.Trade{tradeA, tradeB}
	if total := analytics.CalculateTotalPNL(trades); total != 10 {
		t.Errorf("expected total PNL == 10, got %f", total)
	}
	if total := analytics.CalculateTotalROI(trades); total != 2 {
		t.Errorf("expected total ROI == 2, got %f", total)
	}
}

func TestCalculateTotalROIWithNothingInvested(t *testing.T) {
	if total := analytics.CalculateTotalROI(nil); total != 0 {
		t.Errorf("expected total ROI 0 for empty input, got %f", total)
	}
}

func TestZeroAmountTradePropagatesNonFiniteValues(t *testing.T) {
	// An amount of zero is not guarded anywhere in the PNL path; the IEEE-754
	// result must come back instead of a crash or a silent zero.
	noSells := models.Trade{ID: "z1", Amount: 0, USDTUsed: 100}
	if pnl := analytics.CalculatePNL(noSells); !math.IsNaN(pnl) {
		t.Errorf("expected NaN PNL for zero-amount trade with no sells, got %f", pnl)
	}

	withSell := models.Trade{
		ID:       "z2",
		Amount:   0,
		USDTUsed: 100,
		Sells: []models.SellRecord{
			{ID: "s1", SellPrice: 12, SoldAmount: 5, USDTReceived: 60, Timestamp: time.Now()},
		},
	}
	if pnl := analytics.CalculatePNL(withSell); !math.IsInf(pnl, -1) {
		t.Errorf("expected -Inf PNL for zero-amount trade with a sell, got %f", pnl)
	}
}

func TestGetTradeAnalytics(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	opened := now.Add(-10 * 24 * time.Hour)
	trade := models.Trade{
		ID:           "t1",
		Name:         "BTC dip buy",
		CurrencyName: "BTC",
		Price:        20,
		Amount:       10,
		USDTUsed:     200,
		Timestamp:    opened,
		Sells: []models.SellRecord{
			{ID: "s1", SellPrice: 25, SoldAmount: 2, USDTReceived: 50, Timestamp: opened.Add(24 * time.Hour)},
			{ID: "s2", SellPrice: 30, SoldAmount: 2, USDTReceived: 60, Timestamp: opened.Add(48 * time.Hour)},
		},
		RemainingAmount: 6,
	}

	result := analytics.GetTradeAnalytics(trade, now)

	if result.TotalInvested != 200 {
		t.Errorf("expected total invested 200, got %f", result.TotalInvested)
	}
	if result.TotalReceived != 110 {
		t.Errorf("expected total received 110, got %f", result.TotalReceived)
	}
	// Sold cost basis is (4/10)*200 = 80.
	if result.NetPnL != 30 {
		t.Errorf("expected net PnL 30, got %f", result.NetPnL)
	}
	if !almostEqual(result.ROI, 37.5) {
		t.Errorf("expected ROI 37.5, got %f", result.ROI)
	}
	if !almostEqual(result.AverageSellPrice, 27.5) {
		t.Errorf("expected average sell price 27.5, got %f", result.AverageSellPrice)
	}
	if !almostEqual(result.SoldPercentage, 40) {
		t.Errorf("expected sold percentage 40, got %f", result.SoldPercentage)
	}
	if result.BestSell == nil || result.BestSell.ID != "s2" {
		t.Errorf("expected best sell s2, got %+v", result.BestSell)
	}
	if result.WorstSell == nil || result.WorstSell.ID != "s1" {
		t.Errorf("expected worst sell s1, got %+v", result.WorstSell)
	}
	if result.DaysHeld != 10 {
		t.Errorf("expected 10 days held, got %d", result.DaysHeld)
	}
	if result.NumberOfSells != 2 {
		t.Errorf("expected 2 sells, got %d", result.NumberOfSells)
	}
	if result.RemainingCostBasis != 120 {
		t.Errorf("expected remaining cost basis 120, got %f", result.RemainingCostBasis)
	}
	if result.Status != "Active" {
		t.Errorf("expected status Active, got %s", result.Status)
	}
}

func TestGetTradeAnalyticsTiesAndStatus(t *testing.T) {
	now := time.Now()
	trade := models.Trade{
		ID:        "t1",
		Amount:    4,
		USDTUsed:  40,
		Timestamp: now.Add(-48 * time.Hour),
		Sells: []models.SellRecord{
			{ID: "first", SellPrice: 11, SoldAmount: 2, USDTReceived: 22, Timestamp: now.Add(-24 * time.Hour)},
			{ID: "second", SellPrice: 11, SoldAmount: 2, USDTReceived: 22, Timestamp: now.Add(-12 * time.Hour)},
		},
		RemainingAmount: 0,
	}

	result := analytics.GetTradeAnalytics(trade, now)

	// On equal sell prices the earlier record wins both slots.
	if result.BestSell == nil || result.BestSell.ID != "first" {
		t.Errorf("expected tie on best sell to keep the first record, got %+v", result.BestSell)
	}
	if result.WorstSell == nil || result.WorstSell.ID != "first" {
		t.Errorf("expected tie on worst sell to keep the first record, got %+v", result.WorstSell)
	}
	if result.Status != "Completed" {
		t.Errorf("expected status Completed for fully sold trade, got %s", result.Status)
	}
}

package analytics_test

import (
	"testing"
	"time"

	"github.com/username/tradefolio/backend/src/analytics"
	"github.com/username/tradefolio/backend/src/models"
)

func tradeAt(id string, ts time.Time) models.Trade {
	return models.Trade{
		ID:              id,
		CurrencyName:    "BTC",
		Price:           10,
		Amount:          1,
		USDTUsed:        10,
		Timestamp:       ts,
		RemainingAmount: 1,
	}
}

func TestFilterTradesLifetimeReturnsInputUnchanged(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("t1", now.Add(-100*24*time.Hour)),
		tradeAt("t2", now.Add(-1*time.Hour)),
		tradeAt("t3", now),
	}

	result := analytics.FilterTrades(trades, models.FilterLifetime, models.DateRange{}, now)
	if len(result) != len(trades) {
		t.Fatalf("expected %d trades, got %d", len(trades), len(result))
	}
	for i := range trades {
		if result[i].ID != trades[i].ID {
			t.Errorf("expected trade %s at position %d, got %s", trades[i].ID, i, result[i].ID)
		}
	}

	// An unknown filter value falls back to lifetime behavior.
	result = analytics.FilterTrades(trades, models.TimeFilter("bogus"), models.DateRange{}, now)
	if len(result) != len(trades) {
		t.Errorf("expected unknown filter to behave like lifetime, got %d trades", len(result))
	}

	if empty := analytics.FilterTrades(nil, models.FilterLifetime, models.DateRange{}, now); len(empty) != 0 {
		t.Errorf("expected empty result for empty input, got %d", len(empty))
	}
}

func TestFilterTradesCustomBoundsInclusive(t *testing.T) {
	now := time.Now()
	boundary := time.Date(2024, 5, 1, 15, 30, 0, 0, time.UTC)
	trades := []models.Trade{
		tradeAt("before", boundary.Add(-time.Second)),
		tradeAt("exact", boundary),
		tradeAt("after", boundary.Add(time.Second)),
	}

	customRange := models.DateRange{Start: boundary, End: boundary}
	result := analytics.FilterTrades(trades, models.FilterCustom, customRange, now)
	if len(result) != 1 || result[0].ID != "exact" {
		t.Fatalf("expected exactly the boundary trade, got %+v", result)
	}

	customRange = models.DateRange{Start: boundary.Add(-time.Second), End: boundary.Add(time.Second)}
	result = analytics.FilterTrades(trades, models.FilterCustom, customRange, now)
	if len(result) != 3 {
		t.Errorf("expected all three trades inside inclusive range, got %d", len(result))
	}
}

func TestFilterTradesRollingWindows(t *testing.T) {
	now := time.Now()
	trades := []models.Trade{
		tradeAt("recent", now.Add(-6*24*time.Hour)),
		tradeAt("old", now.Add(-8*24*time.Hour)),
		tradeAt("ancient", now.Add(-31*24*time.Hour)),
	}

	result := analytics.FilterTrades(trades, models.Filter7D, models.DateRange{}, now)
	if len(result) != 1 || result[0].ID != "recent" {
		t.Fatalf("expected only the trade within 7 days, got %+v", result)
	}

	result = analytics.FilterTrades(trades, models.Filter30D, models.DateRange{}, now)
	if len(result) != 2 {
		t.Errorf("expected two trades within 30 days, got %d", len(result))
	}
}

func TestFilterTradesToday(t *testing.T) {
	now := time.Date(2024, 5, 10, 14, 0, 0, 0, time.Local)
	trades := []models.Trade{
		tradeAt("thisMorning", time.Date(2024, 5, 10, 0, 0, 0, 0, time.Local)),
		tradeAt("yesterday", time.Date(2024, 5, 9, 23, 59, 59, 0, time.Local)),
	}

	result := analytics.FilterTrades(trades, models.FilterToday, models.DateRange{}, now)
	if len(result) != 1 || result[0].ID != "thisMorning" {
		t.Fatalf("expected only today's trade (midnight inclusive), got %+v", result)
	}
}

func TestFilterTradesKeepsAllSellsOfRetainedTrades(t *testing.T) {
	now := time.Now()
	trade := tradeAt("t1", now.Add(-time.Hour))
	trade.Sells = []models.SellRecord{
		{ID: "oldSell", SellPrice: 12, SoldAmount: 0.5, USDTReceived: 6, Timestamp: now.Add(-90 * 24 * time.Hour)},
	}
	trade.RemainingAmount = 0.5

	result := analytics.FilterTrades([]models.Trade{trade}, models.Filter7D, models.DateRange{}, now)
	if len(result) != 1 {
		t.Fatalf("expected trade to pass the filter, got %d", len(result))
	}
	if len(result[0].Sells) != 1 {
		t.Errorf("sell history of a retained trade must not be filtered, got %d sells", len(result[0].Sells))
	}
}

package services_test

import (
	"testing"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/tradefolio/backend/src/logger"
	"github.com/username/tradefolio/backend/src/models"
	"github.com/username/tradefolio/backend/src/services"
	"github.com/username/tradefolio/backend/src/store"
)

func newAnalyticsService(t *testing.T) (*services.AnalyticsService, *store.TradeStore) {
	t.Helper()
	logger.InitLogger("error")
	s := store.NewTradeStore()
	return services.NewAnalyticsService(s, cache.New(5*time.Minute, 10*time.Minute)), s
}

func TestSummary(t *testing.T) {
	svc, tradeStore := newAnalyticsService(t)
	trade := tradeStore.CreateTrade(1, store.TradeInput{Name: "BTC buy", CurrencyName: "BTC", Price: 10, Amount: 10, USDTUsed: 100})
	if _, err := tradeStore.AddSell(1, trade.ID, store.SellInput{SellPrice: 12, SoldAmount: 5, USDTReceived: 60}); err != nil {
		t.Fatalf("failed to add sell: %v", err)
	}

	summary := svc.Summary(1, models.FilterLifetime, models.DateRange{}, time.Now())
	if summary.TotalTrades != 1 {
		t.Errorf("expected 1 trade, got %d", summary.TotalTrades)
	}
	// cost basis of the sold half is 50
	if summary.TotalPNL != 10 {
		t.Errorf("expected total PnL 10, got %f", summary.TotalPNL)
	}
	if summary.TotalROI != 10 {
		t.Errorf("expected total ROI 10, got %f", summary.TotalROI)
	}
}

func TestDeepResultCachedUntilInvalidated(t *testing.T) {
	svc, tradeStore := newAnalyticsService(t)
	trade := tradeStore.CreateTrade(1, store.TradeInput{Name: "BTC buy", CurrencyName: "BTC", Price: 10, Amount: 10, USDTUsed: 100})
	if _, err := tradeStore.AddSell(1, trade.ID, store.SellInput{SellPrice: 12, SoldAmount: 5, USDTReceived: 60}); err != nil {
		t.Fatalf("failed to add sell: %v", err)
	}

	first := svc.Deep(1)
	if first.NetPnL != 60-100 {
		t.Errorf("expected net PnL -40, got %f", first.NetPnL)
	}

	// A second mutation without invalidation is not reflected yet.
	if _, err := tradeStore.AddSell(1, trade.ID, store.SellInput{SellPrice: 12, SoldAmount: 5, USDTReceived: 60}); err != nil {
		t.Fatalf("failed to add sell: %v", err)
	}
	if stale := svc.Deep(1); stale.NetPnL != first.NetPnL {
		t.Errorf("expected cached result before invalidation, got %f", stale.NetPnL)
	}

	svc.InvalidateUserCache(1)
	fresh := svc.Deep(1)
	if fresh.NetPnL != 120-100 {
		t.Errorf("expected net PnL 20 after invalidation, got %f", fresh.NetPnL)
	}
}

func TestDailyAndCumulativeCachedPerUser(t *testing.T) {
	svc, tradeStore := newAnalyticsService(t)
	trade := tradeStore.CreateTrade(1, store.TradeInput{Name: "BTC buy", CurrencyName: "BTC", Price: 10, Amount: 10, USDTUsed: 100})
	if _, err := tradeStore.AddSell(1, trade.ID, store.SellInput{SellPrice: 12, SoldAmount: 5, USDTReceived: 60}); err != nil {
		t.Fatalf("failed to add sell: %v", err)
	}

	daily := svc.Daily(1)
	if len(daily) == 0 {
		t.Fatal("expected at least one daily bucket")
	}
	cumulative := svc.Cumulative(1)
	if len(cumulative.Data) == 0 || cumulative.Data[len(cumulative.Data)-1] != 10 {
		t.Errorf("expected cumulative series ending at 10, got %v", cumulative.Data)
	}

	// Another user's cache entries are independent.
	if other := svc.Daily(2); len(other) != 0 {
		t.Errorf("expected empty series for another user, got %v", other)
	}
}

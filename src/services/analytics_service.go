package services

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/username/tradefolio/backend/src/analytics"
	"github.com/username/tradefolio/backend/src/logger"
	"github.com/username/tradefolio/backend/src/models"
	"github.com/username/tradefolio/backend/src/store"
)

// Cache keys for the full-portfolio results. Time-filtered and per-trade
// views depend on the evaluation instant and are always computed fresh.
const (
	ckDeepAnalytics  = "analytics:deep:%d"
	ckDailyData      = "analytics:daily:%d"
	ckCumulativeData = "analytics:cumulative:%d"
)

// PortfolioSummary is the headline view over a (possibly time-filtered)
// trade list.
type PortfolioSummary struct {
	TotalTrades int     `json:"totalTrades"`
	TotalPNL    float64 `json:"totalPnl"`
	TotalROI    float64 `json:"totalRoi"`
}

// AnalyticsService answers analytics queries over the trade store, caching
// the portfolio-wide results until the next trade mutation.
type AnalyticsService struct {
	tradeStore  *store.TradeStore
	resultCache *cache.Cache
}

func NewAnalyticsService(tradeStore *store.TradeStore, resultCache *cache.Cache) *AnalyticsService {
	return &AnalyticsService{
		tradeStore:  tradeStore,
		resultCache: resultCache,
	}
}

// InvalidateUserCache clears all cached analytics for a user. Called after
// every trade or sell mutation.
func (s *AnalyticsService) InvalidateUserCache(userID int64) {
	keys := []string{
		fmt.Sprintf(ckDeepAnalytics, userID),
		fmt.Sprintf(ckDailyData, userID),
		fmt.Sprintf(ckCumulativeData, userID),
	}
	for _, key := range keys {
		s.resultCache.Delete(key)
	}
	logger.L.Debug("Invalidated analytics caches for user", "userID", userID)
}

// Summary computes totals over the trades opened in the selected window.
func (s *AnalyticsService) Summary(userID int64, filter models.TimeFilter, customRange models.DateRange, now time.Time) PortfolioSummary {
	trades := analytics.FilterTrades(s.tradeStore.ListTrades(userID), filter, customRange, now)
	return PortfolioSummary{
		TotalTrades: len(trades),
		TotalPNL:    analytics.CalculateTotalPNL(trades),
		TotalROI:    analytics.CalculateTotalROI(trades),
	}
}

// TradeDetails computes the detailed analytics for one trade.
func (s *AnalyticsService) TradeDetails(userID int64, tradeID string, now time.Time) (models.TradeAnalytics, error) {
	trade, err := s.tradeStore.GetTrade(userID, tradeID)
	if err != nil {
		return models.TradeAnalytics{}, err
	}
	return analytics.GetTradeAnalytics(trade, now), nil
}

// Coin aggregates all trades of one asset symbol.
func (s *AnalyticsService) Coin(userID int64, symbol string) models.CoinAnalytics {
	return analytics.GetCoinAnalytics(symbol, s.tradeStore.ListTrades(userID))
}

// Daily returns the per-date activity series.
func (s *AnalyticsService) Daily(userID int64) []models.DailyData {
	key := fmt.Sprintf(ckDailyData, userID)
	if cached, found := s.resultCache.Get(key); found {
		return cached.([]models.DailyData)
	}
	result := analytics.GetDailyData(s.tradeStore.ListTrades(userID))
	s.resultCache.Set(key, result, cache.DefaultExpiration)
	return result
}

// Cumulative returns the running PnL series.
func (s *AnalyticsService) Cumulative(userID int64) models.CumulativeSeries {
	key := fmt.Sprintf(ckCumulativeData, userID)
	if cached, found := s.resultCache.Get(key); found {
		return cached.(models.CumulativeSeries)
	}
	result := analytics.GetCumulativeData(s.tradeStore.ListTrades(userID))
	s.resultCache.Set(key, result, cache.DefaultExpiration)
	return result
}

// Deep returns the portfolio-wide rollup.
func (s *AnalyticsService) Deep(userID int64) models.DeepAnalytics {
	key := fmt.Sprintf(ckDeepAnalytics, userID)
	if cached, found := s.resultCache.Get(key); found {
		return cached.(models.DeepAnalytics)
	}
	result := analytics.GetDeepAnalytics(s.tradeStore.ListTrades(userID))
	s.resultCache.Set(key, result, cache.DefaultExpiration)
	return result
}

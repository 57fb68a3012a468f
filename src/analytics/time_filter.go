package analytics

import (
	"time"

	"github.com/username/tradefolio/backend/src/models"
)

// FilterTrades returns the trades whose open timestamp falls inside the
// selected window, evaluated against now:
//
//	today:    at or after midnight of the current local day
//	7d/30d:   rolling window, not calendar-aligned
//	custom:   customRange.Start <= timestamp <= customRange.End, both inclusive
//	lifetime: the input unchanged (same elements, same order)
//
// Sells inside a retained trade are never filtered: once a trade passes, its
// whole sell history stays visible, even sells outside the window. Callers
// therefore see PNL from trades opened in the window, not PNL realized in it.
func FilterTrades(trades []models.Trade, filter models.TimeFilter, customRange models.DateRange, now time.Time) []models.Trade {
	var startDate time.Time

	switch filter {
	case models.FilterToday:
		startDate = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case models.Filter7D:
		startDate = now.Add(-7 * 24 * time.Hour)
	case models.Filter30D:
		startDate = now.Add(-30 * 24 * time.Hour)
	case models.FilterCustom:
		filtered := make([]models.Trade, 0, len(trades))
		for _, trade := range trades {
			if !trade.Timestamp.Before(customRange.Start) && !trade.Timestamp.After(customRange.End) {
				filtered = append(filtered, trade)
			}
		}
		return filtered
	default: // FilterLifetime and anything unrecognized
		return trades
	}

	filtered := make([]models.Trade, 0, len(trades))
	for _, trade := range trades {
		if !trade.Timestamp.Before(startDate) {
			filtered = append(filtered, trade)
		}
	}
	return filtered
}

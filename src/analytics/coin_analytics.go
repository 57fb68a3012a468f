package analytics

import "github.com/username/tradefolio/backend/src/models"

// GetCoinAnalytics aggregates all trades whose currency name matches the
// given symbol (exact, case-sensitive match). Holdings are valued at the
// original buy price, not a live market price, so TotalProfit combines
// realized proceeds with mark-at-cost unrealized value. When no trade
// matches, every field of the result is zero.
func GetCoinAnalytics(symbol string, trades []models.Trade) models.CoinAnalytics {
	var result models.CoinAnalytics
	var roiSum float64

	for _, trade := range trades {
		if trade.CurrencyName != symbol {
			continue
		}

		pnl := CalculatePNL(trade)
		if result.TotalTrades == 0 {
			result.BestTrade = pnl
			result.WorstTrade = pnl
		} else {
			if pnl > result.BestTrade {
				result.BestTrade = pnl
			}
			if pnl < result.WorstTrade {
				result.WorstTrade = pnl
			}
		}

		result.TotalTrades++
		result.TotalInvested += trade.USDTUsed
		for _, sell := range trade.Sells {
			result.TotalSold += sell.USDTReceived
		}
		result.CurrentHoldings += trade.RemainingAmount * trade.Price
		roiSum += CalculateROI(trade)
	}

	result.TotalProfit = result.TotalSold + result.CurrentHoldings - result.TotalInvested
	if result.TotalTrades > 0 {
		// Simple mean, unweighted by trade size.
		result.AverageROI = roiSum / float64(result.TotalTrades)
	}
	return result
}

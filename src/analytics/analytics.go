package analytics

import (
	"math"
	"time"

	"github.com/username/tradefolio/backend/src/models"
)

// CalculatePNL returns the realized profit or loss of a trade in quote
// currency. The cost basis of the sold fraction is proportional to the total
// purchase cost (average cost, independent of which sell records exist).
// Unrealized gains on the remaining position are not included.
//
// A trade with Amount == 0 divides by zero; the IEEE-754 result (NaN or ±Inf)
// is returned as-is.
func CalculatePNL(trade models.Trade) float64 {
	var totalSellValue, soldAmount float64
	for _, sell := range trade.Sells {
		totalSellValue += sell.USDTReceived
		soldAmount += sell.SoldAmount
	}
	soldCostBasis := (soldAmount / trade.Amount) * trade.USDTUsed
	return totalSellValue - soldCostBasis
}

// CalculateROI returns the realized gain of a trade as a percentage of the
// cost basis sold. Returns exactly 0 when the sold cost basis is 0 (nothing
// sold yet). This is the only guarded division of the per-trade formulas.
func CalculateROI(trade models.Trade) float64 {
	var totalSellValue, soldAmount float64
	for _, sell := range trade.Sells {
		totalSellValue += sell.USDTReceived
		soldAmount += sell.SoldAmount
	}
	soldCostBasis := (soldAmount / trade.Amount) * trade.USDTUsed
	if soldCostBasis == 0 {
		return 0
	}
	return ((totalSellValue - soldCostBasis) / soldCostBasis) * 100
}

// CalculateTotalPNL sums the realized PNL of every trade.
func CalculateTotalPNL(trades []models.Trade) float64 {
	var total float64
	for _, trade := range trades {
		total += CalculatePNL(trade)
	}
	return total
}

// CalculateTotalROI returns the total realized PNL as a percentage of the
// total amount invested across all trades, or 0 when nothing was invested.
func CalculateTotalROI(trades []models.Trade) float64 {
	var totalInvested float64
	for _, trade := range trades {
		totalInvested += trade.USDTUsed
	}
	if totalInvested == 0 {
		return 0
	}
	return (CalculateTotalPNL(trades) / totalInvested) * 100
}

// GetTradeAnalytics builds the detailed per-trade view. DaysHeld is computed
// against the passed evaluation instant, so the value changes between calls.
// Best and worst sell are picked by unit sell price; on ties the earlier
// record in the sells order wins.
func GetTradeAnalytics(trade models.Trade, now time.Time) models.TradeAnalytics {
	var totalSellValue, soldAmount float64
	for _, sell := range trade.Sells {
		totalSellValue += sell.USDTReceived
		soldAmount += sell.SoldAmount
	}
	soldCostBasis := (soldAmount / trade.Amount) * trade.USDTUsed

	var averageSellPrice float64
	if soldAmount > 0 {
		averageSellPrice = totalSellValue / soldAmount
	}

	var roi float64
	if soldCostBasis > 0 {
		roi = ((totalSellValue - soldCostBasis) / soldCostBasis) * 100
	}

	var bestSell, worstSell *models.SellRecord
	if len(trade.Sells) > 0 {
		best := trade.Sells[0]
		worst := trade.Sells[0]
		for _, sell := range trade.Sells[1:] {
			if sell.SellPrice > best.SellPrice {
				best = sell
			}
			if sell.SellPrice < worst.SellPrice {
				worst = sell
			}
		}
		bestSell = &best
		worstSell = &worst
	}

	status := "Active"
	if trade.RemainingAmount == 0 {
		status = "Completed"
	}

	return models.TradeAnalytics{
		TotalInvested:      trade.USDTUsed,
		TotalReceived:      totalSellValue,
		NetPnL:             totalSellValue - soldCostBasis,
		ROI:                roi,
		AverageBuyPrice:    trade.Price,
		AverageSellPrice:   averageSellPrice,
		SoldAmount:         soldAmount,
		SoldPercentage:     (soldAmount / trade.Amount) * 100,
		BestSell:           bestSell,
		WorstSell:          worstSell,
		DaysHeld:           int(math.Floor(now.Sub(trade.Timestamp).Hours() / 24)),
		NumberOfSells:      len(trade.Sells),
		RemainingValue:     trade.RemainingAmount,
		RemainingCostBasis: (trade.RemainingAmount / trade.Amount) * trade.USDTUsed,
		Status:             status,
	}
}

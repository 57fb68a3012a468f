package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/username/tradefolio/backend/src/models"
)

// GetDeepAnalytics computes the portfolio-wide rollup. Note that its NetPnL
// is total proceeds minus total invested across all trades, which is NOT the
// same number as summing CalculatePNL under partial sells; both notions are
// surfaced to callers and are intentionally kept distinct.
//
// The drawdown walk accumulates per-trade PNL in collection order, not
// chronological order. Monthly figures group each sell's proportional
// realized gain by the month of the sell.
//
// An empty input returns the zero value of the result struct rather than
// propagating the infinities an empty max/min reduction would produce.
func GetDeepAnalytics(trades []models.Trade) models.DeepAnalytics {
	if len(trades) == 0 {
		return models.DeepAnalytics{}
	}

	totalTrades := len(trades)
	pnls := make([]float64, totalTrades)
	rois := make([]float64, totalTrades)
	for i, trade := range trades {
		pnls[i] = CalculatePNL(trade)
		rois[i] = CalculateROI(trade)
	}

	var totalInvested, totalSold float64
	for _, trade := range trades {
		totalInvested += trade.USDTUsed
		for _, sell := range trade.Sells {
			totalSold += sell.USDTReceived
		}
	}
	netPnL := totalSold - totalInvested

	winningTrades := 0
	for _, pnl := range pnls {
		if pnl > 0 {
			winningTrades++
		}
	}
	winRate := (float64(winningTrades) / float64(totalTrades)) * 100

	var roiSum float64
	for _, roi := range rois {
		roiSum += roi
	}
	averageROI := roiSum / float64(totalTrades)

	bestTrade := pnls[0]
	worstTrade := pnls[0]
	for _, pnl := range pnls[1:] {
		if pnl > bestTrade {
			bestTrade = pnl
		}
		if pnl < worstTrade {
			worstTrade = pnl
		}
	}

	// Hold time counts days from open to the FIRST sell only. Trades without
	// a sell contribute 0, pulling the average toward zero as open positions
	// accumulate.
	var holdTimeSum float64
	for _, trade := range trades {
		if len(trade.Sells) == 0 {
			continue
		}
		holdTimeSum += trade.Sells[0].Timestamp.Sub(trade.Timestamp).Hours() / 24
	}
	averageHoldTime := math.Round(holdTimeSum / float64(totalTrades))

	type coinStat struct {
		trades int
		pnl    float64
	}
	coinStats := make(map[string]*coinStat)
	coinOrder := make([]string, 0)
	for i, trade := range trades {
		stat, ok := coinStats[trade.CurrencyName]
		if !ok {
			stat = &coinStat{}
			coinStats[trade.CurrencyName] = stat
			coinOrder = append(coinOrder, trade.CurrencyName)
		}
		stat.trades++
		stat.pnl += pnls[i]
	}
	mostTradedCoin := "N/A"
	mostProfitableCoin := "N/A"
	for i, coin := range coinOrder {
		stat := coinStats[coin]
		if i == 0 {
			mostTradedCoin = coin
			mostProfitableCoin = coin
			continue
		}
		if stat.trades > coinStats[mostTradedCoin].trades {
			mostTradedCoin = coin
		}
		if stat.pnl > coinStats[mostProfitableCoin].pnl {
			mostProfitableCoin = coin
		}
	}

	dailyData := GetDailyData(trades)
	bestDayPnL := dailyData[0].PnL
	worstDayPnL := dailyData[0].PnL
	for _, day := range dailyData[1:] {
		if day.PnL > bestDayPnL {
			bestDayPnL = day.PnL
		}
		if day.PnL < worstDayPnL {
			worstDayPnL = day.PnL
		}
	}

	// Sharpe-like ratio over per-trade ROI, population standard deviation.
	var varianceSum float64
	for _, roi := range rois {
		varianceSum += (roi - averageROI) * (roi - averageROI)
	}
	standardDeviation := math.Sqrt(varianceSum / float64(totalTrades))
	var sharpeRatio float64
	if standardDeviation != 0 {
		sharpeRatio = averageROI / standardDeviation
	}

	var grossProfit, grossLoss float64
	for _, pnl := range pnls {
		if pnl > 0 {
			grossProfit += pnl
		} else if pnl < 0 {
			grossLoss += -pnl
		}
	}
	var profitFactor float64
	if grossLoss != 0 {
		profitFactor = grossProfit / grossLoss
	}

	// Running-peak drawdown over cumulative per-trade PNL, one trade at a
	// time in collection order. With a zero peak and a losing first trade the
	// division yields +Inf, which is kept.
	var maxDrawdown, peak, currentValue float64
	for _, pnl := range pnls {
		currentValue += pnl
		if currentValue > peak {
			peak = currentValue
		}
		drawdown := ((peak - currentValue) / peak) * 100
		if drawdown > maxDrawdown {
			maxDrawdown = drawdown
		}
	}

	monthlyPnL, bestMonthPnL, worstMonthPnL, averageMonthlyPnL, tradingConsistency := monthlyBreakdown(trades)

	return models.DeepAnalytics{
		TotalTrades:        totalTrades,
		TotalInvested:      totalInvested,
		NetPnL:             netPnL,
		WinRate:            winRate,
		AverageROI:         averageROI,
		BestTrade:          bestTrade,
		WorstTrade:         worstTrade,
		AverageHoldTime:    averageHoldTime,
		MostTradedCoin:     mostTradedCoin,
		MostProfitableCoin: mostProfitableCoin,
		BestDayPnL:         bestDayPnL,
		WorstDayPnL:        worstDayPnL,
		SharpeRatio:        sharpeRatio,
		ProfitFactor:       profitFactor,
		MaxDrawdown:        maxDrawdown,
		RiskRewardRatio:    math.Abs(bestTrade / worstTrade),
		MonthlyPnL:         monthlyPnL,
		BestMonthPnL:       bestMonthPnL,
		WorstMonthPnL:      worstMonthPnL,
		AverageMonthlyPnL:  averageMonthlyPnL,
		TradingConsistency: tradingConsistency,
	}
}

// monthlyBreakdown groups each sell's proportional realized gain by the month
// of the sell and derives the month-level statistics. A portfolio with no
// sells has no months; the derived figures stay zero in that case.
func monthlyBreakdown(trades []models.Trade) ([]models.MonthPnL, float64, float64, float64, float64) {
	type monthKey struct {
		year  int
		month time.Month
	}
	months := make(map[monthKey]float64)
	for _, trade := range trades {
		for _, sell := range trade.Sells {
			soldCostBasis := (sell.SoldAmount / trade.Amount) * trade.USDTUsed
			ts := sell.Timestamp.UTC()
			months[monthKey{ts.Year(), ts.Month()}] += sell.USDTReceived - soldCostBasis
		}
	}
	if len(months) == 0 {
		return nil, 0, 0, 0, 0
	}

	keys := make([]monthKey, 0, len(months))
	for key := range months {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	breakdown := make([]models.MonthPnL, 0, len(keys))
	best := months[keys[0]]
	worst := months[keys[0]]
	var sum float64
	profitableMonths := 0
	for _, key := range keys {
		pnl := months[key]
		label := time.Date(key.year, key.month, 1, 0, 0, 0, 0, time.UTC).Format("January 2006")
		breakdown = append(breakdown, models.MonthPnL{Month: label, PnL: pnl})
		if pnl > best {
			best = pnl
		}
		if pnl < worst {
			worst = pnl
		}
		sum += pnl
		if pnl > 0 {
			profitableMonths++
		}
	}
	average := sum / float64(len(keys))
	consistency := (float64(profitableMonths) / float64(len(keys))) * 100
	return breakdown, best, worst, average, consistency
}

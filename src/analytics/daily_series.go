package analytics

import (
	"sort"
	"time"

	"github.com/username/tradefolio/backend/src/models"
)

const dayFormat = "2006-01-02"

// GetDailyData buckets activity by UTC calendar date. A date gets an entry
// when a trade was opened or a sell occurred on it. Each sell contributes its
// proportional realized gain to the pnl of its own date, regardless of when
// the trade was opened. The roi field is the sum of per-sell ROI percentages
// for the date, not an average. Output is sorted ascending by date string.
func GetDailyData(trades []models.Trade) []models.DailyData {
	dailyMap := make(map[string]*models.DailyData)
	entryFor := func(date string) *models.DailyData {
		entry, ok := dailyMap[date]
		if !ok {
			entry = &models.DailyData{Date: date}
			dailyMap[date] = entry
		}
		return entry
	}

	for _, trade := range trades {
		tradeDate := trade.Timestamp.UTC().Format(dayFormat)
		entryFor(tradeDate).Trades++

		for _, sell := range trade.Sells {
			sellDate := sell.Timestamp.UTC().Format(dayFormat)
			entry := entryFor(sellDate)
			entry.Sells++

			soldCostBasis := (sell.SoldAmount / trade.Amount) * trade.USDTUsed
			sellPnL := sell.USDTReceived - soldCostBasis
			entry.PnL += sellPnL
			if soldCostBasis > 0 {
				entry.ROI += (sellPnL / soldCostBasis) * 100
			}
		}
	}

	result := make([]models.DailyData, 0, len(dailyMap))
	for _, entry := range dailyMap {
		result = append(result, *entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date < result[j].Date
	})
	return result
}

// GetCumulativeData walks the daily series in date order keeping a running
// pnl sum. The final value equals the sum of all daily pnl entries.
func GetCumulativeData(trades []models.Trade) models.CumulativeSeries {
	dailyData := GetDailyData(trades)
	series := models.CumulativeSeries{
		Labels: make([]string, 0, len(dailyData)),
		Data:   make([]float64, 0, len(dailyData)),
	}

	var cumulative float64
	for _, day := range dailyData {
		cumulative += day.PnL
		t, _ := time.Parse(dayFormat, day.Date)
		series.Labels = append(series.Labels, t.Format("Jan 2"))
		series.Data = append(series.Data, cumulative)
	}
	return series
}

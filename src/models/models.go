package models

import "time"

// Trade represents a single purchase event and its lifecycle of partial
// disposals. RemainingAmount is maintained by the store on every mutation;
// the analytics package only reads it.
type Trade struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	CurrencyName    string       `json:"currencyName"`
	Price           float64      `json:"price"`
	Amount          float64      `json:"amount"`
	USDTUsed        float64      `json:"usdtUsed"`
	Timestamp       time.Time    `json:"timestamp"`
	Sells           []SellRecord `json:"sells"`
	RemainingAmount float64      `json:"remainingAmount"`
}

// SellRecord is one partial or full disposal against a Trade.
type SellRecord struct {
	ID           string    `json:"id"`
	SellPrice    float64   `json:"sellPrice"`
	SoldAmount   float64   `json:"soldAmount"`
	USDTReceived float64   `json:"usdtReceived"`
	Timestamp    time.Time `json:"timestamp"`
}

// CustomCoin is a user-defined asset descriptor, used for display lookups only.
type CustomCoin struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// TimeFilter selects a time window over trade open timestamps.
type TimeFilter string

const (
	FilterToday    TimeFilter = "today"
	Filter7D       TimeFilter = "7d"
	Filter30D      TimeFilter = "30d"
	FilterCustom   TimeFilter = "custom"
	FilterLifetime TimeFilter = "lifetime"
)

// DateRange is the inclusive window used with FilterCustom.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// CoinAnalytics aggregates all trades of one asset symbol.
type CoinAnalytics struct {
	TotalTrades     int     `json:"totalTrades"`
	TotalInvested   float64 `json:"totalInvested"`
	TotalSold       float64 `json:"totalSold"`
	CurrentHoldings float64 `json:"currentHoldings"`
	TotalProfit     float64 `json:"totalProfit"`
	AverageROI      float64 `json:"averageROI"`
	BestTrade       float64 `json:"bestTrade"`
	WorstTrade      float64 `json:"worstTrade"`
}

// TradeAnalytics is the detailed per-trade view.
type TradeAnalytics struct {
	TotalInvested      float64     `json:"totalInvested"`
	TotalReceived      float64     `json:"totalReceived"`
	NetPnL             float64     `json:"netPnL"`
	ROI                float64     `json:"roi"`
	AverageBuyPrice    float64     `json:"averageBuyPrice"`
	AverageSellPrice   float64     `json:"averageSellPrice"`
	SoldAmount         float64     `json:"soldAmount"`
	SoldPercentage     float64     `json:"soldPercentage"`
	BestSell           *SellRecord `json:"bestSell"`
	WorstSell          *SellRecord `json:"worstSell"`
	DaysHeld           int         `json:"daysHeld"`
	NumberOfSells      int         `json:"numberOfSells"`
	RemainingValue     float64     `json:"remainingValue"`
	RemainingCostBasis float64     `json:"remainingCostBasis"`
	Status             string      `json:"status"`
}

// DailyData is one calendar date (UTC, YYYY-MM-DD) with trade or sell activity.
type DailyData struct {
	Date   string  `json:"date"`
	PnL    float64 `json:"pnl"`
	ROI    float64 `json:"roi"`
	Trades int     `json:"trades"`
	Sells  int     `json:"sells"`
}

// CumulativeSeries holds parallel arrays of formatted date labels and running
// PnL totals, in daily-data order.
type CumulativeSeries struct {
	Labels []string  `json:"labels"`
	Data   []float64 `json:"data"`
}

// MonthPnL is one month's realized PnL, grouped by sell month.
type MonthPnL struct {
	Month string  `json:"month"`
	PnL   float64 `json:"pnl"`
}

// DeepAnalytics is the portfolio-wide rollup.
type DeepAnalytics struct {
	TotalTrades        int        `json:"totalTrades"`
	TotalInvested      float64    `json:"totalInvested"`
	NetPnL             float64    `json:"netPnL"`
	WinRate            float64    `json:"winRate"`
	AverageROI         float64    `json:"averageROI"`
	BestTrade          float64    `json:"bestTrade"`
	WorstTrade         float64    `json:"worstTrade"`
	AverageHoldTime    float64    `json:"averageHoldTime"`
	MostTradedCoin     string     `json:"mostTradedCoin"`
	MostProfitableCoin string     `json:"mostProfitableCoin"`
	BestDayPnL         float64    `json:"bestDayPnL"`
	WorstDayPnL        float64    `json:"worstDayPnL"`
	SharpeRatio        float64    `json:"sharpeRatio"`
	ProfitFactor       float64    `json:"profitFactor"`
	MaxDrawdown        float64    `json:"maxDrawdown"`
	RiskRewardRatio    float64    `json:"riskRewardRatio"`
	MonthlyPnL         []MonthPnL `json:"monthlyPnL"`
	BestMonthPnL       float64    `json:"bestMonthPnL"`
	WorstMonthPnL      float64    `json:"worstMonthPnL"`
	AverageMonthlyPnL  float64    `json:"averageMonthlyPnL"`
	TradingConsistency float64    `json:"tradingConsistency"`
}

package store

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/username/tradefolio/backend/src/models"
)

var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrSellNotFound  = errors.New("sell record not found")
)

// TradeInput carries the caller-editable fields of a trade.
type TradeInput struct {
	Name         string  `json:"name"`
	CurrencyName string  `json:"currencyName"`
	Price        float64 `json:"price"`
	Amount       float64 `json:"amount"`
	USDTUsed     float64 `json:"usdtUsed"`
}

// SellInput carries the caller-editable fields of a sell record.
type SellInput struct {
	SellPrice    float64 `json:"sellPrice"`
	SoldAmount   float64 `json:"soldAmount"`
	USDTReceived float64 `json:"usdtReceived"`
}

// TradeStore is a mutex-guarded, per-user, in-memory trade collection. Trades
// live for the lifetime of the process; nothing here touches disk. Every
// mutation maintains remainingAmount = amount - sum(sells.soldAmount) >= 0,
// so readers (the analytics engine included) can assume the invariant holds.
type TradeStore struct {
	mutex  sync.RWMutex
	trades map[int64][]models.Trade
}

func NewTradeStore() *TradeStore {
	return &TradeStore{
		trades: make(map[int64][]models.Trade),
	}
}

// ListTrades returns a copy of the user's trades in insertion order.
func (s *TradeStore) ListTrades(userID int64) []models.Trade {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	trades := s.trades[userID]
	result := make([]models.Trade, len(trades))
	for i, trade := range trades {
		result[i] = copyTrade(trade)
	}
	return result
}

// GetTrade returns a copy of one trade by id.
func (s *TradeStore) GetTrade(userID int64, tradeID string) (models.Trade, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	for _, trade := range s.trades[userID] {
		if trade.ID == tradeID {
			return copyTrade(trade), nil
		}
	}
	return models.Trade{}, ErrTradeNotFound
}

// CreateTrade appends a new trade. The full amount starts unsold.
func (s *TradeStore) CreateTrade(userID int64, input TradeInput) models.Trade {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	trade := models.Trade{
		ID:              uuid.NewString(),
		Name:            input.Name,
		CurrencyName:    input.CurrencyName,
		Price:           input.Price,
		Amount:          input.Amount,
		USDTUsed:        input.USDTUsed,
		Timestamp:       time.Now(),
		Sells:           make([]models.SellRecord, 0),
		RemainingAmount: input.Amount,
	}
	s.trades[userID] = append(s.trades[userID], trade)
	return copyTrade(trade)
}

// UpdateTrade overwrites the editable fields of a trade. The remaining amount
// is reset to the new total amount; existing sells are NOT rescaled.
func (s *TradeStore) UpdateTrade(userID int64, tradeID string, input TradeInput) (models.Trade, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	trades := s.trades[userID]
	for i := range trades {
		if trades[i].ID != tradeID {
			continue
		}
		trades[i].Name = input.Name
		trades[i].CurrencyName = input.CurrencyName
		trades[i].Price = input.Price
		trades[i].Amount = input.Amount
		trades[i].USDTUsed = input.USDTUsed
		trades[i].RemainingAmount = input.Amount
		return copyTrade(trades[i]), nil
	}
	return models.Trade{}, ErrTradeNotFound
}

// DeleteTrade removes a trade and with it all its sell records.
func (s *TradeStore) DeleteTrade(userID int64, tradeID string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	trades := s.trades[userID]
	for i := range trades {
		if trades[i].ID == tradeID {
			s.trades[userID] = append(trades[:i], trades[i+1:]...)
			return nil
		}
	}
	return ErrTradeNotFound
}

// AddSell appends a disposal to a trade. The sold amount must not exceed the
// trade's remaining amount.
func (s *TradeStore) AddSell(userID int64, tradeID string, input SellInput) (models.Trade, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	trades := s.trades[userID]
	for i := range trades {
		if trades[i].ID != tradeID {
			continue
		}
		if input.SoldAmount > trades[i].RemainingAmount {
			return models.Trade{}, fmt.Errorf("cannot sell more than remaining amount (%.8f)", trades[i].RemainingAmount)
		}
		sell := models.SellRecord{
			ID:           uuid.NewString(),
			SellPrice:    input.SellPrice,
			SoldAmount:   input.SoldAmount,
			USDTReceived: input.USDTReceived,
			Timestamp:    time.Now(),
		}
		trades[i].Sells = append(trades[i].Sells, sell)
		trades[i].RemainingAmount -= input.SoldAmount
		return copyTrade(trades[i]), nil
	}
	return models.Trade{}, ErrTradeNotFound
}

// UpdateSell replaces the fields of an existing sell record. The new sold
// amount may not exceed what the old record and the unsold remainder cover
// together; the remaining amount becomes remaining + old - new.
func (s *TradeStore) UpdateSell(userID int64, tradeID, sellID string, input SellInput) (models.Trade, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	trades := s.trades[userID]
	for i := range trades {
		if trades[i].ID != tradeID {
			continue
		}
		for j := range trades[i].Sells {
			if trades[i].Sells[j].ID != sellID {
				continue
			}
			oldSoldAmount := trades[i].Sells[j].SoldAmount
			if input.SoldAmount > trades[i].RemainingAmount+oldSoldAmount {
				return models.Trade{}, fmt.Errorf("cannot sell more than remaining amount (%.8f)", trades[i].RemainingAmount+oldSoldAmount)
			}
			trades[i].Sells[j].SellPrice = input.SellPrice
			trades[i].Sells[j].SoldAmount = input.SoldAmount
			trades[i].Sells[j].USDTReceived = input.USDTReceived
			trades[i].RemainingAmount += oldSoldAmount - input.SoldAmount
			return copyTrade(trades[i]), nil
		}
		return models.Trade{}, ErrSellNotFound
	}
	return models.Trade{}, ErrTradeNotFound
}

// DeleteSell removes a sell record and returns its amount to the remainder.
func (s *TradeStore) DeleteSell(userID int64, tradeID, sellID string) (models.Trade, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	trades := s.trades[userID]
	for i := range trades {
		if trades[i].ID != tradeID {
			continue
		}
		for j := range trades[i].Sells {
			if trades[i].Sells[j].ID != sellID {
				continue
			}
			soldAmount := trades[i].Sells[j].SoldAmount
			trades[i].Sells = append(trades[i].Sells[:j], trades[i].Sells[j+1:]...)
			trades[i].RemainingAmount += soldAmount
			return copyTrade(trades[i]), nil
		}
		return models.Trade{}, ErrSellNotFound
	}
	return models.Trade{}, ErrTradeNotFound
}

// copyTrade returns a trade with its own sells slice so callers cannot reach
// into stored state.
func copyTrade(trade models.Trade) models.Trade {
	sells := make([]models.SellRecord, len(trade.Sells))
	copy(sells, trade.Sells)
	trade.Sells = sells
	return trade
}

package services

import (
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/username/tradefolio/backend/src/logger"
	"github.com/username/tradefolio/backend/src/models"
)

// customCoinsStorageKey is the single fixed key the coin list is stored under.
const customCoinsStorageKey = "customCoins"

var ErrCoinNotFound = errors.New("custom coin not found")

// CoinService keeps each user's custom coin registry as one JSON array blob
// in the app_storage table. Every mutation rewrites the whole blob. An absent
// or unreadable blob is treated as an empty list, never as an error: the
// registry only resolves display names and must not take the app down.
type CoinService struct {
	db *sql.DB
}

func NewCoinService(db *sql.DB) *CoinService {
	return &CoinService{db: db}
}

// ListCoins loads the user's coin registry.
func (s *CoinService) ListCoins(userID int64) []models.CustomCoin {
	return s.load(userID)
}

// AddCoin appends a coin and persists the registry.
func (s *CoinService) AddCoin(userID int64, name, symbol string) models.CustomCoin {
	coin := models.CustomCoin{
		ID:     uuid.NewString(),
		Name:   name,
		Symbol: symbol,
	}
	coins := append(s.load(userID), coin)
	s.save(userID, coins)
	return coin
}

// UpdateCoin replaces the name and symbol of an existing coin.
func (s *CoinService) UpdateCoin(userID int64, coinID, name, symbol string) (models.CustomCoin, error) {
	coins := s.load(userID)
	for i := range coins {
		if coins[i].ID != coinID {
			continue
		}
		coins[i].Name = name
		coins[i].Symbol = symbol
		s.save(userID, coins)
		return coins[i], nil
	}
	return models.CustomCoin{}, ErrCoinNotFound
}

// DeleteCoin removes a coin from the registry.
func (s *CoinService) DeleteCoin(userID int64, coinID string) error {
	coins := s.load(userID)
	for i := range coins {
		if coins[i].ID == coinID {
			s.save(userID, append(coins[:i], coins[i+1:]...))
			return nil
		}
	}
	return ErrCoinNotFound
}

func (s *CoinService) load(userID int64) []models.CustomCoin {
	var value string
	err := s.db.QueryRow(
		`SELECT value FROM app_storage WHERE user_id = ? AND key = ?`,
		userID, customCoinsStorageKey,
	).Scan(&value)
	if err != nil {
		if err != sql.ErrNoRows {
			logger.L.Warn("Failed to load custom coins, starting with empty list", "userID", userID, "error", err)
		}
		return []models.CustomCoin{}
	}

	var coins []models.CustomCoin
	if err := json.Unmarshal([]byte(value), &coins); err != nil {
		logger.L.Warn("Custom coins blob is malformed, treating as empty", "userID", userID, "error", err)
		return []models.CustomCoin{}
	}
	if coins == nil {
		coins = []models.CustomCoin{}
	}
	return coins
}

// save overwrites the whole blob. Write failures are logged and ignored; the
// list the caller holds stays authoritative for the current session.
func (s *CoinService) save(userID int64, coins []models.CustomCoin) {
	value, err := json.Marshal(coins)
	if err != nil {
		logger.L.Error("Failed to marshal custom coins", "userID", userID, "error", err)
		return
	}
	_, err = s.db.Exec(
		`INSERT INTO app_storage (user_id, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(user_id, key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		userID, customCoinsStorageKey, string(value),
	)
	if err != nil {
		logger.L.Error("Failed to persist custom coins", "userID", userID, "error", err)
	}
}

package services_test

import (
	"path/filepath"
	"testing"

	"github.com/username/tradefolio/backend/src/database"
	"github.com/username/tradefolio/backend/src/logger"
	"github.com/username/tradefolio/backend/src/services"
)

func newCoinService(t *testing.T) *services.CoinService {
	t.Helper()
	logger.InitLogger("error")
	database.InitDB(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() { database.DB.Close() })
	return services.NewCoinService(database.DB)
}

func TestListCoinsEmptyRegistry(t *testing.T) {
	s := newCoinService(t)

	coins := s.ListCoins(1)
	if coins == nil {
		t.Fatal("expected an empty slice, not nil")
	}
	if len(coins) != 0 {
		t.Errorf("expected no coins for a fresh user, got %d", len(coins))
	}
}

func TestAddCoinPersists(t *testing.T) {
	s := newCoinService(t)

	coin := s.AddCoin(1, "Bitcoin", "BTC")
	if coin.ID == "" {
		t.Fatal("expected a generated coin id")
	}
	s.AddCoin(1, "Ethereum", "ETH")

	coins := s.ListCoins(1)
	if len(coins) != 2 {
		t.Fatalf("expected 2 coins, got %d", len(coins))
	}
	if coins[0].Name != "Bitcoin" || coins[0].Symbol != "BTC" {
		t.Errorf("unexpected first coin: %+v", coins[0])
	}

	// Registries are per-user.
	if other := s.ListCoins(2); len(other) != 0 {
		t.Errorf("expected no coins for another user, got %d", len(other))
	}
}

func TestUpdateCoin(t *testing.T) {
	s := newCoinService(t)
	coin := s.AddCoin(1, "Bitcon", "BTC")

	updated, err := s.UpdateCoin(1, coin.ID, "Bitcoin", "BTC")
	if err != nil {
		t.Fatalf("failed to update coin: %v", err)
	}
	if updated.Name != "Bitcoin" {
		t.Errorf("expected updated name, got %q", updated.Name)
	}

	coins := s.ListCoins(1)
	if len(coins) != 1 || coins[0].Name != "Bitcoin" {
		t.Errorf("update not persisted: %+v", coins)
	}

	if _, err := s.UpdateCoin(1, "missing", "X", "X"); err != services.ErrCoinNotFound {
		t.Errorf("expected ErrCoinNotFound, got %v", err)
	}
}

func TestDeleteCoin(t *testing.T) {
	s := newCoinService(t)
	first := s.AddCoin(1, "Bitcoin", "BTC")
	s.AddCoin(1, "Ethereum", "ETH")

	if err := s.DeleteCoin(1, first.ID); err != nil {
		t.Fatalf("failed to delete coin: %v", err)
	}

	coins := s.ListCoins(1)
	if len(coins) != 1 || coins[0].Symbol != "ETH" {
		t.Errorf("expected only ETH to remain, got %+v", coins)
	}

	if err := s.DeleteCoin(1, first.ID); err != services.ErrCoinNotFound {
		t.Errorf("expected ErrCoinNotFound on second delete, got %v", err)
	}
}

func TestCorruptBlobTreatedAsEmpty(t *testing.T) {
	s := newCoinService(t)
	s.AddCoin(1, "Bitcoin", "BTC")

	_, err := database.DB.Exec(
		`UPDATE app_storage SET value = ? WHERE user_id = ? AND key = ?`,
		"{not json", 1, "customCoins",
	)
	if err != nil {
		t.Fatalf("failed to corrupt blob: %v", err)
	}

	coins := s.ListCoins(1)
	if len(coins) != 0 {
		t.Errorf("expected corrupt registry to read as empty, got %+v", coins)
	}

	// Writing again replaces the corrupt blob.
	s.AddCoin(1, "Ethereum", "ETH")
	coins = s.ListCoins(1)
	if len(coins) != 1 || coins[0].Symbol != "ETH" {
		t.Errorf("expected registry rebuilt from empty, got %+v", coins)
	}
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/username/tradefolio/backend/src/analytics"
	"github.com/username/tradefolio/backend/src/calculator"
	"github.com/username/tradefolio/backend/src/logger"
	"github.com/username/tradefolio/backend/src/models"
	"github.com/username/tradefolio/backend/src/services"
	"github.com/username/tradefolio/backend/src/store"
	"github.com/username/tradefolio/backend/src/utils"
)

type TradeHandler struct {
	tradeStore       *store.TradeStore
	analyticsService *services.AnalyticsService
}

func NewTradeHandler(tradeStore *store.TradeStore, analyticsService *services.AnalyticsService) *TradeHandler {
	return &TradeHandler{
		tradeStore:       tradeStore,
		analyticsService: analyticsService,
	}
}

// parseTimeFilterParams reads filter/start/end query parameters. An absent
// filter means lifetime; a custom filter requires RFC3339 start and end.
func parseTimeFilterParams(r *http.Request) (models.TimeFilter, models.DateRange, error) {
	filter := models.TimeFilter(r.URL.Query().Get("filter"))
	if filter == "" {
		filter = models.FilterLifetime
	}
	var customRange models.DateRange
	if filter == models.FilterCustom {
		start, err := time.Parse(time.RFC3339, r.URL.Query().Get("start"))
		if err != nil {
			return filter, customRange, fmt.Errorf("invalid start parameter: %w", err)
		}
		end, err := time.Parse(time.RFC3339, r.URL.Query().Get("end"))
		if err != nil {
			return filter, customRange, fmt.Errorf("invalid end parameter: %w", err)
		}
		customRange = models.DateRange{Start: start, End: end}
	}
	return filter, customRange, nil
}

func (h *TradeHandler) HandleListTrades(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	filter, customRange, err := parseTimeFilterParams(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	trades := h.tradeStore.ListTrades(userID)
	filtered := analytics.FilterTrades(trades, filter, customRange, time.Now())
	utils.SendJSON(w, filtered, http.StatusOK)
}

func (h *TradeHandler) HandleCreateTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	input, err := decodeTradeInput(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade := h.tradeStore.CreateTrade(userID, input)
	h.analyticsService.InvalidateUserCache(userID)
	logger.L.Info("Trade created", "userID", userID, "tradeID", trade.ID, "currency", trade.CurrencyName)
	utils.SendJSON(w, trade, http.StatusCreated)
}

func (h *TradeHandler) HandleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	input, err := decodeTradeInput(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade, err := h.tradeStore.UpdateTrade(userID, r.PathValue("id"), input)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.analyticsService.InvalidateUserCache(userID)
	utils.SendJSON(w, trade, http.StatusOK)
}

func (h *TradeHandler) HandleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.tradeStore.DeleteTrade(userID, r.PathValue("id")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.analyticsService.InvalidateUserCache(userID)
	utils.SendJSON(w, map[string]string{"message": "Trade deleted"}, http.StatusOK)
}

func (h *TradeHandler) HandleAddSell(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	input, err := decodeSellInput(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade, err := h.tradeStore.AddSell(userID, r.PathValue("id"), input)
	if err != nil {
		if errors.Is(err, store.ErrTradeNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		} else {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	h.analyticsService.InvalidateUserCache(userID)
	logger.L.Info("Sell recorded", "userID", userID, "tradeID", trade.ID)
	utils.SendJSON(w, trade, http.StatusCreated)
}

func (h *TradeHandler) HandleUpdateSell(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	input, err := decodeSellInput(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	trade, err := h.tradeStore.UpdateSell(userID, r.PathValue("id"), r.PathValue("sellID"), input)
	if err != nil {
		if errors.Is(err, store.ErrTradeNotFound) || errors.Is(err, store.ErrSellNotFound) {
			utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		} else {
			utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		}
		return
	}
	h.analyticsService.InvalidateUserCache(userID)
	utils.SendJSON(w, trade, http.StatusOK)
}

func (h *TradeHandler) HandleDeleteSell(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	trade, err := h.tradeStore.DeleteSell(userID, r.PathValue("id"), r.PathValue("sellID"))
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	h.analyticsService.InvalidateUserCache(userID)
	utils.SendJSON(w, trade, http.StatusOK)
}

// decodeTradeInput validates the trade payload and fills in whichever of
// amount and quote spent the client omitted.
func decodeTradeInput(r *http.Request) (store.TradeInput, error) {
	var input store.TradeInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, errors.New("invalid request body")
	}
	input.Name = strings.TrimSpace(input.Name)
	input.CurrencyName = strings.TrimSpace(input.CurrencyName)
	if input.Name == "" || input.CurrencyName == "" {
		return input, errors.New("name and currencyName are required")
	}
	if input.Price <= 0 {
		return input, errors.New("price must be positive")
	}
	if input.Amount <= 0 && input.USDTUsed <= 0 {
		return input, errors.New("either amount or usdtUsed must be positive")
	}
	input.Amount, input.USDTUsed = calculator.Complete(input.Price, input.Amount, input.USDTUsed)
	return input, nil
}

func decodeSellInput(r *http.Request) (store.SellInput, error) {
	var input store.SellInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		return input, errors.New("invalid request body")
	}
	if input.SellPrice <= 0 {
		return input, errors.New("sellPrice must be positive")
	}
	if input.SoldAmount <= 0 && input.USDTReceived <= 0 {
		return input, errors.New("either soldAmount or usdtReceived must be positive")
	}
	input.SoldAmount, input.USDTReceived = calculator.Complete(input.SellPrice, input.SoldAmount, input.USDTReceived)
	return input, nil
}

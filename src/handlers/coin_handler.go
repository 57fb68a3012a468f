package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/username/tradefolio/backend/src/services"
	"github.com/username/tradefolio/backend/src/utils"
)

type CoinHandler struct {
	coinService *services.CoinService
}

func NewCoinHandler(coinService *services.CoinService) *CoinHandler {
	return &CoinHandler{
		coinService: coinService,
	}
}

type coinPayload struct {
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

func decodeCoinPayload(r *http.Request) (coinPayload, error) {
	var payload coinPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, errors.New("invalid request body")
	}
	payload.Name = strings.TrimSpace(payload.Name)
	payload.Symbol = strings.ToUpper(strings.TrimSpace(payload.Symbol))
	if payload.Name == "" || payload.Symbol == "" {
		return payload, errors.New("name and symbol are required")
	}
	return payload, nil
}

func (h *CoinHandler) HandleListCoins(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	utils.SendJSON(w, h.coinService.ListCoins(userID), http.StatusOK)
}

func (h *CoinHandler) HandleAddCoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	payload, err := decodeCoinPayload(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	coin := h.coinService.AddCoin(userID, payload.Name, payload.Symbol)
	utils.SendJSON(w, coin, http.StatusCreated)
}

func (h *CoinHandler) HandleUpdateCoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	payload, err := decodeCoinPayload(r)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	coin, err := h.coinService.UpdateCoin(userID, r.PathValue("id"), payload.Name, payload.Symbol)
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	utils.SendJSON(w, coin, http.StatusOK)
}

func (h *CoinHandler) HandleDeleteCoin(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	if err := h.coinService.DeleteCoin(userID, r.PathValue("id")); err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	utils.SendJSON(w, map[string]string{"message": "Coin deleted"}, http.StatusOK)
}

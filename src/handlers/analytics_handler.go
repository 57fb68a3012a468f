package handlers

import (
	"net/http"
	"time"

	"github.com/username/tradefolio/backend/src/logger"
	"github.com/username/tradefolio/backend/src/services"
	"github.com/username/tradefolio/backend/src/utils"
)

type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
	}
}

func (h *AnalyticsHandler) HandleGetSummary(w http.ResponseWriter, r *http.Request) {
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

	summary := h.analyticsService.Summary(userID, filter, customRange, time.Now())
	utils.SendJSON(w, summary, http.StatusOK)
}

func (h *AnalyticsHandler) HandleGetTradeAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	details, err := h.analyticsService.TradeDetails(userID, r.PathValue("id"), time.Now())
	if err != nil {
		utils.SendJSONError(w, err.Error(), http.StatusNotFound)
		return
	}
	utils.SendJSON(w, details, http.StatusOK)
}

func (h *AnalyticsHandler) HandleGetCoinAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	utils.SendJSON(w, h.analyticsService.Coin(userID, r.PathValue("symbol")), http.StatusOK)
}

func (h *AnalyticsHandler) HandleGetDailyData(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	utils.SendJSON(w, h.analyticsService.Daily(userID), http.StatusOK)
}

func (h *AnalyticsHandler) HandleGetCumulativeData(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	utils.SendJSON(w, h.analyticsService.Cumulative(userID), http.StatusOK)
}

// HandleGetDeepAnalytics serves the portfolio rollup with ETag support so
// unchanged results short-circuit to 304.
func (h *AnalyticsHandler) HandleGetDeepAnalytics(w http.ResponseWriter, r *http.Request) {
	userID, ok := GetUserIDFromContext(r.Context())
	if !ok {
		utils.SendJSONError(w, "authentication required or user ID not found in context", http.StatusUnauthorized)
		return
	}

	deep := h.analyticsService.Deep(userID)

	etag, err := utils.GenerateETag(deep)
	if err != nil {
		logger.L.Warn("Failed to generate ETag for deep analytics", "userID", userID, "error", err)
	} else {
		if r.Header.Get("If-None-Match") == etag {
			w.WriteHeader(http.StatusNotModified)
			return
		}
		w.Header().Set("ETag", etag)
	}

	utils.SendJSON(w, deep, http.StatusOK)
}

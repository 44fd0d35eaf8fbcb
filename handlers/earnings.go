package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"mistriconnect/middleware"
	"mistriconnect/services/earnings"
)

// EarningsHandler exposes the provider earnings ledger.
type EarningsHandler struct {
	Service earnings.Service
}

// NewEarningsHandler returns a handler backed by the given earnings service.
func NewEarningsHandler(service earnings.Service) *EarningsHandler {
	return &EarningsHandler{Service: service}
}

// GetMonth handles GET /api/earnings/:month (provider). The month parameter
// is the human-readable label, e.g. "March 2025".
func (h *EarningsHandler) GetMonth(c *gin.Context) {
	summary, err := h.Service.GetMonth(c.Request.Context(), c.GetString(middleware.CtxProviderID), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// GetMonthJobs handles GET /api/earnings/:month/jobs (provider).
func (h *EarningsHandler) GetMonthJobs(c *gin.Context) {
	detail, err := h.Service.GetMonthJobs(c.Request.Context(), c.GetString(middleware.CtxProviderID), c.Param("month"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// ListMonths handles GET /api/earnings (provider).
func (h *EarningsHandler) ListMonths(c *gin.Context) {
	summaries, err := h.Service.ListMonths(c.Request.Context(), c.GetString(middleware.CtxProviderID))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"months": summaries})
}

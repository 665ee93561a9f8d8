package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetLowStockAlerts returns products below the configured threshold
func (h *Handler) GetLowStockAlerts(c *gin.Context) {
	alerts, err := h.Store.LowStock(c.Request.Context(), h.LowStockThreshold)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, alerts)
}

func (h *Handler) GetMonthlySalesSummary(c *gin.Context) {
	month := c.DefaultQuery("month", "")
	if month == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing month parameter (expected format: YYYY-MM)"})
		return
	}
	summary, err := h.Store.MonthlySummary(c.Request.Context(), month)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *Handler) GetDashboard(c *gin.Context) {
	d, err := h.Store.Dashboard(c.Request.Context(), h.LowStockThreshold)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, d)
}

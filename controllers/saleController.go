package controllers

import (
	"net/http"
	"time"

	"classroom-tools/models"

	"github.com/gin-gonic/gin"
)

// CreateSale records a sale and takes its quantity out of stock.
func (h *Handler) CreateSale(c *gin.Context) {
	var in models.SaleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, err)
		return
	}
	sale, err := h.Store.CreateSale(c.Request.Context(), in)
	if err != nil {
		h.respondError(c, err)
		return
	}

	product, err := h.Store.GetProduct(c.Request.Context(), sale.ProductCode)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":         "Sale recorded successfully",
		"sale":            sale,
		"stock":           product.Stock,
		"low_stock_alert": product.Stock < h.LowStockThreshold,
	})
}

// ListSales supports the from, to, client, product and status filters.
func (h *Handler) ListSales(c *gin.Context) {
	var f models.SaleFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		badRequest(c, err)
		return
	}
	sales, err := h.Store.ListSales(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

func (h *Handler) GetSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}
	sale, err := h.Store.GetSale(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *Handler) UpdateSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}
	var u models.SaleUpdate
	if err := c.ShouldBindJSON(&u); err != nil {
		badRequest(c, err)
		return
	}
	sale, err := h.Store.UpdateSale(c.Request.Context(), id, u)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sale)
}

func (h *Handler) VoidSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}
	sale, err := h.Store.VoidSale(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale voided", "sale": sale})
}

func (h *Handler) DeleteSale(c *gin.Context) {
	id, ok := saleID(c)
	if !ok {
		return
	}
	if err := h.Store.DeleteSale(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Sale deleted successfully"})
}

func (h *Handler) GetSalesByDate(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing date parameter"})
		return
	}

	// Validate date format
	if _, err := time.Parse("2006-01-02", date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format. Use YYYY-MM-DD"})
		return
	}

	sales, err := h.Store.ListSales(c.Request.Context(), models.SaleFilter{From: date, To: date})
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sales)
}

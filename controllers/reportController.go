package controllers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"classroom-tools/models"
	"classroom-tools/report"

	"github.com/gin-gonic/gin"
)

type emailReportRequest struct {
	Recipients []string `json:"recipients" binding:"required,min=1,dive,email"`
	From       string   `json:"from"`
	To         string   `json:"to"`
	Client     string   `json:"client"`
	Product    string   `json:"product"`
	Status     string   `json:"status"`
}

// SalesReport streams the filtered sales table as pipe-delimited text.
func (h *Handler) SalesReport(c *gin.Context) {
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
	c.Header("Content-Type", "text/plain; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(h.Now())))
	c.Status(http.StatusOK)
	if err := report.Write(c.Writer, sales); err != nil {
		h.Log.Error().Err(err).Msg("write sales report")
	}
}

// EmailSalesReport writes the report file and mails it as an attachment.
func (h *Handler) EmailSalesReport(c *gin.Context) {
	if h.Mailer == nil {
		h.respondError(c, report.ErrNoCredentials)
		return
	}
	var req emailReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	f := models.SaleFilter{From: req.From, To: req.To, Client: req.Client, Product: req.Product, Status: req.Status}
	sales, err := h.Store.ListSales(c.Request.Context(), f)
	if err != nil {
		h.respondError(c, err)
		return
	}

	path, err := report.WriteFile(h.ReportDir, sales, h.Now())
	if err != nil {
		h.respondError(c, err)
		return
	}
	msg := report.Message{
		To:         req.Recipients,
		Subject:    "Sales report " + filepath.Base(path),
		Body:       fmt.Sprintf("Attached is the sales report with %d rows.", len(sales)),
		Attachment: path,
	}
	if err := h.Mailer.Send(c.Request.Context(), msg); err != nil {
		h.respondError(c, err)
		return
	}
	h.Log.Info().Str("file", path).Strs("to", req.Recipients).Int("rows", len(sales)).Msg("sales report sent")
	c.JSON(http.StatusOK, gin.H{"message": "Report sent", "file": filepath.Base(path), "rows": len(sales)})
}

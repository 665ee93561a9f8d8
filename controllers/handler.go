package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"classroom-tools/ledger"
	"classroom-tools/report"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler carries the dependencies of every HTTP handler.
type Handler struct {
	Store             *ledger.Store
	Mailer            report.Mailer
	ReportDir         string
	LowStockThreshold int
	Log               zerolog.Logger
	Now               func() time.Time
}

func NewHandler(store *ledger.Store, mailer report.Mailer, reportDir string, lowStockThreshold int, log zerolog.Logger) *Handler {
	return &Handler{
		Store:             store,
		Mailer:            mailer,
		ReportDir:         reportDir,
		LowStockThreshold: lowStockThreshold,
		Log:               log,
		Now:               time.Now,
	}
}

// statusFor maps ledger and report errors to HTTP codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, ledger.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ledger.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ledger.ErrDuplicateCode),
		errors.Is(err, ledger.ErrInsufficientStock),
		errors.Is(err, ledger.ErrSaleVoided),
		errors.Is(err, ledger.ErrProductInUse):
		return http.StatusConflict
	case errors.Is(err, report.ErrNoCredentials):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func (h *Handler) respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.Log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

func saleID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid sale id"})
		return 0, false
	}
	return id, true
}

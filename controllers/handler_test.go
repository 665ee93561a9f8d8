package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"classroom-tools/ledger"
	"classroom-tools/report"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("product %q: %w", "P1", ledger.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("bad: %w", ledger.ErrInvalidInput), http.StatusBadRequest},
		{ledger.ErrDuplicateCode, http.StatusConflict},
		{ledger.ErrInsufficientStock, http.StatusConflict},
		{ledger.ErrSaleVoided, http.StatusConflict},
		{ledger.ErrProductInUse, http.StatusConflict},
		{report.ErrNoCredentials, http.StatusServiceUnavailable},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Fatalf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

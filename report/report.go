// Package report renders the sales table as a pipe-delimited text file and
// mails it.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"classroom-tools/models"
)

var Header = []string{"id", "date", "product", "client", "quantity", "unit_price", "total", "voided"}

// Write emits the header and one row per sale. Pipes inside text fields
// are replaced so every row keeps the same number of columns.
func Write(w io.Writer, sales []models.Sale) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, strings.Join(Header, "|")); err != nil {
		return err
	}
	for _, s := range sales {
		fields := []string{
			strconv.Itoa(s.ID),
			s.Date,
			clean(s.ProductName),
			clean(s.ClientName),
			strconv.Itoa(s.Quantity),
			s.UnitPrice.StringFixed(2),
			s.Total.StringFixed(2),
			strconv.FormatBool(s.Voided),
		}
		if _, err := fmt.Fprintln(bw, strings.Join(fields, "|")); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func clean(v string) string {
	return strings.ReplaceAll(v, "|", "/")
}

// FileName is the report name for a generation time.
func FileName(now time.Time) string {
	return "ventas_" + now.Format("20060102_150405") + ".txt"
}

// WriteFile writes the report under dir and returns its path.
func WriteFile(dir string, sales []models.Sale, now time.Time) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	path := filepath.Join(dir, FileName(now))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create report: %w", err)
	}
	if err := Write(f, sales); err != nil {
		f.Close()
		return "", fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close report: %w", err)
	}
	return path, nil
}

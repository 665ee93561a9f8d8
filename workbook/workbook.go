// Package workbook reads and writes the legacy spreadsheet that held the
// inventory, clients and sales sheets.
package workbook

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"classroom-tools/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SheetInventory = "Inventario"
	SheetClients   = "Clientes"
	SheetSales     = "Ventas"
)

var (
	inventoryHeader = []string{"codigo", "nombre", "existencia", "proveedor", "precio"}
	clientsHeader   = []string{"codigo", "nombre", "direccion"}
	salesHeader     = []string{"id", "fecha", "codigo_producto", "producto", "codigo_cliente", "cliente", "cantidad", "precio_unitario", "total", "anulada"}
)

type sheetDef struct {
	name   string
	header []string
}

var sheets = []sheetDef{
	{SheetInventory, inventoryHeader},
	{SheetClients, clientsHeader},
	{SheetSales, salesHeader},
}

// Read parses the workbook at path. Sheets that are missing are re-created
// with their default header and the file is saved back. A missing file
// reads as an empty snapshot.
func Read(path string) (models.Snapshot, error) {
	f, err := excelize.OpenFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return models.Snapshot{}, nil
	}
	if err != nil {
		return models.Snapshot{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	changed := false
	for _, sh := range sheets {
		idx, err := f.GetSheetIndex(sh.name)
		if err != nil {
			return models.Snapshot{}, fmt.Errorf("sheet %s: %w", sh.name, err)
		}
		if idx != -1 {
			continue
		}
		if _, err := f.NewSheet(sh.name); err != nil {
			return models.Snapshot{}, fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		if err := writeRow(f, sh.name, 1, toCells(sh.header)); err != nil {
			return models.Snapshot{}, err
		}
		changed = true
	}
	if changed {
		if err := f.Save(); err != nil {
			return models.Snapshot{}, fmt.Errorf("save workbook: %w", err)
		}
	}

	var snap models.Snapshot
	if snap.Products, err = readProducts(f); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Clients, err = readClients(f); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Sales, err = readSales(f); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// Loader is the part of the ledger the import needs.
type Loader interface {
	Empty(ctx context.Context) (bool, error)
	Load(ctx context.Context, snap models.Snapshot) error
}

// Import loads the workbook into the ledger when the ledger has no rows
// yet. It reports whether anything was loaded.
func Import(ctx context.Context, path string, dst Loader) (bool, error) {
	empty, err := dst.Empty(ctx)
	if err != nil {
		return false, err
	}
	if !empty {
		return false, nil
	}
	snap, err := Read(path)
	if err != nil {
		return false, err
	}
	if len(snap.Products)+len(snap.Clients)+len(snap.Sales) == 0 {
		return false, nil
	}
	if err := dst.Load(ctx, snap); err != nil {
		return false, fmt.Errorf("load workbook rows: %w", err)
	}
	return true, nil
}

// Writer rewrites the inventory, clients and sales sheets with every
// snapshot. Other sheets in the file are kept.
type Writer struct {
	path string
	log  zerolog.Logger
	mu   sync.Mutex
}

func NewWriter(path string, log zerolog.Logger) *Writer {
	return &Writer{path: path, log: log}
}

func (w *Writer) Snapshot(_ context.Context, snap models.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	f, fresh, err := w.open()
	if err != nil {
		return err
	}
	defer f.Close()

	for _, sh := range sheets {
		if err := replaceSheet(f, sh.name); err != nil {
			return err
		}
		if err := writeRow(f, sh.name, 1, toCells(sh.header)); err != nil {
			return err
		}
	}
	if fresh {
		if err := f.DeleteSheet("Sheet1"); err != nil {
			return fmt.Errorf("drop default sheet: %w", err)
		}
	}

	for i, p := range snap.Products {
		row := []any{p.Code, p.Name, p.Stock, p.Supplier, p.Price.InexactFloat64()}
		if err := writeRow(f, SheetInventory, i+2, row); err != nil {
			return err
		}
	}
	for i, c := range snap.Clients {
		if err := writeRow(f, SheetClients, i+2, []any{c.Code, c.Name, c.Address}); err != nil {
			return err
		}
	}
	for i, s := range snap.Sales {
		row := []any{s.ID, s.Date, s.ProductCode, s.ProductName, s.ClientCode, s.ClientName,
			s.Quantity, s.UnitPrice.InexactFloat64(), s.Total.InexactFloat64(), s.Voided}
		if err := writeRow(f, SheetSales, i+2, row); err != nil {
			return err
		}
	}
	if idx, err := f.GetSheetIndex(SheetInventory); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fmt.Errorf("render workbook: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(w.path), "."+filepath.Base(w.path)+".tmp")
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := os.Rename(tmp, w.path); err != nil {
		return fmt.Errorf("replace workbook: %w", err)
	}
	w.log.Debug().Str("path", w.path).Int("sales", len(snap.Sales)).Msg("workbook snapshot written")
	return nil
}

// open returns the existing workbook, or a new one when the file does not
// exist yet.
func (w *Writer) open() (f *excelize.File, fresh bool, err error) {
	f, err = excelize.OpenFile(w.path)
	if errors.Is(err, fs.ErrNotExist) {
		return excelize.NewFile(), true, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("open workbook: %w", err)
	}
	return f, false, nil
}

// replaceSheet leaves name as an empty sheet, dropping its old contents.
func replaceSheet(f *excelize.File, name string) error {
	idx, err := f.GetSheetIndex(name)
	if err != nil {
		return fmt.Errorf("sheet %s: %w", name, err)
	}
	if idx == -1 {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("create sheet %s: %w", name, err)
		}
		return nil
	}
	old := name + "_old"
	if err := f.SetSheetName(name, old); err != nil {
		return fmt.Errorf("rename sheet %s: %w", name, err)
	}
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("create sheet %s: %w", name, err)
	}
	if err := f.DeleteSheet(old); err != nil {
		return fmt.Errorf("drop sheet %s: %w", old, err)
	}
	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func toCells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

// table gives by-name access to the rows of one sheet; the first row is
// the header and column order is free.
type table struct {
	sheet string
	index map[string]int
	rows  [][]string
}

func readTable(f *excelize.File, sheet string) (*table, error) {
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	t := &table{sheet: sheet, index: map[string]int{}}
	if len(rows) == 0 {
		return t, nil
	}
	for i, h := range rows[0] {
		t.index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, r := range rows[1:] {
		if !blank(r) {
			t.rows = append(t.rows, r)
		}
	}
	return t, nil
}

func (t *table) get(row []string, col string) string {
	i, ok := t.index[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func (t *table) rowErr(n int, col string, err error) error {
	return fmt.Errorf("sheet %s row %d column %s: %w", t.sheet, n+2, col, err)
}

func blank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func readProducts(f *excelize.File) ([]models.Product, error) {
	t, err := readTable(f, SheetInventory)
	if err != nil {
		return nil, err
	}
	var out []models.Product
	for n, r := range t.rows {
		p := models.Product{
			Code:     t.get(r, "codigo"),
			Name:     t.get(r, "nombre"),
			Supplier: t.get(r, "proveedor"),
		}
		if p.Stock, err = parseInt(t.get(r, "existencia")); err != nil {
			return nil, t.rowErr(n, "existencia", err)
		}
		if p.Price, err = parseDecimal(t.get(r, "precio")); err != nil {
			return nil, t.rowErr(n, "precio", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func readClients(f *excelize.File) ([]models.Client, error) {
	t, err := readTable(f, SheetClients)
	if err != nil {
		return nil, err
	}
	var out []models.Client
	for _, r := range t.rows {
		out = append(out, models.Client{
			Code:    t.get(r, "codigo"),
			Name:    t.get(r, "nombre"),
			Address: t.get(r, "direccion"),
		})
	}
	return out, nil
}

func readSales(f *excelize.File) ([]models.Sale, error) {
	t, err := readTable(f, SheetSales)
	if err != nil {
		return nil, err
	}
	date1904 := false
	if props, err := f.GetWorkbookProps(); err == nil && props.Date1904 != nil {
		date1904 = *props.Date1904
	}
	var out []models.Sale
	for n, r := range t.rows {
		s := models.Sale{
			ProductCode: t.get(r, "codigo_producto"),
			ProductName: t.get(r, "producto"),
			ClientCode:  t.get(r, "codigo_cliente"),
			ClientName:  t.get(r, "cliente"),
			Voided:      parseBool(t.get(r, "anulada")),
		}
		if s.Date, err = parseDate(t.get(r, "fecha"), date1904); err != nil {
			return nil, t.rowErr(n, "fecha", err)
		}
		if s.ID, err = parseInt(t.get(r, "id")); err != nil {
			return nil, t.rowErr(n, "id", err)
		}
		if s.Quantity, err = parseInt(t.get(r, "cantidad")); err != nil {
			return nil, t.rowErr(n, "cantidad", err)
		}
		if s.UnitPrice, err = parseDecimal(t.get(r, "precio_unitario")); err != nil {
			return nil, t.rowErr(n, "precio_unitario", err)
		}
		s.Total = s.UnitPrice.Mul(decimal.NewFromInt(int64(s.Quantity)))
		out = append(out, s)
	}
	return out, nil
}

// parseInt accepts integral values written as floats ("10.0").
func parseInt(v string) (int, error) {
	if v == "" {
		return 0, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n, nil
	}
	fv, err := strconv.ParseFloat(v, 64)
	if err != nil || fv != float64(int(fv)) {
		return 0, fmt.Errorf("invalid integer %q", v)
	}
	return int(fv), nil
}

func parseDecimal(v string) (decimal.Decimal, error) {
	if v == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid number %q", v)
	}
	return d, nil
}

var dateLayouts = []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339}

// parseDate accepts text dates and Excel serial dates, returning
// YYYY-MM-DD.
func parseDate(v string, date1904 bool) (string, error) {
	if v == "" {
		return "", nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.Format("2006-01-02"), nil
		}
	}
	serial, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", v)
	}
	t, err := excelize.ExcelDateToTime(serial, date1904)
	if err != nil {
		return "", fmt.Errorf("invalid date %q", v)
	}
	return t.Format("2006-01-02"), nil
}

func parseBool(v string) bool {
	switch strings.ToLower(v) {
	case "1", "true", "si", "sí", "x", "yes":
		return true
	}
	return false
}

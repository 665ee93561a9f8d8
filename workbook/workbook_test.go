package workbook

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"classroom-tools/models"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func sampleSnapshot() models.Snapshot {
	return models.Snapshot{
		Products: []models.Product{
			{Code: "P1", Name: "Notebook", Stock: 6, Supplier: "Acme", Price: decimal.RequireFromString("2.5")},
			{Code: "P2", Name: "Pencil", Stock: 0, Price: decimal.RequireFromString("0.75")},
		},
		Clients: []models.Client{{Code: "C1", Name: "Ana Torres", Address: "Calle 1"}},
		Sales: []models.Sale{
			{ID: 1, Date: "2026-03-14", ProductCode: "P1", ProductName: "Notebook", ClientCode: "C1", ClientName: "Ana Torres",
				Quantity: 4, UnitPrice: decimal.RequireFromString("2.5"), Total: decimal.RequireFromString("10")},
			{ID: 2, Date: "2026-03-15", ProductCode: "P2", ProductName: "Pencil", ClientCode: "C1", ClientName: "Ana Torres",
				Quantity: 3, UnitPrice: decimal.RequireFromString("0.75"), Total: decimal.RequireFromString("2.25"), Voided: true},
		},
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ventas.xlsx")
	w := NewWriter(path, zerolog.Nop())
	want := sampleSnapshot()

	if err := w.Snapshot(context.Background(), want); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	got, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if len(got.Products) != 2 || len(got.Clients) != 1 || len(got.Sales) != 2 {
		t.Fatalf("counts = %d/%d/%d", len(got.Products), len(got.Clients), len(got.Sales))
	}
	p := got.Products[0]
	if p.Code != "P1" || p.Name != "Notebook" || p.Stock != 6 || p.Supplier != "Acme" || !p.Price.Equal(want.Products[0].Price) {
		t.Fatalf("product = %+v", p)
	}
	if got.Clients[0].Address != "Calle 1" {
		t.Fatalf("client = %+v", got.Clients[0])
	}
	s := got.Sales[1]
	if s.ID != 2 || !s.Voided || s.Quantity != 3 || !s.Total.Equal(decimal.RequireFromString("2.25")) || s.Date != "2026-03-15" {
		t.Fatalf("sale = %+v", s)
	}
	if got.Sales[0].Voided {
		t.Fatal("first sale should not be voided")
	}

	// a second snapshot replaces the sheets rather than appending
	want.Sales = want.Sales[:1]
	if err := w.Snapshot(context.Background(), want); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}
	got, err = Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(got.Sales) != 1 {
		t.Fatalf("sales after rewrite = %d, want 1", len(got.Sales))
	}
}

func TestReadRecreatesMissingSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ventas.xlsx")

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SheetInventory); err != nil {
		t.Fatalf("rename: %v", err)
	}
	rows := [][]any{
		{"codigo", "nombre", "existencia", "proveedor", "precio"},
		{"A-1", "Ruler", 12, "Acme", 1.2},
		{},
	}
	for i, r := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(SheetInventory, cell, &r); err != nil {
			t.Fatalf("set row: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.Close()

	snap, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(snap.Products) != 1 || snap.Products[0].Stock != 12 {
		t.Fatalf("products = %+v", snap.Products)
	}
	if len(snap.Clients) != 0 || len(snap.Sales) != 0 {
		t.Fatalf("clients/sales = %+v / %+v", snap.Clients, snap.Sales)
	}

	reopened, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	for _, name := range []string{SheetClients, SheetSales} {
		idx, err := reopened.GetSheetIndex(name)
		if err != nil || idx == -1 {
			t.Fatalf("sheet %s missing after read (idx=%d, err=%v)", name, idx, err)
		}
		header, err := reopened.GetRows(name)
		if err != nil || len(header) != 1 || header[0][0] != "codigo" && header[0][0] != "id" {
			t.Fatalf("sheet %s header = %v (err=%v)", name, header, err)
		}
	}
}

func TestSnapshotKeepsOtherSheets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ventas.xlsx")
	w := NewWriter(path, zerolog.Nop())
	if err := w.Snapshot(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := f.NewSheet("Notas"); err != nil {
		t.Fatalf("new sheet: %v", err)
	}
	if err := f.SetCellValue("Notas", "A1", "revisar precios"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.Close()

	snap := sampleSnapshot()
	snap.Sales = snap.Sales[:1]
	if err := w.Snapshot(context.Background(), snap); err != nil {
		t.Fatalf("second snapshot: %v", err)
	}

	f, err = excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer f.Close()
	note, err := f.GetCellValue("Notas", "A1")
	if err != nil || note != "revisar precios" {
		t.Fatalf("Notas!A1 = %q (err=%v)", note, err)
	}
	rows, err := f.GetRows(SheetSales)
	if err != nil || len(rows) != 2 {
		t.Fatalf("sales rows = %d (err=%v), want header + 1", len(rows), err)
	}
	if got := len(f.GetSheetList()); got != 4 {
		t.Fatalf("sheets = %v, want 4", f.GetSheetList())
	}
}

func TestReadExcelDates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ventas.xlsx")
	if err := NewWriter(path, zerolog.Nop()).Snapshot(context.Background(), sampleSnapshot()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.SetCellValue(SheetSales, "B2", time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set date: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.Close()

	snap, err := Read(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if snap.Sales[0].Date != "2026-03-14" || snap.Sales[1].Date != "2026-03-15" {
		t.Fatalf("dates = %q, %q", snap.Sales[0].Date, snap.Sales[1].Date)
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2026-03-14", "2026-03-14", true},
		{"2026-03-14 00:00:00", "2026-03-14", true},
		{"46095", "2026-03-14", true},
		{"46095.5", "2026-03-14", true},
		{"", "", true},
		{"14/03/2026", "", false},
	}
	for _, tt := range tests {
		got, err := parseDate(tt.in, false)
		if (err == nil) != tt.ok || got != tt.want {
			t.Fatalf("parseDate(%q) = %q, %v; want %q, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}

func TestReadMissingFile(t *testing.T) {
	snap, err := Read(filepath.Join(t.TempDir(), "none.xlsx"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(snap.Products) != 0 {
		t.Fatalf("snap = %+v", snap)
	}
}

func TestReadRejectsBadNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ventas.xlsx")
	snap := sampleSnapshot()
	if err := NewWriter(path, zerolog.Nop()).Snapshot(context.Background(), snap); err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := f.SetCellValue(SheetInventory, "C2", "many"); err != nil {
		t.Fatalf("set cell: %v", err)
	}
	if err := f.Save(); err != nil {
		t.Fatalf("save: %v", err)
	}
	f.Close()

	if _, err := Read(path); err == nil {
		t.Fatal("expected parse error")
	}
}

type fakeLoader struct {
	empty  bool
	loaded *models.Snapshot
	err    error
}

func (f *fakeLoader) Empty(context.Context) (bool, error) { return f.empty, nil }

func (f *fakeLoader) Load(_ context.Context, snap models.Snapshot) error {
	if f.err != nil {
		return f.err
	}
	f.loaded = &snap
	return nil
}

func TestImport(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "Ventas.xlsx")
	if err := NewWriter(path, zerolog.Nop()).Snapshot(ctx, sampleSnapshot()); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	dst := &fakeLoader{empty: true}
	ok, err := Import(ctx, path, dst)
	if err != nil || !ok {
		t.Fatalf("import = %v, %v", ok, err)
	}
	if len(dst.loaded.Sales) != 2 {
		t.Fatalf("loaded = %+v", dst.loaded)
	}

	full := &fakeLoader{}
	if ok, err := Import(ctx, path, full); ok || err != nil {
		t.Fatalf("import into non-empty = %v, %v", ok, err)
	}
	if full.loaded != nil {
		t.Fatal("non-empty ledger should not be loaded")
	}

	failing := &fakeLoader{empty: true, err: errors.New("boom")}
	if _, err := Import(ctx, path, failing); err == nil {
		t.Fatal("expected load error")
	}
}

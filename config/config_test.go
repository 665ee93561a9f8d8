package config

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("port = %q, want 8080", cfg.Port)
	}
	if cfg.LowStockThreshold != 5 {
		t.Fatalf("threshold = %d, want 5", cfg.LowStockThreshold)
	}
	if cfg.SMTP.Port != 587 {
		t.Fatalf("smtp port = %d, want 587", cfg.SMTP.Port)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("WORKBOOK_PATH", "Ventas.xlsx")
	t.Setenv("SMTP_USER", "clerk@example.com")
	t.Setenv("SMTP_PASSWORD", "secret")
	t.Setenv("LOW_STOCK_THRESHOLD", "2")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9090" || cfg.WorkbookPath != "Ventas.xlsx" || cfg.LowStockThreshold != 2 {
		t.Fatalf("cfg = %+v", cfg)
	}
	if cfg.SMTP.User != "clerk@example.com" || cfg.SMTP.Password != "secret" {
		t.Fatalf("smtp = %+v", cfg.SMTP)
	}
}

func TestLoadRejectsNegativeThreshold(t *testing.T) {
	t.Setenv("LOW_STOCK_THRESHOLD", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error")
	}
}

func TestInitDBCreatesTables(t *testing.T) {
	db, err := InitDB(filepath.Join(t.TempDir(), "inventory.db"))
	if err != nil {
		t.Fatalf("init db: %v", err)
	}
	defer db.Close()

	for _, table := range []string{"products", "clients", "sales"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s: %v", table, err)
		}
	}

	if _, err := db.Exec(`INSERT INTO products (code, name, stock) VALUES ('P1', 'Pen', -1)`); err == nil {
		t.Fatal("expected check constraint to reject negative stock")
	}
}

func TestNewLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, "warn")
	log.Info().Msg("hidden")
	log.Warn().Msg("shown")
	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Fatalf("log output = %q", buf.String())
	}

	buf.Reset()
	NewLogger(&buf, "bogus").Info().Msg("fallback")
	if !strings.Contains(buf.String(), "fallback") {
		t.Fatalf("log output = %q", buf.String())
	}
}

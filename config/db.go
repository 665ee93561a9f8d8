package config

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// InitDB opens the SQLite ledger at path and creates missing tables.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection serializes every read-modify-write on the ledger.
	db.SetMaxOpenConns(1)

	if err := createTables(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func createTables(db *sql.DB) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}

	productTable := `
		CREATE TABLE IF NOT EXISTS products (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		stock INTEGER NOT NULL DEFAULT 0 CHECK(stock >= 0),
		supplier TEXT NOT NULL DEFAULT '',
		price TEXT NOT NULL DEFAULT '0'     -- decimal string
	);`
	if _, err := tx.Exec(productTable); err != nil {
		tx.Rollback()
		return fmt.Errorf("create products table: %w", err)
	}

	clientTable := `
		CREATE TABLE IF NOT EXISTS clients (
		code TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT ''
	);`
	if _, err := tx.Exec(clientTable); err != nil {
		tx.Rollback()
		return fmt.Errorf("create clients table: %w", err)
	}

	// ids are assigned by the ledger as max(id)+1, not by AUTOINCREMENT
	salesTable := `
		CREATE TABLE IF NOT EXISTS sales (
		id INTEGER PRIMARY KEY,
		sale_date TEXT NOT NULL,            -- YYYY-MM-DD
		product_code TEXT NOT NULL,
		product_name TEXT NOT NULL,
		client_code TEXT NOT NULL,
		client_name TEXT NOT NULL,
		quantity INTEGER NOT NULL CHECK(quantity > 0),
		unit_price TEXT NOT NULL,
		total TEXT NOT NULL,
		voided INTEGER NOT NULL DEFAULT 0
	);`
	if _, err := tx.Exec(salesTable); err != nil {
		tx.Rollback()
		return fmt.Errorf("create sales table: %w", err)
	}

	if _, err := tx.Exec(`CREATE INDEX IF NOT EXISTS idx_sales_date ON sales(sale_date)`); err != nil {
		tx.Rollback()
		return fmt.Errorf("create sales index: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema: %w", err)
	}
	return nil
}

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"classroom-tools/models"

	"github.com/shopspring/decimal"
)

func validateProduct(p *models.Product) error {
	p.Code = strings.TrimSpace(p.Code)
	p.Name = strings.TrimSpace(p.Name)
	p.Supplier = strings.TrimSpace(p.Supplier)
	if p.Code == "" || p.Name == "" {
		return fmt.Errorf("code and name are required: %w", ErrInvalidInput)
	}
	if p.Stock < 0 {
		return fmt.Errorf("stock must be >= 0: %w", ErrInvalidInput)
	}
	if p.Price.IsNegative() {
		return fmt.Errorf("price must be >= 0: %w", ErrInvalidInput)
	}
	return nil
}

func (s *Store) CreateProduct(ctx context.Context, p models.Product) (models.Product, error) {
	if err := validateProduct(&p); err != nil {
		return models.Product{}, err
	}
	err := s.mutate(ctx, "create product", func(tx *sql.Tx) error {
		return insertProduct(ctx, tx, p)
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

func insertProduct(ctx context.Context, tx *sql.Tx, p models.Product) error {
	dup, err := exists(ctx, tx, `SELECT 1 FROM products WHERE code = ?`, p.Code)
	if err != nil {
		return fmt.Errorf("check product code: %w", err)
	}
	if dup {
		return fmt.Errorf("product %q: %w", p.Code, ErrDuplicateCode)
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO products (code, name, stock, supplier, price)
		VALUES (?, ?, ?, ?, ?)
	`, p.Code, p.Name, p.Stock, p.Supplier, p.Price)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]models.Product, error) {
	return listProducts(ctx, s.db)
}

func listProducts(ctx context.Context, q queryer) ([]models.Product, error) {
	rows, err := q.QueryContext(ctx, `SELECT code, name, stock, supplier, price FROM products ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		var p models.Product
		if err := rows.Scan(&p.Code, &p.Name, &p.Stock, &p.Supplier, &p.Price); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, code string) (models.Product, error) {
	return getProduct(ctx, s.db, code)
}

func getProduct(ctx context.Context, q queryer, code string) (models.Product, error) {
	var p models.Product
	err := q.QueryRowContext(ctx, `SELECT code, name, stock, supplier, price FROM products WHERE code = ?`, strings.TrimSpace(code)).
		Scan(&p.Code, &p.Name, &p.Stock, &p.Supplier, &p.Price)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, fmt.Errorf("product %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, code string, u models.ProductUpdate) (models.Product, error) {
	p := models.Product{Code: code, Name: u.Name, Stock: u.Stock, Supplier: u.Supplier, Price: u.Price}
	if err := validateProduct(&p); err != nil {
		return models.Product{}, err
	}
	err := s.mutate(ctx, "update product", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `
			UPDATE products SET name = ?, stock = ?, supplier = ?, price = ?
			WHERE code = ?
		`, p.Name, p.Stock, p.Supplier, p.Price, p.Code)
		if err != nil {
			return fmt.Errorf("update product: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("product %q: %w", p.Code, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return models.Product{}, err
	}
	return p, nil
}

// DeleteProduct refuses while a non-voided sale still holds stock of it.
func (s *Store) DeleteProduct(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	return s.mutate(ctx, "delete product", func(tx *sql.Tx) error {
		if _, err := getProduct(ctx, tx, code); err != nil {
			return err
		}
		active, err := exists(ctx, tx, `SELECT 1 FROM sales WHERE product_code = ? AND voided = 0 LIMIT 1`, code)
		if err != nil {
			return fmt.Errorf("check product sales: %w", err)
		}
		if active {
			return fmt.Errorf("product %q: %w", code, ErrProductInUse)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM products WHERE code = ?`, code); err != nil {
			return fmt.Errorf("delete product: %w", err)
		}
		return nil
	})
}

// LowStock lists products whose stock is below threshold.
func (s *Store) LowStock(ctx context.Context, threshold int) ([]models.LowStockAlert, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, name, stock FROM products
		WHERE stock < ?
		ORDER BY stock, code
	`, threshold)
	if err != nil {
		return nil, fmt.Errorf("low stock: %w", err)
	}
	defer rows.Close()

	alerts := []models.LowStockAlert{}
	for rows.Next() {
		a := models.LowStockAlert{Threshold: threshold}
		if err := rows.Scan(&a.Code, &a.Name, &a.Stock); err != nil {
			return nil, fmt.Errorf("scan low stock: %w", err)
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}

// adjustStock adds delta to the product stock, failing rather than going
// below zero.
func adjustStock(ctx context.Context, tx *sql.Tx, code string, delta int) error {
	res, err := tx.ExecContext(ctx, `
		UPDATE products SET stock = stock + ?
		WHERE code = ? AND stock + ? >= 0
	`, delta, code, delta)
	if err != nil {
		return fmt.Errorf("adjust stock: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		p, err := getProduct(ctx, tx, code)
		if err != nil {
			return err
		}
		return fmt.Errorf("product %q has %d, requested %d: %w", code, p.Stock, -delta, ErrInsufficientStock)
	}
	return nil
}

func decimalFromInt(n int) decimal.Decimal {
	return decimal.NewFromInt(int64(n))
}

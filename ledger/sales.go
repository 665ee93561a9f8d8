package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"classroom-tools/models"
)

const saleColumns = `id, sale_date, product_code, product_name, client_code, client_name, quantity, unit_price, total, voided`

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern matches v literally anywhere in a LIKE comparison.
func containsPattern(v string) string {
	return "%" + likeEscaper.Replace(v) + "%"
}

func scanSale(row interface{ Scan(...any) error }, s *models.Sale) error {
	return row.Scan(&s.ID, &s.Date, &s.ProductCode, &s.ProductName, &s.ClientCode, &s.ClientName,
		&s.Quantity, &s.UnitPrice, &s.Total, &s.Voided)
}

func insertSale(ctx context.Context, tx *sql.Tx, s models.Sale) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sales (`+saleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, s.ID, s.Date, s.ProductCode, s.ProductName, s.ClientCode, s.ClientName,
		s.Quantity, s.UnitPrice, s.Total, s.Voided)
	if err != nil {
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

func (s *Store) normalizeDate(date string) (string, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return s.now().Format(dateLayout), nil
	}
	if _, err := time.Parse(dateLayout, date); err != nil {
		return "", fmt.Errorf("date %q must be YYYY-MM-DD: %w", date, ErrInvalidInput)
	}
	return date, nil
}

// CreateSale records a sale with the next id (max id + 1, starting at 1)
// and takes the quantity out of the product stock.
func (s *Store) CreateSale(ctx context.Context, in models.SaleInput) (models.Sale, error) {
	if in.Quantity <= 0 {
		return models.Sale{}, fmt.Errorf("quantity must be > 0: %w", ErrInvalidInput)
	}
	if in.UnitPrice != nil && in.UnitPrice.IsNegative() {
		return models.Sale{}, fmt.Errorf("unit price must be >= 0: %w", ErrInvalidInput)
	}
	date, err := s.normalizeDate(in.Date)
	if err != nil {
		return models.Sale{}, err
	}

	var sale models.Sale
	err = s.mutate(ctx, "create sale", func(tx *sql.Tx) error {
		product, err := getProduct(ctx, tx, in.ProductCode)
		if err != nil {
			return err
		}
		client, err := getClient(ctx, tx, in.ClientCode)
		if err != nil {
			return err
		}
		if product.Stock < in.Quantity {
			return fmt.Errorf("product %q has %d, requested %d: %w", product.Code, product.Stock, in.Quantity, ErrInsufficientStock)
		}

		var id int
		if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM sales`).Scan(&id); err != nil {
			return fmt.Errorf("next sale id: %w", err)
		}

		price := product.Price
		if in.UnitPrice != nil {
			price = *in.UnitPrice
		}
		sale = models.Sale{
			ID:          id,
			Date:        date,
			ProductCode: product.Code,
			ProductName: product.Name,
			ClientCode:  client.Code,
			ClientName:  client.Name,
			Quantity:    in.Quantity,
			UnitPrice:   price,
			Total:       price.Mul(decimalFromInt(in.Quantity)),
		}
		if err := adjustStock(ctx, tx, product.Code, -in.Quantity); err != nil {
			return err
		}
		return insertSale(ctx, tx, sale)
	})
	if err != nil {
		return models.Sale{}, err
	}
	s.log.Info().Int("sale_id", sale.ID).Str("product", sale.ProductCode).Int("quantity", sale.Quantity).Msg("sale created")
	return sale, nil
}

func (s *Store) GetSale(ctx context.Context, id int) (models.Sale, error) {
	return getSale(ctx, s.db, id)
}

func getSale(ctx context.Context, q queryer, id int) (models.Sale, error) {
	var sale models.Sale
	err := scanSale(q.QueryRowContext(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = ?`, id), &sale)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Sale{}, fmt.Errorf("sale %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return models.Sale{}, fmt.Errorf("get sale: %w", err)
	}
	return sale, nil
}

func (s *Store) ListSales(ctx context.Context, f models.SaleFilter) ([]models.Sale, error) {
	return listSales(ctx, s.db, f)
}

func listSales(ctx context.Context, q queryer, f models.SaleFilter) ([]models.Sale, error) {
	var (
		where []string
		args  []any
	)
	if f.From != "" {
		where = append(where, "sale_date >= ?")
		args = append(args, f.From)
	}
	if f.To != "" {
		where = append(where, "sale_date <= ?")
		args = append(args, f.To)
	}
	if f.Client != "" {
		where = append(where, `client_name LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(f.Client))
	}
	if f.Product != "" {
		where = append(where, `product_name LIKE ? ESCAPE '\'`)
		args = append(args, containsPattern(f.Product))
	}
	switch f.Status {
	case "":
	case models.SaleStatusActive:
		where = append(where, "voided = 0")
	case models.SaleStatusVoided:
		where = append(where, "voided = 1")
	default:
		return nil, fmt.Errorf("status %q: %w", f.Status, ErrInvalidInput)
	}

	query := `SELECT ` + saleColumns + ` FROM sales`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	sales := []models.Sale{}
	for rows.Next() {
		var sale models.Sale
		if err := scanSale(rows, &sale); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, sale)
	}
	return sales, rows.Err()
}

// UpdateSale changes a non-voided sale. Stock moves by the quantity delta:
// raising the quantity takes more stock, lowering it gives stock back.
func (s *Store) UpdateSale(ctx context.Context, id int, u models.SaleUpdate) (models.Sale, error) {
	if u.Quantity <= 0 {
		return models.Sale{}, fmt.Errorf("quantity must be > 0: %w", ErrInvalidInput)
	}
	if u.UnitPrice != nil && u.UnitPrice.IsNegative() {
		return models.Sale{}, fmt.Errorf("unit price must be >= 0: %w", ErrInvalidInput)
	}
	if u.Date != "" {
		if _, err := time.Parse(dateLayout, u.Date); err != nil {
			return models.Sale{}, fmt.Errorf("date %q must be YYYY-MM-DD: %w", u.Date, ErrInvalidInput)
		}
	}

	var sale models.Sale
	err := s.mutate(ctx, "update sale", func(tx *sql.Tx) error {
		var err error
		sale, err = getSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if sale.Voided {
			return fmt.Errorf("sale %d: %w", id, ErrSaleVoided)
		}

		if delta := u.Quantity - sale.Quantity; delta != 0 {
			if err := adjustStock(ctx, tx, sale.ProductCode, -delta); err != nil {
				return err
			}
		}
		if u.ClientCode != "" && u.ClientCode != sale.ClientCode {
			client, err := getClient(ctx, tx, u.ClientCode)
			if err != nil {
				return err
			}
			sale.ClientCode, sale.ClientName = client.Code, client.Name
		}
		if u.UnitPrice != nil {
			sale.UnitPrice = *u.UnitPrice
		}
		if u.Date != "" {
			sale.Date = u.Date
		}
		sale.Quantity = u.Quantity
		sale.Total = sale.UnitPrice.Mul(decimalFromInt(sale.Quantity))

		_, err = tx.ExecContext(ctx, `
			UPDATE sales SET sale_date = ?, client_code = ?, client_name = ?, quantity = ?, unit_price = ?, total = ?
			WHERE id = ?
		`, sale.Date, sale.ClientCode, sale.ClientName, sale.Quantity, sale.UnitPrice, sale.Total, sale.ID)
		if err != nil {
			return fmt.Errorf("update sale: %w", err)
		}
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}
	return sale, nil
}

// VoidSale marks the sale inactive and returns its quantity to stock.
// Voiding twice fails with ErrSaleVoided.
func (s *Store) VoidSale(ctx context.Context, id int) (models.Sale, error) {
	var sale models.Sale
	err := s.mutate(ctx, "void sale", func(tx *sql.Tx) error {
		var err error
		sale, err = getSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if sale.Voided {
			return fmt.Errorf("sale %d: %w", id, ErrSaleVoided)
		}
		if err := adjustStock(ctx, tx, sale.ProductCode, sale.Quantity); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE sales SET voided = 1 WHERE id = ?`, id); err != nil {
			return fmt.Errorf("void sale: %w", err)
		}
		sale.Voided = true
		return nil
	})
	if err != nil {
		return models.Sale{}, err
	}
	s.log.Info().Int("sale_id", id).Int("restored", sale.Quantity).Msg("sale voided")
	return sale, nil
}

// DeleteSale removes the sale, returning its quantity to stock first
// unless it was already voided.
func (s *Store) DeleteSale(ctx context.Context, id int) error {
	return s.mutate(ctx, "delete sale", func(tx *sql.Tx) error {
		sale, err := getSale(ctx, tx, id)
		if err != nil {
			return err
		}
		if !sale.Voided {
			if err := adjustStock(ctx, tx, sale.ProductCode, sale.Quantity); err != nil {
				return err
			}
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM sales WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete sale: %w", err)
		}
		return nil
	})
}

// MonthlySummary totals the non-voided sales of month (YYYY-MM) per product.
func (s *Store) MonthlySummary(ctx context.Context, month string) ([]models.SalesSummary, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("month %q must be YYYY-MM: %w", month, ErrInvalidInput)
	}
	end := start.AddDate(0, 1, -1)

	sales, err := s.ListSales(ctx, models.SaleFilter{
		From:   start.Format(dateLayout),
		To:     end.Format(dateLayout),
		Status: models.SaleStatusActive,
	})
	if err != nil {
		return nil, err
	}

	byCode := map[string]*models.SalesSummary{}
	for _, sale := range sales {
		sum, ok := byCode[sale.ProductCode]
		if !ok {
			sum = &models.SalesSummary{ProductCode: sale.ProductCode, ProductName: sale.ProductName}
			byCode[sale.ProductCode] = sum
		}
		sum.SaleCount++
		sum.Quantity += sale.Quantity
		sum.Revenue = sum.Revenue.Add(sale.Total)
	}

	out := make([]models.SalesSummary, 0, len(byCode))
	for _, sum := range byCode {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductCode < out[j].ProductCode })
	return out, nil
}

// Dashboard gathers the landing counts. Top products rank the quantity of
// all non-voided sales.
func (s *Store) Dashboard(ctx context.Context, lowStockThreshold int) (models.DashboardSummary, error) {
	var d models.DashboardSummary
	today := s.now().Format(dateLayout)

	err := s.db.QueryRowContext(ctx, `
		SELECT
			(SELECT COUNT(*) FROM products),
			(SELECT COUNT(*) FROM clients),
			(SELECT COUNT(*) FROM products WHERE stock < ?),
			(SELECT COUNT(*) FROM sales WHERE sale_date = ? AND voided = 0)
	`, lowStockThreshold, today).Scan(&d.ProductCount, &d.ClientCount, &d.LowStockCount, &d.SalesToday)
	if err != nil {
		return models.DashboardSummary{}, fmt.Errorf("dashboard counts: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT product_name, SUM(quantity) AS qty
		FROM sales WHERE voided = 0
		GROUP BY product_code
		ORDER BY qty DESC, product_name
		LIMIT 5
	`)
	if err != nil {
		return models.DashboardSummary{}, fmt.Errorf("top products: %w", err)
	}
	defer rows.Close()

	d.TopProducts = []models.TopProduct{}
	for rows.Next() {
		var tp models.TopProduct
		if err := rows.Scan(&tp.Name, &tp.Quantity); err != nil {
			return models.DashboardSummary{}, fmt.Errorf("scan top product: %w", err)
		}
		d.TopProducts = append(d.TopProducts, tp)
	}
	return d, rows.Err()
}

// Package ledger keeps products, clients and sales in SQLite and enforces
// the stock rules: stock never goes negative, a sale takes its quantity
// out of stock and voiding or deleting it puts the quantity back once.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"classroom-tools/models"

	"github.com/rs/zerolog"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateCode     = errors.New("code already exists")
	ErrInvalidInput      = errors.New("invalid input")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrSaleVoided        = errors.New("sale is voided")
	ErrProductInUse      = errors.New("product has active sales")
	ErrStoreNotEmpty     = errors.New("ledger is not empty")
)

const dateLayout = "2006-01-02"

// Snapshotter receives the full tables after every committed mutation.
type Snapshotter interface {
	Snapshot(ctx context.Context, snap models.Snapshot) error
}

type Store struct {
	// mu orders mutations together with their exports.
	mu   sync.Mutex
	db   *sql.DB
	log  zerolog.Logger
	snap Snapshotter
	now  func() time.Time
}

type Option func(*Store)

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func WithSnapshotter(snap Snapshotter) Option {
	return func(s *Store) { s.snap = snap }
}

// WithClock overrides the clock used for default sale dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

func New(db *sql.DB, opts ...Option) *Store {
	s := &Store{db: db, log: zerolog.Nop(), now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// mutate runs fn in one transaction and exports the tables as they stand
// at commit. Mutations and exports happen in the same order. A failed
// export is logged; the committed change stands.
func (s *Store) mutate(ctx context.Context, op string, fn func(tx *sql.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	var (
		snap    models.Snapshot
		snapErr error
	)
	if s.snap != nil {
		snap, snapErr = readSnapshot(ctx, tx)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}
	s.log.Debug().Str("op", op).Msg("ledger updated")

	if s.snap == nil {
		return nil
	}
	if snapErr == nil {
		snapErr = s.snap.Snapshot(ctx, snap)
	}
	if snapErr != nil {
		s.log.Error().Err(snapErr).Str("op", op).Msg("snapshot export failed")
	}
	return nil
}

// Snapshot reads every table.
func (s *Store) Snapshot(ctx context.Context) (models.Snapshot, error) {
	return readSnapshot(ctx, s.db)
}

func readSnapshot(ctx context.Context, q queryer) (models.Snapshot, error) {
	var snap models.Snapshot
	var err error
	if snap.Products, err = listProducts(ctx, q); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Clients, err = listClients(ctx, q); err != nil {
		return models.Snapshot{}, err
	}
	if snap.Sales, err = listSales(ctx, q, models.SaleFilter{}); err != nil {
		return models.Snapshot{}, err
	}
	return snap, nil
}

// Empty reports whether no table holds any row.
func (s *Store) Empty(ctx context.Context) (bool, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `
		SELECT (SELECT COUNT(*) FROM products) + (SELECT COUNT(*) FROM clients) + (SELECT COUNT(*) FROM sales)
	`).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("count rows: %w", err)
	}
	return n == 0, nil
}

// Load fills an empty ledger with snap, validating every row. Sales are
// taken as already reflected in the product stock.
func (s *Store) Load(ctx context.Context, snap models.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	empty, err := s.Empty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return ErrStoreNotEmpty
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("load: begin: %w", err)
	}
	defer tx.Rollback()

	for _, p := range snap.Products {
		if err := validateProduct(&p); err != nil {
			return err
		}
		if err := insertProduct(ctx, tx, p); err != nil {
			return err
		}
	}
	for _, c := range snap.Clients {
		if err := validateClient(&c); err != nil {
			return err
		}
		if err := insertClient(ctx, tx, c); err != nil {
			return err
		}
	}
	for _, sale := range snap.Sales {
		if sale.ID <= 0 || sale.Quantity <= 0 || sale.UnitPrice.IsNegative() {
			return fmt.Errorf("sale %d: %w", sale.ID, ErrInvalidInput)
		}
		if _, err := time.Parse(dateLayout, sale.Date); err != nil {
			return fmt.Errorf("sale %d date %q: %w", sale.ID, sale.Date, ErrInvalidInput)
		}
		sale.Total = sale.UnitPrice.Mul(decimalFromInt(sale.Quantity))
		if err := insertSale(ctx, tx, sale); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("load: commit: %w", err)
	}
	s.log.Info().
		Int("products", len(snap.Products)).
		Int("clients", len(snap.Clients)).
		Int("sales", len(snap.Sales)).
		Msg("ledger loaded")
	return nil
}

func exists(ctx context.Context, q queryer, query string, args ...any) (bool, error) {
	var one int
	err := q.QueryRowContext(ctx, query, args...).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

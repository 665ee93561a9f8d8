package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"classroom-tools/models"
)

func validateClient(c *models.Client) error {
	c.Code = strings.TrimSpace(c.Code)
	c.Name = strings.TrimSpace(c.Name)
	c.Address = strings.TrimSpace(c.Address)
	if c.Code == "" || c.Name == "" {
		return fmt.Errorf("code and name are required: %w", ErrInvalidInput)
	}
	return nil
}

func (s *Store) CreateClient(ctx context.Context, c models.Client) (models.Client, error) {
	if err := validateClient(&c); err != nil {
		return models.Client{}, err
	}
	err := s.mutate(ctx, "create client", func(tx *sql.Tx) error {
		return insertClient(ctx, tx, c)
	})
	if err != nil {
		return models.Client{}, err
	}
	return c, nil
}

func insertClient(ctx context.Context, tx *sql.Tx, c models.Client) error {
	dup, err := exists(ctx, tx, `SELECT 1 FROM clients WHERE code = ?`, c.Code)
	if err != nil {
		return fmt.Errorf("check client code: %w", err)
	}
	if dup {
		return fmt.Errorf("client %q: %w", c.Code, ErrDuplicateCode)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO clients (code, name, address) VALUES (?, ?, ?)`, c.Code, c.Name, c.Address); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (s *Store) ListClients(ctx context.Context) ([]models.Client, error) {
	return listClients(ctx, s.db)
}

func listClients(ctx context.Context, q queryer) ([]models.Client, error) {
	rows, err := q.QueryContext(ctx, `SELECT code, name, address FROM clients ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("list clients: %w", err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(&c.Code, &c.Name, &c.Address); err != nil {
			return nil, fmt.Errorf("scan client: %w", err)
		}
		clients = append(clients, c)
	}
	return clients, rows.Err()
}

func (s *Store) GetClient(ctx context.Context, code string) (models.Client, error) {
	return getClient(ctx, s.db, code)
}

func getClient(ctx context.Context, q queryer, code string) (models.Client, error) {
	var c models.Client
	err := q.QueryRowContext(ctx, `SELECT code, name, address FROM clients WHERE code = ?`, strings.TrimSpace(code)).
		Scan(&c.Code, &c.Name, &c.Address)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, fmt.Errorf("client %q: %w", code, ErrNotFound)
	}
	if err != nil {
		return models.Client{}, fmt.Errorf("get client: %w", err)
	}
	return c, nil
}

func (s *Store) UpdateClient(ctx context.Context, code string, u models.ClientUpdate) (models.Client, error) {
	c := models.Client{Code: code, Name: u.Name, Address: u.Address}
	if err := validateClient(&c); err != nil {
		return models.Client{}, err
	}
	err := s.mutate(ctx, "update client", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `UPDATE clients SET name = ?, address = ? WHERE code = ?`, c.Name, c.Address, c.Code)
		if err != nil {
			return fmt.Errorf("update client: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("client %q: %w", c.Code, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return models.Client{}, err
	}
	return c, nil
}

// DeleteClient removes the client; recorded sales keep the client name.
func (s *Store) DeleteClient(ctx context.Context, code string) error {
	code = strings.TrimSpace(code)
	return s.mutate(ctx, "delete client", func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE code = ?`, code)
		if err != nil {
			return fmt.Errorf("delete client: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("client %q: %w", code, ErrNotFound)
		}
		return nil
	})
}

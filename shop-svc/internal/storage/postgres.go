package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"streetqr/shop-svc/internal/domain"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

type PostgresRepository struct {
	DB *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{DB: db}
}

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS shop_accounts (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash BYTEA NOT NULL,
		menu          JSONB NOT NULL DEFAULT '{}'::jsonb,
		shop_name     TEXT NOT NULL DEFAULT '',
		open_hours    TEXT NOT NULL DEFAULT '',
		address       TEXT NOT NULL DEFAULT '',
		logo          TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            TEXT PRIMARY KEY,
		shop_id       TEXT NOT NULL,
		customer_name TEXT NOT NULL,
		table_number  TEXT NOT NULL,
		items         JSONB NOT NULL,
		total         NUMERIC(12, 2) NOT NULL,
		status        TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending', 'completed')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS orders_shop_created_idx ON orders (shop_id, created_at DESC)`,
}

// EnsureSchema creates the tables and indexes if they are missing.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := r.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (r *PostgresRepository) CreateAccount(ctx context.Context, account *domain.ShopAccount) error {
	menu, err := json.Marshal(account.Menu)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO shop_accounts (id, email, password_hash, menu, shop_name, open_hours, address, logo, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		account.ID, account.Email, account.PasswordHash, menu,
		account.Metadata.ShopName, account.Metadata.OpenHours, account.Metadata.Address, account.Metadata.Logo,
		account.CreatedAt, account.UpdatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return domain.ErrDuplicateAccount
		}
		return err
	}
	return nil
}

func (r *PostgresRepository) GetAccountByEmail(ctx context.Context, email string) (*domain.ShopAccount, error) {
	var (
		account domain.ShopAccount
		menu    []byte
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, menu, shop_name, open_hours, address, logo, created_at, updated_at
		FROM shop_accounts
		WHERE email = $1`, email).
		Scan(&account.ID, &account.Email, &account.PasswordHash, &menu,
			&account.Metadata.ShopName, &account.Metadata.OpenHours, &account.Metadata.Address, &account.Metadata.Logo,
			&account.CreatedAt, &account.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if account.Menu, err = decodeMenu(menu); err != nil {
		return nil, err
	}
	return &account, nil
}

// ReplaceMenu writes menu and metadata in one statement so readers see
// either the old or the new snapshot.
func (r *PostgresRepository) ReplaceMenu(ctx context.Context, shopID string, menu domain.Menu, meta domain.ShopMetadata) error {
	payload, err := json.Marshal(menu)
	if err != nil {
		return err
	}
	result, err := r.DB.ExecContext(ctx, `
		UPDATE shop_accounts
		SET menu = $2, shop_name = $3, open_hours = $4, address = $5, logo = $6, updated_at = now()
		WHERE id = $1`,
		shopID, payload, meta.ShopName, meta.OpenHours, meta.Address, meta.Logo)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) GetMenu(ctx context.Context, shopID string) (*domain.ShopMenu, error) {
	shop := domain.ShopMenu{ShopID: shopID}
	var menu []byte
	err := r.DB.QueryRowContext(ctx, `
		SELECT menu, shop_name, open_hours, address, logo
		FROM shop_accounts
		WHERE id = $1`, shopID).
		Scan(&menu, &shop.Metadata.ShopName, &shop.Metadata.OpenHours, &shop.Metadata.Address, &shop.Metadata.Logo)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if shop.Menu, err = decodeMenu(menu); err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *PostgresRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	items, err := json.Marshal(order.Items)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO orders (id, shop_id, customer_name, table_number, items, total, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		order.ID, order.ShopID, order.CustomerName, order.TableNumber,
		items, float64(order.Total), string(order.Status), order.CreatedAt)
	return err
}

const orderColumns = `id, shop_id, customer_name, table_number, items, total, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	var (
		order  domain.Order
		items  []byte
		total  float64
		status string
	)
	if err := row.Scan(&order.ID, &order.ShopID, &order.CustomerName, &order.TableNumber,
		&items, &total, &status, &order.CreatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &order.Items); err != nil {
		return nil, fmt.Errorf("decode items of order %s: %w", order.ID, err)
	}
	order.Total = domain.Price(total)
	order.Status = domain.OrderStatus(status)
	return &order, nil
}

func (r *PostgresRepository) GetOrder(ctx context.Context, orderID string) (*domain.Order, error) {
	order, err := scanOrder(r.DB.QueryRowContext(ctx,
		`SELECT `+orderColumns+` FROM orders WHERE id = $1`, orderID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return order, err
}

func (r *PostgresRepository) ListOrders(ctx context.Context, shopID string) ([]domain.Order, error) {
	rows, err := r.DB.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE shop_id = $1
		ORDER BY created_at DESC, id DESC`, shopID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []domain.Order{}
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *order)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, orderID string, from, next domain.OrderStatus) (bool, error) {
	result, err := r.DB.ExecContext(ctx, `
		UPDATE orders SET status = $3
		WHERE id = $1 AND status = $2`,
		orderID, string(from), string(next))
	if err != nil {
		return false, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

func decodeMenu(raw []byte) (domain.Menu, error) {
	menu := domain.Menu{}
	if len(raw) == 0 {
		return menu, nil
	}
	if err := json.Unmarshal(raw, &menu); err != nil {
		return nil, fmt.Errorf("decode menu: %w", err)
	}
	return menu, nil
}

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/domain/repository"
	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Schema creates the transactions table.
// created_at holds Unix nanoseconds so that ORDER BY sorts chronologically.
const Schema = `
CREATE TABLE IF NOT EXISTS transactions (
    id TEXT PRIMARY KEY,
    description TEXT NOT NULL,
    type TEXT NOT NULL CHECK (type IN ('income', 'outcome')),
    category TEXT NOT NULL,
    price REAL NOT NULL CHECK (price > 0),
    created_at INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_transactions_created_at
    ON transactions(created_at);
`

// OpenSQLite opens the database file, creating its directory and the schema if needed
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000", dbPath)
	sqlDB, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := sqlDB.Exec(Schema); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return sqlDB, nil
}

// SQLiteTransactionRepository implements the transaction repository interface using SQLite
type SQLiteTransactionRepository struct {
	db *sql.DB
}

// NewSQLiteTransactionRepository wraps an opened database
func NewSQLiteTransactionRepository(db *sql.DB) *SQLiteTransactionRepository {
	return &SQLiteTransactionRepository{db: db}
}

// Store saves a transaction and returns its ID
func (r *SQLiteTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (id, description, type, category, price, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.Description, tx.Type.String(), tx.Category, tx.Price, tx.CreatedAt.UnixNano(),
	)
	if err != nil {
		return "", fmt.Errorf("failed to store transaction: %w", err)
	}

	return tx.ID, nil
}

// FindByID retrieves a transaction by its unique identifier
func (r *SQLiteTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, description, type, category, price, created_at
		 FROM transactions WHERE id = ?`, id)

	tx, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrTransactionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve transaction: %w", err)
	}

	return tx, nil
}

// List returns the transactions whose text fields contain the query, newest first
func (r *SQLiteTransactionRepository) List(ctx context.Context, query entity.SearchQuery) ([]entity.Transaction, error) {
	q := strings.TrimSpace(query.Query)
	pattern := "%" + escapeLike(strings.ToLower(q)) + "%"

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, description, type, category, price, created_at
		 FROM transactions
		 WHERE ? = ''
		    OR lower(description) LIKE ? ESCAPE '\'
		    OR lower(category) LIKE ? ESCAPE '\'
		    OR type LIKE ? ESCAPE '\'
		 ORDER BY created_at DESC`,
		q, pattern, pattern, pattern,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	list := []entity.Transaction{}
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		list = append(list, *tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return list, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTransaction(row rowScanner) (*entity.Transaction, error) {
	var (
		tx        entity.Transaction
		typ       string
		createdAt int64
	)

	if err := row.Scan(&tx.ID, &tx.Description, &typ, &tx.Category, &tx.Price, &createdAt); err != nil {
		return nil, err
	}

	parsed, err := entity.ParseTransactionType(typ)
	if err != nil {
		return nil, err
	}
	tx.Type = parsed
	tx.CreatedAt = time.Unix(0, createdAt).UTC()

	return &tx, nil
}

// escapeLike escapes the LIKE wildcards so the query matches literally
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

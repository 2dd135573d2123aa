// Package repository internal/domain/repository/transaction_repository.go
package repository

import (
	"context"
	"errors"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
)

// ErrTransactionNotFound is returned by every backend when an ID is unknown
var ErrTransactionNotFound = errors.New("transaction not found")

// TransactionRepository defines the interface for transaction storage
type TransactionRepository interface {
	// Store saves a transaction and returns its ID
	Store(ctx context.Context, transaction *entity.Transaction) (string, error)

	// FindByID retrieves a transaction by its unique identifier
	FindByID(ctx context.Context, id string) (*entity.Transaction, error)

	// List returns the transactions matching the query, newest first
	List(ctx context.Context, query entity.SearchQuery) ([]entity.Transaction, error)
}

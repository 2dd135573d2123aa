package service

import (
	"context"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
)

// TransactionStore is the collaborator the transaction forms submit to
type TransactionStore interface {
	// CreateTransaction persists a validated draft
	CreateTransaction(ctx context.Context, draft entity.TransactionDraft) error

	// FetchTransactions reloads the transaction list filtered by query
	FetchTransactions(ctx context.Context, query string) error
}

// internal/mocks/mocks.go
package mocks

import (
	"context"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/stretchr/testify/mock"
)

// MockTransactionRepository mocks the TransactionRepository interface
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Store(ctx context.Context, tx *entity.Transaction) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

func (m *MockTransactionRepository) FindByID(ctx context.Context, id string) (*entity.Transaction, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) List(ctx context.Context, query entity.SearchQuery) ([]entity.Transaction, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Transaction), args.Error(1)
}

// MockTransactionStore mocks the TransactionStore collaborator of the forms
type MockTransactionStore struct {
	mock.Mock
}

func (m *MockTransactionStore) CreateTransaction(ctx context.Context, draft entity.TransactionDraft) error {
	args := m.Called(ctx, draft)
	return args.Error(0)
}

func (m *MockTransactionStore) FetchTransactions(ctx context.Context, query string) error {
	args := m.Called(ctx, query)
	return args.Error(0)
}

package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/domain/repository"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/middleware"
)

// TransactionService is the shared transaction store behind both forms.
// It persists through a repository and keeps the list the last fetch produced.
type TransactionService struct {
	repo   repository.TransactionRepository
	logger logger.Logger
	now    func() time.Time

	mu           sync.RWMutex
	transactions []entity.Transaction
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo repository.TransactionRepository, log logger.Logger) *TransactionService {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionService{
		repo:   repo,
		logger: log,
		now:    time.Now,
	}
}

// CreateTransaction creates and stores a new transaction, then prepends it
// to the current list
func (s *TransactionService) CreateTransaction(ctx context.Context, draft entity.TransactionDraft) error {
	_, err := s.create(ctx, draft)
	return err
}

// Create is CreateTransaction returning the stored transaction
func (s *TransactionService) Create(ctx context.Context, draft entity.TransactionDraft) (*entity.Transaction, error) {
	return s.create(ctx, draft)
}

func (s *TransactionService) create(ctx context.Context, draft entity.TransactionDraft) (*entity.Transaction, error) {
	requestID := middleware.GetRequestID(ctx)

	if err := draft.Validate(); err != nil {
		s.logger.Warn("Rejected invalid transaction draft", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, err
	}

	tx := &entity.Transaction{
		ID:          uuid.New().String(),
		Description: draft.Description,
		Type:        draft.Type,
		Category:    draft.Category,
		Price:       entity.RoundPrice(draft.Price),
		CreatedAt:   s.now().UTC(),
	}

	id, err := s.repo.Store(ctx, tx)
	if err != nil {
		s.logger.Error("Failed to store transaction", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}
	tx.ID = id

	s.mu.Lock()
	s.transactions = append([]entity.Transaction{*tx}, s.transactions...)
	s.mu.Unlock()

	s.logger.Info("Transaction created", map[string]interface{}{
		"request_id": requestID,
		"id":         tx.ID,
		"type":       tx.Type.String(),
	})

	return tx, nil
}

// FetchTransactions replaces the current list with the transactions matching query
func (s *TransactionService) FetchTransactions(ctx context.Context, query string) error {
	_, err := s.Fetch(ctx, query)
	return err
}

// Fetch is FetchTransactions returning the list it installed
func (s *TransactionService) Fetch(ctx context.Context, query string) ([]entity.Transaction, error) {
	requestID := middleware.GetRequestID(ctx)

	list, err := s.repo.List(ctx, entity.SearchQuery{Query: query})
	if err != nil {
		s.logger.Error("Failed to fetch transactions", map[string]interface{}{
			"request_id": requestID,
			"query":      query,
			"error":      err.Error(),
		})
		return nil, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	s.mu.Lock()
	s.transactions = list
	s.mu.Unlock()

	s.logger.Debug("Transactions fetched", map[string]interface{}{
		"request_id": requestID,
		"query":      query,
		"count":      len(list),
	})

	out := make([]entity.Transaction, len(list))
	copy(out, list)
	return out, nil
}

// Transactions returns a copy of the current list
func (s *TransactionService) Transactions() []entity.Transaction {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Transaction, len(s.transactions))
	copy(out, s.transactions)
	return out
}

// Summary totals the current list
func (s *TransactionService) Summary() entity.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return entity.Summarize(s.transactions)
}

// GetTransaction retrieves a transaction by ID
func (s *TransactionService) GetTransaction(ctx context.Context, id string) (*entity.Transaction, error) {
	return s.repo.FindByID(ctx, id)
}

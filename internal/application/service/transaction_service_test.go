package service

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/ichikawacraice/dt-money/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestService(repo *mocks.MockTransactionRepository) *TransactionService {
	svc := NewTransactionService(repo, logger.NewJSONLogger(io.Discard, logger.DebugLevel))
	svc.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestCreateTransaction(t *testing.T) {
	ctx := context.Background()

	t.Run("Valid draft", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		service := newTestService(repo)
		draft := entity.TransactionDraft{Description: "Salary", Price: 5000, Category: "Job", Type: entity.Income}

		repo.On("Store", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Description == "Salary" && tx.Price == 5000 && tx.Category == "Job" &&
				tx.Type == entity.Income && tx.ID != "" && !tx.CreatedAt.IsZero()
		})).Return("tx-1", nil).Once()

		err := service.CreateTransaction(ctx, draft)

		assert.NoError(t, err)
		list := service.Transactions()
		require.Len(t, list, 1)
		assert.Equal(t, "tx-1", list[0].ID)
		assert.Equal(t, time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC), list[0].CreatedAt)
		repo.AssertExpectations(t)
	})

	t.Run("New transactions are prepended", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		service := newTestService(repo)

		repo.On("Store", ctx, mock.Anything).Return("first", nil).Once()
		repo.On("Store", ctx, mock.Anything).Return("second", nil).Once()

		require.NoError(t, service.CreateTransaction(ctx, entity.TransactionDraft{Description: "a", Price: 1, Category: "x", Type: entity.Income}))
		require.NoError(t, service.CreateTransaction(ctx, entity.TransactionDraft{Description: "b", Price: 2, Category: "x", Type: entity.Outcome}))

		list := service.Transactions()
		require.Len(t, list, 2)
		assert.Equal(t, "second", list[0].ID)
		assert.Equal(t, "first", list[1].ID)
	})

	t.Run("Price is rounded to cents", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		service := newTestService(repo)

		repo.On("Store", ctx, mock.MatchedBy(func(tx *entity.Transaction) bool {
			return tx.Price == 10.13
		})).Return("rounded", nil).Once()

		tx, err := service.Create(ctx, entity.TransactionDraft{Description: "Coffee", Price: 10.129, Category: "Food", Type: entity.Outcome})

		assert.NoError(t, err)
		assert.Equal(t, 10.13, tx.Price)
		repo.AssertExpectations(t)
	})

	t.Run("Invalid draft never reaches the repository", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		service := newTestService(repo)

		err := service.CreateTransaction(ctx, entity.TransactionDraft{Price: -1, Type: entity.Income})

		var verrs entity.ValidationErrors
		assert.True(t, errors.As(err, &verrs))
		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("Sub-cent price is rejected before storing", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		service := newTestService(repo)

		err := service.CreateTransaction(ctx, entity.TransactionDraft{Description: "Gum", Price: 0.004, Category: "Food", Type: entity.Outcome})

		var verrs entity.ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Equal(t, entity.MsgPricePositive, verrs.Get(entity.FieldPrice))
		assert.Empty(t, service.Transactions())
		repo.AssertNotCalled(t, "Store", mock.Anything, mock.Anything)
	})

	t.Run("Repository error", func(t *testing.T) {
		repo := new(mocks.MockTransactionRepository)
		service := newTestService(repo)
		storeErr := errors.New("repository error")

		repo.On("Store", ctx, mock.Anything).Return("", storeErr).Once()

		err := service.CreateTransaction(ctx, entity.TransactionDraft{Description: "a", Price: 1, Category: "x", Type: entity.Income})

		assert.ErrorIs(t, err, storeErr)
		assert.Empty(t, service.Transactions())
		repo.AssertExpectations(t)
	})
}

func TestFetchTransactions(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockTransactionRepository)
	service := newTestService(repo)

	rent := entity.Transaction{ID: "1", Description: "Rent", Category: "Home", Type: entity.Outcome, Price: 1200}
	salary := entity.Transaction{ID: "2", Description: "Salary", Category: "Job", Type: entity.Income, Price: 5000}

	t.Run("Replaces the current list", func(t *testing.T) {
		repo.On("List", ctx, entity.SearchQuery{Query: ""}).Return([]entity.Transaction{salary, rent}, nil).Once()
		repo.On("List", ctx, entity.SearchQuery{Query: "rent"}).Return([]entity.Transaction{rent}, nil).Once()

		require.NoError(t, service.FetchTransactions(ctx, ""))
		assert.Len(t, service.Transactions(), 2)

		require.NoError(t, service.FetchTransactions(ctx, "rent"))
		assert.Equal(t, []entity.Transaction{rent}, service.Transactions())
		repo.AssertExpectations(t)
	})

	t.Run("Repository error keeps the previous list", func(t *testing.T) {
		repo.On("List", ctx, entity.SearchQuery{Query: "boom"}).Return(nil, errors.New("disk gone")).Once()

		err := service.FetchTransactions(ctx, "boom")

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "failed to fetch transactions")
		assert.Equal(t, []entity.Transaction{rent}, service.Transactions())
	})
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockTransactionRepository)
	service := newTestService(repo)

	repo.On("List", ctx, entity.SearchQuery{}).Return([]entity.Transaction{
		{ID: "1", Type: entity.Income, Price: 5000},
		{ID: "2", Type: entity.Outcome, Price: 1200},
	}, nil).Once()
	require.NoError(t, service.FetchTransactions(ctx, ""))

	summary := service.Summary()
	assert.True(t, decimal.NewFromInt(5000).Equal(summary.Income))
	assert.True(t, decimal.NewFromInt(1200).Equal(summary.Outcome))
	assert.True(t, decimal.NewFromInt(3800).Equal(summary.Total))
}

func TestGetTransaction(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.MockTransactionRepository)
	service := newTestService(repo)
	tx := &entity.Transaction{ID: "abc", Description: "Rent"}

	repo.On("FindByID", ctx, "abc").Return(tx, nil).Once()

	got, err := service.GetTransaction(ctx, "abc")
	assert.NoError(t, err)
	assert.Equal(t, tx, got)
}

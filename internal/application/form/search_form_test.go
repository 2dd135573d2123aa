package form

import (
	"context"
	"errors"
	"testing"

	"github.com/ichikawacraice/dt-money/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestSearchFormSubmit(t *testing.T) {
	ctx := context.Background()

	t.Run("Query is passed through", func(t *testing.T) {
		store := new(mocks.MockTransactionStore)
		f := NewSearchForm(store, quietLogger)
		f.SetQuery("rent")

		store.On("FetchTransactions", ctx, "rent").Return(nil).Once()

		assert.NoError(t, f.Submit(ctx))
		assert.Equal(t, Submitted, f.State())
		assert.Equal(t, "rent", f.Query(), "search input is not cleared")
		store.AssertExpectations(t)
		store.AssertNumberOfCalls(t, "FetchTransactions", 1)
	})

	t.Run("Empty query is allowed", func(t *testing.T) {
		store := new(mocks.MockTransactionStore)
		f := NewSearchForm(store, quietLogger)

		store.On("FetchTransactions", ctx, "").Return(nil).Once()

		assert.NoError(t, f.Submit(ctx))
		store.AssertExpectations(t)
	})

	t.Run("Store error", func(t *testing.T) {
		store := new(mocks.MockTransactionStore)
		f := NewSearchForm(store, quietLogger)
		f.SetQuery("salary")
		storeErr := errors.New("timeout")

		store.On("FetchTransactions", ctx, "salary").Return(storeErr).Once()

		err := f.Submit(ctx)
		assert.ErrorIs(t, err, storeErr)
		assert.Equal(t, Failed, f.State())
		assert.False(t, f.Disabled())
	})
}

func TestSearchFormRejectsSubmitWhilePending(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockTransactionStore)
	f := NewSearchForm(store, quietLogger)
	f.SetQuery("rent")

	started := make(chan struct{})
	release := make(chan struct{})
	store.On("FetchTransactions", ctx, "rent").Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(nil).Once()

	done := make(chan error, 1)
	go func() { done <- f.Submit(ctx) }()

	<-started
	assert.True(t, f.Disabled())
	assert.ErrorIs(t, f.Submit(ctx), ErrSubmitInProgress)

	close(release)
	assert.NoError(t, <-done)
	store.AssertNumberOfCalls(t, "FetchTransactions", 1)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "idle", Idle.String())
	assert.Equal(t, "submitting", Submitting.String())
	assert.Equal(t, "submitted", Submitted.String())
	assert.Equal(t, "failed", Failed.String())
	assert.Equal(t, "unknown", State(42).String())
}

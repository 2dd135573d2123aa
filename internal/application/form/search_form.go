package form

import (
	"context"
	"fmt"
	"sync"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/domain/service"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/middleware"
)

// SearchForm is the single-field transaction search form
type SearchForm struct {
	submission

	store  service.TransactionStore
	logger logger.Logger

	mu    sync.Mutex
	query string
}

// NewSearchForm creates an empty search form submitting to store
func NewSearchForm(store service.TransactionStore, log logger.Logger) *SearchForm {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &SearchForm{store: store, logger: log}
}

// SetQuery updates the query input
func (f *SearchForm) SetQuery(q string) {
	f.mu.Lock()
	f.query = q
	f.mu.Unlock()
}

// Query returns the query input
func (f *SearchForm) Query() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.query
}

// Submit asks the store to fetch the transactions matching the query.
// The query is passed through as typed; the empty query is valid.
func (f *SearchForm) Submit(ctx context.Context) error {
	if !f.acquire() {
		return ErrSubmitInProgress
	}
	defer f.release()

	q := entity.SearchQuery{Query: f.Query()}
	if err := q.Validate(); err != nil {
		return err
	}

	f.setState(Submitting)
	if err := f.store.FetchTransactions(ctx, q.Query); err != nil {
		f.setState(Failed)
		f.logger.Warn("Fetch transactions failed", map[string]interface{}{
			"request_id": middleware.GetRequestID(ctx),
			"query":      q.Query,
			"error":      err.Error(),
		})
		return fmt.Errorf("fetch transactions: %w", err)
	}

	f.setState(Submitted)
	return nil
}

package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/domain/service"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/middleware"
)

// TransactionValues is the raw input buffer of the new transaction form.
// Price is kept as typed so that non-numeric input can be reported.
type TransactionValues struct {
	Description string
	Price       string
	Category    string
	Type        string
}

// DefaultTransactionValues returns the values a fresh form starts with
func DefaultTransactionValues() TransactionValues {
	return TransactionValues{Type: entity.DefaultTransactionType.String()}
}

// ParseDraft validates raw values and converts them into a draft.
// The returned errors are empty exactly when the draft is valid.
func ParseDraft(v TransactionValues) (entity.TransactionDraft, entity.ValidationErrors) {
	var (
		draft entity.TransactionDraft
		errs  entity.ValidationErrors
	)

	draft.Description = v.Description
	if msg := entity.DescriptionRule(v.Description); msg != "" {
		errs = append(errs, entity.FieldError{Field: entity.FieldDescription, Message: msg})
	}

	price, msg := entity.ParsePrice(v.Price)
	if msg != "" {
		errs = append(errs, entity.FieldError{Field: entity.FieldPrice, Message: msg})
	}
	draft.Price = price

	draft.Category = v.Category
	if msg := entity.CategoryRule(v.Category); msg != "" {
		errs = append(errs, entity.FieldError{Field: entity.FieldCategory, Message: msg})
	}

	typ, err := entity.ParseTransactionType(v.Type)
	if err != nil {
		errs = append(errs, entity.FieldError{Field: entity.FieldType, Message: entity.ErrInvalidTransactionType.Error()})
	}
	draft.Type = typ

	return draft, errs
}

// ValidateDescription checks a description as the form does on submit
func ValidateDescription(s string) error { return ruleError(entity.DescriptionRule(s)) }

// ValidatePrice checks a typed price as the form does on submit
func ValidatePrice(s string) error {
	_, msg := entity.ParsePrice(s)
	return ruleError(msg)
}

// ValidateCategory checks a category as the form does on submit
func ValidateCategory(s string) error { return ruleError(entity.CategoryRule(s)) }

// ValidateType checks a type flag as the form does on submit
func ValidateType(s string) error {
	_, err := entity.ParseTransactionType(s)
	return err
}

func ruleError(msg string) error {
	if msg == "" {
		return nil
	}
	return errors.New(msg)
}

// TransactionForm is the new transaction modal form
type TransactionForm struct {
	submission

	store  service.TransactionStore
	logger logger.Logger

	mu     sync.Mutex
	values TransactionValues
	errs   entity.ValidationErrors
}

// NewTransactionForm creates an empty form submitting to store
func NewTransactionForm(store service.TransactionStore, log logger.Logger) *TransactionForm {
	if log == nil {
		log = logger.GetDefaultLogger()
	}

	return &TransactionForm{
		store:  store,
		logger: log,
		values: DefaultTransactionValues(),
	}
}

// SetDescription updates the description input
func (f *TransactionForm) SetDescription(s string) {
	f.mu.Lock()
	f.values.Description = s
	f.mu.Unlock()
}

// SetPrice updates the price input with the text as typed
func (f *TransactionForm) SetPrice(s string) {
	f.mu.Lock()
	f.values.Price = s
	f.mu.Unlock()
}

// SetCategory updates the category input
func (f *TransactionForm) SetCategory(s string) {
	f.mu.Lock()
	f.values.Category = s
	f.mu.Unlock()
}

// SetType updates the income/outcome toggle
func (f *TransactionForm) SetType(t entity.TransactionType) {
	f.mu.Lock()
	f.values.Type = t.String()
	f.mu.Unlock()
}

// SetValues replaces the whole input buffer, e.g. from a decoded request body
func (f *TransactionForm) SetValues(v TransactionValues) {
	f.mu.Lock()
	f.values = v
	f.mu.Unlock()
}

// Values returns the current input buffer
func (f *TransactionForm) Values() TransactionValues {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the field errors of the last validation
func (f *TransactionForm) Errors() entity.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Validate checks the current input and records the field errors
func (f *TransactionForm) Validate() entity.ValidationErrors {
	_, errs := f.parse()
	return errs
}

// parse converts one snapshot of the input and records its field errors
func (f *TransactionForm) parse() (entity.TransactionDraft, entity.ValidationErrors) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft, errs := ParseDraft(f.values)
	f.errs = errs
	return draft, errs
}

// Reset clears the fields back to their defaults
func (f *TransactionForm) Reset() {
	f.mu.Lock()
	f.values = DefaultTransactionValues()
	f.errs = nil
	f.mu.Unlock()
}

// Submit validates the input and creates the transaction through the store.
// Invalid input returns entity.ValidationErrors without calling the store.
// On success the fields are reset; on a store error the input is kept and
// the error is returned wrapped.
func (f *TransactionForm) Submit(ctx context.Context) error {
	if !f.acquire() {
		return ErrSubmitInProgress
	}
	defer f.release()

	requestID := middleware.GetRequestID(ctx)

	draft, errs := f.parse()
	if len(errs) > 0 {
		f.logger.Debug("New transaction form is invalid", map[string]interface{}{
			"request_id": requestID,
			"fields":     errs.Map(),
		})
		return errs
	}

	f.setState(Submitting)
	if err := f.store.CreateTransaction(ctx, draft); err != nil {
		f.setState(Failed)
		f.logger.Warn("Create transaction failed", map[string]interface{}{
			"request_id": requestID,
			"error":      err.Error(),
		})
		return fmt.Errorf("create transaction: %w", err)
	}

	f.Reset()
	f.setState(Submitted)
	return nil
}

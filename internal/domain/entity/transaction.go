package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidTransactionType is returned when a type flag is neither income nor outcome
var ErrInvalidTransactionType = errors.New("transaction type must be income or outcome")

// TransactionType is the income/outcome discriminator of a transaction.
// The zero value is not a valid type.
type TransactionType int

const (
	// Income marks money coming in
	Income TransactionType = iota + 1
	// Outcome marks money going out
	Outcome
)

// DefaultTransactionType is the type a new draft starts with
const DefaultTransactionType = Income

// ParseTransactionType parses "income" or "outcome"
func ParseTransactionType(s string) (TransactionType, error) {
	switch s {
	case "income":
		return Income, nil
	case "outcome":
		return Outcome, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidTransactionType, s)
	}
}

// Valid reports whether t is one of the two variants
func (t TransactionType) Valid() bool {
	return t == Income || t == Outcome
}

func (t TransactionType) String() string {
	switch t {
	case Income:
		return "income"
	case Outcome:
		return "outcome"
	default:
		return ""
	}
}

// MarshalJSON encodes the type as "income" or "outcome"
func (t TransactionType) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrInvalidTransactionType
	}
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes "income" or "outcome"
func (t *TransactionType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTransactionType, string(data))
	}

	parsed, err := ParseTransactionType(s)
	if err != nil {
		return err
	}

	*t = parsed
	return nil
}

// TransactionDraft is the validated input of the new transaction form
type TransactionDraft struct {
	Description string          `json:"description"`
	Price       float64         `json:"price"`
	Category    string          `json:"category"`
	Type        TransactionType `json:"type"`
}

// Validate checks every field of the draft and collects the failures
func (d TransactionDraft) Validate() error {
	var errs ValidationErrors

	if msg := DescriptionRule(d.Description); msg != "" {
		errs = append(errs, FieldError{Field: FieldDescription, Message: msg})
	}
	if msg := PriceRule(d.Price); msg != "" {
		errs = append(errs, FieldError{Field: FieldPrice, Message: msg})
	}
	if msg := CategoryRule(d.Category); msg != "" {
		errs = append(errs, FieldError{Field: FieldCategory, Message: msg})
	}
	if !d.Type.Valid() {
		errs = append(errs, FieldError{Field: FieldType, Message: ErrInvalidTransactionType.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Transaction represents a stored income or outcome entry
type Transaction struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Price       float64         `json:"price"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Matches reports whether the transaction matches a free-text query.
// Matching is a case-insensitive substring test against the text fields;
// an empty query matches everything.
func (t *Transaction) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}

	for _, field := range []string{t.Description, t.Category, t.Type.String()} {
		if strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}

// Validate ensures the stored transaction still satisfies the draft rules
func (t *Transaction) Validate() error {
	return TransactionDraft{
		Description: t.Description,
		Price:       t.Price,
		Category:    t.Category,
		Type:        t.Type,
	}.Validate()
}

package handler

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/ichikawacraice/dt-money/internal/domain/entity"
)

// PriceInput accepts a price sent either as a JSON number or as a string,
// keeping the raw text so the form can report non-numeric input
type PriceInput string

// UnmarshalJSON implements json.Unmarshaler
func (p *PriceInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*p = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PriceInput(s)
	default:
		*p = PriceInput(data)
	}
	return nil
}

// CreateTransactionRequest represents the request body for creating a transaction
type CreateTransactionRequest struct {
	Description string     `json:"description"`
	Price       PriceInput `json:"price"`
	Category    string     `json:"category"`
	Type        string     `json:"type"`
}

// TransactionResponse represents the response for transaction endpoints
type TransactionResponse struct {
	ID          string  `json:"id"`
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	CreatedAt   string  `json:"createdAt"`
}

// SummaryResponse represents the totals of the current transaction list
type SummaryResponse struct {
	Income  string `json:"income"`
	Outcome string `json:"outcome"`
	Total   string `json:"total"`
}

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Error       string            `json:"error"`
	Status      int               `json:"status"`
	Description string            `json:"description,omitempty"`
	RequestID   string            `json:"request_id,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
}

func newTransactionResponse(tx entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          tx.ID,
		Description: tx.Description,
		Type:        tx.Type.String(),
		Category:    tx.Category,
		Price:       tx.Price,
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func newSummaryResponse(s entity.Summary) SummaryResponse {
	return SummaryResponse{
		Income:  s.Income.StringFixed(2),
		Outcome: s.Outcome.StringFixed(2),
		Total:   s.Total.StringFixed(2),
	}
}

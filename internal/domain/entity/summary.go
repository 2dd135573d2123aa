package entity

import (
	"github.com/shopspring/decimal"
)

// Summary holds the totals shown above the transaction list
type Summary struct {
	Income  decimal.Decimal `json:"income"`
	Outcome decimal.Decimal `json:"outcome"`
	Total   decimal.Decimal `json:"total"`
}

// Summarize totals the transactions by type, rounded to cents
func Summarize(transactions []Transaction) Summary {
	income := decimal.Zero
	outcome := decimal.Zero

	for _, tx := range transactions {
		price := decimal.NewFromFloat(tx.Price)
		switch tx.Type {
		case Income:
			income = income.Add(price)
		case Outcome:
			outcome = outcome.Add(price)
		}
	}

	return Summary{
		Income:  income.Round(2),
		Outcome: outcome.Round(2),
		Total:   income.Sub(outcome).Round(2),
	}
}

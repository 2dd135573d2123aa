package entity

import (
	"encoding/json"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTransactionType(t *testing.T) {
	typ, err := ParseTransactionType("income")
	assert.NoError(t, err)
	assert.Equal(t, Income, typ)

	typ, err = ParseTransactionType("outcome")
	assert.NoError(t, err)
	assert.Equal(t, Outcome, typ)

	for _, s := range []string{"", "Income", "expense", " outcome"} {
		_, err := ParseTransactionType(s)
		assert.ErrorIs(t, err, ErrInvalidTransactionType, s)
	}

	var zero TransactionType
	assert.False(t, zero.Valid())
	assert.Equal(t, "", zero.String())
}

func TestTransactionTypeJSON(t *testing.T) {
	data, err := json.Marshal(Outcome)
	require.NoError(t, err)
	assert.Equal(t, `"outcome"`, string(data))

	var typ TransactionType
	require.NoError(t, json.Unmarshal([]byte(`"income"`), &typ))
	assert.Equal(t, Income, typ)

	assert.ErrorIs(t, json.Unmarshal([]byte(`"salary"`), &typ), ErrInvalidTransactionType)
	assert.ErrorIs(t, json.Unmarshal([]byte(`1`), &typ), ErrInvalidTransactionType)

	_, err = json.Marshal(TransactionType(0))
	assert.Error(t, err)
}

func TestTransactionDraftValidate(t *testing.T) {
	t.Run("Valid draft", func(t *testing.T) {
		draft := TransactionDraft{Description: "Salary", Price: 5000, Category: "Job", Type: Income}
		assert.NoError(t, draft.Validate())
	})

	t.Run("Every field invalid", func(t *testing.T) {
		err := TransactionDraft{Price: -1}.Validate()

		var verrs ValidationErrors
		require.True(t, errors.As(err, &verrs))
		assert.Len(t, verrs, 4)
		assert.Equal(t, MsgDescriptionRequired, verrs.Get(FieldDescription))
		assert.Equal(t, MsgPricePositive, verrs.Get(FieldPrice))
		assert.Equal(t, MsgCategoryRequired, verrs.Get(FieldCategory))
		assert.NotEmpty(t, verrs.Get(FieldType))
	})

	t.Run("Zero price", func(t *testing.T) {
		err := TransactionDraft{Description: "Rent", Price: 0, Category: "Home", Type: Outcome}.Validate()
		assert.Contains(t, err.Error(), "price must be a positive value")
	})

	t.Run("NaN price", func(t *testing.T) {
		err := TransactionDraft{Description: "Rent", Price: math.NaN(), Category: "Home", Type: Outcome}.Validate()
		assert.Contains(t, err.Error(), MsgPriceNotNumber)
	})
}

func TestParsePrice(t *testing.T) {
	price, msg := ParsePrice("5000")
	assert.Equal(t, "", msg)
	assert.Equal(t, 5000.0, price)

	price, msg = ParsePrice(" 12.34 ")
	assert.Equal(t, "", msg)
	assert.Equal(t, 12.34, price)

	_, msg = ParsePrice("")
	assert.Equal(t, MsgPriceNotNumber, msg)

	_, msg = ParsePrice("abc")
	assert.Equal(t, MsgPriceNotNumber, msg)

	_, msg = ParsePrice("0")
	assert.Equal(t, MsgPricePositive, msg)

	_, msg = ParsePrice("-10")
	assert.Equal(t, MsgPricePositive, msg)

	price, msg = ParsePrice("10.129")
	assert.Equal(t, "", msg)
	assert.Equal(t, 10.13, price)

	_, msg = ParsePrice("0.004")
	assert.Equal(t, MsgPricePositive, msg, "rounds to zero cents")

	price, msg = ParsePrice("0.005")
	assert.Equal(t, "", msg)
	assert.Equal(t, 0.01, price)
}

func TestPriceRuleChecksRoundedPrice(t *testing.T) {
	assert.Equal(t, MsgPricePositive, PriceRule(0.004))
	assert.Equal(t, "", PriceRule(0.01))

	err := TransactionDraft{Description: "Gum", Price: 0.004, Category: "Food", Type: Outcome}.Validate()
	require.Error(t, err)
	assert.Equal(t, MsgPricePositive, err.(ValidationErrors).Get(FieldPrice))
}

func TestTransactionMatches(t *testing.T) {
	tx := &Transaction{Description: "Monthly Rent", Category: "Home", Type: Outcome}

	assert.True(t, tx.Matches(""))
	assert.True(t, tx.Matches("rent"))
	assert.True(t, tx.Matches("HOME"))
	assert.True(t, tx.Matches("outcome"))
	assert.False(t, tx.Matches("salary"))
}

func TestSummarize(t *testing.T) {
	now := time.Now()
	summary := Summarize([]Transaction{
		{Type: Income, Price: 5000, CreatedAt: now},
		{Type: Outcome, Price: 1200.10, CreatedAt: now},
		{Type: Outcome, Price: 0.2, CreatedAt: now},
	})

	assert.True(t, decimal.NewFromInt(5000).Equal(summary.Income))
	assert.True(t, decimal.RequireFromString("1200.3").Equal(summary.Outcome))
	assert.True(t, decimal.RequireFromString("3799.7").Equal(summary.Total))

	empty := Summarize(nil)
	assert.True(t, empty.Total.IsZero())
}

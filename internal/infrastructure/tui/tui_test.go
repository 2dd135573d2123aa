package tui

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/ichikawacraice/dt-money/internal/application/form"
	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/ichikawacraice/dt-money/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var quietLogger = logger.NewJSONLogger(io.Discard, logger.ErrorLevel)

// scriptedPrompter answers each prompt with the next scripted edit
type scriptedPrompter struct {
	edits []func(*form.TransactionValues)
	seen  []form.TransactionValues
}

func (p *scriptedPrompter) PromptTransaction(ctx context.Context, values *form.TransactionValues) error {
	if len(p.edits) == 0 {
		return ErrClosed
	}
	p.seen = append(p.seen, *values)
	p.edits[0](values)
	p.edits = p.edits[1:]
	return nil
}

func TestTransactionModalRepromptsUntilValid(t *testing.T) {
	ctx := context.Background()
	store := new(mocks.MockTransactionStore)
	f := form.NewTransactionForm(store, quietLogger)
	var out bytes.Buffer

	prompter := &scriptedPrompter{edits: []func(*form.TransactionValues){
		func(v *form.TransactionValues) {
			v.Description = "Salary"
			v.Price = "abc"
			v.Category = "Job"
		},
		func(v *form.TransactionValues) {
			v.Price = "5000"
		},
	}}

	want := entity.TransactionDraft{Description: "Salary", Price: 5000, Category: "Job", Type: entity.Income}
	store.On("CreateTransaction", ctx, want).Return(nil).Once()

	err := NewTransactionModal(f, prompter, &out).Open(ctx)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "price: "+entity.MsgPriceNotNumber)
	require.Len(t, prompter.seen, 2)
	assert.Equal(t, "income", prompter.seen[0].Type, "modal opens with the default type")
	assert.Equal(t, "Salary", prompter.seen[1].Description, "input is kept between prompts")
	assert.Equal(t, form.DefaultTransactionValues(), f.Values())
	store.AssertExpectations(t)
}

func TestTransactionModalClosed(t *testing.T) {
	store := new(mocks.MockTransactionStore)
	f := form.NewTransactionForm(store, quietLogger)

	err := NewTransactionModal(f, &scriptedPrompter{}, io.Discard).Open(context.Background())

	assert.ErrorIs(t, err, ErrClosed)
	store.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestPromptsBuild(t *testing.T) {
	values := form.DefaultTransactionValues()
	assert.NotNil(t, NewTransactionPrompt(&values))

	query := ""
	assert.NotNil(t, NewSearchPrompt(&query))
}

func TestRenderTransactions(t *testing.T) {
	assert.Equal(t, "Nenhuma transação encontrada.\n", RenderTransactions(nil))

	out := RenderTransactions([]entity.Transaction{
		{Description: "Salary", Category: "Job", Type: entity.Income, Price: 5000, CreatedAt: time.Now()},
		{Description: "Rent", Category: "Home", Type: entity.Outcome, Price: 1200.5, CreatedAt: time.Now()},
	})

	assert.Contains(t, out, "Salary")
	assert.Contains(t, out, "R$ 5000.00")
	assert.Contains(t, out, "- R$ 1200.50")
}

func TestRenderSummary(t *testing.T) {
	out := RenderSummary(entity.Summary{
		Income:  decimal.NewFromInt(5000),
		Outcome: decimal.RequireFromString("1200.5"),
		Total:   decimal.RequireFromString("3799.5"),
	})

	assert.Contains(t, out, "Entradas: R$ 5000.00")
	assert.Contains(t, out, "Saídas:   R$ 1200.50")
	assert.Contains(t, out, "Total:    R$ 3799.50")
}

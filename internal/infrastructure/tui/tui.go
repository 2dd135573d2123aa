// Package tui renders the transaction forms in the terminal with huh.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/ichikawacraice/dt-money/internal/application/form"
	"github.com/ichikawacraice/dt-money/internal/domain/entity"
)

// ErrClosed is returned when the user dismisses a form
var ErrClosed = errors.New("form closed")

// TransactionPrompter fills the new transaction values interactively
type TransactionPrompter interface {
	PromptTransaction(ctx context.Context, values *form.TransactionValues) error
}

// SearchPrompter fills the search query interactively
type SearchPrompter interface {
	PromptSearch(ctx context.Context, query *string) error
}

// HuhPrompter prompts with huh forms
type HuhPrompter struct {
	Accessible bool
	Input      io.Reader
	Output     io.Writer
}

// NewTransactionPrompt builds the "Nova transação" form bound to values
func NewTransactionPrompt(values *form.TransactionValues) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Descrição").
				Placeholder("Descrição").
				Value(&values.Description).
				Validate(form.ValidateDescription),
			huh.NewInput().
				Title("Valor").
				Placeholder("Valor").
				Value(&values.Price).
				Validate(form.ValidatePrice),
			huh.NewInput().
				Title("Categoria").
				Placeholder("Categoria").
				Value(&values.Category).
				Validate(form.ValidateCategory),
			huh.NewSelect[string]().
				Title("Tipo").
				Options(
					huh.NewOption("Entrada", entity.Income.String()),
					huh.NewOption("Saída", entity.Outcome.String()),
				).
				Value(&values.Type),
		).Title("Nova transação"),
	)
}

// NewSearchPrompt builds the search form bound to query
func NewSearchPrompt(query *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Buscar").
				Placeholder("Busque por transações").
				Value(query),
		),
	)
}

func (p HuhPrompter) run(ctx context.Context, f *huh.Form) error {
	f = f.WithAccessible(p.Accessible)
	if p.Input != nil {
		f = f.WithInput(p.Input)
	}
	if p.Output != nil {
		f = f.WithOutput(p.Output)
	}

	err := f.RunWithContext(ctx)
	if errors.Is(err, huh.ErrUserAborted) {
		return ErrClosed
	}
	return err
}

// PromptTransaction implements TransactionPrompter
func (p HuhPrompter) PromptTransaction(ctx context.Context, values *form.TransactionValues) error {
	return p.run(ctx, NewTransactionPrompt(values))
}

// PromptSearch implements SearchPrompter
func (p HuhPrompter) PromptSearch(ctx context.Context, query *string) error {
	return p.run(ctx, NewSearchPrompt(query))
}

// TransactionModal drives a TransactionForm from a prompter
type TransactionModal struct {
	form     *form.TransactionForm
	prompter TransactionPrompter
	out      io.Writer
}

// NewTransactionModal creates a modal for f
func NewTransactionModal(f *form.TransactionForm, prompter TransactionPrompter, out io.Writer) *TransactionModal {
	return &TransactionModal{form: f, prompter: prompter, out: out}
}

// Open prompts until the form submits or the user closes it.
// Field errors are printed and the user is prompted again with the input kept.
func (m *TransactionModal) Open(ctx context.Context) error {
	for {
		values := m.form.Values()
		if err := m.prompter.PromptTransaction(ctx, &values); err != nil {
			return err
		}
		m.form.SetValues(values)

		err := m.form.Submit(ctx)

		var verrs entity.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		PrintValidationErrors(m.out, verrs)
	}
}

// PrintValidationErrors writes one line per field error
func PrintValidationErrors(w io.Writer, verrs entity.ValidationErrors) {
	for _, e := range verrs {
		fmt.Fprintf(w, "  %s: %s\n", e.Field, e.Message)
	}
}

// RenderTransactions renders the list as a table
func RenderTransactions(list []entity.Transaction) string {
	if len(list) == 0 {
		return "Nenhuma transação encontrada.\n"
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Descrição", "Valor", "Categoria", "Data")

	for _, tx := range list {
		price := fmt.Sprintf("R$ %.2f", tx.Price)
		if tx.Type == entity.Outcome {
			price = "- " + price
		}
		t.Row(tx.Description, price, tx.Category, tx.CreatedAt.Local().Format("02/01/2006"))
	}

	return t.String() + "\n"
}

// RenderSummary renders income, outcome and total on one line each
func RenderSummary(s entity.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Entradas: R$ %s\n", s.Income.StringFixed(2))
	fmt.Fprintf(&b, "Saídas:   R$ %s\n", s.Outcome.StringFixed(2))
	fmt.Fprintf(&b, "Total:    R$ %s\n", s.Total.StringFixed(2))
	return b.String()
}

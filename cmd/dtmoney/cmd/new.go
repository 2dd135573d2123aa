package cmd

import (
	"errors"
	"fmt"

	"github.com/ichikawacraice/dt-money/internal/application/form"
	"github.com/ichikawacraice/dt-money/internal/domain/entity"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var (
		values     = form.DefaultTransactionValues()
		accessible bool
	)

	cmd := &cobra.Command{
		Use:   "new",
		Short: "Register a new transaction",
		Long: `Register a new transaction.

Without flags an interactive form is opened. With any of --description,
--price or --category the values are taken from the flags and submitted once.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			f := form.NewTransactionForm(a.Service, opts.log)
			f.SetValues(values)
			out := cmd.OutOrStdout()

			flagged := cmd.Flags().Changed("description") ||
				cmd.Flags().Changed("price") ||
				cmd.Flags().Changed("category")

			if flagged {
				err = f.Submit(cmd.Context())
				var verrs entity.ValidationErrors
				if errors.As(err, &verrs) {
					tui.PrintValidationErrors(cmd.ErrOrStderr(), verrs)
				}
			} else {
				prompter := tui.HuhPrompter{
					Accessible: accessible || !isatty.IsTerminal(stdinFd(cmd)),
					Input:      cmd.InOrStdin(),
					Output:     out,
				}
				err = tui.NewTransactionModal(f, prompter, cmd.ErrOrStderr()).Open(cmd.Context())
				if errors.Is(err, tui.ErrClosed) {
					return nil
				}
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(out, "Transação cadastrada.")
			return nil
		},
	}

	cmd.Flags().StringVar(&values.Description, "description", "", "transaction description")
	cmd.Flags().StringVar(&values.Price, "price", "", "transaction price")
	cmd.Flags().StringVar(&values.Category, "category", "", "transaction category")
	cmd.Flags().StringVar(&values.Type, "type", values.Type, "income or outcome")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "use plain line prompts")
	return cmd
}

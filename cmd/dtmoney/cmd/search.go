package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ichikawacraice/dt-money/internal/application/form"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/tui"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

func newSearchCmd(opts *rootOptions) *cobra.Command {
	var interactive bool

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "List transactions matching a query",
		Long: `List transactions, newest first, whose description, category or type
contains the query. An empty query lists every transaction.
Without a query argument on a terminal the search form is opened.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			query := strings.Join(args, " ")
			tty := isatty.IsTerminal(stdinFd(cmd))
			if interactive || (len(args) == 0 && tty) {
				prompter := tui.HuhPrompter{
					Accessible: !tty,
					Input:      cmd.InOrStdin(),
					Output:     cmd.OutOrStdout(),
				}
				if err := prompter.PromptSearch(cmd.Context(), &query); err != nil {
					if errors.Is(err, tui.ErrClosed) {
						return nil
					}
					return err
				}
			}

			f := form.NewSearchForm(a.Service, opts.log)
			f.SetQuery(query)
			if err := f.Submit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderTransactions(a.Service.Transactions()))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "open the search form even when stdin is not a terminal")
	return cmd
}

// stdinFd returns the descriptor behind the command input, or an invalid one
// when input is not a file
func stdinFd(cmd *cobra.Command) uintptr {
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		return f.Fd()
	}
	return ^uintptr(0)
}

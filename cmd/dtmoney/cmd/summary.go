package cmd

import (
	"fmt"

	"github.com/ichikawacraice/dt-money/internal/infrastructure/tui"
	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show income, outcome and total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Service.FetchTransactions(cmd.Context(), ""); err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderSummary(a.Service.Summary()))
			return nil
		},
	}
}

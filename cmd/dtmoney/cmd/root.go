// Package cmd provides CLI commands for dtmoney.
package cmd

import (
	"github.com/ichikawacraice/dt-money/internal/app"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/config"
	"github.com/ichikawacraice/dt-money/internal/infrastructure/logger"
	"github.com/spf13/cobra"
)

// options shared by every subcommand
type rootOptions struct {
	cfgFile string
	debug   bool

	cfg *config.Config
	log logger.Logger
}

// NewRootCmd builds the command tree
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "dtmoney",
		Short: "Track income and outcome transactions",
		Long: `dtmoney records income and outcome transactions and searches them.

It supports:
- Registering a transaction through an interactive form or flags
- Searching transactions by description, category or type
- Showing income, outcome and total
- Serving the same forms over HTTP

Example:
  dtmoney new
  dtmoney new --description Salary --price 5000 --category Job --type income
  dtmoney search rent
  dtmoney serve`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.cfgFile)
			if err != nil {
				return err
			}

			level := cfg.Level()
			if opts.debug {
				level = logger.DebugLevel
			}

			opts.cfg = cfg
			opts.log = logger.NewConsoleLogger(cmd.ErrOrStderr(), level)
			logger.SetDefaultLogger(opts.log)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "YAML config file (default $DTMONEY_CONFIG)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newServeCmd(opts),
		newNewCmd(opts),
		newSearchCmd(opts),
		newSummaryCmd(opts),
	)

	return rootCmd
}

// Execute runs the root command with os.Args.
// This is called by main.main().
func Execute() error {
	return NewRootCmd().Execute()
}

// openApp opens the configured store; the caller closes it
func (o *rootOptions) openApp() (*app.App, error) {
	return app.New(o.cfg, o.log)
}

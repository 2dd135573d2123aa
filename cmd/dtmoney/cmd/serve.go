package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(opts *rootOptions) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the transaction forms over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				opts.cfg.Addr = addr
			}

			a, err := opts.openApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, &http.Server{
				Addr:              opts.cfg.Addr,
				Handler:           a.Router(),
				ReadHeaderTimeout: 5 * time.Second,
			}, opts)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides DTMONEY_ADDR)")
	return cmd
}

// serve runs srv until ctx is cancelled, then shuts it down
func serve(ctx context.Context, srv *http.Server, opts *rootOptions) error {
	errCh := make(chan error, 1)
	go func() {
		opts.log.Info("Server listening", map[string]interface{}{
			"addr":  srv.Addr,
			"store": opts.cfg.Store,
		})
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	opts.log.Info("Shutting down server", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

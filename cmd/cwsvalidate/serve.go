package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/malawski/cloudworkflowsimulator/api"
	"github.com/malawski/cloudworkflowsimulator/config"
	"github.com/malawski/cloudworkflowsimulator/errors"
	"github.com/malawski/cloudworkflowsimulator/internal/orchestration"
	"github.com/malawski/cloudworkflowsimulator/logger"
)

func (a *app) newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the validation HTTP API",
		Long: `Serves POST /api/v1/validations and GET /api/v1/validations/{id}.

The listener is configured through CWS_SERVER_HOST, CWS_SERVER_PORT,
CWS_SERVER_READ_HEADER_TIMEOUT and CWS_SERVER_RETENTION.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scfg, err := config.ParseServerConfig(os.Environ())
			if err != nil {
				return errors.Wrap(err, "parsing server environment")
			}
			pricing, err := config.LoadPricing(a.cfg.Pricing)
			if err != nil {
				return err
			}

			server := api.NewServer(scfg, api.Options{
				Factory:      orchestration.FactoryOptions{MaxParallelism: a.cfg.Parallelism},
				DefaultPrice: pricing.DefaultPrice,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			// Handle graceful shutdown
			done := make(chan struct{})
			go func() {
				defer close(done)
				<-ctx.Done()

				logger.Logger.Infow("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					logger.Logger.Warnw("shutdown error", "error", err)
				}
			}()

			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				stop()
				<-done
				return err
			}

			<-done
			logger.Logger.Infow("server stopped")
			return nil
		},
	}

	cmd.Flags().Int("parallelism", 4, "Validators run at once per request")
	cmd.Flags().String("pricing", "", "Pricing config YAML, for the price of legacy VM lines")
	return cmd
}

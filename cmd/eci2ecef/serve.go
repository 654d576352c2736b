// ABOUTME: HTTP serve command
// ABOUTME: Runs the JSON conversion API with Prometheus metrics until interrupted

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/harper/eci2ecef/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the conversion API over HTTP",
	Long: `Serve conversions, recorded history and Prometheus metrics over HTTP.

Endpoints:
  GET    /api/v1/convert?year=..&eci_x_km=..   convert without recording
  POST   /api/v1/conversions                   convert and record
  GET    /api/v1/conversions[?limit=N]         list history
  GET    /api/v1/conversions/{id}              fetch one conversion
  DELETE /api/v1/conversions/{id}              delete one conversion
  GET    /health
  GET    /metrics

Examples:
  eci2ecef serve
  eci2ecef serve --addr :9000 --model iau82`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr := cfg.HTTPAddr
		if cmd.Flags().Changed("addr") {
			addr, _ = cmd.Flags().GetString("addr")
		}

		repo, err := openDB()
		if err != nil {
			return err
		}
		model, err := cfg.GetModel()
		if err != nil {
			return err
		}

		srv, err := server.NewServer(repo, model, logger)
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start(addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case err := <-errCh:
			return err
		case <-sigCh:
		}

		logger.Info("shutting down", zap.String("addr", addr))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:8080)")

	rootCmd.AddCommand(serveCmd)
}

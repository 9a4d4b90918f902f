package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/assetlabel/inventory/internal/bootstrap"
	"github.com/assetlabel/inventory/internal/config"
	"github.com/assetlabel/inventory/internal/infra/logger"
	"github.com/assetlabel/inventory/internal/infra/telemetry"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:          "assetd",
	Short:        "Asset inventory service",
	Long:         "assetd registers assets, issues AST-YYYY-NNNN identifiers and produces their QR codes and printable labels.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "optional config file (yaml, toml or json)")
	rootCmd.AddCommand(serveCmd, workerCmd, cleanupCmd, migrateCmd)
}

// app is what every subcommand starts from.
type app struct {
	cfg       *config.Config
	log       *zap.Logger
	container *bootstrap.Container
	shutdown  func(context.Context) error
}

func setup(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	log, err := logger.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	shutdownTracing, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("init telemetry: %w", err)
	}
	return &app{
		cfg:       cfg,
		log:       log,
		container: bootstrap.New(ctx, cfg, log),
		shutdown:  shutdownTracing,
	}, nil
}

func (r *app) close() {
	if err := r.container.Shutdown(); err != nil {
		r.log.Warn("close connections", zap.Error(err))
	}
	if err := r.shutdown(context.Background()); err != nil {
		r.log.Warn("flush traces", zap.Error(err))
	}
	_ = r.log.Sync()
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

//	@title			Asset Inventory API
//	@version		1.0
//	@description	Asset registry with QR codes, printable labels and Excel import.
//	@BasePath		/api
func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

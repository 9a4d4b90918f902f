package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/assetlabel/inventory/internal/pkg/cleaner"
	"github.com/gin-gonic/gin"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the periodic file cleanup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.close()
		return serve(ctx, rt)
	},
}

func serve(ctx context.Context, rt *app) error {
	paths := do.MustInvoke[storage.Paths](rt.container.Injector)
	for _, dir := range []string{paths.QRDir, paths.LabelDir, paths.BatchDir} {
		if err := storage.EnsureDir(dir); err != nil {
			return err
		}
	}

	if rt.cfg.Database.AutoMigrate {
		gdb, err := do.Invoke[*gorm.DB](rt.container.Injector)
		if err != nil {
			return err
		}
		if err := repo.Migrate(gdb); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	engine, err := do.Invoke[*gin.Engine](rt.container.Injector)
	if err != nil {
		return err
	}
	maintenance := do.MustInvoke[service.MaintenanceService](rt.container.Injector)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", rt.cfg.App.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.log.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		sweep := func(ctx context.Context) error {
			_, err := maintenance.Cleanup(ctx)
			return err
		}
		return cleaner.NewSweeper(rt.cfg.Cleanup.Interval, sweep, rt.log.Named("sweeper")).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		rt.log.Info("shutting down http server")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

package main

import (
	"context"
	"errors"

	mq "github.com/assetlabel/inventory/internal/infra/queue"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/assetlabel/inventory/internal/pkg/cleaner"
	"github.com/samber/do"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Consume QR regeneration jobs from RabbitMQ and run the periodic cleanup",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signalContext()
		defer stop()

		rt, err := setup(ctx)
		if err != nil {
			return err
		}
		defer rt.close()

		if !rt.cfg.RabbitMQ.Enabled {
			return errors.New("worker requires RABBITMQ_ENABLED=true")
		}
		return work(ctx, rt)
	},
}

func work(ctx context.Context, rt *app) error {
	assets, err := do.Invoke[service.AssetService](rt.container.Injector)
	if err != nil {
		return err
	}
	maintenance, err := do.Invoke[service.MaintenanceService](rt.container.Injector)
	if err != nil {
		return err
	}
	consumer, err := mq.NewConsumer(mq.Dialer(rt.cfg), rt.cfg.RabbitMQ.QRQueue, rt.cfg.RabbitMQ.Prefetch, rt.log.Named("worker"), rt.cfg)
	if err != nil {
		return err
	}
	defer consumer.Close()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rt.log.Info("qr worker started", zap.String("queue", rt.cfg.RabbitMQ.QRQueue))
		err := consumer.Handle(gctx, assets.HandleQRJob)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})
	g.Go(func() error {
		sweep := func(ctx context.Context) error {
			_, err := maintenance.Cleanup(ctx)
			return err
		}
		return cleaner.NewSweeper(rt.cfg.Cleanup.Interval, sweep, rt.log.Named("sweeper")).Run(gctx)
	})
	return g.Wait()
}

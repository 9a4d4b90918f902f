// Package bootstrap wires the process's dependencies into a samber/do
// container. Providers run lazily, so a command only opens the connections
// it actually resolves.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/assetlabel/inventory/internal/config"
	"github.com/assetlabel/inventory/internal/infra/blob"
	"github.com/assetlabel/inventory/internal/infra/cache"
	"github.com/assetlabel/inventory/internal/infra/db"
	mq "github.com/assetlabel/inventory/internal/infra/queue"
	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/handler"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/modules/service"
	"github.com/assetlabel/inventory/internal/pkg/label"
	"github.com/assetlabel/inventory/internal/pkg/qr"
	"github.com/assetlabel/inventory/internal/router"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/samber/do"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container owns the injector plus the close hooks of every connection it
// opened.
type Container struct {
	*do.Injector

	mu      sync.Mutex
	closers []closer
}

type closer struct {
	name string
	fn   func() error
}

func (c *Container) onShutdown(name string, fn func() error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closers = append(c.closers, closer{name: name, fn: fn})
}

// Shutdown closes opened connections in reverse order of creation.
func (c *Container) Shutdown() error {
	c.mu.Lock()
	closers := c.closers
	c.closers = nil
	c.mu.Unlock()

	var errs []error
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].fn(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", closers[i].name, err))
		}
	}
	return errors.Join(errs...)
}

// Adapters holds the optional integrations as interfaces. A disabled
// integration is a nil interface, never a typed nil pointer.
type Adapters struct {
	Cache  service.QRCache
	Events service.EventPublisher
	Jobs   service.JobQueue
	Blob   service.BlobStore
	Locker service.Locker
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) *Container {
	c := &Container{Injector: do.New()}
	i := c.Injector

	do.ProvideValue(i, cfg)
	do.ProvideValue(i, log)
	do.ProvideValue(i, storage.NewPaths(cfg.Storage.Root))

	// infra
	do.Provide(i, func(i *do.Injector) (*gorm.DB, error) {
		gdb, err := db.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		c.onShutdown("database", func() error { return db.Close(gdb) })
		return gdb, nil
	})
	do.Provide(i, func(i *do.Injector) (*redis.Client, error) {
		if !cfg.Redis.Enabled {
			return nil, nil
		}
		rdb, err := cache.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		c.onShutdown("redis", rdb.Close)
		return rdb, nil
	})
	do.Provide(i, func(i *do.Injector) (*mq.Publisher, error) {
		if !cfg.RabbitMQ.Enabled {
			return nil, nil
		}
		p, err := mq.NewPublisher(log.Named("mq"), cfg, mq.Dialer(cfg))
		if err != nil {
			return nil, err
		}
		c.onShutdown("rabbitmq publisher", p.Close)
		return p, nil
	})
	do.Provide(i, func(i *do.Injector) (*blob.S3Deps, error) {
		if !cfg.S3.Enabled {
			return nil, nil
		}
		return blob.NewS3(ctx, cfg)
	})
	do.Provide(i, func(i *do.Injector) (*Adapters, error) {
		a := &Adapters{}
		rdb, err := do.Invoke[*redis.Client](i)
		if err != nil {
			return nil, err
		}
		if rdb != nil {
			a.Cache = cache.NewDataURLCache(rdb, cfg.Redis.QRTTL)
			a.Locker = cache.NewLocker(rdb)
		}
		pub, err := do.Invoke[*mq.Publisher](i)
		if err != nil {
			return nil, err
		}
		if pub != nil {
			a.Events, a.Jobs = pub, pub
		}
		s3, err := do.Invoke[*blob.S3Deps](i)
		if err != nil {
			return nil, err
		}
		if s3 != nil {
			a.Blob = s3
		}
		return a, nil
	})

	// file pipeline
	do.Provide(i, func(i *do.Injector) (*qr.Generator, error) {
		return qr.NewGenerator(do.MustInvoke[storage.Paths](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (*label.Renderer, error) {
		return label.NewRenderer(do.MustInvoke[storage.Paths](i), label.Options{
			Title:    cfg.Label.Title,
			LogoPath: cfg.Storage.LogoPath,
		}), nil
	})

	// repo
	do.Provide(i, func(i *do.Injector) (repo.AssetRepo, error) {
		return repo.NewAssetRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (repo.CounterRepo, error) {
		return repo.NewCounterRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (repo.AssetNameRepo, error) {
		return repo.NewAssetNameRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (repo.LocationRepo, error) {
		return repo.NewLocationRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (repo.ResponsibleRepo, error) {
		return repo.NewResponsibleRepo(do.MustInvoke[*gorm.DB](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (repo.ImportJobRepo, error) {
		return repo.NewImportJobRepo(do.MustInvoke[*gorm.DB](i)), nil
	})

	// service
	do.Provide(i, func(i *do.Injector) (service.AssetService, error) {
		a, err := do.Invoke[*Adapters](i)
		if err != nil {
			return nil, err
		}
		return service.NewAssetService(service.AssetDeps{
			Assets:         do.MustInvoke[repo.AssetRepo](i),
			Names:          do.MustInvoke[repo.AssetNameRepo](i),
			Alloc:          service.NewAllocator(do.MustInvoke[repo.CounterRepo](i), nil),
			QR:             do.MustInvoke[*qr.Generator](i),
			Labels:         do.MustInvoke[*label.Renderer](i),
			Blob:           a.Blob,
			Cache:          a.Cache,
			Events:         a.Events,
			EventsExchange: cfg.RabbitMQ.EventsExchange,
			Jobs:           a.Jobs,
			QRQueue:        cfg.RabbitMQ.QRQueue,
			Log:            log.Named("asset"),
		}), nil
	})
	do.Provide(i, func(i *do.Injector) (service.LabelService, error) {
		a, err := do.Invoke[*Adapters](i)
		if err != nil {
			return nil, err
		}
		return service.NewLabelService(service.LabelDeps{
			Assets:   do.MustInvoke[repo.AssetRepo](i),
			QR:       do.MustInvoke[*qr.Generator](i),
			Renderer: do.MustInvoke[*label.Renderer](i),
			Paths:    do.MustInvoke[storage.Paths](i),
			Blob:     a.Blob,
			Log:      log.Named("label"),
		}), nil
	})
	do.Provide(i, func(i *do.Injector) (service.MaintenanceService, error) {
		a, err := do.Invoke[*Adapters](i)
		if err != nil {
			return nil, err
		}
		return service.NewMaintenanceService(service.MaintenanceDeps{
			Assets:      do.MustInvoke[repo.AssetRepo](i),
			Paths:       do.MustInvoke[storage.Paths](i),
			BatchMaxAge: cfg.Cleanup.BatchMaxAge,
			Grace:       cfg.Cleanup.OrphanGrace,
			Locker:      a.Locker,
			LockTTL:     cfg.Cleanup.LockTTL,
			Log:         log.Named("cleanup"),
		}), nil
	})
	do.Provide(i, func(i *do.Injector) (service.LocationService, error) {
		return service.NewLocationService(do.MustInvoke[repo.LocationRepo](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (service.ResponsibleService, error) {
		return service.NewResponsibleService(do.MustInvoke[repo.ResponsibleRepo](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (service.AssetNameService, error) {
		return service.NewAssetNameService(do.MustInvoke[repo.AssetNameRepo](i)), nil
	})
	do.Provide(i, func(i *do.Injector) (service.ImportService, error) {
		return service.NewImportService(service.ImportDeps{
			Assets:       do.MustInvoke[service.AssetService](i),
			Locations:    do.MustInvoke[service.LocationService](i),
			Responsibles: do.MustInvoke[service.ResponsibleService](i),
			LocRepo:      do.MustInvoke[repo.LocationRepo](i),
			RespRepo:     do.MustInvoke[repo.ResponsibleRepo](i),
			JobRepo:      do.MustInvoke[repo.ImportJobRepo](i),
			Log:          log.Named("import"),
		}), nil
	})

	// http
	do.Provide(i, func(i *do.Injector) (*gin.Engine, error) {
		gdb := do.MustInvoke[*gorm.DB](i)
		checks := map[string]handler.Pinger{
			"database": func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
		}
		if rdb := do.MustInvoke[*redis.Client](i); rdb != nil {
			checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
		}

		return router.NewRouter(router.RouterDeps{
			ServiceName:        cfg.App.Name,
			Development:        cfg.IsDevelopment(),
			Log:                log,
			AssetHandler:       handler.NewAssetHandler(do.MustInvoke[service.AssetService](i)),
			LabelHandler:       handler.NewLabelHandler(do.MustInvoke[service.LabelService](i)),
			LocationHandler:    handler.NewLocationHandler(do.MustInvoke[service.LocationService](i)),
			ResponsibleHandler: handler.NewResponsibleHandler(do.MustInvoke[service.ResponsibleService](i)),
			AssetNameHandler:   handler.NewAssetNameHandler(do.MustInvoke[service.AssetNameService](i)),
			ImportHandler:      handler.NewImportHandler(do.MustInvoke[service.ImportService](i)),
			MaintenanceHandler: handler.NewMaintenanceHandler(do.MustInvoke[service.MaintenanceService](i)),
			HealthHandler:      handler.NewHealthHandler(checks),
		}), nil
	})

	return c
}

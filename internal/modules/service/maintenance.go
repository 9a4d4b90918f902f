package service

import (
	"context"
	"fmt"
	"time"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/cleaner"
	"go.uber.org/zap"
)

const cleanupLockName = "cleanup"

type CleanupReport struct {
	LiveAssets   int            `json:"live_assets"`
	Orphans      cleaner.Report `json:"orphans"`
	StaleBatches cleaner.Report `json:"stale_batches"`
	// Skipped is set when another instance held the cleanup lock.
	Skipped bool `json:"skipped"`
}

type MaintenanceService interface {
	Cleanup(ctx context.Context) (*CleanupReport, error)
}

type MaintenanceDeps struct {
	Assets      repo.AssetRepo
	Paths       storage.Paths
	BatchMaxAge time.Duration
	// Grace protects files younger than this from the orphan scan.
	Grace   time.Duration
	Locker  Locker
	LockTTL time.Duration
	Log     *zap.Logger
	Now     func() time.Time
}

type maintenanceService struct {
	MaintenanceDeps
}

func NewMaintenanceService(d MaintenanceDeps) MaintenanceService {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.LockTTL <= 0 {
		d.LockTTL = 10 * time.Minute
	}
	return &maintenanceService{MaintenanceDeps: d}
}

func (s *maintenanceService) Cleanup(ctx context.Context) (*CleanupReport, error) {
	if s.Locker != nil {
		release, ok, err := s.Locker.TryLock(ctx, cleanupLockName, s.LockTTL)
		switch {
		case err != nil:
			s.Log.Warn("cleanup lock unavailable, sweeping without it", zap.Error(err))
		case !ok:
			s.Log.Info("cleanup already running elsewhere")
			return &CleanupReport{Skipped: true, Orphans: emptyReport(), StaleBatches: emptyReport()}, nil
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					s.Log.Warn("release cleanup lock", zap.Error(err))
				}
			}()
		}
	}

	now := s.Now()
	ids, err := s.Assets.ListIdentifiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list asset identifiers: %w", err)
	}
	valid := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		valid[id] = struct{}{}
	}

	var cutoff time.Time
	if s.Grace > 0 {
		cutoff = now.Add(-s.Grace)
	}
	report := &CleanupReport{
		LiveAssets:   len(ids),
		Orphans:      normalize(cleaner.CleanOrphansBefore([]string{s.Paths.QRDir, s.Paths.LabelDir}, valid, cutoff)),
		StaleBatches: normalize(cleaner.PurgeStale(s.Paths.BatchDir, s.BatchMaxAge, now)),
	}

	for _, errs := range [][]cleaner.FileError{report.Orphans.Errors, report.StaleBatches.Errors} {
		for _, fe := range errs {
			s.Log.Error("cleanup file", zap.String("path", fe.Path), zap.String("error", fe.Message))
		}
	}
	s.Log.Info("cleanup finished",
		zap.Int("live_assets", report.LiveAssets),
		zap.Int("orphans_deleted", len(report.Orphans.Deleted)),
		zap.Int("batches_deleted", len(report.StaleBatches.Deleted)))
	return report, nil
}

func emptyReport() cleaner.Report {
	return cleaner.Report{Deleted: []string{}, Errors: []cleaner.FileError{}}
}

func normalize(r cleaner.Report) cleaner.Report {
	if r.Deleted == nil {
		r.Deleted = []string{}
	}
	if r.Errors == nil {
		r.Errors = []cleaner.FileError{}
	}
	return r
}

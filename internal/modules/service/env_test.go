package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/label"
	"github.com/assetlabel/inventory/internal/pkg/qr"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var fixedNow = time.Date(2025, time.March, 1, 10, 0, 0, 0, time.UTC)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repo.Migrate(db))
	return db
}

// testEnv is the full pipeline over sqlite and a temp directory.
type testEnv struct {
	paths    storage.Paths
	qr       *qr.Generator
	renderer *label.Renderer
	assets   repo.AssetRepo
	names    repo.AssetNameRepo
	db       *gorm.DB
	svc      AssetService
	labels   LabelService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	paths := storage.NewPaths(t.TempDir())
	db := openTestDB(t)
	env := &testEnv{
		paths:    paths,
		qr:       qr.NewGenerator(paths),
		renderer: label.NewRenderer(paths, label.Options{Title: "INVENTARIO", Now: func() time.Time { return fixedNow }}),
		assets:   repo.NewAssetRepo(db),
		names:    repo.NewAssetNameRepo(db),
		db:       db,
	}
	env.svc = NewAssetService(AssetDeps{
		Assets: env.assets,
		Names:  env.names,
		Alloc:  NewAllocator(repo.NewCounterRepo(db), func() time.Time { return fixedNow }),
		QR:     env.qr,
		Labels: env.renderer,
		Now:    func() time.Time { return fixedNow },
	})
	env.labels = NewLabelService(LabelDeps{
		Assets:   env.assets,
		QR:       env.qr,
		Renderer: env.renderer,
		Paths:    paths,
	})
	return env
}

func validInput() CreateAssetInput {
	return CreateAssetInput{
		Description: "Cepillo de cerdas duras para botas",
		Responsible: "Juan Gómez",
		Location:    "Bodega Central",
		Category:    "Limpieza",
	}
}

package service

import (
	"context"
	"errors"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/assetlabel/inventory/internal/pkg/label"
	"github.com/assetlabel/inventory/internal/pkg/qr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAssetService_Create_DescriptionLength(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expectErr   bool
	}{
		{name: "nine runes after trim", description: "  ñññññññññ  ", expectErr: true},
		{name: "ten runes after trim", description: "  ññññññññññ  ", expectErr: false},
		{name: "blank", description: "     ", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			in := validInput()
			in.Description = tt.description

			got, err := env.svc.Create(context.Background(), in)
			if tt.expectErr {
				require.Error(t, err)
				ae := apperr.Classify(err)
				assert.Equal(t, apperr.KindValidation, ae.Kind)
				require.NotEmpty(t, ae.Fields)
				assert.Equal(t, "description", ae.Fields[0].Field)

				_, total, err := env.assets.List(context.Background(), repo.AssetFilter{})
				require.NoError(t, err)
				assert.Zero(t, total)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, strings.TrimSpace(tt.description), got.Description)
		})
	}
}

func TestAssetService_Create_WritesQRAndRow(t *testing.T) {
	env := newTestEnv(t)
	in := validInput()
	in.Responsible = "  Juan Gómez  "

	got, err := env.svc.Create(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "AST-2025-0001", got.AssetID)
	assert.Equal(t, "Juan Gómez", got.Responsible)
	assert.Equal(t, model.StatusActive, got.Status)
	require.NotNil(t, got.QRCodePath)
	assert.Equal(t, "qr_codes/AST-2025-0001.png", *got.QRCodePath)
	assert.FileExists(t, env.qr.Path("AST-2025-0001"))

	png, err := qr.DecodeDataURL(got.QRCode)
	require.NoError(t, err)
	onDisk, err := os.ReadFile(env.qr.Path("AST-2025-0001"))
	require.NoError(t, err)
	assert.Equal(t, onDisk, png)
}

func TestAssetService_Create_RejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)
	in := validInput()
	in.Status = "Perdido"

	_, err := env.svc.Create(context.Background(), in)
	ae := apperr.Classify(err)
	require.NotNil(t, ae)
	assert.Equal(t, apperr.KindValidation, ae.Kind)
	assert.Equal(t, "status", ae.Fields[0].Field)
}

func TestAssetService_Create_AllocatorFailureCreatesNothing(t *testing.T) {
	paths := storage.NewPaths(t.TempDir())
	assets := &MockAssetRepo{}
	alloc := &MockAllocator{}
	alloc.On("Next", mock.Anything).Return("", errors.New("counter unavailable"))

	svc := NewAssetService(AssetDeps{
		Assets: assets,
		Names:  &MockAssetNameRepo{},
		Alloc:  alloc,
		QR:     qr.NewGenerator(paths),
		Labels: label.NewRenderer(paths, label.Options{}),
	})

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	assert.NoDirExists(t, paths.QRDir)
}

func TestAssetService_Create_InsertFailureRemovesQR(t *testing.T) {
	paths := storage.NewPaths(t.TempDir())
	gen := qr.NewGenerator(paths)
	assets := &MockAssetRepo{}
	assets.On("Create", mock.Anything, mock.AnythingOfType("*model.Asset")).Return(errors.New("insert failed"))
	alloc := &MockAllocator{}
	alloc.On("Next", mock.Anything).Return("AST-2025-0042", nil)
	events := &MockPublisher{}

	svc := NewAssetService(AssetDeps{
		Assets: assets,
		Names:  &MockAssetNameRepo{},
		Alloc:  alloc,
		QR:     gen,
		Labels: label.NewRenderer(paths, label.Options{}),
		Events: events,
	})

	_, err := svc.Create(context.Background(), validInput())
	require.Error(t, err)
	assert.NoFileExists(t, gen.Path("AST-2025-0042"))
	events.AssertNotCalled(t, "PublishJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAssetService_Create_ConcurrentIdentifiersAreDistinct(t *testing.T) {
	env := newTestEnv(t)
	const n = 20

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = map[string]bool{}
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := env.svc.Create(context.Background(), validInput())
			if !assert.NoError(t, err) {
				return
			}
			mu.Lock()
			ids[got.AssetID] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Len(t, ids, n)
	live, err := env.assets.ListIdentifiers(context.Background())
	require.NoError(t, err)
	assert.Len(t, live, n)
}

func TestAssetService_Create_DisplayNames(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	var names []string
	for i := 0; i < 3; i++ {
		in := validInput()
		in.Name = " Silla "
		got, err := env.svc.Create(ctx, in)
		require.NoError(t, err)
		names = append(names, got.Name)
	}
	assert.Equal(t, []string{"Silla", "Silla (2)", "Silla (3)"}, names)
	assert.Equal(t, "Mesa", DisplayName("Mesa", 1))
}

func TestAssetService_Create_PublishesEventAndCaches(t *testing.T) {
	env := newTestEnv(t)
	events := &MockPublisher{}
	events.On("PublishJSON", mock.Anything, "inventory.assets", "asset.created", mock.MatchedBy(func(ev AssetEvent) bool {
		return ev.AssetID == "AST-2025-0001" && ev.Asset != nil
	})).Return(nil)
	cache := &MockQRCache{}
	cache.On("Set", mock.Anything, "AST-2025-0001", mock.MatchedBy(func(s string) bool {
		return strings.HasPrefix(s, "data:image/png;base64,")
	})).Return(nil)

	svc := NewAssetService(AssetDeps{
		Assets:         env.assets,
		Names:          env.names,
		Alloc:          NewAllocator(repo.NewCounterRepo(env.db), func() time.Time { return fixedNow }),
		QR:             env.qr,
		Labels:         env.renderer,
		Cache:          cache,
		Events:         events,
		EventsExchange: "inventory.assets",
		Now:            func() time.Time { return fixedNow },
	})

	_, err := svc.Create(context.Background(), validInput())
	require.NoError(t, err)
	events.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestAssetService_Get_UsesCache(t *testing.T) {
	assets := &MockAssetRepo{}
	assets.On("GetByID", mock.Anything, uint(7)).Return(&model.Asset{ID: 7, AssetID: "AST-2025-0007"}, nil)
	cache := &MockQRCache{}
	cache.On("Get", mock.Anything, "AST-2025-0007").Return("data:image/png;base64,AAAA", true, nil)

	paths := storage.NewPaths(t.TempDir())
	svc := NewAssetService(AssetDeps{
		Assets: assets,
		QR:     qr.NewGenerator(paths),
		Labels: label.NewRenderer(paths, label.Options{}),
		Cache:  cache,
	})

	got, err := svc.Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", got.QRCode)
}

func TestAssetService_Get_NotFound(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.svc.Get(context.Background(), 99)
	assert.True(t, apperr.IsNotFound(err))
}

func TestAssetService_QRCode(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)

	t.Run("invalid identifier fails before any lookup", func(t *testing.T) {
		assets := &MockAssetRepo{}
		svc := NewAssetService(AssetDeps{Assets: assets, QR: env.qr, Labels: env.renderer})
		_, err := svc.QRCode(ctx, "not-a-valid-id")
		assert.Equal(t, apperr.KindValidation, apperr.Classify(err).Kind)
		assets.AssertNotCalled(t, "GetByAssetID", mock.Anything, mock.Anything)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := env.svc.QRCode(ctx, "AST-2025-0999")
		assert.True(t, apperr.IsNotFound(err))
	})

	t.Run("existing identifier", func(t *testing.T) {
		art, err := env.svc.QRCode(ctx, created.AssetID)
		require.NoError(t, err)
		assert.Equal(t, created.QRCode, art.DataURL)
		assert.Equal(t, "qr_codes/AST-2025-0001.png", art.RelPath)
	})

	t.Run("missing file is regenerated", func(t *testing.T) {
		require.NoError(t, os.Remove(env.qr.Path(created.AssetID)))
		art, err := env.svc.QRCode(ctx, created.AssetID)
		require.NoError(t, err)
		assert.NotEmpty(t, art.DataURL)
		assert.FileExists(t, env.qr.Path(created.AssetID))
	})
}

func TestAssetService_Update(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)

	status := "Mantenimiento"
	loc := "  Oficina 2  "
	got, err := env.svc.Update(ctx, created.ID, UpdateAssetInput{Status: &status, Location: &loc})
	require.NoError(t, err)
	assert.Equal(t, model.StatusMaintenance, got.Status)
	assert.Equal(t, "Oficina 2", got.Location)
	assert.Equal(t, created.AssetID, got.AssetID)

	short := "corta"
	_, err = env.svc.Update(ctx, created.ID, UpdateAssetInput{Description: &short})
	assert.Equal(t, apperr.KindValidation, apperr.Classify(err).Kind)

	_, err = env.svc.Update(ctx, 999, UpdateAssetInput{Status: &status})
	assert.True(t, apperr.IsNotFound(err))
}

func TestAssetService_Update_DropsStaleLabels(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)

	before, err := env.labels.RenderPDF(ctx, created.AssetID)
	require.NoError(t, err)
	_, err = env.labels.RenderBarTender(ctx, created.AssetID)
	require.NoError(t, err)
	old, err := os.ReadFile(before.LocalPath)
	require.NoError(t, err)

	loc := "Oficina Norte Piso 3"
	_, err = env.svc.Update(ctx, created.ID, UpdateAssetInput{Location: &loc})
	require.NoError(t, err)
	assert.NoFileExists(t, env.renderer.PDFPath(created.AssetID))
	assert.NoFileExists(t, env.renderer.BarTenderPath(created.AssetID))

	wdfx, err := env.labels.RenderBarTender(ctx, created.AssetID)
	require.NoError(t, err)
	b, err := os.ReadFile(wdfx.LocalPath)
	require.NoError(t, err)
	assert.Contains(t, string(b), loc)

	after, err := env.labels.PDF(ctx, created.AssetID)
	require.NoError(t, err)
	fresh, err := os.ReadFile(after.LocalPath)
	require.NoError(t, err)
	assert.NotEqual(t, old, fresh)
}

func TestAssetService_Update_KeepsLabelsWhenPrintedFieldsUnchanged(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)
	_, err = env.labels.RenderPDF(ctx, created.AssetID)
	require.NoError(t, err)

	status := "Inactivo"
	same := " " + created.Location + " "
	_, err = env.svc.Update(ctx, created.ID, UpdateAssetInput{Status: &status, Location: &same})
	require.NoError(t, err)
	assert.FileExists(t, env.renderer.PDFPath(created.AssetID))
}

func TestAssetService_RemovesLabelMirrors(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	store := &MockBlobStore{}
	store.On("Key", storage.LabelDirName, mock.Anything).Return("inventory/labels/x")
	store.On("Delete", mock.Anything, "inventory/labels/x").Return(errors.New("bucket gone")).Once()
	store.On("Delete", mock.Anything, "inventory/labels/x").Return(nil)

	svc := NewAssetService(AssetDeps{
		Assets: env.assets,
		Names:  env.names,
		Alloc:  NewAllocator(repo.NewCounterRepo(env.db), func() time.Time { return fixedNow }),
		QR:     env.qr,
		Labels: env.renderer,
		Blob:   store,
		Now:    func() time.Time { return fixedNow },
	})
	created, err := svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = env.labels.RenderPDF(ctx, created.AssetID)
	require.NoError(t, err)
	desc := "Cepillo de cerdas suaves para calzado"
	_, err = svc.Update(ctx, created.ID, UpdateAssetInput{Description: &desc})
	require.NoError(t, err, "mirror failures only log")
	store.AssertNumberOfCalls(t, "Delete", 1)

	_, err = env.labels.RenderPDF(ctx, created.AssetID)
	require.NoError(t, err)
	_, err = env.labels.RenderBarTender(ctx, created.AssetID)
	require.NoError(t, err)
	res, err := svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Len(t, res.RemovedFiles, 3)
	store.AssertNumberOfCalls(t, "Delete", 3)
	store.AssertCalled(t, "Key", storage.LabelDirName, env.renderer.PDFPath(created.AssetID))
	store.AssertCalled(t, "Key", storage.LabelDirName, env.renderer.BarTenderPath(created.AssetID))
}

func TestAssetService_Delete_CascadesToFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)

	_, err = env.labels.RenderPDF(ctx, created.AssetID)
	require.NoError(t, err)
	_, err = env.labels.RenderBarTender(ctx, created.AssetID)
	require.NoError(t, err)

	res, err := env.svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.AssetID, res.AssetID)
	assert.Len(t, res.RemovedFiles, 3)
	assert.NoFileExists(t, env.qr.Path(created.AssetID))
	assert.NoFileExists(t, env.renderer.PDFPath(created.AssetID))
	assert.NoFileExists(t, env.renderer.BarTenderPath(created.AssetID))

	_, err = env.svc.Delete(ctx, created.ID)
	assert.True(t, apperr.IsNotFound(err))

	next, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)
	assert.Equal(t, "AST-2025-0002", next.AssetID)
}

func TestAssetService_Delete_WithoutFiles(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, os.Remove(env.qr.Path(created.AssetID)))

	res, err := env.svc.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.Empty(t, res.RemovedFiles)
}

func TestAssetService_RegenerateQR_Twice(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)

	first, err := env.svc.RegenerateQR(ctx, created.ID)
	require.NoError(t, err)
	second, err := env.svc.RegenerateQR(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, first.DataURL, second.DataURL)
	assert.FileExists(t, env.qr.Path(created.AssetID))
}

func TestAssetService_RegenerateAll(t *testing.T) {
	t.Run("queues one job per asset", func(t *testing.T) {
		assets := &MockAssetRepo{}
		assets.On("ListIdentifiers", mock.Anything).Return([]string{"AST-2025-0001", "AST-2025-0002"}, nil)
		jobs := &MockPublisher{}
		jobs.On("Enqueue", mock.Anything, "qr.jobs", QRJob{AssetID: "AST-2025-0001"}).Return(nil)
		jobs.On("Enqueue", mock.Anything, "qr.jobs", QRJob{AssetID: "AST-2025-0002"}).Return(errors.New("channel closed"))

		paths := storage.NewPaths(t.TempDir())
		svc := NewAssetService(AssetDeps{
			Assets:  assets,
			QR:      qr.NewGenerator(paths),
			Labels:  label.NewRenderer(paths, label.Options{}),
			Jobs:    jobs,
			QRQueue: "qr.jobs",
		})

		report, err := svc.RegenerateAll(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, report.Total)
		assert.Equal(t, 1, report.Queued)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, "AST-2025-0002", report.Failed[0].AssetID)
	})

	t.Run("inline without a broker", func(t *testing.T) {
		env := newTestEnv(t)
		ctx := context.Background()
		for i := 0; i < 3; i++ {
			_, err := env.svc.Create(ctx, validInput())
			require.NoError(t, err)
		}
		require.NoError(t, os.RemoveAll(env.paths.QRDir))

		report, err := env.svc.RegenerateAll(ctx)
		require.NoError(t, err)
		assert.Equal(t, 3, report.Regenerated)
		assert.Empty(t, report.Failed)
		assert.FileExists(t, env.qr.Path("AST-2025-0003"))
	})
}

func TestAssetService_HandleQRJob(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	created, err := env.svc.Create(ctx, validInput())
	require.NoError(t, err)
	require.NoError(t, os.Remove(env.qr.Path(created.AssetID)))

	require.NoError(t, env.svc.HandleQRJob(ctx, []byte(`{"asset_id":"AST-2025-0001"}`)))
	assert.FileExists(t, env.qr.Path(created.AssetID))

	assert.NoError(t, env.svc.HandleQRJob(ctx, []byte(`{"asset_id":"AST-2025-0500"}`)), "deleted asset is dropped")
	assert.NoError(t, env.svc.HandleQRJob(ctx, []byte(`not json`)), "malformed job is dropped")
}

func TestAssetService_List_RejectsUnknownStatus(t *testing.T) {
	assets := &MockAssetRepo{}
	svc := NewAssetService(AssetDeps{Assets: assets})
	_, _, err := svc.List(context.Background(), repo.AssetFilter{Status: "Perdido"})
	assert.Equal(t, apperr.KindValidation, apperr.Classify(err).Kind)
	assets.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

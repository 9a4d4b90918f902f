package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/assetlabel/inventory/internal/pkg/excel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newImportService(env *testEnv) ImportService {
	locRepo := repo.NewLocationRepo(env.db)
	respRepo := repo.NewResponsibleRepo(env.db)
	return NewImportService(ImportDeps{
		Assets:       env.svc,
		Locations:    NewLocationService(locRepo),
		Responsibles: NewResponsibleService(respRepo),
		LocRepo:      locRepo,
		RespRepo:     respRepo,
		JobRepo:      repo.NewImportJobRepo(env.db),
	})
}

func workbook(t *testing.T, rows ...[]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &r))
	}
	var buf bytes.Buffer
	_, err := f.WriteTo(&buf)
	require.NoError(t, err)
	return &buf
}

func TestImportService_Assets(t *testing.T) {
	env := newTestEnv(t)
	svc := newImportService(env)
	ctx := context.Background()

	header := []any{"Nombre", "Categoría", "Estado", "Responsable", "Ubicación", "Observación", "Valor"}
	buf := workbook(t,
		header,
		[]any{"Cepillo para botas", "Limpieza", "Activo", "Juan Gómez", "Bodega Central", "Cepillo de cerdas duras", "15.000,50"},
		[]any{"Silla", "Oficina", "", "Ana Ruiz", "Oficina 2", "", ""},
		[]any{"Mesa", "Oficina", "Perdido", "Ana Ruiz", "Oficina 2", "Mesa de reuniones grande", ""},
		[]any{"Lámpara", "Oficina", "Activo", "Ana Ruiz", "Oficina 2", "Lámpara de escritorio LED", "abc"},
	)

	res, err := svc.Import(ctx, excel.EntityAssets, "activos.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, 3, res.Errors[0].Row)
	assert.Contains(t, res.Errors[0].Message, "description")
	assert.Equal(t, 4, res.Errors[1].Row)
	assert.Contains(t, res.Errors[1].Message, "status")
	assert.Equal(t, 5, res.Errors[2].Row)
	assert.Contains(t, res.Errors[2].Message, "value")

	created, err := env.svc.QRCode(ctx, "AST-2025-0001")
	require.NoError(t, err)
	assert.NotEmpty(t, created.DataURL)

	a, err := env.assets.GetByAssetID(ctx, "AST-2025-0001")
	require.NoError(t, err)
	require.NotNil(t, a.Value)
	assert.InDelta(t, 15000.50, *a.Value, 0.001)

	jobs, err := svc.Jobs(ctx, 5)
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, res.JobID, jobs[0].ID)
	assert.Len(t, jobs[0].Errors.Data(), 3)
}

func TestImportService_LocationsSkipsExisting(t *testing.T) {
	env := newTestEnv(t)
	svc := newImportService(env)
	ctx := context.Background()

	_, err := NewLocationService(repo.NewLocationRepo(env.db)).Create(ctx, LocationInput{Name: "Bodega Central"})
	require.NoError(t, err)

	buf := workbook(t,
		[]any{"Nombre", "Descripción"},
		[]any{"Bodega Central", "ya existe"},
		[]any{"Oficina 2", "Segundo piso"},
		[]any{"X", "nombre corto"},
	)
	res, err := svc.Import(ctx, excel.EntityLocations, "ubicaciones.xlsx", buf)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Created)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, 4, res.Errors[0].Row)
}

func TestImportService_InvalidWorkbook(t *testing.T) {
	env := newTestEnv(t)
	svc := newImportService(env)

	_, err := svc.Import(context.Background(), excel.EntityLocations, "x.xlsx", bytes.NewBufferString("not a workbook"))
	assert.Equal(t, apperr.KindValidation, apperr.Classify(err).Kind)

	buf := workbook(t, []any{"Nombre"})
	_, err = svc.Import(context.Background(), excel.EntityLocations, "x.xlsx", buf)
	assert.Equal(t, apperr.KindValidation, apperr.Classify(err).Kind)
}

func TestImportService_Template(t *testing.T) {
	svc := NewImportService(ImportDeps{})
	var buf bytes.Buffer
	require.NoError(t, svc.Template(&buf, excel.EntityAssets))

	rows, err := excel.ReadRows(&buf, excel.EntityAssets)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"15000", 15000},
		{"15000.5", 15000.5},
		{"15.000,50", 15000.5},
		{"$ 1,250.00", 1250},
		{"12,5", 12.5},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.in)
		require.NoError(t, err, tt.in)
		assert.InDelta(t, tt.want, got, 0.0001, tt.in)
	}
	_, err := ParseAmount("abc")
	assert.Error(t, err)
}

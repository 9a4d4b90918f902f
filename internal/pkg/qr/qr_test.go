package qr

import (
	"bytes"
	"image"
	_ "image/png"
	"os"
	"testing"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/makiuchi-d/gozxing"
	zxqr "github.com/makiuchi-d/gozxing/qrcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGenerator(t *testing.T) *Generator {
	t.Helper()
	return NewGenerator(storage.NewPaths(t.TempDir()))
}

func decodeQR(t *testing.T, dataURL string) string {
	t.Helper()
	png, err := DecodeDataURL(dataURL)
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(png))
	require.NoError(t, err)

	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	require.NoError(t, err)

	hints := map[gozxing.DecodeHintType]interface{}{gozxing.DecodeHintType_TRY_HARDER: true}
	res, err := zxqr.NewQRCodeReader().Decode(bmp, hints)
	require.NoError(t, err)
	return res.GetText()
}

func TestGenerator_Generate(t *testing.T) {
	g := newTestGenerator(t)

	art, err := g.Generate("AST-2025-0001")
	require.NoError(t, err)

	assert.Equal(t, "qr_codes/AST-2025-0001.png", art.RelPath)
	assert.FileExists(t, art.FilePath)
	assert.Equal(t, "AST-2025-0001", decodeQR(t, art.DataURL))

	png, err := DecodeDataURL(art.DataURL)
	require.NoError(t, err)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(png))
	require.NoError(t, err)
	assert.Equal(t, DefaultSize, cfg.Width)
	assert.Equal(t, DefaultSize, cfg.Height)
}

func TestGenerator_RegenerateTwice(t *testing.T) {
	g := newTestGenerator(t)

	first, err := g.Regenerate("AST-2025-0042")
	require.NoError(t, err)
	second, err := g.Regenerate("AST-2025-0042")
	require.NoError(t, err)

	assert.Equal(t, first.DataURL, second.DataURL)
	assert.Equal(t, "AST-2025-0042", decodeQR(t, second.DataURL))

	onDisk, err := g.DataURL("AST-2025-0042")
	require.NoError(t, err)
	assert.Equal(t, second.DataURL, onDisk)
}

func TestGenerator_DeleteMissing(t *testing.T) {
	g := newTestGenerator(t)

	removed, err := g.Delete("AST-2025-0099")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestGenerator_DeleteExisting(t *testing.T) {
	g := newTestGenerator(t)
	art, err := g.Generate("AST-2025-0003")
	require.NoError(t, err)

	removed, err := g.Delete("AST-2025-0003")
	require.NoError(t, err)
	assert.True(t, removed)
	_, statErr := os.Stat(art.FilePath)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerator_DataURLMissing(t *testing.T) {
	g := newTestGenerator(t)

	_, err := g.DataURL("AST-2025-0100")
	var qrErr *Error
	require.ErrorAs(t, err, &qrErr)
	assert.Equal(t, "AST-2025-0100", qrErr.Identifier)
	assert.Equal(t, "read", qrErr.Op)
}

func TestDecodeDataURL_Rejects(t *testing.T) {
	_, err := DecodeDataURL("data:text/plain;base64,aGk=")
	assert.Error(t, err)
}

// Package qr turns asset identifiers into PNG QR codes on disk.
package qr

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/disintegration/imaging"
	goqr "github.com/skip2/go-qrcode"
)

const (
	DefaultSize   = 300
	DefaultMargin = 2

	dataURLPrefix = "data:image/png;base64,"
)

// Error carries the identifier whose artifact could not be produced.
type Error struct {
	Identifier string
	Op         string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("qr %s %s: %v", e.Op, e.Identifier, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

type Artifact struct {
	Identifier string `json:"asset_id"`
	FilePath   string `json:"-"`
	RelPath    string `json:"qr_code_path"`
	DataURL    string `json:"qr_code"`
}

type Generator struct {
	paths  storage.Paths
	size   int
	margin int
	level  goqr.RecoveryLevel
}

func NewGenerator(paths storage.Paths) *Generator {
	return &Generator{
		paths:  paths,
		size:   DefaultSize,
		margin: DefaultMargin,
		level:  goqr.High,
	}
}

// Path is the deterministic location of identifier's PNG.
func (g *Generator) Path(identifier string) string {
	return filepath.Join(g.paths.QRDir, identifier+".png")
}

// Generate encodes identifier, writes the PNG and returns it as a data URL.
// An existing file is overwritten with identical content.
func (g *Generator) Generate(identifier string) (*Artifact, error) {
	png, err := g.Encode(identifier)
	if err != nil {
		return nil, err
	}

	path := g.Path(identifier)
	err = storage.WriteAtomic(path, func(w io.Writer) error {
		_, err := w.Write(png)
		return err
	})
	if err != nil {
		return nil, &Error{Identifier: identifier, Op: "write", Err: err}
	}

	return &Artifact{
		Identifier: identifier,
		FilePath:   path,
		RelPath:    g.paths.Rel(path),
		DataURL:    DataURL(png),
	}, nil
}

// Regenerate deletes any previous PNG and writes a fresh one.
func (g *Generator) Regenerate(identifier string) (*Artifact, error) {
	if _, err := g.Delete(identifier); err != nil {
		return nil, err
	}
	return g.Generate(identifier)
}

// Delete removes identifier's PNG; removed is false when none existed.
func (g *Generator) Delete(identifier string) (removed bool, err error) {
	removed, err = storage.RemoveIfExists(g.Path(identifier))
	if err != nil {
		return false, &Error{Identifier: identifier, Op: "delete", Err: err}
	}
	return removed, nil
}

// DataURL reads the stored PNG for identifier.
func (g *Generator) DataURL(identifier string) (string, error) {
	b, err := os.ReadFile(g.Path(identifier))
	if err != nil {
		return "", &Error{Identifier: identifier, Op: "read", Err: err}
	}
	return DataURL(b), nil
}

// Encode renders the PNG bytes without touching the filesystem.
func (g *Generator) Encode(identifier string) ([]byte, error) {
	code, err := goqr.New(identifier, g.level)
	if err != nil {
		return nil, &Error{Identifier: identifier, Op: "encode", Err: err}
	}
	code.DisableBorder = true

	img := imaging.Resize(g.raster(code.Bitmap()), g.size, g.size, imaging.NearestNeighbor)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, &Error{Identifier: identifier, Op: "encode", Err: err}
	}
	return buf.Bytes(), nil
}

// raster draws one pixel per module surrounded by the quiet zone.
func (g *Generator) raster(modules [][]bool) image.Image {
	n := len(modules) + 2*g.margin
	img := image.NewGray(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			img.SetGray(x, y, color.Gray{Y: 0xff})
		}
	}
	for y, row := range modules {
		for x, dark := range row {
			if dark {
				img.SetGray(x+g.margin, y+g.margin, color.Gray{Y: 0x00})
			}
		}
	}
	return img
}

func DataURL(png []byte) string {
	return dataURLPrefix + base64.StdEncoding.EncodeToString(png)
}

// DecodeDataURL returns the PNG bytes carried by a data URL.
func DecodeDataURL(s string) ([]byte, error) {
	if len(s) < len(dataURLPrefix) || s[:len(dataURLPrefix)] != dataURLPrefix {
		return nil, fmt.Errorf("not a PNG data URL")
	}
	return base64.StdEncoding.DecodeString(s[len(dataURLPrefix):])
}

// Package label renders 40mm x 40mm asset labels as PDF pages and as
// BarTender XML documents.
package label

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/assetlabel/inventory/internal/infra/storage"
)

const (
	// PointsPerMM converts millimetres to PDF points.
	PointsPerMM = 2.83465
	SizeMM      = 40.0

	FormatPDF       = "pdf"
	FormatBatch     = "batch"
	FormatBarTender = "wdfx"
)

var ErrEmptyBatch = errors.New("batch requires at least one asset")

// Error identifies the asset whose label failed to render.
type Error struct {
	Identifier string
	Format     string
	Err        error
}

func (e *Error) Error() string {
	return fmt.Sprintf("render %s label %s: %v", e.Format, e.Identifier, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Data is everything printed on one label.
type Data struct {
	Identifier  string
	Description string
	Responsible string
	Location    string
	Category    string
	QR          QRSource
}

// Options configures a Renderer. LogoPath is resolved on every render;
// Logo is used as is when LogoPath is empty.
type Options struct {
	Title    string
	LogoPath string
	Logo     LogoSource
	Now      func() time.Time
}

type Renderer struct {
	paths    storage.Paths
	title    string
	logoPath string
	logo     LogoSource
	now      func() time.Time
}

func NewRenderer(paths storage.Paths, opts Options) *Renderer {
	r := &Renderer{
		paths: paths,
		title:    opts.Title,
		logoPath: opts.LogoPath,
		logo:     opts.Logo,
		now:      opts.Now,
	}
	if r.logo == nil {
		r.logo = LogoAbsent{}
	}
	if r.now == nil {
		r.now = time.Now
	}
	return r
}

// currentLogo reports the logo as it is on disk right now.
func (r *Renderer) currentLogo() LogoSource {
	if r.logoPath != "" {
		return ResolveLogo(r.logoPath)
	}
	return r.logo
}

func (r *Renderer) PDFPath(identifier string) string {
	return filepath.Join(r.paths.LabelDir, identifier+".pdf")
}

func (r *Renderer) BarTenderPath(identifier string) string {
	return filepath.Join(r.paths.LabelDir, identifier+".wdfx")
}

// Delete removes every label file of identifier and returns the removed
// paths. Missing files are not errors.
func (r *Renderer) Delete(identifier string) ([]string, error) {
	var removed []string
	for _, p := range []string{r.PDFPath(identifier), r.BarTenderPath(identifier)} {
		ok, err := storage.RemoveIfExists(p)
		if err != nil {
			return removed, &Error{Identifier: identifier, Format: filepath.Ext(p)[1:], Err: err}
		}
		if ok {
			removed = append(removed, p)
		}
	}
	return removed, nil
}

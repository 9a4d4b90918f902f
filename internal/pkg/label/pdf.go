package label

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/go-pdf/fpdf"
	"github.com/google/uuid"
)

// Fixed regions of a label, in millimetres from its top-left corner.
const (
	marginMM = 1.5

	logoSizeMM  = 5.0
	titleY      = 3.6
	dateY       = 7.2
	qrBoxX      = 10.0
	qrBoxY      = 8.5
	qrBoxSize   = 20.0
	categoryY   = 30.6
	partyY      = 33.6
	partyWidth  = 18.0
	identifierY = 38.2
)

func mm(v float64) float64 { return v * PointsPerMM }

type BatchResult struct {
	Path        string   `json:"-"`
	FileName    string   `json:"file_name"`
	Count       int      `json:"label_count"`
	LengthMM    float64  `json:"roll_length_mm"`
	Identifiers []string `json:"asset_ids"`
}

func (r *Renderer) newDocument(heightMM float64) *fpdf.Fpdf {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: mm(SizeMM), Ht: mm(heightMM)},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("inventory-api", true)
	pdf.AddPage()
	return pdf
}

// RenderPDF writes the single label of d to labels/<identifier>.pdf.
func (r *Renderer) RenderPDF(d Data) (string, error) {
	pdf := r.newDocument(SizeMM)
	r.drawLabel(pdf, d, r.currentLogo(), 0, r.now())

	path := r.PDFPath(d.Identifier)
	if err := storage.WriteAtomic(path, pdf.Output); err != nil {
		return "", &Error{Identifier: d.Identifier, Format: FormatPDF, Err: err}
	}
	return path, nil
}

// RenderBatch stacks every label on one continuous 40mm-wide page.
func (r *Renderer) RenderBatch(items []Data) (*BatchResult, error) {
	if len(items) == 0 {
		return nil, ErrEmptyBatch
	}

	now := r.now()
	logo := r.currentLogo()
	count := len(items)
	pdf := r.newDocument(SizeMM * float64(count))

	ids := make([]string, 0, count)
	for i, d := range items {
		r.drawLabel(pdf, d, logo, float64(i)*SizeMM, now)
		ids = append(ids, d.Identifier)
	}

	name := fmt.Sprintf("batch_%s_%d.pdf", uuid.NewString(), now.UnixMilli())
	path := filepath.Join(r.paths.BatchDir, name)
	if err := storage.WriteAtomic(path, pdf.Output); err != nil {
		return nil, &Error{Identifier: strings.Join(ids, ","), Format: FormatBatch, Err: err}
	}

	return &BatchResult{
		Path:        path,
		FileName:    name,
		Count:       count,
		LengthMM:    SizeMM * float64(count),
		Identifiers: ids,
	}, nil
}

// drawLabel paints one label with its top edge at offsetMM.
func (r *Renderer) drawLabel(pdf *fpdf.Fpdf, d Data, logo LogoSource, offsetMM float64, date time.Time) {
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	y := func(v float64) float64 { return mm(offsetMM + v) }

	if logo, ok := logo.(LogoPresent); ok {
		opts := fpdf.ImageOptions{ReadDpi: false}
		pdf.ImageOptions(logo.Path, mm(marginMM), y(1.0), mm(logoSizeMM), mm(logoSizeMM), false, opts, 0, "")
		pdf.ImageOptions(logo.Path, mm(SizeMM-marginMM-logoSizeMM), y(1.0), mm(logoSizeMM), mm(logoSizeMM), false, opts, 0, "")
	}

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 5)
	centerText(pdf, tr(r.title), mm(SizeMM-2*(marginMM+logoSizeMM)), y(titleY))

	pdf.SetFont("Helvetica", "", 4)
	centerText(pdf, tr("Fecha: "+date.Format("02/01/2006")), mm(SizeMM), y(dateY))

	switch q := d.QR.(type) {
	case QRPresent:
		pdf.ImageOptions(q.Path, mm(qrBoxX), y(qrBoxY), mm(qrBoxSize), mm(qrBoxSize), false,
			fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	default:
		pdf.SetLineWidth(0.5)
		pdf.SetDrawColor(0, 0, 0)
		pdf.Rect(mm(qrBoxX), y(qrBoxY), mm(qrBoxSize), mm(qrBoxSize), "D")
		pdf.SetFont("Helvetica", "B", 6)
		centerText(pdf, "QR N/D", mm(SizeMM), y(qrBoxY+qrBoxSize/2+0.8))
	}

	if d.Category != "" {
		pdf.SetFont("Helvetica", "I", 4)
		centerText(pdf, tr(fit(pdf, d.Category, mm(SizeMM-2*marginMM))), mm(SizeMM), y(categoryY))
	}

	pdf.SetFont("Helvetica", "", 4)
	resp := tr(fit(pdf, "Resp: "+d.Responsible, mm(partyWidth)))
	pdf.Text(mm(marginMM), y(partyY), resp)

	loc := tr(fit(pdf, "Ubic: "+d.Location, mm(partyWidth)))
	pdf.Text(mm(SizeMM-marginMM)-pdf.GetStringWidth(loc), y(partyY), loc)

	pdf.SetFont("Helvetica", "B", 6)
	centerText(pdf, d.Identifier, mm(SizeMM), y(identifierY))
}

// centerText draws s on baseline yPt, centred in a band of width bandPt that
// is itself centred on the page.
func centerText(pdf *fpdf.Fpdf, s string, bandPt, yPt float64) {
	w := pdf.GetStringWidth(s)
	if w > bandPt {
		s = fit(pdf, s, bandPt)
		w = pdf.GetStringWidth(s)
	}
	pdf.Text((mm(SizeMM)-w)/2, yPt, s)
}

// fit truncates s with an ellipsis until it is no wider than maxPt.
func fit(pdf *fpdf.Fpdf, s string, maxPt float64) string {
	if pdf.GetStringWidth(s) <= maxPt {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := strings.TrimSpace(string(runes)) + "..."
		if pdf.GetStringWidth(candidate) <= maxPt {
			return candidate
		}
	}
	return ""
}

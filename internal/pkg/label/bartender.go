package label

import (
	"encoding/xml"
	"io"

	"github.com/assetlabel/inventory/internal/infra/storage"
)

type btDocument struct {
	XMLName xml.Name  `xml:"BarTenderDocument"`
	Version string    `xml:"version,attr"`
	Format  btFormat  `xml:"Format"`
	Objects btObjects `xml:"Objects"`
	Data    []btField `xml:"NamedDataSources>DataSource"`
}

type btFormat struct {
	Units  string  `xml:"units,attr"`
	Width  float64 `xml:"width,attr"`
	Height float64 `xml:"height,attr"`
}

type btObjects struct {
	Text    []btText    `xml:"Text"`
	Pic     []btPicture `xml:"Picture"`
	Barcode btBarcode   `xml:"Barcode"`
}

type btText struct {
	Name   string  `xml:"name,attr"`
	X      float64 `xml:"x,attr"`
	Y      float64 `xml:"y,attr"`
	Size   float64 `xml:"fontSize,attr"`
	Align  string  `xml:"align,attr,omitempty"`
	Source string  `xml:"dataSource,attr,omitempty"`
	Value  string  `xml:",chardata"`
}

type btPicture struct {
	Name string  `xml:"name,attr"`
	X    float64 `xml:"x,attr"`
	Y    float64 `xml:"y,attr"`
	W    float64 `xml:"width,attr"`
	H    float64 `xml:"height,attr"`
	Path string  `xml:"file,attr"`
}

type btBarcode struct {
	Name      string  `xml:"name,attr"`
	Symbology string  `xml:"symbology,attr"`
	ECLevel   string  `xml:"errorCorrection,attr"`
	X         float64 `xml:"x,attr"`
	Y         float64 `xml:"y,attr"`
	W         float64 `xml:"width,attr"`
	H         float64 `xml:"height,attr"`
	Image     string  `xml:"imageFile,attr,omitempty"`
	Source    string  `xml:"dataSource,attr"`
}

type btField struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

// RenderBarTender writes labels/<identifier>.wdfx for BarTender.
func (r *Renderer) RenderBarTender(d Data) (string, error) {
	doc := r.barTenderDocument(d, r.currentLogo())

	path := r.BarTenderPath(d.Identifier)
	err := storage.WriteAtomic(path, func(w io.Writer) error {
		if _, err := io.WriteString(w, xml.Header); err != nil {
			return err
		}
		enc := xml.NewEncoder(w)
		enc.Indent("", "  ")
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	})
	if err != nil {
		return "", &Error{Identifier: d.Identifier, Format: FormatBarTender, Err: err}
	}
	return path, nil
}

func (r *Renderer) barTenderDocument(d Data, logo LogoSource) btDocument {
	date := r.now().Format("02/01/2006")

	doc := btDocument{
		Version: "1.0",
		Format:  btFormat{Units: "mm", Width: SizeMM, Height: SizeMM},
		Objects: btObjects{
			Text: []btText{
				{Name: "Title", X: SizeMM / 2, Y: titleY, Size: 5, Align: "center", Value: r.title},
				{Name: "Date", X: SizeMM / 2, Y: dateY, Size: 4, Align: "center", Value: "Fecha: " + date},
				{Name: "Category", X: SizeMM / 2, Y: categoryY, Size: 4, Align: "center", Source: "category"},
				{Name: "Responsible", X: marginMM, Y: partyY, Size: 4, Align: "left", Source: "responsible"},
				{Name: "Location", X: SizeMM - marginMM, Y: partyY, Size: 4, Align: "right", Source: "location"},
				{Name: "Identifier", X: SizeMM / 2, Y: identifierY, Size: 6, Align: "center", Source: "identifier"},
			},
			Barcode: btBarcode{
				Name:      "QR",
				Symbology: "QRCode",
				ECLevel:   "H",
				X:         qrBoxX,
				Y:         qrBoxY,
				W:         qrBoxSize,
				H:         qrBoxSize,
				Source:    "identifier",
			},
		},
		Data: []btField{
			{Name: "identifier", Value: d.Identifier},
			{Name: "description", Value: d.Description},
			{Name: "responsible", Value: d.Responsible},
			{Name: "location", Value: d.Location},
			{Name: "category", Value: d.Category},
		},
	}

	if q, ok := d.QR.(QRPresent); ok {
		doc.Objects.Barcode.Image = q.Path
	}
	if logo, ok := logo.(LogoPresent); ok {
		doc.Objects.Pic = []btPicture{
			{Name: "LogoLeft", X: marginMM, Y: 1.0, W: logoSizeMM, H: logoSizeMM, Path: logo.Path},
			{Name: "LogoRight", X: SizeMM - marginMM - logoSizeMM, Y: 1.0, W: logoSizeMM, H: logoSizeMM, Path: logo.Path},
		}
	}
	return doc
}

// Package excel builds the bulk-import templates and reads uploaded sheets.
package excel

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

type Entity string

const (
	EntityAssets       Entity = "assets"
	EntityLocations    Entity = "locations"
	EntityResponsibles Entity = "responsibles"
)

const (
	ColName        = "Nombre"
	ColCategory    = "Categoría"
	ColStatus      = "Estado"
	ColResponsible = "Responsable"
	ColLocation    = "Ubicación"
	ColObservation = "Observación"
	ColValue       = "Valor"
	ColDescription = "Descripción"
	ColEmail       = "Email"
	ColPhone       = "Teléfono"

	maxTemplateRows = 1000
)

var ErrUnknownEntity = errors.New("unknown import entity")

type template struct {
	sheet   string
	headers []string
	example []any
}

var templates = map[Entity]template{
	EntityAssets: {
		sheet:   "Activos",
		headers: []string{ColName, ColCategory, ColStatus, ColResponsible, ColLocation, ColObservation, ColValue},
		example: []any{"Cepillo para botas", "Limpieza", "Activo", "Juan Gómez", "Bodega Central", "Cepillo de cerdas duras para botas de seguridad", 15000},
	},
	EntityLocations: {
		sheet:   "Ubicaciones",
		headers: []string{ColName, ColDescription},
		example: []any{"Bodega Central", "Bodega principal, primer piso"},
	},
	EntityResponsibles: {
		sheet:   "Responsables",
		headers: []string{ColName, ColEmail, ColPhone},
		example: []any{"Juan Gómez", "juan.gomez@example.com", "+57 300 000 0000"},
	},
}

func ParseEntity(s string) (Entity, error) {
	e := Entity(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := templates[e]; !ok {
		return "", fmt.Errorf("%q: %w", s, ErrUnknownEntity)
	}
	return e, nil
}

// Headers returns the fixed column headers of entity's template.
func Headers(e Entity) []string {
	return append([]string(nil), templates[e].headers...)
}

// WriteTemplate writes an .xlsx template with bold headers and one example
// row. statuses, when given, becomes a drop-down on the Estado column.
func WriteTemplate(w io.Writer, e Entity, statuses []string) error {
	tpl, ok := templates[e]
	if !ok {
		return ErrUnknownEntity
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", tpl.sheet); err != nil {
		return err
	}

	header := make([]any, len(tpl.headers))
	for i, h := range tpl.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(tpl.sheet, "A1", &header); err != nil {
		return err
	}
	if err := f.SetSheetRow(tpl.sheet, "A2", &tpl.example); err != nil {
		return err
	}

	lastCol, err := excelize.ColumnNumberToName(len(tpl.headers))
	if err != nil {
		return err
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"1F4E78"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(tpl.sheet, "A1", lastCol+"1", style); err != nil {
		return err
	}
	if err := f.SetColWidth(tpl.sheet, "A", lastCol, 24); err != nil {
		return err
	}

	if e == EntityAssets && len(statuses) > 0 {
		dv := excelize.NewDataValidation(true)
		dv.Sqref = fmt.Sprintf("C2:C%d", maxTemplateRows)
		if err := dv.SetDropList(statuses); err != nil {
			return err
		}
		if err := f.AddDataValidation(tpl.sheet, dv); err != nil {
			return err
		}
	}

	_, err = f.WriteTo(w)
	return err
}

// Row is one data row keyed by template header. Number is the 1-based sheet
// row, for error reports.
type Row struct {
	Number int
	Values map[string]string
}

func (r Row) Get(col string) string { return strings.TrimSpace(r.Values[col]) }

// ReadRows parses the first sheet of an uploaded workbook. Headers are matched
// case-insensitively; blank rows are skipped.
func ReadRows(r io.Reader, e Entity) ([]Row, error) {
	tpl, ok := templates[e]
	if !ok {
		return nil, ErrUnknownEntity
	}

	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errors.New("workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, errors.New("sheet is empty")
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[normalize(h)] = i
	}
	cols := make(map[string]int, len(tpl.headers))
	for _, h := range tpl.headers {
		i, ok := index[normalize(h)]
		if !ok {
			return nil, fmt.Errorf("missing column %q", h)
		}
		cols[h] = i
	}

	var out []Row
	for n, cells := range rows[1:] {
		row := Row{Number: n + 2, Values: make(map[string]string, len(cols))}
		empty := true
		for h, i := range cols {
			if i < len(cells) {
				v := strings.TrimSpace(cells[i])
				row.Values[h] = v
				if v != "" {
					empty = false
				}
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out, nil
}

func normalize(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

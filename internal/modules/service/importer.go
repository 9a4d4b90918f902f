package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/assetlabel/inventory/internal/pkg/excel"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

type ImportResult struct {
	JobID   uuid.UUID        `json:"job_id"`
	Entity  string           `json:"entity"`
	Created int              `json:"created"`
	Skipped int              `json:"skipped"`
	Errors  []model.RowError `json:"errors"`
}

type ImportService interface {
	Template(w io.Writer, entity excel.Entity) error
	Import(ctx context.Context, entity excel.Entity, fileName string, r io.Reader) (*ImportResult, error)
	Jobs(ctx context.Context, limit int) ([]*model.ImportJob, error)
}

type ImportDeps struct {
	Assets       AssetService
	Locations    LocationService
	Responsibles ResponsibleService
	LocRepo      repo.LocationRepo
	RespRepo     repo.ResponsibleRepo
	JobRepo      repo.ImportJobRepo
	Log          *zap.Logger
}

type importService struct {
	ImportDeps
}

func NewImportService(d ImportDeps) ImportService {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &importService{ImportDeps: d}
}

func (s *importService) Template(w io.Writer, entity excel.Entity) error {
	statuses := make([]string, len(model.AssetStatuses))
	for i, st := range model.AssetStatuses {
		statuses[i] = string(st)
	}
	if err := excel.WriteTemplate(w, entity, statuses); err != nil {
		return fmt.Errorf("write %s template: %w", entity, err)
	}
	return nil
}

// Import creates one record per sheet row. Rows that fail are reported and
// do not stop the import; names that already exist are skipped.
func (s *importService) Import(ctx context.Context, entity excel.Entity, fileName string, r io.Reader) (*ImportResult, error) {
	rows, err := excel.ReadRows(r, entity)
	if errors.Is(err, excel.ErrUnknownEntity) {
		return nil, apperr.Validation("unknown import entity",
			apperr.FieldError{Field: "entity", Message: "must be assets, locations or responsibles"})
	}
	if err != nil {
		return nil, apperr.Validation("invalid workbook: " + err.Error())
	}

	res := &ImportResult{JobID: uuid.New(), Entity: string(entity), Errors: []model.RowError{}}
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		skipped, err := s.importRow(ctx, entity, row)
		switch {
		case err != nil:
			res.Errors = append(res.Errors, model.RowError{Row: row.Number, Message: rowMessage(err)})
		case skipped:
			res.Skipped++
		default:
			res.Created++
		}
	}

	job := &model.ImportJob{
		ID:        res.JobID,
		Entity:    res.Entity,
		FileName:  fileName,
		Created:   res.Created,
		Skipped:   res.Skipped,
		Errors:    datatypes.NewJSONType(res.Errors),
		CreatedAt: time.Now(),
	}
	if err := s.JobRepo.Create(ctx, job); err != nil {
		s.Log.Warn("record import job", zap.String("job_id", job.ID.String()), zap.Error(err))
	}

	s.Log.Info("import finished",
		zap.String("entity", res.Entity),
		zap.String("file", fileName),
		zap.Int("created", res.Created),
		zap.Int("skipped", res.Skipped),
		zap.Int("errors", len(res.Errors)))
	return res, nil
}

func (s *importService) importRow(ctx context.Context, entity excel.Entity, row excel.Row) (skipped bool, err error) {
	switch entity {
	case excel.EntityAssets:
		in, err := assetInputFromRow(row)
		if err != nil {
			return false, err
		}
		_, err = s.Assets.Create(ctx, in)
		return false, err

	case excel.EntityLocations:
		name := row.Get(excel.ColName)
		if exists, err := s.LocRepo.ExistsByName(ctx, name); err != nil || exists {
			return exists, err
		}
		_, err := s.Locations.Create(ctx, LocationInput{Name: name, Description: row.Get(excel.ColDescription)})
		return false, err

	case excel.EntityResponsibles:
		name := row.Get(excel.ColName)
		if exists, err := s.RespRepo.ExistsByName(ctx, name); err != nil || exists {
			return exists, err
		}
		_, err := s.Responsibles.Create(ctx, ResponsibleInput{
			Name:  name,
			Email: row.Get(excel.ColEmail),
			Phone: row.Get(excel.ColPhone),
		})
		return false, err
	}
	return false, excel.ErrUnknownEntity
}

// assetInputFromRow maps an asset sheet row. The sheet has no description
// column: Observación is used when present, else the name.
func assetInputFromRow(row excel.Row) (CreateAssetInput, error) {
	in := CreateAssetInput{
		Name:        row.Get(excel.ColName),
		Category:    row.Get(excel.ColCategory),
		Status:      row.Get(excel.ColStatus),
		Responsible: row.Get(excel.ColResponsible),
		Location:    row.Get(excel.ColLocation),
		Observation: row.Get(excel.ColObservation),
	}
	in.Description = in.Observation
	if in.Description == "" {
		in.Description = in.Name
	}
	if raw := row.Get(excel.ColValue); raw != "" {
		v, err := ParseAmount(raw)
		if err != nil {
			return in, apperr.Validation("invalid value",
				apperr.FieldError{Field: "value", Message: fmt.Sprintf("%q is not a number", raw)})
		}
		in.Value = &v
	}
	return in, nil
}

// ParseAmount reads plain and locale-formatted numbers: "15000", "15000.5",
// "15.000,50", "$ 1,250.00".
func ParseAmount(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, " ", "")
	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot > lastComma && lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	}
	return strconv.ParseFloat(s, 64)
}

func rowMessage(err error) string {
	ae := apperr.Classify(err)
	if len(ae.Fields) == 0 {
		return ae.Message
	}
	parts := make([]string, len(ae.Fields))
	for i, f := range ae.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return ae.Message + " (" + strings.Join(parts, "; ") + ")"
}

func (s *importService) Jobs(ctx context.Context, limit int) ([]*model.ImportJob, error) {
	jobs, err := s.JobRepo.ListRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("list import jobs: %w", err)
	}
	return jobs, nil
}

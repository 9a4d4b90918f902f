package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	mq "github.com/assetlabel/inventory/internal/infra/queue"
	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/assetlabel/inventory/internal/pkg/identifier"
	"github.com/assetlabel/inventory/internal/pkg/label"
	"github.com/assetlabel/inventory/internal/pkg/qr"
	"github.com/bytedance/sonic"
	"go.uber.org/zap"
)

type CreateAssetInput struct {
	Name        string   `json:"name" validate:"omitempty,max=255"`
	Description string   `json:"description" validate:"required,min=10,max=5000"`
	Responsible string   `json:"responsible" validate:"required,min=3,max=255"`
	Location    string   `json:"location" validate:"required,min=3,max=255"`
	Category    string   `json:"category" validate:"omitempty,max=255"`
	Observation string   `json:"observation" validate:"omitempty,max=5000"`
	Value       *float64 `json:"value" validate:"omitempty,gte=0"`
	Status      string   `json:"status" validate:"omitempty,asset_status"`
}

func (in *CreateAssetInput) normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Responsible = strings.TrimSpace(in.Responsible)
	in.Location = strings.TrimSpace(in.Location)
	in.Category = strings.TrimSpace(in.Category)
	in.Observation = strings.TrimSpace(in.Observation)
	in.Status = strings.TrimSpace(in.Status)
}

// UpdateAssetInput carries the mutable fields; nil leaves a field unchanged.
type UpdateAssetInput struct {
	Name        *string  `json:"name" validate:"omitempty,max=255"`
	Description *string  `json:"description" validate:"omitempty,min=10,max=5000"`
	Responsible *string  `json:"responsible" validate:"omitempty,min=3,max=255"`
	Location    *string  `json:"location" validate:"omitempty,min=3,max=255"`
	Category    *string  `json:"category" validate:"omitempty,max=255"`
	Observation *string  `json:"observation" validate:"omitempty,max=5000"`
	Value       *float64 `json:"value" validate:"omitempty,gte=0"`
	Status      *string  `json:"status" validate:"omitempty,asset_status"`
}

func (in *UpdateAssetInput) normalize() {
	for _, p := range []*string{in.Name, in.Description, in.Responsible, in.Location, in.Category, in.Observation, in.Status} {
		trimPtr(p)
	}
}

// AssetWithQR is an asset plus its QR image as a data URL. QRCode is empty
// when no PNG exists.
type AssetWithQR struct {
	*model.Asset
	QRCode string `json:"qr_code,omitempty"`
}

type DeleteResult struct {
	AssetID      string   `json:"asset_id"`
	RemovedFiles []string `json:"removed_files"`
}

type RegenerateFailure struct {
	AssetID string `json:"asset_id"`
	Error   string `json:"error"`
}

type RegenerateReport struct {
	Total       int                 `json:"total"`
	Queued      int                 `json:"queued"`
	Regenerated int                 `json:"regenerated"`
	Failed      []RegenerateFailure `json:"failed"`
}

// QRJob is the message consumed by the QR worker.
type QRJob struct {
	AssetID string `json:"asset_id"`
}

type AssetEvent struct {
	Type    string       `json:"type"`
	AssetID string       `json:"asset_id"`
	At      time.Time    `json:"at"`
	Asset   *model.Asset `json:"asset,omitempty"`
}

type AssetService interface {
	Create(ctx context.Context, in CreateAssetInput) (*AssetWithQR, error)
	Get(ctx context.Context, id uint) (*AssetWithQR, error)
	QRCode(ctx context.Context, assetID string) (*qr.Artifact, error)
	List(ctx context.Context, f repo.AssetFilter) ([]*model.Asset, int64, error)
	Update(ctx context.Context, id uint, in UpdateAssetInput) (*model.Asset, error)
	Delete(ctx context.Context, id uint) (*DeleteResult, error)
	RegenerateQR(ctx context.Context, id uint) (*qr.Artifact, error)
	RegenerateAll(ctx context.Context) (*RegenerateReport, error)
	HandleQRJob(ctx context.Context, body []byte) error
	Stats(ctx context.Context) (*repo.AssetStats, error)
}

// AssetDeps wires an asset service. Cache, Events, Jobs and Blob are
// optional.
type AssetDeps struct {
	Assets repo.AssetRepo
	Names  repo.AssetNameRepo
	Alloc  Allocator
	QR     *qr.Generator
	Labels *label.Renderer
	Blob   BlobStore

	Cache          QRCache
	Events         EventPublisher
	EventsExchange string
	Jobs           JobQueue
	QRQueue        string

	Log *zap.Logger
	Now func() time.Time
}

type assetService struct {
	AssetDeps
}

func NewAssetService(d AssetDeps) AssetService {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return &assetService{AssetDeps: d}
}

// DisplayName renders the n-th use of a base name: "Silla", "Silla (2)", ...
func DisplayName(base string, n int64) string {
	if n <= 1 {
		return base
	}
	return fmt.Sprintf("%s (%d)", base, n)
}

func (s *assetService) Create(ctx context.Context, in CreateAssetInput) (*AssetWithQR, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return nil, err
	}
	status := model.StatusActive
	if in.Status != "" {
		status = model.AssetStatus(in.Status)
	}

	name := in.Name
	if name != "" {
		n, err := s.Names.Use(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("reserve asset name: %w", err)
		}
		name = DisplayName(name, n)
	}

	assetID, err := s.Alloc.Next(ctx)
	if err != nil {
		return nil, err
	}

	art, err := s.QR.Generate(assetID)
	if err != nil {
		return nil, apperr.Internal("generate QR for "+assetID, err)
	}

	rel := art.RelPath
	a := &model.Asset{
		AssetID:     assetID,
		Name:        name,
		Description: in.Description,
		Responsible: in.Responsible,
		Location:    in.Location,
		Category:    in.Category,
		Observation: in.Observation,
		Value:       in.Value,
		Status:      status,
		QRCodePath:  &rel,
	}
	if err := s.Assets.Create(ctx, a); err != nil {
		if _, derr := s.QR.Delete(assetID); derr != nil {
			s.Log.Error("remove QR after failed insert", zap.String("asset_id", assetID), zap.Error(derr))
		}
		return nil, fmt.Errorf("create asset record: %w", err)
	}

	s.cacheSet(ctx, assetID, art.DataURL)
	s.publish(ctx, mq.RoutingAssetCreated, a)
	s.Log.Info("asset created", zap.String("asset_id", assetID), zap.Uint("id", a.ID))
	return &AssetWithQR{Asset: a, QRCode: art.DataURL}, nil
}

func (s *assetService) Get(ctx context.Context, id uint) (*AssetWithQR, error) {
	a, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, fmt.Sprintf("asset %d", id))
	}
	dataURL, err := s.dataURL(ctx, a.AssetID)
	if err != nil {
		return nil, err
	}
	return &AssetWithQR{Asset: a, QRCode: dataURL}, nil
}

// QRCode returns the QR of assetID, regenerating the PNG when it went
// missing from disk.
func (s *assetService) QRCode(ctx context.Context, assetID string) (*qr.Artifact, error) {
	if !identifier.Valid(assetID) {
		return nil, apperr.Validation("invalid asset identifier",
			apperr.FieldError{Field: "assetId", Message: identifier.ErrInvalid.Error()})
	}
	a, err := s.Assets.GetByAssetID(ctx, assetID)
	if err != nil {
		return nil, lookupErr(err, "asset "+assetID)
	}

	dataURL, err := s.dataURL(ctx, assetID)
	if err != nil {
		return nil, err
	}
	if dataURL == "" {
		return s.regenerate(ctx, a)
	}
	return &qr.Artifact{
		Identifier: assetID,
		FilePath:   s.QR.Path(assetID),
		RelPath:    deref(a.QRCodePath),
		DataURL:    dataURL,
	}, nil
}

func (s *assetService) List(ctx context.Context, f repo.AssetFilter) ([]*model.Asset, int64, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, apperr.Validation("invalid status filter",
			apperr.FieldError{Field: "status", Message: "unknown status"})
	}
	assets, total, err := s.Assets.List(ctx, f)
	if err != nil {
		return nil, 0, fmt.Errorf("list assets: %w", err)
	}
	return assets, total, nil
}

func (s *assetService) Update(ctx context.Context, id uint, in UpdateAssetInput) (*model.Asset, error) {
	in.normalize()
	if err := validateInput(&in); err != nil {
		return nil, err
	}

	a, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, fmt.Sprintf("asset %d", id))
	}
	printed := labelFields(a)
	if in.Name != nil {
		a.Name = *in.Name
	}
	if in.Description != nil {
		a.Description = *in.Description
	}
	if in.Responsible != nil {
		a.Responsible = *in.Responsible
	}
	if in.Location != nil {
		a.Location = *in.Location
	}
	if in.Category != nil {
		a.Category = *in.Category
	}
	if in.Observation != nil {
		a.Observation = *in.Observation
	}
	if in.Value != nil {
		a.Value = in.Value
	}
	if in.Status != nil {
		a.Status = model.AssetStatus(*in.Status)
	}

	if err := s.Assets.Update(ctx, a); err != nil {
		return nil, fmt.Errorf("update asset %d: %w", id, err)
	}
	// Printed labels carry these fields; drop them so the next request
	// renders from the updated row.
	if labelFields(a) != printed {
		if removed := s.removeLabels(ctx, a.AssetID); len(removed) > 0 {
			s.Log.Info("stale labels removed", zap.String("asset_id", a.AssetID), zap.Int("files", len(removed)))
		}
	}
	s.publish(ctx, mq.RoutingAssetUpdated, a)
	return a, nil
}

// Delete removes the row first; QR and label files follow. A file that
// cannot be removed is logged and left for the cleaner.
func (s *assetService) Delete(ctx context.Context, id uint) (*DeleteResult, error) {
	a, err := s.Assets.Delete(ctx, id)
	if err != nil {
		return nil, lookupErr(err, fmt.Sprintf("asset %d", id))
	}

	res := &DeleteResult{AssetID: a.AssetID, RemovedFiles: []string{}}
	if ok, err := s.QR.Delete(a.AssetID); err != nil {
		s.Log.Error("delete QR file", zap.String("asset_id", a.AssetID), zap.Error(err))
	} else if ok {
		res.RemovedFiles = append(res.RemovedFiles, s.QR.Path(a.AssetID))
	}
	res.RemovedFiles = append(res.RemovedFiles, s.removeLabels(ctx, a.AssetID)...)

	if s.Cache != nil {
		if err := s.Cache.Delete(ctx, a.AssetID); err != nil {
			s.Log.Warn("evict QR cache", zap.String("asset_id", a.AssetID), zap.Error(err))
		}
	}
	s.publish(ctx, mq.RoutingAssetDeleted, a)
	s.Log.Info("asset deleted", zap.String("asset_id", a.AssetID), zap.Int("files_removed", len(res.RemovedFiles)))
	return res, nil
}

type printedFields struct {
	description, responsible, location, category string
}

func labelFields(a *model.Asset) printedFields {
	return printedFields{a.Description, a.Responsible, a.Location, a.Category}
}

// removeLabels deletes the label files of assetID and their object storage
// copies. Failures are logged; the cleaner collects what is left.
func (s *assetService) removeLabels(ctx context.Context, assetID string) []string {
	removed, err := s.Labels.Delete(assetID)
	if err != nil {
		s.Log.Error("delete label files", zap.String("asset_id", assetID), zap.Error(err))
	}
	if s.Blob != nil {
		for _, p := range removed {
			key := s.Blob.Key(storage.LabelDirName, p)
			if err := s.Blob.Delete(ctx, key); err != nil {
				s.Log.Warn("delete label mirror", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return removed
}

func (s *assetService) RegenerateQR(ctx context.Context, id uint) (*qr.Artifact, error) {
	a, err := s.Assets.GetByID(ctx, id)
	if err != nil {
		return nil, lookupErr(err, fmt.Sprintf("asset %d", id))
	}
	return s.regenerate(ctx, a)
}

func (s *assetService) regenerate(ctx context.Context, a *model.Asset) (*qr.Artifact, error) {
	art, err := s.QR.Regenerate(a.AssetID)
	if err != nil {
		return nil, apperr.Internal("regenerate QR for "+a.AssetID, err)
	}
	if deref(a.QRCodePath) != art.RelPath {
		rel := art.RelPath
		if err := s.Assets.SetQRCodePath(ctx, a.ID, &rel); err != nil {
			return nil, fmt.Errorf("store QR path for %s: %w", a.AssetID, err)
		}
		a.QRCodePath = &rel
	}
	s.cacheSet(ctx, a.AssetID, art.DataURL)
	return art, nil
}

// RegenerateAll queues one QR job per asset when a broker is configured and
// regenerates inline otherwise.
func (s *assetService) RegenerateAll(ctx context.Context) (*RegenerateReport, error) {
	ids, err := s.Assets.ListIdentifiers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list asset identifiers: %w", err)
	}

	report := &RegenerateReport{Total: len(ids), Failed: []RegenerateFailure{}}
	for _, id := range ids {
		if s.Jobs != nil {
			if err := s.Jobs.Enqueue(ctx, s.QRQueue, QRJob{AssetID: id}); err != nil {
				report.Failed = append(report.Failed, RegenerateFailure{AssetID: id, Error: err.Error()})
				continue
			}
			report.Queued++
			continue
		}
		if err := s.regenerateByAssetID(ctx, id); err != nil {
			report.Failed = append(report.Failed, RegenerateFailure{AssetID: id, Error: err.Error()})
			continue
		}
		report.Regenerated++
	}

	s.Log.Info("QR regeneration requested",
		zap.Int("total", report.Total),
		zap.Int("queued", report.Queued),
		zap.Int("regenerated", report.Regenerated),
		zap.Int("failed", len(report.Failed)))
	return report, nil
}

func (s *assetService) regenerateByAssetID(ctx context.Context, assetID string) error {
	a, err := s.Assets.GetByAssetID(ctx, assetID)
	if err != nil {
		return lookupErr(err, "asset "+assetID)
	}
	_, err = s.regenerate(ctx, a)
	return err
}

// HandleQRJob processes one queued job. Jobs for assets deleted meanwhile
// are dropped.
func (s *assetService) HandleQRJob(ctx context.Context, body []byte) error {
	var job QRJob
	if err := sonic.Unmarshal(body, &job); err != nil {
		s.Log.Error("drop malformed QR job", zap.ByteString("body", body), zap.Error(err))
		return nil
	}
	if !identifier.Valid(job.AssetID) {
		s.Log.Error("drop QR job with invalid identifier", zap.String("asset_id", job.AssetID))
		return nil
	}
	err := s.regenerateByAssetID(ctx, job.AssetID)
	if apperr.IsNotFound(err) {
		s.Log.Info("skip QR job for deleted asset", zap.String("asset_id", job.AssetID))
		return nil
	}
	return err
}

func (s *assetService) Stats(ctx context.Context) (*repo.AssetStats, error) {
	st, err := s.Assets.Stats(ctx)
	if err != nil {
		return nil, fmt.Errorf("asset stats: %w", err)
	}
	return st, nil
}

// dataURL reads the QR through the cache. A missing PNG yields "".
func (s *assetService) dataURL(ctx context.Context, assetID string) (string, error) {
	if s.Cache != nil {
		v, ok, err := s.Cache.Get(ctx, assetID)
		if err != nil {
			s.Log.Warn("read QR cache", zap.String("asset_id", assetID), zap.Error(err))
		} else if ok {
			return v, nil
		}
	}

	v, err := s.QR.DataURL(assetID)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", apperr.Internal("read QR for "+assetID, err)
	}
	s.cacheSet(ctx, assetID, v)
	return v, nil
}

func (s *assetService) cacheSet(ctx context.Context, assetID, dataURL string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Set(ctx, assetID, dataURL); err != nil {
		s.Log.Warn("write QR cache", zap.String("asset_id", assetID), zap.Error(err))
	}
}

func (s *assetService) publish(ctx context.Context, routingKey string, a *model.Asset) {
	if s.Events == nil {
		return
	}
	ev := AssetEvent{Type: routingKey, AssetID: a.AssetID, At: s.Now().UTC(), Asset: a}
	if routingKey == mq.RoutingAssetDeleted {
		ev.Asset = nil
	}
	if err := s.Events.PublishJSON(ctx, s.EventsExchange, routingKey, ev); err != nil {
		s.Log.Warn("publish asset event",
			zap.String("routing_key", routingKey),
			zap.String("asset_id", a.AssetID),
			zap.Error(err))
	}
}

// lookupErr turns a missing row into a not-found error naming what.
func lookupErr(err error, what string) error {
	if apperr.IsNotFound(err) {
		return apperr.NotFound("%s not found", what)
	}
	return fmt.Errorf("get %s: %w", what, err)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

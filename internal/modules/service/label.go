package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/assetlabel/inventory/internal/infra/storage"
	"github.com/assetlabel/inventory/internal/modules/model"
	"github.com/assetlabel/inventory/internal/modules/repo"
	"github.com/assetlabel/inventory/internal/pkg/apperr"
	"github.com/assetlabel/inventory/internal/pkg/identifier"
	"github.com/assetlabel/inventory/internal/pkg/label"
	"github.com/assetlabel/inventory/internal/pkg/qr"
	"github.com/assetlabel/inventory/internal/pkg/utils/path"
	"go.uber.org/zap"
)

type LabelFile struct {
	AssetID  string `json:"asset_id"`
	Format   string `json:"format"`
	Path     string `json:"path"`
	FileName string `json:"file_name"`
	URL      string `json:"url,omitempty"`
	// LocalPath is the absolute file location, for downloads.
	LocalPath string `json:"-"`
}

type BatchFile struct {
	*label.BatchResult
	Path string `json:"path"`
	URL  string `json:"url,omitempty"`
}

type LabelService interface {
	RenderPDF(ctx context.Context, assetID string) (*LabelFile, error)
	// PDF returns the stored label of assetID, rendering it first when absent.
	PDF(ctx context.Context, assetID string) (*LabelFile, error)
	RenderBarTender(ctx context.Context, assetID string) (*LabelFile, error)
	DeleteLabels(ctx context.Context, assetID string) ([]string, error)
	RenderBatch(ctx context.Context, assetIDs []string) (*BatchFile, error)
	BatchPath(fileName string) (string, error)
}

type LabelDeps struct {
	Assets   repo.AssetRepo
	QR       *qr.Generator
	Renderer *label.Renderer
	Paths    storage.Paths
	Blob     BlobStore
	Log      *zap.Logger
}

type labelService struct {
	LabelDeps
}

func NewLabelService(d LabelDeps) LabelService {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	return &labelService{LabelDeps: d}
}

func (s *labelService) asset(ctx context.Context, assetID string) (*model.Asset, error) {
	if !identifier.Valid(assetID) {
		return nil, apperr.Validation("invalid asset identifier",
			apperr.FieldError{Field: "assetId", Message: identifier.ErrInvalid.Error()})
	}
	a, err := s.Assets.GetByAssetID(ctx, assetID)
	if err != nil {
		return nil, lookupErr(err, "asset "+assetID)
	}
	return a, nil
}

func (s *labelService) data(a *model.Asset) label.Data {
	return label.Data{
		Identifier:  a.AssetID,
		Description: a.Description,
		Responsible: a.Responsible,
		Location:    a.Location,
		Category:    a.Category,
		QR:          label.ResolveQR(s.QR.Path(a.AssetID)),
	}
}

func (s *labelService) RenderPDF(ctx context.Context, assetID string) (*LabelFile, error) {
	a, err := s.asset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	p, err := s.Renderer.RenderPDF(s.data(a))
	if err != nil {
		return nil, apperr.Internal("render PDF label for "+assetID, err)
	}
	return s.file(ctx, assetID, label.FormatPDF, p), nil
}

func (s *labelService) PDF(ctx context.Context, assetID string) (*LabelFile, error) {
	if identifier.Valid(assetID) {
		if p := s.Renderer.PDFPath(assetID); storage.Exists(p) {
			if _, err := s.asset(ctx, assetID); err != nil {
				return nil, err
			}
			return s.localFile(assetID, label.FormatPDF, p), nil
		}
	}
	return s.RenderPDF(ctx, assetID)
}

func (s *labelService) RenderBarTender(ctx context.Context, assetID string) (*LabelFile, error) {
	a, err := s.asset(ctx, assetID)
	if err != nil {
		return nil, err
	}
	p, err := s.Renderer.RenderBarTender(s.data(a))
	if err != nil {
		return nil, apperr.Internal("render BarTender label for "+assetID, err)
	}
	return s.file(ctx, assetID, label.FormatBarTender, p), nil
}

// DeleteLabels removes the label files of assetID. Missing files are not
// errors, and neither is an identifier without an asset.
func (s *labelService) DeleteLabels(ctx context.Context, assetID string) ([]string, error) {
	if !identifier.Valid(assetID) {
		return nil, apperr.Validation("invalid asset identifier",
			apperr.FieldError{Field: "assetId", Message: identifier.ErrInvalid.Error()})
	}
	removed, err := s.Renderer.Delete(assetID)
	if err != nil {
		return nil, apperr.Internal("delete labels of "+assetID, err)
	}
	rel := make([]string, 0, len(removed))
	for _, p := range removed {
		rel = append(rel, s.Paths.Rel(p))
		if s.Blob != nil {
			key := s.Blob.Key(storage.LabelDirName, p)
			if err := s.Blob.Delete(ctx, key); err != nil {
				s.Log.Warn("delete label mirror", zap.String("key", key), zap.Error(err))
			}
		}
	}
	return rel, nil
}

// RenderBatch prints the labels of assetIDs, in request order, on one roll.
// Duplicate identifiers are printed once.
func (s *labelService) RenderBatch(ctx context.Context, assetIDs []string) (*BatchFile, error) {
	ids := make([]string, 0, len(assetIDs))
	seen := make(map[string]struct{}, len(assetIDs))
	var invalid []apperr.FieldError
	for i, raw := range assetIDs {
		id := strings.TrimSpace(raw)
		if !identifier.Valid(id) {
			invalid = append(invalid, apperr.FieldError{
				Field:   fmt.Sprintf("asset_ids[%d]", i),
				Message: identifier.ErrInvalid.Error(),
			})
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(invalid) > 0 {
		return nil, apperr.Validation("invalid asset identifiers", invalid...)
	}
	if len(ids) == 0 {
		return nil, apperr.Validation(label.ErrEmptyBatch.Error(),
			apperr.FieldError{Field: "asset_ids", Message: "is required"})
	}

	assets, err := s.Assets.ListByAssetIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load batch assets: %w", err)
	}
	byID := make(map[string]*model.Asset, len(assets))
	for _, a := range assets {
		byID[a.AssetID] = a
	}
	var missing []string
	items := make([]label.Data, 0, len(ids))
	for _, id := range ids {
		a, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		items = append(items, s.data(a))
	}
	if len(missing) > 0 {
		return nil, apperr.NotFound("assets not found: %s", strings.Join(missing, ", "))
	}

	res, err := s.Renderer.RenderBatch(items)
	if errors.Is(err, label.ErrEmptyBatch) {
		return nil, apperr.Validation(err.Error())
	}
	if err != nil {
		return nil, apperr.Internal("render batch labels", err)
	}

	out := &BatchFile{BatchResult: res, Path: s.Paths.Rel(res.Path)}
	out.URL = s.mirror(ctx, storage.BatchDirName, res.Path)
	s.Log.Info("batch labels rendered", zap.String("file", res.FileName), zap.Int("count", res.Count))
	return out, nil
}

// BatchPath resolves a batch file name for download.
func (s *labelService) BatchPath(fileName string) (string, error) {
	p, err := path.SafeJoin(s.Paths.BatchDir, fileName)
	if err != nil || !path.HasExt(fileName, ".pdf") {
		return "", apperr.Validation("invalid batch file name",
			apperr.FieldError{Field: "file", Message: "must be a batch PDF file name"})
	}
	if !storage.Exists(p) {
		return "", apperr.NotFound("batch file %s not found", fileName)
	}
	return p, nil
}

func (s *labelService) localFile(assetID, format, p string) *LabelFile {
	return &LabelFile{
		AssetID:   assetID,
		Format:    format,
		Path:      s.Paths.Rel(p),
		FileName:  filepath.Base(p),
		LocalPath: p,
	}
}

func (s *labelService) file(ctx context.Context, assetID, format, p string) *LabelFile {
	f := s.localFile(assetID, format, p)
	f.URL = s.mirror(ctx, storage.LabelDirName, p)
	return f
}

// mirror copies a rendered file to object storage and returns a presigned
// URL. The local file stays authoritative, so failures only log.
func (s *labelService) mirror(ctx context.Context, kind, localPath string) string {
	if s.Blob == nil {
		return ""
	}
	key := s.Blob.Key(kind, localPath)
	if _, err := s.Blob.UploadFile(ctx, key, localPath); err != nil {
		s.Log.Warn("mirror label", zap.String("key", key), zap.Error(err))
		return ""
	}
	url, err := s.Blob.PresignGet(ctx, key, 0)
	if err != nil {
		s.Log.Warn("presign label", zap.String("key", key), zap.Error(err))
		return ""
	}
	return url
}

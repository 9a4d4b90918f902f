package repo

import (
	"context"
	"strings"

	"github.com/assetlabel/inventory/internal/modules/model"
	"gorm.io/gorm"
)

// AssetFilter narrows List. Zero fields do not filter.
type AssetFilter struct {
	Status      model.AssetStatus
	Location    string
	Responsible string
	Category    string
	Search      string
	Limit       int
	Offset      int
}

type GroupCount struct {
	Name  string `json:"name"`
	Count int64  `json:"count"`
}

type AssetStats struct {
	Total      int64        `json:"total"`
	ByStatus   []GroupCount `json:"by_status"`
	ByLocation []GroupCount `json:"by_location"`
}

type AssetRepo interface {
	Create(ctx context.Context, a *model.Asset) error
	GetByID(ctx context.Context, id uint) (*model.Asset, error)
	GetByAssetID(ctx context.Context, assetID string) (*model.Asset, error)
	ListByAssetIDs(ctx context.Context, assetIDs []string) ([]*model.Asset, error)
	Update(ctx context.Context, a *model.Asset) error
	SetQRCodePath(ctx context.Context, id uint, path *string) error
	Delete(ctx context.Context, id uint) (*model.Asset, error)
	List(ctx context.Context, f AssetFilter) ([]*model.Asset, int64, error)
	ListIdentifiers(ctx context.Context) ([]string, error)
	Stats(ctx context.Context) (*AssetStats, error)
}

type assetRepo struct{ db *gorm.DB }

func NewAssetRepo(db *gorm.DB) AssetRepo {
	return &assetRepo{db: db}
}

// asset_id and created_at never change after insert.
var assetMutableColumns = []string{
	"name", "description", "responsible", "location", "category",
	"observation", "value", "status", "qr_code_path", "updated_at",
}

func (r *assetRepo) Create(ctx context.Context, a *model.Asset) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *assetRepo) GetByID(ctx context.Context, id uint) (*model.Asset, error) {
	var a model.Asset
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) GetByAssetID(ctx context.Context, assetID string) (*model.Asset, error) {
	var a model.Asset
	if err := r.db.WithContext(ctx).Where("asset_id = ?", assetID).First(&a).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *assetRepo) ListByAssetIDs(ctx context.Context, assetIDs []string) ([]*model.Asset, error) {
	var assets []*model.Asset
	if len(assetIDs) == 0 {
		return assets, nil
	}
	if err := r.db.WithContext(ctx).Where("asset_id IN ?", assetIDs).Find(&assets).Error; err != nil {
		return nil, err
	}
	return assets, nil
}

func (r *assetRepo) Update(ctx context.Context, a *model.Asset) error {
	tx := r.db.WithContext(ctx).Model(a).Select(assetMutableColumns).Updates(a)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assetRepo) SetQRCodePath(ctx context.Context, id uint, path *string) error {
	tx := r.db.WithContext(ctx).Model(&model.Asset{}).Where("id = ?", id).Update("qr_code_path", path)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *assetRepo) Delete(ctx context.Context, id uint) (*model.Asset, error) {
	var deleted model.Asset
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&deleted).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", id).Delete(&model.Asset{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &deleted, nil
}

func (r *assetRepo) List(ctx context.Context, f AssetFilter) ([]*model.Asset, int64, error) {
	query := r.db.WithContext(ctx).Model(&model.Asset{})

	if f.Status != "" {
		query = query.Where("status = ?", f.Status)
	}
	if f.Location != "" {
		query = query.Where("location = ?", f.Location)
	}
	if f.Responsible != "" {
		query = query.Where("responsible = ?", f.Responsible)
	}
	if f.Category != "" {
		query = query.Where("category = ?", f.Category)
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		query = query.Where("LOWER(asset_id) LIKE ? OR LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Order("created_at DESC").Order("id DESC")
	if f.Limit > 0 {
		query = query.Limit(f.Limit)
	}
	if f.Offset > 0 {
		query = query.Offset(f.Offset)
	}

	var assets []*model.Asset
	if err := query.Find(&assets).Error; err != nil {
		return nil, 0, err
	}
	return assets, total, nil
}

func (r *assetRepo) ListIdentifiers(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.Asset{}).Order("asset_id").Pluck("asset_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *assetRepo) Stats(ctx context.Context) (*AssetStats, error) {
	stats := &AssetStats{ByStatus: []GroupCount{}, ByLocation: []GroupCount{}}
	db := r.db.WithContext(ctx)

	if err := db.Model(&model.Asset{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Asset{}).
		Select("status AS name, COUNT(*) AS count").
		Group("status").Order("status").
		Scan(&stats.ByStatus).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Asset{}).
		Select("location AS name, COUNT(*) AS count").
		Group("location").Order("count DESC").Order("location").
		Scan(&stats.ByLocation).Error; err != nil {
		return nil, err
	}
	return stats, nil
}

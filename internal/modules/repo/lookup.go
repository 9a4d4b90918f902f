package repo

import (
	"context"

	"github.com/assetlabel/inventory/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// LookupRepo stores a named reference entity (location, responsible).
type LookupRepo[T any] interface {
	Create(ctx context.Context, v *T) error
	List(ctx context.Context) ([]*T, error)
	GetByID(ctx context.Context, id uint) (*T, error)
	Update(ctx context.Context, v *T) error
	Delete(ctx context.Context, id uint) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

type (
	LocationRepo    = LookupRepo[model.Location]
	ResponsibleRepo = LookupRepo[model.Responsible]
)

type lookupRepo[T any] struct{ db *gorm.DB }

func NewLocationRepo(db *gorm.DB) LocationRepo {
	return &lookupRepo[model.Location]{db: db}
}

func NewResponsibleRepo(db *gorm.DB) ResponsibleRepo {
	return &lookupRepo[model.Responsible]{db: db}
}

func (r *lookupRepo[T]) Create(ctx context.Context, v *T) error {
	return r.db.WithContext(ctx).Create(v).Error
}

func (r *lookupRepo[T]) List(ctx context.Context) ([]*T, error) {
	var out []*T
	if err := r.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *lookupRepo[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	var v T
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&v).Error; err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *lookupRepo[T]) Update(ctx context.Context, v *T) error {
	tx := r.db.WithContext(ctx).Model(v).Select("*").Omit("id", "created_at").Updates(v)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lookupRepo[T]) Delete(ctx context.Context, id uint) error {
	var v T
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&v)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *lookupRepo[T]) ExistsByName(ctx context.Context, name string) (bool, error) {
	var count int64
	var v T
	if err := r.db.WithContext(ctx).Model(&v).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

type AssetNameRepo interface {
	Create(ctx context.Context, n *model.AssetName) error
	List(ctx context.Context) ([]*model.AssetName, error)
	// Use records one more asset created under name and returns the new
	// count. Unknown names are registered on first use.
	Use(ctx context.Context, name string) (int64, error)
}

type assetNameRepo struct{ db *gorm.DB }

func NewAssetNameRepo(db *gorm.DB) AssetNameRepo {
	return &assetNameRepo{db: db}
}

func (r *assetNameRepo) Create(ctx context.Context, n *model.AssetName) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *assetNameRepo) List(ctx context.Context) ([]*model.AssetName, error) {
	var names []*model.AssetName
	if err := r.db.WithContext(ctx).Order("name").Find(&names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *assetNameRepo) Use(ctx context.Context, name string) (int64, error) {
	seed := func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "name"}}, DoNothing: true}).
			Create(&model.AssetName{Name: name}).Error
	}
	return bump(r.db.WithContext(ctx),
		"UPDATE asset_names SET counter = counter + 1, updated_at = CURRENT_TIMESTAMP WHERE name = ? RETURNING counter",
		seed, name)
}

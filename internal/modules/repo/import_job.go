package repo

import (
	"context"

	"github.com/assetlabel/inventory/internal/modules/model"
	"gorm.io/gorm"
)

type ImportJobRepo interface {
	Create(ctx context.Context, j *model.ImportJob) error
	ListRecent(ctx context.Context, limit int) ([]*model.ImportJob, error)
}

type importJobRepo struct{ db *gorm.DB }

func NewImportJobRepo(db *gorm.DB) ImportJobRepo {
	return &importJobRepo{db: db}
}

func (r *importJobRepo) Create(ctx context.Context, j *model.ImportJob) error {
	return r.db.WithContext(ctx).Create(j).Error
}

func (r *importJobRepo) ListRecent(ctx context.Context, limit int) ([]*model.ImportJob, error) {
	var jobs []*model.ImportJob
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

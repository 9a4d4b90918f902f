package repo

import (
	"context"

	"github.com/assetlabel/inventory/internal/modules/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CounterRepo interface {
	// Increment atomically bumps the named counter and returns the new value.
	Increment(ctx context.Context, name string) (int64, error)
	Current(ctx context.Context, name string) (int64, error)
}

type counterRepo struct{ db *gorm.DB }

func NewCounterRepo(db *gorm.DB) CounterRepo {
	return &counterRepo{db: db}
}

func (r *counterRepo) Increment(ctx context.Context, name string) (int64, error) {
	seed := func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&model.Counter{Name: name}).Error
	}
	return bump(r.db.WithContext(ctx),
		"UPDATE id_counters SET value = value + 1 WHERE name = ? RETURNING value",
		seed, name)
}

func (r *counterRepo) Current(ctx context.Context, name string) (int64, error) {
	var c model.Counter
	err := r.db.WithContext(ctx).Where("name = ?", name).Limit(1).Find(&c).Error
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

// bump runs an UPDATE ... RETURNING statement. When no row matched it seeds
// the row with seed and runs the statement once more. The row lock taken by
// the UPDATE serialises concurrent callers.
func bump(db *gorm.DB, stmt string, seed func(*gorm.DB) error, args ...any) (int64, error) {
	var value int64
	tx := db.Raw(stmt, args...).Scan(&value)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected > 0 {
		return value, nil
	}

	if err := seed(db); err != nil {
		return 0, err
	}
	tx = db.Raw(stmt, args...).Scan(&value)
	if tx.Error != nil {
		return 0, tx.Error
	}
	if tx.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return value, nil
}

package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

type ImportJob struct {
	ID        uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	Entity    string                         `gorm:"type:varchar(32);not null;index" json:"entity"`
	FileName  string                         `gorm:"type:varchar(255)" json:"file_name"`
	Created   int                            `gorm:"not null;default:0" json:"created"`
	Skipped   int                            `gorm:"not null;default:0" json:"skipped"`
	Errors    datatypes.JSONType[[]RowError] `gorm:"type:jsonb" swaggertype:"array,object" json:"errors"`
	CreatedAt time.Time                      `gorm:"autoCreateTime" json:"created_at"`
}

func (ImportJob) TableName() string { return "import_jobs" }

// All lists every persisted model, in migration order.
func All() []any {
	return []any{&Counter{}, &Location{}, &Responsible{}, &AssetName{}, &Asset{}, &ImportJob{}}
}

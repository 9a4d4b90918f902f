package model

import (
	"time"
)

type AssetStatus string

const (
	StatusActive      AssetStatus = "Activo"
	StatusInactive    AssetStatus = "Inactivo"
	StatusMaintenance AssetStatus = "Mantenimiento"
	StatusRetired     AssetStatus = "Dado de Baja"
)

// AssetStatuses lists every accepted status in display order.
var AssetStatuses = []AssetStatus{StatusActive, StatusInactive, StatusMaintenance, StatusRetired}

func (s AssetStatus) Valid() bool {
	for _, v := range AssetStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type Asset struct {
	ID          uint        `gorm:"primaryKey" json:"id"`
	AssetID     string      `gorm:"type:varchar(20);not null;uniqueIndex" json:"asset_id"`
	Name        string      `gorm:"type:varchar(255)" json:"name"`
	Description string      `gorm:"type:text;not null" json:"description"`
	Responsible string      `gorm:"type:varchar(255);not null;index" json:"responsible"`
	Location    string      `gorm:"type:varchar(255);not null;index" json:"location"`
	Category    string      `gorm:"type:varchar(255)" json:"category"`
	Observation string      `gorm:"type:text" json:"observation"`
	Value       *float64    `gorm:"type:numeric(14,2)" json:"value"`
	Status      AssetStatus `gorm:"type:varchar(20);not null;default:Activo;index" json:"status"`
	QRCodePath  *string     `gorm:"type:varchar(255)" json:"qr_code_path"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Asset) TableName() string { return "assets" }

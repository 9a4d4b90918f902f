package model

// AssetIDCounter names the id_counters row backing asset identifiers.
const AssetIDCounter = "asset_id"

type Counter struct {
	Name  string `gorm:"type:varchar(64);primaryKey"`
	Value int64  `gorm:"not null;default:0"`
}

func (Counter) TableName() string { return "id_counters" }

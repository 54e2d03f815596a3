package models

import "time"

// Vendor is a parts supplier referenced by component rows.
type Vendor struct {
	ID        int       `gorm:"column:id;primaryKey;autoIncrement"`
	Code      string    `gorm:"column:code;type:char(3);not null;uniqueIndex"`
	Name      string    `gorm:"column:name;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's default pluralization.
func (Vendor) TableName() string {
	return "vendors"
}

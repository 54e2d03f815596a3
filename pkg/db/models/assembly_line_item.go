package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/elektrolab/stockroom-backend/pkg/enums"
)

// AssemblyLineItem records one BOM line committed at reservation time.
// FetchStock is the quantity actually withdrawn from inventory and is the
// amount returned on restock; LeftoverStock is fetch minus required and may
// go negative when a line was under-fetched.
type AssemblyLineItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey"`
	AssemblyID    uuid.UUID           `gorm:"column:assembly_id;type:uuid;not null;index"`
	ComponentType enums.ComponentType `gorm:"column:component_type;type:text;not null"`
	ComponentID   string              `gorm:"column:component_id;not null"`
	Description   string              `gorm:"column:description;not null"`
	QtyPerDevice  int                 `gorm:"column:qty_per_device;not null"`
	TotalRequired int                 `gorm:"column:total_required;not null"`
	FetchStock    int                 `gorm:"column:fetch_stock;not null"`
	LeftoverStock int                 `gorm:"column:leftover_stock;not null"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides GORM's default pluralization.
func (AssemblyLineItem) TableName() string {
	return "assembly_line_items"
}

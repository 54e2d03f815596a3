package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/elektrolab/stockroom-backend/pkg/enums"
)

// Component is the shared row shape of every component inventory table
// (mosfets, capacitors, diodes, microcontrollers, power_ics, resistors).
// The concrete table is always selected through enums.ComponentType.Table;
// the struct itself deliberately has no TableName.
type Component struct {
	ID          string                `gorm:"column:id;primaryKey"`
	IPN         string                `gorm:"column:ipn;not null;uniqueIndex"`
	Description string                `gorm:"column:description;not null"`
	Mfg         string                `gorm:"column:mfg;not null"`
	MfgPartNo   string                `gorm:"column:mfg_part_no;not null"`
	Package     string                `gorm:"column:package;not null"`
	VendorID    int                   `gorm:"column:vendor_id;not null"`
	Quantity    int                   `gorm:"column:quantity;not null;default:0"`
	AvgPrice    decimal.Decimal       `gorm:"column:avg_price;type:numeric(12,4);not null;default:0"`
	Location    string                `gorm:"column:location"`
	Status      enums.ComponentStatus `gorm:"column:status;type:text;not null;default:'IN_STOCK'"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

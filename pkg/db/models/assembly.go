package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/elektrolab/stockroom-backend/pkg/enums"
)

// Assembly is the master registry row for one assembly run.
type Assembly struct {
	ID             uuid.UUID          `gorm:"column:id;type:uuid;primaryKey"`
	Name           string             `gorm:"column:name;not null;uniqueIndex"`
	DeviceQty      int                `gorm:"column:device_qty;not null"`
	ComponentCount int                `gorm:"column:component_count;not null"`
	StockStatus    enums.StockStatus  `gorm:"column:stock_status;type:text;not null;default:'sufficient'"`
	BuildStatus    enums.BuildStatus  `gorm:"column:build_status;type:text;not null;default:'PENDING'"`
	PendingAt      *time.Time         `gorm:"column:pending_at"`
	ShippedToEMSAt *time.Time         `gorm:"column:shipped_to_ems_at"`
	InAssemblyAt   *time.Time         `gorm:"column:in_assembly_at"`
	AssembledAt    *time.Time         `gorm:"column:assembled_at"`
	CompletedAt    *time.Time         `gorm:"column:completed_at"`
	LineItems      []AssemblyLineItem `gorm:"foreignKey:AssemblyID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides GORM's default pluralization.
func (Assembly) TableName() string {
	return "assemblies"
}

// StatusTimestamps returns the per-milestone timestamp map exposed to
// callers after a transition.
func (a Assembly) StatusTimestamps() map[string]*time.Time {
	return map[string]*time.Time{
		"pending_at":        a.PendingAt,
		"shipped_to_ems_at": a.ShippedToEMSAt,
		"in_assembly_at":    a.InAssemblyAt,
		"assembled_at":      a.AssembledAt,
		"completed_at":      a.CompletedAt,
	}
}

// SetStatusTimestamp stamps the milestone column for the entered status.
// Already-stamped milestones are never overwritten.
func (a *Assembly) SetStatusTimestamp(status enums.BuildStatus, at time.Time) {
	target := a.timestampFor(status)
	if target == nil || *target != nil {
		return
	}
	*target = &at
}

func (a *Assembly) timestampFor(status enums.BuildStatus) **time.Time {
	switch status {
	case enums.BuildStatusPending:
		return &a.PendingAt
	case enums.BuildStatusShippedToEMS:
		return &a.ShippedToEMSAt
	case enums.BuildStatusInAssembly:
		return &a.InAssemblyAt
	case enums.BuildStatusAssembled:
		return &a.AssembledAt
	case enums.BuildStatusCompleted:
		return &a.CompletedAt
	}
	return nil
}

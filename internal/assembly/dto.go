package assembly

import (
	"time"

	"github.com/google/uuid"

	"github.com/elektrolab/stockroom-backend/pkg/enums"
)

// BOMLineInput is one parsed bill-of-materials line plus the quantity the
// operator chose to pull from the shelf.
type BOMLineInput struct {
	ComponentType enums.ComponentType
	Description   string
	QtyPerDevice  int
	FetchStock    int
}

// CreateAssemblyInput holds the validated payload to reserve an assembly.
type CreateAssemblyInput struct {
	Name      string
	DeviceQty int
	Lines     []BOMLineInput
}

// CreateAssemblyResult reports the committed reservation.
type CreateAssemblyResult struct {
	AssemblyID     uuid.UUID         `json:"assembly_id"`
	Name           string            `json:"name"`
	ComponentCount int               `json:"component_count"`
	StockStatus    enums.StockStatus `json:"stock_status"`
	BuildStatus    enums.BuildStatus `json:"build_status"`
}

// UpdateStatusInput advances the build state machine.
type UpdateStatusInput struct {
	Name   string
	Status enums.BuildStatus
}

// StatusResult reports the state after a transition.
type StatusResult struct {
	Name        string                `json:"name"`
	BuildStatus enums.BuildStatus     `json:"build_status"`
	Timestamps  map[string]*time.Time `json:"timestamps"`
}

// RestockedComponent is one inventory row credited during deletion.
type RestockedComponent struct {
	ComponentType enums.ComponentType `json:"component_type"`
	ComponentID   string              `json:"component_id"`
	Description   string              `json:"description"`
	Quantity      int                 `json:"quantity"`
}

// DeleteResult reports the compensating restock performed on deletion.
type DeleteResult struct {
	Name      string               `json:"name"`
	Restocked []RestockedComponent `json:"restocked"`
}

// CheckLineInput is one BOM line submitted for a shortage check.
type CheckLineInput struct {
	ComponentType enums.ComponentType
	Description   string
	QtyPerDevice  int
}

// CheckInventoryInput holds a dry-run shortage evaluation request.
type CheckInventoryInput struct {
	DeviceQty int
	Lines     []CheckLineInput
}

// ShortageLine describes one line's availability against the run.
type ShortageLine struct {
	ComponentType      enums.ComponentType `json:"component_type"`
	Description        string              `json:"description"`
	Available          int                 `json:"available"`
	TotalRequired      int                 `json:"total_required"`
	Level              enums.StockLevel    `json:"level"`
	PossibleAssemblies int                 `json:"possible_assemblies"`
}

// CheckInventoryResult is the outcome of a shortage evaluation.
type CheckInventoryResult struct {
	Shortages             []ShortageLine `json:"shortages"`
	HasCritical           bool           `json:"has_critical"`
	MinPossibleAssemblies int            `json:"min_possible_assemblies"`
}

// LineAvailability is the per-line availability snapshot returned by the
// stock-status recompute.
type LineAvailability struct {
	ComponentType      enums.ComponentType `json:"component_type"`
	ComponentID        string              `json:"component_id"`
	Description        string              `json:"description"`
	QtyPerDevice       int                 `json:"qty_per_device"`
	Available          int                 `json:"available"`
	PossibleAssemblies int                 `json:"possible_assemblies"`
}

// StockStatusResult reports the recomputed sufficiency of an assembly.
type StockStatusResult struct {
	Name          string             `json:"name"`
	StockStatus   enums.StockStatus  `json:"stock_status"`
	MaxAssemblies int                `json:"max_assemblies"`
	Components    []LineAvailability `json:"components"`
}

// LineItemDTO is the read shape of a committed line item.
type LineItemDTO struct {
	ComponentType enums.ComponentType `json:"component_type"`
	ComponentID   string              `json:"component_id"`
	Description   string              `json:"description"`
	QtyPerDevice  int                 `json:"qty_per_device"`
	TotalRequired int                 `json:"total_required"`
	FetchStock    int                 `json:"fetch_stock"`
	LeftoverStock int                 `json:"leftover_stock"`
}

// AssemblyDTO is the registry read shape.
type AssemblyDTO struct {
	ID             uuid.UUID             `json:"id"`
	Name           string                `json:"name"`
	DeviceQty      int                   `json:"device_qty"`
	ComponentCount int                   `json:"component_count"`
	StockStatus    enums.StockStatus     `json:"stock_status"`
	BuildStatus    enums.BuildStatus     `json:"build_status"`
	Timestamps     map[string]*time.Time `json:"timestamps"`
	CreatedAt      time.Time             `json:"created_at"`
	LineItems      []LineItemDTO         `json:"line_items,omitempty"`
}

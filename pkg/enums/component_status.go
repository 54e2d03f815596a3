package enums

import "fmt"

// ComponentStatus is the stocking flag carried on each inventory row.
type ComponentStatus string

const (
	ComponentStatusInStock    ComponentStatus = "IN_STOCK"
	ComponentStatusLowStock   ComponentStatus = "LOW_STOCK"
	ComponentStatusOutOfStock ComponentStatus = "OUT_OF_STOCK"
)

var validComponentStatuses = []ComponentStatus{
	ComponentStatusInStock,
	ComponentStatusLowStock,
	ComponentStatusOutOfStock,
}

// String implements fmt.Stringer.
func (c ComponentStatus) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ComponentStatus.
func (c ComponentStatus) IsValid() bool {
	for _, candidate := range validComponentStatuses {
		if candidate == c {
			return true
		}
	}
	return false
}

// ComponentStatusForQuantity derives the stocking flag from a row's
// remaining quantity and the reorder threshold.
func ComponentStatusForQuantity(quantity, criticalThreshold int) ComponentStatus {
	switch {
	case quantity <= 0:
		return ComponentStatusOutOfStock
	case quantity < criticalThreshold:
		return ComponentStatusLowStock
	default:
		return ComponentStatusInStock
	}
}

// ParseComponentStatus converts raw input into a ComponentStatus.
func ParseComponentStatus(value string) (ComponentStatus, error) {
	for _, candidate := range validComponentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid component status %q", value)
}

package enums

import "fmt"

// StockLevel classifies a single line item's availability against the
// quantity an assembly run needs.
type StockLevel string

const (
	StockLevelCritical StockLevel = "CRITICAL"
	StockLevelLow      StockLevel = "LOW"
	StockLevelAdequate StockLevel = "ADEQUATE"
)

var validStockLevels = []StockLevel{
	StockLevelCritical,
	StockLevelLow,
	StockLevelAdequate,
}

// String implements fmt.Stringer.
func (s StockLevel) String() string {
	return string(s)
}

// IsValid reports whether the value is a known StockLevel.
func (s StockLevel) IsValid() bool {
	for _, candidate := range validStockLevels {
		if candidate == s {
			return true
		}
	}
	return false
}

// ClassifyStockLevel applies the reorder rules: available below the
// critical threshold is CRITICAL, available below twice the required
// quantity is LOW, anything else is ADEQUATE.
func ClassifyStockLevel(available, totalRequired, criticalThreshold int) StockLevel {
	if available < criticalThreshold {
		return StockLevelCritical
	}
	if available < 2*totalRequired {
		return StockLevelLow
	}
	return StockLevelAdequate
}

// ParseStockLevel converts raw input into a StockLevel.
func ParseStockLevel(value string) (StockLevel, error) {
	for _, candidate := range validStockLevels {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid stock level %q", value)
}

package enums

import "fmt"

// BuildStatus tracks the lifecycle of an assembly build.
type BuildStatus string

const (
	BuildStatusPending      BuildStatus = "PENDING"
	BuildStatusShippedToEMS BuildStatus = "SHIPPED_TO_EMS"
	BuildStatusInAssembly   BuildStatus = "IN_ASSEMBLY"
	BuildStatusAssembled    BuildStatus = "ASSEMBLED"
	BuildStatusCompleted    BuildStatus = "COMPLETED"
)

// buildStatusOrder defines the required forward progression.
var buildStatusOrder = []BuildStatus{
	BuildStatusPending,
	BuildStatusShippedToEMS,
	BuildStatusInAssembly,
	BuildStatusAssembled,
	BuildStatusCompleted,
}

// String implements fmt.Stringer.
func (b BuildStatus) String() string {
	return string(b)
}

// IsValid reports whether the value is a known BuildStatus.
func (b BuildStatus) IsValid() bool {
	return b.index() >= 0
}

// IsTerminal reports whether no further transitions are permitted.
func (b BuildStatus) IsTerminal() bool {
	return b == BuildStatusCompleted
}

// CanTransitionTo reports whether moving from b to next is allowed.
// Only strictly forward moves are permitted; skipping intermediate
// states is fine, going backward or leaving a terminal state is not.
func (b BuildStatus) CanTransitionTo(next BuildStatus) bool {
	from, to := b.index(), next.index()
	if from < 0 || to < 0 {
		return false
	}
	if b.IsTerminal() {
		return false
	}
	return to > from
}

// TimestampColumn returns the registry column stamped when the status
// is entered.
func (b BuildStatus) TimestampColumn() string {
	switch b {
	case BuildStatusPending:
		return "pending_at"
	case BuildStatusShippedToEMS:
		return "shipped_to_ems_at"
	case BuildStatusInAssembly:
		return "in_assembly_at"
	case BuildStatusAssembled:
		return "assembled_at"
	case BuildStatusCompleted:
		return "completed_at"
	}
	return ""
}

func (b BuildStatus) index() int {
	for i, candidate := range buildStatusOrder {
		if candidate == b {
			return i
		}
	}
	return -1
}

// ParseBuildStatus converts raw input into a BuildStatus.
func ParseBuildStatus(value string) (BuildStatus, error) {
	for _, candidate := range buildStatusOrder {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid build status %q", value)
}

package enums

import "testing"

func TestBuildStatusTransitions(t *testing.T) {
	tests := []struct {
		from    BuildStatus
		to      BuildStatus
		allowed bool
	}{
		{BuildStatusPending, BuildStatusShippedToEMS, true},
		{BuildStatusPending, BuildStatusInAssembly, true},
		{BuildStatusPending, BuildStatusCompleted, true},
		{BuildStatusShippedToEMS, BuildStatusPending, false},
		{BuildStatusInAssembly, BuildStatusInAssembly, false},
		{BuildStatusAssembled, BuildStatusCompleted, true},
		{BuildStatusCompleted, BuildStatusPending, false},
		{BuildStatusCompleted, BuildStatusCompleted, false},
		{BuildStatus("UNKNOWN"), BuildStatusPending, false},
		{BuildStatusPending, BuildStatus("UNKNOWN"), false},
	}

	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.allowed {
			t.Fatalf("%s -> %s: expected allowed=%v got %v", tt.from, tt.to, tt.allowed, got)
		}
	}
}

func TestBuildStatusTerminal(t *testing.T) {
	if !BuildStatusCompleted.IsTerminal() {
		t.Fatal("COMPLETED should be terminal")
	}
	if BuildStatusAssembled.IsTerminal() {
		t.Fatal("ASSEMBLED should not be terminal")
	}
}

func TestBuildStatusTimestampColumns(t *testing.T) {
	expected := map[BuildStatus]string{
		BuildStatusPending:      "pending_at",
		BuildStatusShippedToEMS: "shipped_to_ems_at",
		BuildStatusInAssembly:   "in_assembly_at",
		BuildStatusAssembled:    "assembled_at",
		BuildStatusCompleted:    "completed_at",
	}
	for status, column := range expected {
		if got := status.TimestampColumn(); got != column {
			t.Fatalf("%s: expected column %q got %q", status, column, got)
		}
	}
}

func TestParseBuildStatus(t *testing.T) {
	status, err := ParseBuildStatus("IN_ASSEMBLY")
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if status != BuildStatusInAssembly {
		t.Fatalf("unexpected status %s", status)
	}
	if _, err := ParseBuildStatus("in_assembly"); err == nil {
		t.Fatal("expected case-sensitive parse to fail")
	}
}

func TestClassifyStockLevel(t *testing.T) {
	tests := []struct {
		available     int
		totalRequired int
		want          StockLevel
	}{
		{available: 5, totalRequired: 6, want: StockLevelCritical},
		{available: 11, totalRequired: 6, want: StockLevelLow},
		{available: 40, totalRequired: 6, want: StockLevelAdequate},
		{available: 10, totalRequired: 5, want: StockLevelAdequate},
		{available: 9, totalRequired: 1, want: StockLevelCritical},
	}
	for _, tt := range tests {
		got := ClassifyStockLevel(tt.available, tt.totalRequired, 10)
		if got != tt.want {
			t.Fatalf("available=%d required=%d: expected %s got %s", tt.available, tt.totalRequired, tt.want, got)
		}
	}
}

func TestComponentTypeTableWhitelist(t *testing.T) {
	if got := ComponentTypeMosfet.Table(); got != "mosfets" {
		t.Fatalf("unexpected table %q", got)
	}
	if ComponentType("assemblies; DROP TABLE assemblies").IsValid() {
		t.Fatal("arbitrary input must not be a valid component type")
	}
	if got := len(ComponentTypes()); got != 6 {
		t.Fatalf("expected 6 component types, got %d", got)
	}
}

package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestAssemblyMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_assemblies.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS assemblies",
		"name TEXT NOT NULL UNIQUE",
		"CHECK (device_qty > 0)",
		"shipped_to_ems_at TIMESTAMPTZ",
		"completed_at TIMESTAMPTZ",
		"DROP TABLE IF EXISTS assemblies",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestLineItemMigrationCascades(t *testing.T) {
	content := readMigration(t, "*_create_assembly_line_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS assembly_line_items",
		"FOREIGN KEY (assembly_id) REFERENCES assemblies(id) ON DELETE CASCADE",
		"CHECK (fetch_stock >= 0)",
		"DROP TABLE IF EXISTS assembly_line_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestComponentMigrationGuardsQuantities(t *testing.T) {
	content := readMigration(t, "*_create_component_tables.sql")

	tables := []string{"mosfets", "capacitors", "diodes", "microcontrollers", "power_ics", "resistors"}
	for _, table := range tables {
		if !strings.Contains(content, "CREATE TABLE IF NOT EXISTS "+table) {
			t.Errorf("missing table %q", table)
		}
		if !strings.Contains(content, "DROP TABLE IF EXISTS "+table) {
			t.Errorf("missing drop for table %q", table)
		}
	}
	if got := strings.Count(content, "CHECK (quantity >= 0)"); got != len(tables) {
		t.Errorf("expected %d quantity checks, got %d", len(tables), got)
	}
	if got := strings.Count(content, "FOREIGN KEY (vendor_id) REFERENCES vendors(id)"); got != len(tables) {
		t.Errorf("expected %d vendor FKs, got %d", len(tables), got)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

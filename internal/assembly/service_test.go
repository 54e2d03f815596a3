package assembly

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/pkg/config"
	"github.com/elektrolab/stockroom-backend/pkg/db"
	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:assembly_" + uuid.NewString() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := conn.AutoMigrate(&models.Assembly{}, &models.AssemblyLineItem{}); err != nil {
		t.Fatalf("migrate registry: %v", err)
	}
	for _, componentType := range enums.ComponentTypes() {
		ddl := fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
  id TEXT PRIMARY KEY,
  ipn TEXT NOT NULL UNIQUE,
  description TEXT NOT NULL,
  mfg TEXT NOT NULL DEFAULT '',
  mfg_part_no TEXT NOT NULL DEFAULT '',
  package TEXT NOT NULL DEFAULT '',
  vendor_id INTEGER NOT NULL DEFAULT 1,
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  avg_price NUMERIC NOT NULL DEFAULT 0,
  location TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT 'IN_STOCK',
  created_at DATETIME,
  updated_at DATETIME
);`, componentType.Table())
		if err := conn.Exec(ddl).Error; err != nil {
			t.Fatalf("create %s: %v", componentType.Table(), err)
		}
	}
	return conn
}

func newTestService(t *testing.T, conn *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(
		NewRepository(conn),
		inventory.NewRepository(conn),
		db.NewFromConn(conn),
		nil,
		config.InventoryConfig{CriticalThreshold: 10, DefaultPageSize: 50, MaxPageSize: 200},
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedComponent(t *testing.T, conn *gorm.DB, componentType enums.ComponentType, id, description string, quantity int) {
	t.Helper()
	repo := inventory.NewRepository(conn)
	err := repo.Insert(context.Background(), componentType, &models.Component{
		ID:          id,
		IPN:         "IPN-" + id,
		Description: description,
		Quantity:    quantity,
	})
	if err != nil {
		t.Fatalf("seed %s/%s: %v", componentType, id, err)
	}
}

func componentQty(t *testing.T, conn *gorm.DB, componentType enums.ComponentType, id string) int {
	t.Helper()
	component, err := inventory.NewRepository(conn).FindByID(context.Background(), componentType, id)
	if err != nil {
		t.Fatalf("load %s/%s: %v", componentType, id, err)
	}
	return component.Quantity
}

func expectCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", code)
	}
	typed := pkgerrors.As(err)
	if typed == nil {
		t.Fatalf("expected coded error, got %v", err)
	}
	if typed.Code() != code {
		t.Fatalf("expected code %s, got %s (%v)", code, typed.Code(), err)
	}
}

func TestCreateAssemblyReservesStock(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeMosfet, "MOS00001", "N-Channel Mosfet 30V 2A", 100)
	seedComponent(t, conn, enums.ComponentTypeCapacitor, "CAP00001", "10uF 16V Ceramic", 80)

	result, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "driver_board_rev2",
		DeviceQty: 5,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeMosfet, Description: "N-Channel Mosfet 30V 2A", QtyPerDevice: 2, FetchStock: 12},
			{ComponentType: enums.ComponentTypeCapacitor, Description: "10uF 16V Ceramic", QtyPerDevice: 4, FetchStock: 20},
		},
	})
	if err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	if result.Name != "driver_board_rev2" || result.ComponentCount != 2 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if result.BuildStatus != enums.BuildStatusPending {
		t.Fatalf("expected PENDING, got %s", result.BuildStatus)
	}

	if got := componentQty(t, conn, enums.ComponentTypeMosfet, "MOS00001"); got != 88 {
		t.Fatalf("mosfet quantity = %d, want 88", got)
	}
	if got := componentQty(t, conn, enums.ComponentTypeCapacitor, "CAP00001"); got != 60 {
		t.Fatalf("capacitor quantity = %d, want 60", got)
	}

	stored, err := svc.GetAssembly(ctx, "driver_board_rev2")
	if err != nil {
		t.Fatalf("get assembly: %v", err)
	}
	if len(stored.LineItems) != 2 {
		t.Fatalf("expected 2 line items, got %d", len(stored.LineItems))
	}
	var mosfetLine *LineItemDTO
	for i := range stored.LineItems {
		if stored.LineItems[i].ComponentType == enums.ComponentTypeMosfet {
			mosfetLine = &stored.LineItems[i]
		}
	}
	if mosfetLine == nil {
		t.Fatal("mosfet line missing")
	}
	if mosfetLine.TotalRequired != 10 || mosfetLine.FetchStock != 12 || mosfetLine.LeftoverStock != 2 {
		t.Fatalf("unexpected mosfet line: %+v", mosfetLine)
	}
	if stored.Timestamps["pending_at"] == nil {
		t.Fatal("pending_at should be stamped at creation")
	}
	if stored.Timestamps["shipped_to_ems_at"] != nil {
		t.Fatal("shipped_to_ems_at should start null")
	}
}

func TestCreateAssemblyRollsBackOnShortage(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeMosfet, "MOS00001", "N-Channel Mosfet 30V 2A", 100)
	seedComponent(t, conn, enums.ComponentTypeDiode, "DIO00001", "Schottky 40V 1A", 3)

	_, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "doomed_run",
		DeviceQty: 2,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeMosfet, Description: "N-Channel Mosfet 30V 2A", QtyPerDevice: 1, FetchStock: 50},
			{ComponentType: enums.ComponentTypeDiode, Description: "Schottky 40V 1A", QtyPerDevice: 1, FetchStock: 10},
		},
	})
	expectCode(t, err, pkgerrors.CodeConflict)

	// the first line's withdrawal must have been rolled back
	if got := componentQty(t, conn, enums.ComponentTypeMosfet, "MOS00001"); got != 100 {
		t.Fatalf("mosfet quantity = %d, want 100 after rollback", got)
	}
	if got := componentQty(t, conn, enums.ComponentTypeDiode, "DIO00001"); got != 3 {
		t.Fatalf("diode quantity = %d, want 3 after rollback", got)
	}
	if _, err := svc.GetAssembly(ctx, "doomed_run"); err == nil {
		t.Fatal("assembly row should not exist after rollback")
	}
}

func TestCreateAssemblyUnknownComponent(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.CreateAssembly(context.Background(), CreateAssemblyInput{
		Name:      "ghost_bom",
		DeviceQty: 1,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeResistor, Description: "does not exist", QtyPerDevice: 1, FetchStock: 1},
		},
	})
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestCreateAssemblyDuplicateName(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeResistor, "RES00001", "100 Ohm 0.25W 1%", 500)

	input := CreateAssemblyInput{
		Name:      "twice_named",
		DeviceQty: 1,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeResistor, Description: "100 Ohm 0.25W 1%", QtyPerDevice: 5, FetchStock: 10},
		},
	}

	if _, err := svc.CreateAssembly(ctx, input); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.CreateAssembly(ctx, input)
	expectCode(t, err, pkgerrors.CodeConflict)

	// the rejected attempt must not have touched the shelf
	if got := componentQty(t, conn, enums.ComponentTypeResistor, "RES00001"); got != 490 {
		t.Fatalf("resistor quantity = %d, want 490", got)
	}
}

func TestCreateAssemblyValidation(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	cases := []struct {
		name  string
		input CreateAssemblyInput
	}{
		{"bad identifier", CreateAssemblyInput{Name: "has spaces", DeviceQty: 1, Lines: []BOMLineInput{{ComponentType: enums.ComponentTypeDiode, Description: "x", QtyPerDevice: 1, FetchStock: 1}}}},
		{"sql-ish name", CreateAssemblyInput{Name: "run; DROP TABLE assemblies", DeviceQty: 1, Lines: []BOMLineInput{{ComponentType: enums.ComponentTypeDiode, Description: "x", QtyPerDevice: 1, FetchStock: 1}}}},
		{"zero device qty", CreateAssemblyInput{Name: "ok_name", DeviceQty: 0, Lines: []BOMLineInput{{ComponentType: enums.ComponentTypeDiode, Description: "x", QtyPerDevice: 1, FetchStock: 1}}}},
		{"no lines", CreateAssemblyInput{Name: "ok_name", DeviceQty: 1}},
		{"bad component type", CreateAssemblyInput{Name: "ok_name", DeviceQty: 1, Lines: []BOMLineInput{{ComponentType: "assemblies; DROP TABLE assemblies", Description: "x", QtyPerDevice: 1, FetchStock: 1}}}},
		{"zero fetch", CreateAssemblyInput{Name: "ok_name", DeviceQty: 1, Lines: []BOMLineInput{{ComponentType: enums.ComponentTypeDiode, Description: "x", QtyPerDevice: 1, FetchStock: 0}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateAssembly(ctx, tc.input)
			expectCode(t, err, pkgerrors.CodeValidation)
		})
	}
}

func TestDeleteAssemblyRestocksFetchStock(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeMicrocontroller, "MIC00001", "32-bit MCU 80MHz 32KB Flash", 40)
	seedComponent(t, conn, enums.ComponentTypePowerIC, "POW00001", "DC-DC Conv 3.3V 1A", 25)

	_, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "round_trip",
		DeviceQty: 3,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeMicrocontroller, Description: "32-bit MCU 80MHz 32KB Flash", QtyPerDevice: 1, FetchStock: 5},
			{ComponentType: enums.ComponentTypePowerIC, Description: "DC-DC Conv 3.3V 1A", QtyPerDevice: 2, FetchStock: 8},
		},
	})
	if err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	result, err := svc.DeleteAssembly(ctx, "round_trip")
	if err != nil {
		t.Fatalf("delete assembly: %v", err)
	}
	if len(result.Restocked) != 2 {
		t.Fatalf("expected 2 restocked lines, got %d", len(result.Restocked))
	}
	for _, item := range result.Restocked {
		if item.Quantity == 0 {
			t.Fatalf("restock quantity must be the fetched amount: %+v", item)
		}
	}

	// exact round trip: the credited amount is fetch_stock, not total_required
	if got := componentQty(t, conn, enums.ComponentTypeMicrocontroller, "MIC00001"); got != 40 {
		t.Fatalf("microcontroller quantity = %d, want 40", got)
	}
	if got := componentQty(t, conn, enums.ComponentTypePowerIC, "POW00001"); got != 25 {
		t.Fatalf("power ic quantity = %d, want 25", got)
	}

	if _, err := svc.GetAssembly(ctx, "round_trip"); err == nil {
		t.Fatal("assembly should be gone")
	}
	var count int64
	if err := conn.Model(&models.AssemblyLineItem{}).Count(&count).Error; err != nil {
		t.Fatalf("count line items: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected 0 line items, got %d", count)
	}
}

func TestDeleteAssemblyNotFound(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.DeleteAssembly(context.Background(), "never_existed")
	expectCode(t, err, pkgerrors.CodeNotFound)
}

func TestUpdateStatusForwardSkip(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeDiode, "DIO00001", "Schottky 40V 1A", 50)
	if _, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "skip_ahead",
		DeviceQty: 1,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeDiode, Description: "Schottky 40V 1A", QtyPerDevice: 2, FetchStock: 4},
		},
	}); err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	result, err := svc.UpdateStatus(ctx, UpdateStatusInput{Name: "skip_ahead", Status: enums.BuildStatusInAssembly})
	if err != nil {
		t.Fatalf("skip transition: %v", err)
	}
	if result.BuildStatus != enums.BuildStatusInAssembly {
		t.Fatalf("expected IN_ASSEMBLY, got %s", result.BuildStatus)
	}
	if result.Timestamps["in_assembly_at"] == nil {
		t.Fatal("in_assembly_at should be stamped")
	}
	if result.Timestamps["shipped_to_ems_at"] != nil {
		t.Fatal("skipped milestone must stay null")
	}
	if result.Timestamps["pending_at"] == nil {
		t.Fatal("pending_at must survive the transition")
	}
}

func TestUpdateStatusRejectsBackwardAndSame(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeDiode, "DIO00001", "Schottky 40V 1A", 50)
	if _, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "one_way",
		DeviceQty: 1,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeDiode, Description: "Schottky 40V 1A", QtyPerDevice: 1, FetchStock: 2},
		},
	}); err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, UpdateStatusInput{Name: "one_way", Status: enums.BuildStatusAssembled}); err != nil {
		t.Fatalf("advance to ASSEMBLED: %v", err)
	}

	_, err := svc.UpdateStatus(ctx, UpdateStatusInput{Name: "one_way", Status: enums.BuildStatusShippedToEMS})
	expectCode(t, err, pkgerrors.CodeStateConflict)

	_, err = svc.UpdateStatus(ctx, UpdateStatusInput{Name: "one_way", Status: enums.BuildStatusAssembled})
	expectCode(t, err, pkgerrors.CodeStateConflict)
}

func TestUpdateStatusCompletedIsTerminal(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeDiode, "DIO00001", "Schottky 40V 1A", 50)
	if _, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "finished",
		DeviceQty: 1,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeDiode, Description: "Schottky 40V 1A", QtyPerDevice: 1, FetchStock: 2},
		},
	}); err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	if _, err := svc.UpdateStatus(ctx, UpdateStatusInput{Name: "finished", Status: enums.BuildStatusCompleted}); err != nil {
		t.Fatalf("complete: %v", err)
	}

	for _, next := range []enums.BuildStatus{
		enums.BuildStatusPending,
		enums.BuildStatusShippedToEMS,
		enums.BuildStatusInAssembly,
		enums.BuildStatusAssembled,
		enums.BuildStatusCompleted,
	} {
		_, err := svc.UpdateStatus(ctx, UpdateStatusInput{Name: "finished", Status: next})
		expectCode(t, err, pkgerrors.CodeStateConflict)
	}
}

func TestUpdateStatusUnknownStatus(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)

	_, err := svc.UpdateStatus(context.Background(), UpdateStatusInput{Name: "whatever", Status: "SHIPPED"})
	expectCode(t, err, pkgerrors.CodeValidation)
}

func TestCheckInventoryLevels(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeCapacitor, "CAP00001", "10uF 16V Ceramic", 5)

	input := CheckInventoryInput{
		DeviceQty: 2,
		Lines: []CheckLineInput{
			{ComponentType: enums.ComponentTypeCapacitor, Description: "10uF 16V Ceramic", QtyPerDevice: 3},
		},
	}

	result, err := svc.CheckInventoryLevels(ctx, input)
	if err != nil {
		t.Fatalf("check inventory: %v", err)
	}
	if len(result.Shortages) != 1 {
		t.Fatalf("expected 1 shortage, got %d", len(result.Shortages))
	}
	shortage := result.Shortages[0]
	if shortage.Available != 5 || shortage.TotalRequired != 6 {
		t.Fatalf("unexpected shortage: %+v", shortage)
	}
	if shortage.Level != enums.StockLevelCritical {
		t.Fatalf("5 on hand under threshold should be CRITICAL, got %s", shortage.Level)
	}
	if !result.HasCritical {
		t.Fatal("HasCritical should be set")
	}
	if result.MinPossibleAssemblies != 1 {
		t.Fatalf("MinPossibleAssemblies = %d, want 1", result.MinPossibleAssemblies)
	}

	// the check is read-only: run it again and nothing changed
	again, err := svc.CheckInventoryLevels(ctx, input)
	if err != nil {
		t.Fatalf("second check: %v", err)
	}
	if again.Shortages[0].Available != 5 {
		t.Fatalf("check must not consume stock, available = %d", again.Shortages[0].Available)
	}
	if got := componentQty(t, conn, enums.ComponentTypeCapacitor, "CAP00001"); got != 5 {
		t.Fatalf("capacitor quantity = %d, want 5", got)
	}
}

func TestCheckInventoryUnknownDescriptionCountsAsZero(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)

	result, err := svc.CheckInventoryLevels(context.Background(), CheckInventoryInput{
		DeviceQty: 1,
		Lines: []CheckLineInput{
			{ComponentType: enums.ComponentTypeMosfet, Description: "nothing here", QtyPerDevice: 2},
		},
	})
	if err != nil {
		t.Fatalf("check inventory: %v", err)
	}
	if len(result.Shortages) != 1 || result.Shortages[0].Available != 0 {
		t.Fatalf("unknown part should show zero availability: %+v", result)
	}
	if result.MinPossibleAssemblies != 0 {
		t.Fatalf("MinPossibleAssemblies = %d, want 0", result.MinPossibleAssemblies)
	}
}

func TestRefreshStockStatus(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeResistor, "RES00001", "100 Ohm 0.25W 1%", 100)

	if _, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
		Name:      "depletion_watch",
		DeviceQty: 2,
		Lines: []BOMLineInput{
			{ComponentType: enums.ComponentTypeResistor, Description: "100 Ohm 0.25W 1%", QtyPerDevice: 10, FetchStock: 20},
		},
	}); err != nil {
		t.Fatalf("create assembly: %v", err)
	}

	// 80 left, 10 per device -> 8 buildable, comfortably sufficient
	result, err := svc.RefreshStockStatus(ctx, "depletion_watch")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if result.StockStatus != enums.StockStatusSufficient || result.MaxAssemblies != 8 {
		t.Fatalf("unexpected status: %+v", result)
	}

	// drain the shelf below one device's worth
	if err := conn.Exec("UPDATE resistors SET quantity = 7 WHERE id = ?", "RES00001").Error; err != nil {
		t.Fatalf("drain shelf: %v", err)
	}
	result, err = svc.RefreshStockStatus(ctx, "depletion_watch")
	if err != nil {
		t.Fatalf("refresh after drain: %v", err)
	}
	if result.StockStatus != enums.StockStatusOutOfStock || result.MaxAssemblies != 0 {
		t.Fatalf("expected out_of_stock with 0 buildable: %+v", result)
	}

	stored, err := svc.GetAssembly(ctx, "depletion_watch")
	if err != nil {
		t.Fatalf("get assembly: %v", err)
	}
	if stored.StockStatus != enums.StockStatusOutOfStock {
		t.Fatalf("persisted stock status = %s, want out_of_stock", stored.StockStatus)
	}
}

func TestListAssembliesNewestFirst(t *testing.T) {
	t.Parallel()

	conn := newTestDB(t)
	svc := newTestService(t, conn)
	ctx := context.Background()

	seedComponent(t, conn, enums.ComponentTypeDiode, "DIO00001", "Schottky 40V 1A", 500)

	for _, name := range []string{"run_a", "run_b", "run_c"} {
		if _, err := svc.CreateAssembly(ctx, CreateAssemblyInput{
			Name:      name,
			DeviceQty: 1,
			Lines: []BOMLineInput{
				{ComponentType: enums.ComponentTypeDiode, Description: "Schottky 40V 1A", QtyPerDevice: 1, FetchStock: 1},
			},
		}); err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
	}

	list, err := svc.ListAssemblies(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 assemblies, got %d", len(list))
	}
	if list[len(list)-1].Name != "run_a" {
		t.Fatalf("expected oldest last, got %s", list[len(list)-1].Name)
	}
}

func TestClassifyRun(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		lines  []LineAvailability
		status enums.StockStatus
		max    int
	}{
		{
			name:   "empty",
			status: enums.StockStatusSufficient,
			max:    0,
		},
		{
			name: "plentiful",
			lines: []LineAvailability{
				{Available: 100, QtyPerDevice: 2},
				{Available: 40, QtyPerDevice: 4},
			},
			status: enums.StockStatusSufficient,
			max:    10,
		},
		{
			name: "one low shelf",
			lines: []LineAvailability{
				{Available: 100, QtyPerDevice: 2},
				{Available: 5, QtyPerDevice: 4},
			},
			status: enums.StockStatusLow,
			max:    1,
		},
		{
			name: "cannot build one",
			lines: []LineAvailability{
				{Available: 3, QtyPerDevice: 4},
			},
			status: enums.StockStatusOutOfStock,
			max:    0,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, max := classifyRun(tc.lines)
			if status != tc.status || max != tc.max {
				t.Fatalf("classifyRun = (%s, %d), want (%s, %d)", status, max, tc.status, tc.max)
			}
		})
	}
}

package main

import (
	"context"
	"fmt"
	"math/rand"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/internal/vendors"
	"github.com/elektrolab/stockroom-backend/pkg/config"
	"github.com/elektrolab/stockroom-backend/pkg/db"
	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
	"github.com/elektrolab/stockroom-backend/pkg/migrate"
)

const rowsPerTable = 25

var seedVendors = []models.Vendor{
	{Code: "MOU", Name: "Mouser Electronics"},
	{Code: "DGK", Name: "Digi-Key"},
	{Code: "ARW", Name: "Arrow Electronics"},
	{Code: "NWK", Name: "Newark"},
	{Code: "AVN", Name: "Avnet"},
}

var manufacturers = map[enums.ComponentType][]string{
	enums.ComponentTypeMosfet:          {"Infineon", "Texas Instruments", "ON Semi", "Vishay", "STMicro"},
	enums.ComponentTypeCapacitor:       {"Murata", "TDK", "Samsung", "Yageo", "Kemet"},
	enums.ComponentTypeDiode:           {"ON Semi", "Vishay", "Diodes Inc", "Nexperia", "Rohm"},
	enums.ComponentTypeMicrocontroller: {"STMicro", "Microchip", "NXP", "Texas Instruments", "Renesas"},
	enums.ComponentTypePowerIC:         {"Texas Instruments", "Analog Devices", "Maxim", "ON Semi", "Linear Tech"},
	enums.ComponentTypeResistor:        {"Yageo", "Vishay", "Panasonic", "TE Connectivity", "Bourns"},
}

var packages = map[enums.ComponentType][]string{
	enums.ComponentTypeMosfet:          {"SOT-23", "TO-220", "DPAK", "SO-8", "QFN", "SOIC"},
	enums.ComponentTypeCapacitor:       {"0402", "0603", "0805", "1206"},
	enums.ComponentTypeDiode:           {"SOD-123", "DO-214AC", "SOT-23", "DO-35"},
	enums.ComponentTypeMicrocontroller: {"LQFP", "QFN", "TQFP", "BGA", "SOIC"},
	enums.ComponentTypePowerIC:         {"SOIC", "QFN", "TSSOP", "DFN", "TO-263"},
	enums.ComponentTypeResistor:        {"0402", "0603", "0805", "1206"},
}

var idPrefixes = map[enums.ComponentType]string{
	enums.ComponentTypeMosfet:          "MOS",
	enums.ComponentTypeCapacitor:       "CAP",
	enums.ComponentTypeDiode:           "DIO",
	enums.ComponentTypeMicrocontroller: "MIC",
	enums.ComponentTypePowerIC:         "POW",
	enums.ComponentTypeResistor:        "RES",
}

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logg.Error(ctx, "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	if cfg.App.IsProd() {
		logg.Error(ctx, "refusing to seed a production database", fmt.Errorf("env is %s", cfg.App.Env))
		os.Exit(1)
	}

	dbClient, err := db.New(ctx, cfg.DB, cfg.FeatureFlags.UseSQLite, logg)
	if err != nil {
		logg.Error(ctx, "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer dbClient.Close()

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		logg.Error(ctx, "failed to run dev migrations", err)
		os.Exit(1)
	}

	vendorRepo := vendors.NewRepository(dbClient.DB())
	inventoryRepo := inventory.NewRepository(dbClient.DB())

	vendorIDs, err := seedVendorRows(ctx, vendorRepo, logg)
	if err != nil {
		logg.Error(ctx, "failed to seed vendors", err)
		os.Exit(1)
	}

	rng := rand.New(rand.NewSource(42))
	total := 0
	for _, componentType := range enums.ComponentTypes() {
		inserted, err := seedComponentRows(ctx, inventoryRepo, rng, componentType, vendorIDs)
		if err != nil {
			logg.Error(ctx, "failed to seed components", err)
			os.Exit(1)
		}
		total += inserted
	}

	ctx = logg.WithFields(ctx, map[string]any{"vendors": len(vendorIDs), "components": total})
	logg.Info(ctx, "seed complete")
}

func seedVendorRows(ctx context.Context, repo *vendors.Repository, logg *logger.Logger) ([]int, error) {
	ids := make([]int, 0, len(seedVendors))
	for _, vendor := range seedVendors {
		existing, err := repo.FindByCode(ctx, vendor.Code)
		if err == nil && existing != nil {
			ids = append(ids, existing.ID)
			continue
		}

		row := vendor
		if err := repo.Create(ctx, &row); err != nil {
			if db.IsUniqueViolation(err, "") {
				continue
			}
			return nil, err
		}
		ids = append(ids, row.ID)

		vctx := logg.WithFields(ctx, map[string]any{"code": row.Code, "name": row.Name})
		logg.Info(vctx, "seeded vendor")
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("no vendors available after seeding")
	}
	return ids, nil
}

func seedComponentRows(ctx context.Context, repo *inventory.Repository, rng *rand.Rand, componentType enums.ComponentType, vendorIDs []int) (int, error) {
	inserted := 0
	for i := 0; i < rowsPerTable; i++ {
		component := &models.Component{
			ID:          fmt.Sprintf("%s%05d", idPrefixes[componentType], i),
			IPN:         fmt.Sprintf("IPN-%s-%06d", idPrefixes[componentType], i),
			Description: describe(componentType, i),
			Mfg:         pick(rng, manufacturers[componentType]),
			MfgPartNo:   fmt.Sprintf("MFG%07d", 1000000+i),
			Package:     pick(rng, packages[componentType]),
			VendorID:    vendorIDs[rng.Intn(len(vendorIDs))],
			Quantity:    50 + rng.Intn(200),
			AvgPrice:    decimal.NewFromFloat(0.5 + rng.Float64()*10).Round(2),
			Location:    fmt.Sprintf("Shelf-%c%d", 'A'+rune(i%8), i%10),
			Status:      enums.ComponentStatusInStock,
		}

		if err := repo.Insert(ctx, componentType, component); err != nil {
			if db.IsUniqueViolation(err, "") {
				continue
			}
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}

func describe(componentType enums.ComponentType, i int) string {
	switch componentType {
	case enums.ComponentTypeMosfet:
		return fmt.Sprintf("N-Channel Mosfet %dV %dA", 30+i, 2+i%5)
	case enums.ComponentTypeCapacitor:
		return fmt.Sprintf("%duF %dV Ceramic", i*10, 16+(i%5)*10)
	case enums.ComponentTypeDiode:
		return fmt.Sprintf("Schottky %dV %dA", 40+i, 1+i%3)
	case enums.ComponentTypeMicrocontroller:
		return fmt.Sprintf("32-bit MCU %dMHz %dKB Flash", 80+i, 32+i*8)
	case enums.ComponentTypePowerIC:
		return fmt.Sprintf("DC-DC Conv %.1fV %dA", 3.3+float64(i%5), 1+i%3)
	case enums.ComponentTypeResistor:
		return fmt.Sprintf("%d Ohm 0.25W 1%%", i*100)
	}
	return string(componentType)
}

func pick(rng *rand.Rand, values []string) string {
	return values[rng.Intn(len(values))]
}

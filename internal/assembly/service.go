package assembly

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/pkg/config"
	"github.com/elektrolab/stockroom-backend/pkg/db"
	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/metrics"
)

// Service exposes the assembly reservation and lifecycle workflow.
type Service interface {
	CreateAssembly(ctx context.Context, input CreateAssemblyInput) (*CreateAssemblyResult, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*StatusResult, error)
	DeleteAssembly(ctx context.Context, name string) (*DeleteResult, error)
	CheckInventoryLevels(ctx context.Context, input CheckInventoryInput) (*CheckInventoryResult, error)
	RefreshStockStatus(ctx context.Context, name string) (*StockStatusResult, error)
	ListAssemblies(ctx context.Context) ([]AssemblyDTO, error)
	GetAssembly(ctx context.Context, name string) (*AssemblyDTO, error)
}

// Assembly names historically doubled as table names, so the identifier
// shape is still enforced even though the registry no longer creates tables.
var nameRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,63}$`)

type service struct {
	repo          *Repository
	inventoryRepo *inventory.Repository
	dbClient      *db.Client
	metrics       *metrics.ReservationMetrics
	cfg           config.InventoryConfig
}

// NewService constructs an assembly service instance.
func NewService(repo *Repository, inventoryRepo *inventory.Repository, dbClient *db.Client, m *metrics.ReservationMetrics, cfg config.InventoryConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("assembly repository required")
	}
	if inventoryRepo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	return &service{
		repo:          repo,
		inventoryRepo: inventoryRepo,
		dbClient:      dbClient,
		metrics:       m,
		cfg:           cfg,
	}, nil
}

// CreateAssembly commits a BOM as a single transaction: registry row, one
// guarded stock withdrawal per line, and the line-item records. Any failed
// line rolls the whole reservation back.
func (s *service) CreateAssembly(ctx context.Context, input CreateAssemblyInput) (*CreateAssemblyResult, error) {
	const op = "create_assembly"
	start := time.Now()

	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	assemblyID := uuid.New()
	now := time.Now().UTC()
	var result *CreateAssemblyResult

	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txInventory := s.inventoryRepo.WithTx(tx)

		if _, err := txRepo.FindByName(ctx, input.Name); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "assembly name already exists").WithDetails(map[string]any{
				"name": input.Name,
			})
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check assembly name")
		}

		master := &models.Assembly{
			ID:             assemblyID,
			Name:           input.Name,
			DeviceQty:      input.DeviceQty,
			ComponentCount: len(input.Lines),
			StockStatus:    enums.StockStatusSufficient,
			BuildStatus:    enums.BuildStatusPending,
			PendingAt:      &now,
		}
		if err := txRepo.Create(ctx, master); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeConflict, "assembly name already exists").WithDetails(map[string]any{
					"name": input.Name,
				})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert assembly")
		}

		items := make([]models.AssemblyLineItem, 0, len(input.Lines))
		availability := make([]LineAvailability, 0, len(input.Lines))
		for _, line := range input.Lines {
			component, err := txInventory.FindByDescription(ctx, line.ComponentType, line.Description)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return pkgerrors.New(pkgerrors.CodeNotFound, "component not found for BOM line").WithDetails(map[string]any{
						"component_type": line.ComponentType.String(),
						"description":    line.Description,
					})
				}
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: resolve BOM line")
			}

			if err := txInventory.GuardedDecrement(ctx, line.ComponentType, component.ID, line.FetchStock); err != nil {
				return err
			}

			totalRequired := line.QtyPerDevice * input.DeviceQty
			items = append(items, models.AssemblyLineItem{
				ID:            uuid.New(),
				AssemblyID:    assemblyID,
				ComponentType: line.ComponentType,
				ComponentID:   component.ID,
				Description:   component.Description,
				QtyPerDevice:  line.QtyPerDevice,
				TotalRequired: totalRequired,
				FetchStock:    line.FetchStock,
				LeftoverStock: line.FetchStock - totalRequired,
			})
			availability = append(availability, LineAvailability{
				ComponentType: line.ComponentType,
				ComponentID:   component.ID,
				QtyPerDevice:  line.QtyPerDevice,
				Available:     component.Quantity - line.FetchStock,
			})
		}

		if err := txRepo.CreateLineItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert line items")
		}

		stockStatus, _ := classifyRun(availability)
		if stockStatus != master.StockStatus {
			if err := txRepo.UpdateStockStatus(ctx, assemblyID, stockStatus); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set stock status")
			}
		}

		result = &CreateAssemblyResult{
			AssemblyID:     assemblyID,
			Name:           input.Name,
			ComponentCount: len(items),
			StockStatus:    stockStatus,
			BuildStatus:    enums.BuildStatusPending,
		}
		return nil
	})

	s.observe(op, start, err)
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateStatus advances the build state machine. Only strictly forward
// moves are accepted; COMPLETED is terminal.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*StatusResult, error) {
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown build status %q", input.Status))
	}

	assembly, err := s.loadAssembly(ctx, input.Name)
	if err != nil {
		return nil, err
	}

	if !assembly.BuildStatus.CanTransitionTo(input.Status) {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "build status transition not allowed").WithDetails(map[string]any{
			"name": input.Name,
			"from": assembly.BuildStatus.String(),
			"to":   input.Status.String(),
		})
	}

	now := time.Now().UTC()
	moved, err := s.repo.TransitionStatus(ctx, assembly.ID, assembly.BuildStatus, input.Status, now)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: transition status")
	}
	if !moved {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "assembly status changed concurrently").WithDetails(map[string]any{
			"name": input.Name,
		})
	}

	updated, err := s.loadAssembly(ctx, input.Name)
	if err != nil {
		return nil, err
	}
	return &StatusResult{
		Name:        updated.Name,
		BuildStatus: updated.BuildStatus,
		Timestamps:  updated.StatusTimestamps(),
	}, nil
}

// DeleteAssembly restores every withdrawn quantity and removes the
// registry row, all in one transaction.
func (s *service) DeleteAssembly(ctx context.Context, name string) (*DeleteResult, error) {
	const op = "delete_assembly"
	start := time.Now()

	var result *DeleteResult
	err := s.dbClient.WithTx(ctx, func(tx *gorm.DB) error {
		txRepo := s.repo.WithTx(tx)
		txInventory := s.inventoryRepo.WithTx(tx)

		assembly, err := txRepo.FindByNameWithLines(ctx, name)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "assembly not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load assembly")
		}

		restocked := make([]RestockedComponent, 0, len(assembly.LineItems))
		for _, item := range assembly.LineItems {
			if item.FetchStock > 0 {
				if err := txInventory.Increment(ctx, item.ComponentType, item.ComponentID, item.FetchStock); err != nil {
					return err
				}
			}
			restocked = append(restocked, RestockedComponent{
				ComponentType: item.ComponentType,
				ComponentID:   item.ComponentID,
				Description:   item.Description,
				Quantity:      item.FetchStock,
			})
		}

		if err := txRepo.Delete(ctx, assembly.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete assembly")
		}

		result = &DeleteResult{Name: name, Restocked: restocked}
		return nil
	})

	s.observe(op, start, err)
	if err != nil {
		return nil, err
	}
	for _, item := range result.Restocked {
		s.metrics.AddRestockedUnits(item.ComponentType.String(), item.Quantity)
	}
	return result, nil
}

// CheckInventoryLevels is the read-only dry run: no rows are mutated, so
// callers may retry it freely.
func (s *service) CheckInventoryLevels(ctx context.Context, input CheckInventoryInput) (*CheckInventoryResult, error) {
	if input.DeviceQty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device_qty must be positive")
	}
	if len(input.Lines) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one BOM line is required")
	}

	result := &CheckInventoryResult{Shortages: []ShortageLine{}}
	minPossible := -1
	for _, line := range input.Lines {
		if line.QtyPerDevice <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty_per_device must be positive")
		}

		available := 0
		component, err := s.inventoryRepo.FindByDescription(ctx, line.ComponentType, line.Description)
		switch {
		case err == nil:
			available = component.Quantity
		case errors.Is(err, gorm.ErrRecordNotFound):
			// unknown description counts as zero stock
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: check availability")
		}

		totalRequired := line.QtyPerDevice * input.DeviceQty
		possible := available / line.QtyPerDevice
		if minPossible < 0 || possible < minPossible {
			minPossible = possible
		}

		if available < totalRequired {
			level := enums.ClassifyStockLevel(available, totalRequired, s.cfg.CriticalThreshold)
			if level == enums.StockLevelCritical {
				result.HasCritical = true
			}
			result.Shortages = append(result.Shortages, ShortageLine{
				ComponentType:      line.ComponentType,
				Description:        line.Description,
				Available:          available,
				TotalRequired:      totalRequired,
				Level:              level,
				PossibleAssemblies: possible,
			})
		}
	}

	if minPossible < 0 {
		minPossible = 0
	}
	result.MinPossibleAssemblies = minPossible
	return result, nil
}

// RefreshStockStatus recomputes the buildable count of a committed assembly
// from live inventory and persists the sufficiency flag.
func (s *service) RefreshStockStatus(ctx context.Context, name string) (*StockStatusResult, error) {
	assembly, err := s.repo.FindByNameWithLines(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assembly not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load assembly")
	}

	availability := make([]LineAvailability, 0, len(assembly.LineItems))
	for _, item := range assembly.LineItems {
		available := 0
		component, err := s.inventoryRepo.FindByID(ctx, item.ComponentType, item.ComponentID)
		switch {
		case err == nil:
			available = component.Quantity
		case errors.Is(err, gorm.ErrRecordNotFound):
			// component row deleted since reservation, treat as empty shelf
		default:
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load component")
		}
		availability = append(availability, LineAvailability{
			ComponentType:      item.ComponentType,
			ComponentID:        item.ComponentID,
			Description:        item.Description,
			QtyPerDevice:       item.QtyPerDevice,
			Available:          available,
			PossibleAssemblies: available / item.QtyPerDevice,
		})
	}

	status, maxAssemblies := classifyRun(availability)
	if status != assembly.StockStatus {
		if err := s.repo.UpdateStockStatus(ctx, assembly.ID, status); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: set stock status")
		}
	}

	return &StockStatusResult{
		Name:          name,
		StockStatus:   status,
		MaxAssemblies: maxAssemblies,
		Components:    availability,
	}, nil
}

func (s *service) ListAssemblies(ctx context.Context) ([]AssemblyDTO, error) {
	assemblies, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list assemblies")
	}
	out := make([]AssemblyDTO, 0, len(assemblies))
	for _, assembly := range assemblies {
		out = append(out, toAssemblyDTO(assembly, false))
	}
	return out, nil
}

func (s *service) GetAssembly(ctx context.Context, name string) (*AssemblyDTO, error) {
	assembly, err := s.repo.FindByNameWithLines(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assembly not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load assembly")
	}
	dto := toAssemblyDTO(*assembly, true)
	return &dto, nil
}

func (s *service) loadAssembly(ctx context.Context, name string) (*models.Assembly, error) {
	assembly, err := s.repo.FindByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "assembly not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load assembly")
	}
	return assembly, nil
}

func (s *service) observe(op string, start time.Time, err error) {
	s.metrics.ObserveDuration(op, time.Since(start))
	if err != nil {
		s.metrics.IncFailure(op)
		return
	}
	s.metrics.IncSuccess(op)
}

func validateCreateInput(input CreateAssemblyInput) error {
	if !nameRe.MatchString(input.Name) {
		return pkgerrors.New(pkgerrors.CodeValidation, "assembly name must be a valid identifier")
	}
	if input.DeviceQty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "device_qty must be positive")
	}
	if len(input.Lines) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "at least one BOM line is required")
	}
	for _, line := range input.Lines {
		if !line.ComponentType.IsValid() {
			return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown component type %q", line.ComponentType))
		}
		if line.Description == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "BOM line description is required")
		}
		if line.QtyPerDevice <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "qty_per_device must be positive")
		}
		if line.FetchStock <= 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "fetch_stock must be positive")
		}
	}
	return nil
}

// classifyRun mirrors the legacy stock-status rules: a run that cannot
// build a single device is out_of_stock, a run where any shelf holds less
// than twice the per-device need is low, anything else is sufficient.
func classifyRun(lines []LineAvailability) (enums.StockStatus, int) {
	if len(lines) == 0 {
		return enums.StockStatusSufficient, 0
	}
	maxAssemblies := -1
	low := false
	for _, line := range lines {
		possible := line.Available / line.QtyPerDevice
		if maxAssemblies < 0 || possible < maxAssemblies {
			maxAssemblies = possible
		}
		if line.Available < 2*line.QtyPerDevice {
			low = true
		}
	}
	switch {
	case maxAssemblies == 0:
		return enums.StockStatusOutOfStock, maxAssemblies
	case low:
		return enums.StockStatusLow, maxAssemblies
	default:
		return enums.StockStatusSufficient, maxAssemblies
	}
}

func toAssemblyDTO(assembly models.Assembly, withLines bool) AssemblyDTO {
	dto := AssemblyDTO{
		ID:             assembly.ID,
		Name:           assembly.Name,
		DeviceQty:      assembly.DeviceQty,
		ComponentCount: assembly.ComponentCount,
		StockStatus:    assembly.StockStatus,
		BuildStatus:    assembly.BuildStatus,
		Timestamps:     assembly.StatusTimestamps(),
		CreatedAt:      assembly.CreatedAt,
	}
	if withLines {
		dto.LineItems = make([]LineItemDTO, 0, len(assembly.LineItems))
		for _, item := range assembly.LineItems {
			dto.LineItems = append(dto.LineItems, LineItemDTO{
				ComponentType: item.ComponentType,
				ComponentID:   item.ComponentID,
				Description:   item.Description,
				QtyPerDevice:  item.QtyPerDevice,
				TotalRequired: item.TotalRequired,
				FetchStock:    item.FetchStock,
				LeftoverStock: item.LeftoverStock,
			})
		}
	}
	return dto
}

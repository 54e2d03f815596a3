package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/pkg/config"
	"github.com/elektrolab/stockroom-backend/pkg/db"
	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/pagination"
)

// Service exposes component inventory read paths and part creation.
type Service interface {
	GetComponent(ctx context.Context, componentType enums.ComponentType, id string) (*ComponentDTO, error)
	ListComponents(ctx context.Context, input ListComponentsInput) (*ComponentListResult, error)
	CriticalComponents(ctx context.Context) ([]CriticalComponent, error)
	AddComponent(ctx context.Context, input AddComponentInput) (*ComponentDTO, error)
}

// ListComponentsInput narrows and pages a component listing.
type ListComponentsInput struct {
	ComponentType enums.ComponentType
	VendorCode    string
	Status        enums.ComponentStatus
	Search        string
	Limit         int
	Cursor        string
}

// AddComponentInput is the validated payload for a new part row.
type AddComponentInput struct {
	ComponentType enums.ComponentType
	ID            string
	IPN           string
	Description   string
	Mfg           string
	MfgPartNo     string
	Package       string
	VendorID      int
	Quantity      int
	AvgPrice      string
	Location      string
}

// ComponentDTO is the read shape returned to controllers.
type ComponentDTO struct {
	ComponentType enums.ComponentType   `json:"component_type"`
	ID            string                `json:"id"`
	IPN           string                `json:"ipn"`
	Description   string                `json:"description"`
	Mfg           string                `json:"mfg"`
	MfgPartNo     string                `json:"mfg_part_no"`
	Package       string                `json:"package"`
	VendorID      int                   `json:"vendor_id"`
	VendorCode    string                `json:"vendor_code,omitempty"`
	Quantity      int                   `json:"quantity"`
	AvgPrice      string                `json:"avg_price"`
	Location      string                `json:"location"`
	Status        enums.ComponentStatus `json:"status"`
}

// ComponentListResult carries one page plus the follow-up cursor.
type ComponentListResult struct {
	Components []ComponentDTO `json:"components"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

type vendorLoader interface {
	FindByID(ctx context.Context, id int) (*models.Vendor, error)
}

type service struct {
	repo       *Repository
	dbClient   *db.Client
	vendorRepo vendorLoader
	cfg        config.InventoryConfig
}

// NewService constructs an inventory service instance.
func NewService(repo *Repository, dbClient *db.Client, vendorRepo vendorLoader, cfg config.InventoryConfig) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	if dbClient == nil {
		return nil, fmt.Errorf("db client required")
	}
	if vendorRepo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo, dbClient: dbClient, vendorRepo: vendorRepo, cfg: cfg}, nil
}

func (s *service) GetComponent(ctx context.Context, componentType enums.ComponentType, id string) (*ComponentDTO, error) {
	component, err := s.repo.FindByID(ctx, componentType, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "component not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load component")
	}
	dto := toComponentDTO(componentType, *component, "")
	return &dto, nil
}

func (s *service) ListComponents(ctx context.Context, input ListComponentsInput) (*ComponentListResult, error) {
	rows, next, err := s.repo.List(ctx, input.ComponentType, ListFilter{
		VendorCode: input.VendorCode,
		Status:     input.Status,
		Search:     input.Search,
	}, pagination.Params{Limit: input.Limit, Cursor: input.Cursor})
	if err != nil {
		return nil, err
	}

	result := &ComponentListResult{Components: make([]ComponentDTO, 0, len(rows))}
	for _, row := range rows {
		result.Components = append(result.Components, toComponentDTO(input.ComponentType, row.Component, row.VendorCode))
	}
	if next != nil {
		result.NextCursor = pagination.EncodeCursor(*next)
	}
	return result, nil
}

func (s *service) CriticalComponents(ctx context.Context) ([]CriticalComponent, error) {
	return s.repo.ScanCritical(ctx, s.cfg.CriticalThreshold)
}

func (s *service) AddComponent(ctx context.Context, input AddComponentInput) (*ComponentDTO, error) {
	if _, err := s.vendorRepo.FindByID(ctx, input.VendorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown vendor").WithDetails(map[string]any{
				"vendor_id": input.VendorID,
			})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vendor")
	}

	component := &models.Component{
		ID:          input.ID,
		IPN:         input.IPN,
		Description: input.Description,
		Mfg:         input.Mfg,
		MfgPartNo:   input.MfgPartNo,
		Package:     input.Package,
		VendorID:    input.VendorID,
		Quantity:    input.Quantity,
		Location:    input.Location,
		Status:      enums.ComponentStatusForQuantity(input.Quantity, s.cfg.CriticalThreshold),
	}
	if input.AvgPrice != "" {
		price, err := parsePrice(input.AvgPrice)
		if err != nil {
			return nil, err
		}
		component.AvgPrice = price
	}

	if err := s.repo.Insert(ctx, input.ComponentType, component); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "component id or ipn already exists").WithDetails(map[string]any{
				"id":  input.ID,
				"ipn": input.IPN,
			})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert component")
	}

	dto := toComponentDTO(input.ComponentType, *component, "")
	return &dto, nil
}

func toComponentDTO(componentType enums.ComponentType, component models.Component, vendorCode string) ComponentDTO {
	return ComponentDTO{
		ComponentType: componentType,
		ID:            component.ID,
		IPN:           component.IPN,
		Description:   component.Description,
		Mfg:           component.Mfg,
		MfgPartNo:     component.MfgPartNo,
		Package:       component.Package,
		VendorID:      component.VendorID,
		VendorCode:    vendorCode,
		Quantity:      component.Quantity,
		AvgPrice:      component.AvgPrice.String(),
		Location:      component.Location,
		Status:        component.Status,
	}
}

package vendors

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/pkg/db"
	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
)

// Service exposes vendor record management.
type Service interface {
	ListVendors(ctx context.Context) ([]VendorDTO, error)
	CreateVendor(ctx context.Context, input VendorInput) (*VendorDTO, error)
	UpdateVendor(ctx context.Context, id int, input VendorInput) (*VendorDTO, error)
	DeleteVendor(ctx context.Context, id int) error
}

// VendorInput holds the validated vendor payload.
type VendorInput struct {
	Code string
	Name string
}

// VendorDTO is the vendor read shape.
type VendorDTO struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Name string `json:"name"`
}

type service struct {
	repo *Repository
}

// NewService constructs a vendor service instance.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("vendor repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListVendors(ctx context.Context) ([]VendorDTO, error) {
	vendors, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: list vendors")
	}
	out := make([]VendorDTO, 0, len(vendors))
	for _, vendor := range vendors {
		out = append(out, toDTO(vendor))
	}
	return out, nil
}

func (s *service) CreateVendor(ctx context.Context, input VendorInput) (*VendorDTO, error) {
	code, err := normalizeCode(input.Code)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	vendor := &models.Vendor{Code: code, Name: strings.TrimSpace(input.Name)}
	if err := s.repo.Create(ctx, vendor); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor code already exists").WithDetails(map[string]any{
				"code": code,
			})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: insert vendor")
	}
	dto := toDTO(*vendor)
	return &dto, nil
}

func (s *service) UpdateVendor(ctx context.Context, id int, input VendorInput) (*VendorDTO, error) {
	code, err := normalizeCode(input.Code)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name is required")
	}

	vendor, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: load vendor")
	}

	vendor.Code = code
	vendor.Name = strings.TrimSpace(input.Name)
	if err := s.repo.Update(ctx, vendor); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "vendor code already exists").WithDetails(map[string]any{
				"code": code,
			})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: update vendor")
	}
	dto := toDTO(*vendor)
	return &dto, nil
}

func (s *service) DeleteVendor(ctx context.Context, id int) error {
	for _, componentType := range enums.ComponentTypes() {
		count, err := s.repo.ComponentReferences(ctx, componentType.Table(), id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: count vendor references")
		}
		if count > 0 {
			return pkgerrors.New(pkgerrors.CodeConflict, "vendor is referenced by component rows").WithDetails(map[string]any{
				"component_type": componentType.String(),
				"references":     count,
			})
		}
	}

	rows, err := s.repo.Delete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "db: delete vendor")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "vendor not found")
	}
	return nil
}

func normalizeCode(code string) (string, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	if len(normalized) != 3 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "vendor code must be exactly 3 characters")
	}
	for _, r := range normalized {
		if r < 'A' || r > 'Z' {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "vendor code must be alphabetic")
		}
	}
	return normalized, nil
}

func toDTO(vendor models.Vendor) VendorDTO {
	return VendorDTO{ID: vendor.ID, Code: strings.TrimSpace(vendor.Code), Name: vendor.Name}
}

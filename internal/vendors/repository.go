package vendors

import (
	"context"

	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/pkg/db/models"
)

// Repository persists vendor records.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// FindByID loads a vendor by primary key.
func (r *Repository) FindByID(ctx context.Context, id int) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// FindByCode loads a vendor by its 3-letter code.
func (r *Repository) FindByCode(ctx context.Context, code string) (*models.Vendor, error) {
	var vendor models.Vendor
	if err := r.db.WithContext(ctx).First(&vendor, "code = ?", code).Error; err != nil {
		return nil, err
	}
	return &vendor, nil
}

// List returns all vendors ordered by code.
func (r *Repository) List(ctx context.Context) ([]models.Vendor, error) {
	var out []models.Vendor
	if err := r.db.WithContext(ctx).Order("code ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Create inserts a vendor.
func (r *Repository) Create(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).Create(vendor).Error
}

// Update persists name/code changes.
func (r *Repository) Update(ctx context.Context, vendor *models.Vendor) error {
	return r.db.WithContext(ctx).
		Model(&models.Vendor{}).
		Where("id = ?", vendor.ID).
		Updates(map[string]any{
			"code": vendor.Code,
			"name": vendor.Name,
		}).Error
}

// Delete removes a vendor row.
func (r *Repository) Delete(ctx context.Context, id int) (int64, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Vendor{})
	return res.RowsAffected, res.Error
}

// ComponentReferences counts component rows pointing at the vendor in the
// given table.
func (r *Repository) ComponentReferences(ctx context.Context, table string, vendorID int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Table(table).Where("vendor_id = ?", vendorID).Count(&count).Error
	return count, err
}

package assembly

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
)

// Repository persists assembly registry rows and their line items.
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

// Create inserts the master registry row.
func (r *Repository) Create(ctx context.Context, assembly *models.Assembly) error {
	return r.db.WithContext(ctx).Create(assembly).Error
}

// CreateLineItems inserts the committed BOM lines.
func (r *Repository) CreateLineItems(ctx context.Context, items []models.AssemblyLineItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

// FindByName loads the master row by its unique name.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Assembly, error) {
	var assembly models.Assembly
	if err := r.db.WithContext(ctx).First(&assembly, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &assembly, nil
}

// FindByNameWithLines loads the master row plus its line items.
func (r *Repository) FindByNameWithLines(ctx context.Context, name string) (*models.Assembly, error) {
	var assembly models.Assembly
	err := r.db.WithContext(ctx).
		Preload("LineItems").
		First(&assembly, "name = ?", name).Error
	if err != nil {
		return nil, err
	}
	return &assembly, nil
}

// List returns registry rows, newest first.
func (r *Repository) List(ctx context.Context) ([]models.Assembly, error) {
	var assemblies []models.Assembly
	err := r.db.WithContext(ctx).
		Order("created_at DESC, name DESC").
		Find(&assemblies).Error
	if err != nil {
		return nil, err
	}
	return assemblies, nil
}

// TransitionStatus advances build_status with a compare-and-swap on the
// previous value, stamping the entered milestone column. Zero rows affected
// means another writer moved the assembly first.
func (r *Repository) TransitionStatus(ctx context.Context, id uuid.UUID, from, to enums.BuildStatus, at time.Time) (bool, error) {
	column := to.TimestampColumn()
	res := r.db.WithContext(ctx).
		Model(&models.Assembly{}).
		Where("id = ? AND build_status = ?", id, from).
		Updates(map[string]any{
			"build_status": to,
			column:         at,
			"updated_at":   at,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// UpdateStockStatus persists a recomputed sufficiency flag.
func (r *Repository) UpdateStockStatus(ctx context.Context, id uuid.UUID, status enums.StockStatus) error {
	return r.db.WithContext(ctx).
		Model(&models.Assembly{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock_status": status,
			"updated_at":   time.Now().UTC(),
		}).Error
}

// Delete removes the master row and its line items. The FK cascades in
// Postgres; the explicit line-item delete keeps SQLite test databases
// honest too.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx)
	if err := tx.Where("assembly_id = ?", id).Delete(&models.AssemblyLineItem{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&models.Assembly{}).Error
}

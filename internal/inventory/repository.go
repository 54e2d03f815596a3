package inventory

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/elektrolab/stockroom-backend/pkg/db/models"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/pagination"
)

// Repository provides persistence over the per-type component tables.
// Table names are only ever sourced from enums.ComponentType.Table, so raw
// request input can never reach the SQL layer as an identifier.
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

func (r *Repository) table(componentType enums.ComponentType) (string, error) {
	if !componentType.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("unknown component type %q", componentType))
	}
	return componentType.Table(), nil
}

// FindByID loads a component row by its caller-assigned id.
func (r *Repository) FindByID(ctx context.Context, componentType enums.ComponentType, id string) (*models.Component, error) {
	table, err := r.table(componentType)
	if err != nil {
		return nil, err
	}
	var component models.Component
	if err := r.db.WithContext(ctx).Table(table).First(&component, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &component, nil
}

// FindByDescription resolves a BOM description to a concrete component row.
// Matching is case- and whitespace-insensitive; the oldest row wins when a
// description is ambiguous.
func (r *Repository) FindByDescription(ctx context.Context, componentType enums.ComponentType, description string) (*models.Component, error) {
	table, err := r.table(componentType)
	if err != nil {
		return nil, err
	}
	var component models.Component
	err = r.db.WithContext(ctx).
		Table(table).
		Where("LOWER(TRIM(description)) = LOWER(TRIM(?))", description).
		Order("created_at ASC").
		First(&component).Error
	if err != nil {
		return nil, err
	}
	return &component, nil
}

// Insert creates a component row.
func (r *Repository) Insert(ctx context.Context, componentType enums.ComponentType, component *models.Component) error {
	table, err := r.table(componentType)
	if err != nil {
		return err
	}
	return r.db.WithContext(ctx).Table(table).Create(component).Error
}

// GuardedDecrement withdraws qty units if and only if enough stock remains.
// The WHERE guard doubles as the concurrency control: two overlapping
// reservations cannot both drain the same units, the loser sees zero rows
// affected and must abort.
func (r *Repository) GuardedDecrement(ctx context.Context, componentType enums.ComponentType, componentID string, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "withdrawal quantity must be positive")
	}
	table, err := r.table(componentType)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(fmt.Sprintf(`
		UPDATE %s
		SET quantity = quantity - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND quantity >= ?
	`, table), qty, componentID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "decrement component stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeConflict, "insufficient stock").WithDetails(map[string]any{
			"component_type": componentType.String(),
			"component_id":   componentID,
			"requested":      qty,
		})
	}
	return nil
}

// Increment returns qty units to the shelf.
func (r *Repository) Increment(ctx context.Context, componentType enums.ComponentType, componentID string, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "restock quantity must be positive")
	}
	table, err := r.table(componentType)
	if err != nil {
		return err
	}
	res := r.db.WithContext(ctx).Exec(fmt.Sprintf(`
		UPDATE %s
		SET quantity = quantity + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, table), qty, componentID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "restock component")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "component no longer exists").WithDetails(map[string]any{
			"component_type": componentType.String(),
			"component_id":   componentID,
		})
	}
	return nil
}

// RefreshStatus recomputes the stocking flag of a single row from its
// current quantity.
func (r *Repository) RefreshStatus(ctx context.Context, componentType enums.ComponentType, componentID string, criticalThreshold int) (enums.ComponentStatus, error) {
	component, err := r.FindByID(ctx, componentType, componentID)
	if err != nil {
		return "", err
	}
	status := enums.ComponentStatusForQuantity(component.Quantity, criticalThreshold)
	if status == component.Status {
		return status, nil
	}
	table, _ := r.table(componentType)
	err = r.db.WithContext(ctx).Exec(fmt.Sprintf(`
		UPDATE %s SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?
	`, table), status, componentID).Error
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh component status")
	}
	return status, nil
}

// ListFilter narrows component listings.
type ListFilter struct {
	VendorCode string
	Status     enums.ComponentStatus
	Search     string
}

// ComponentRow is a component joined with its vendor code for read paths.
type ComponentRow struct {
	models.Component
	VendorCode string `gorm:"column:vendor_code"`
}

// List returns a page of component rows for one type, newest first, using
// (created_at, id) cursor pagination.
func (r *Repository) List(ctx context.Context, componentType enums.ComponentType, filter ListFilter, params pagination.Params) ([]ComponentRow, *pagination.Cursor, error) {
	table, err := r.table(componentType)
	if err != nil {
		return nil, nil, err
	}

	limit := pagination.LimitWithBuffer(params.Limit)
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}

	query := r.db.WithContext(ctx).
		Table(table + " AS c").
		Select("c.*, v.code AS vendor_code").
		Joins("JOIN vendors v ON v.id = c.vendor_id").
		Order("c.created_at DESC, c.id DESC").
		Limit(limit)

	if filter.VendorCode != "" {
		query = query.Where("v.code = ?", filter.VendorCode)
	}
	if filter.Status != "" {
		query = query.Where("c.status = ?", filter.Status)
	}
	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		query = query.Where("c.description LIKE ? OR c.mfg_part_no LIKE ? OR c.ipn LIKE ?", like, like, like)
	}
	if cursor != nil {
		query = query.Where("(c.created_at < ?) OR (c.created_at = ? AND c.id < ?)", cursor.CreatedAt, cursor.CreatedAt, cursor.ID)
	}

	var rows []ComponentRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list components")
	}

	pageSize := pagination.NormalizeLimit(params.Limit)
	var next *pagination.Cursor
	if len(rows) > pageSize {
		rows = rows[:pageSize]
		last := rows[len(rows)-1]
		next = &pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID}
	}
	return rows, next, nil
}

// CriticalComponent flags a row sitting below the reorder threshold.
type CriticalComponent struct {
	ComponentType enums.ComponentType `json:"component_type"`
	ComponentID   string              `json:"component_id"`
	Description   string              `json:"description"`
	Quantity      int                 `json:"quantity"`
	Location      string              `json:"location"`
}

// ScanCritical sweeps every component table for rows below the threshold.
func (r *Repository) ScanCritical(ctx context.Context, criticalThreshold int) ([]CriticalComponent, error) {
	out := []CriticalComponent{}
	for _, componentType := range enums.ComponentTypes() {
		table := componentType.Table()
		var rows []models.Component
		err := r.db.WithContext(ctx).
			Table(table).
			Where("quantity < ?", criticalThreshold).
			Order("quantity ASC").
			Find(&rows).Error
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "scan "+table)
		}
		for _, row := range rows {
			out = append(out, CriticalComponent{
				ComponentType: componentType,
				ComponentID:   row.ID,
				Description:   row.Description,
				Quantity:      row.Quantity,
				Location:      row.Location,
			})
		}
	}
	return out, nil
}

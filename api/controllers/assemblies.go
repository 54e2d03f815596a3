package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/elektrolab/stockroom-backend/api/responses"
	"github.com/elektrolab/stockroom-backend/api/validators"
	"github.com/elektrolab/stockroom-backend/internal/assembly"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
)

type bomLineRequest struct {
	ComponentType string `json:"component_type" validate:"required"`
	Description   string `json:"description" validate:"required"`
	QtyPerDevice  int    `json:"qty_per_device" validate:"required,min=1"`
	FetchStock    int    `json:"fetch_stock" validate:"omitempty,min=0"`
}

type createAssemblyRequest struct {
	Name       string           `json:"name" validate:"required,max=64"`
	DeviceQty  int              `json:"device_qty" validate:"required,min=1"`
	Components []bomLineRequest `json:"components" validate:"required,min=1,dive"`
}

func (r createAssemblyRequest) toInput() (assembly.CreateAssemblyInput, error) {
	lines := make([]assembly.BOMLineInput, 0, len(r.Components))
	for _, line := range r.Components {
		componentType, err := enums.ParseComponentType(strings.TrimSpace(line.ComponentType))
		if err != nil {
			return assembly.CreateAssemblyInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component type")
		}
		lines = append(lines, assembly.BOMLineInput{
			ComponentType: componentType,
			Description:   line.Description,
			QtyPerDevice:  line.QtyPerDevice,
			FetchStock:    line.FetchStock,
		})
	}
	return assembly.CreateAssemblyInput{
		Name:      strings.TrimSpace(r.Name),
		DeviceQty: r.DeviceQty,
		Lines:     lines,
	}, nil
}

type checkLineRequest struct {
	ComponentType string `json:"component_type" validate:"required"`
	Description   string `json:"description" validate:"required"`
	QtyPerDevice  int    `json:"qty_per_device" validate:"required,min=1"`
}

type checkInventoryRequest struct {
	DeviceQty  int                `json:"device_qty" validate:"required,min=1"`
	Components []checkLineRequest `json:"components" validate:"required,min=1,dive"`
}

func (r checkInventoryRequest) toInput() (assembly.CheckInventoryInput, error) {
	lines := make([]assembly.CheckLineInput, 0, len(r.Components))
	for _, line := range r.Components {
		componentType, err := enums.ParseComponentType(strings.TrimSpace(line.ComponentType))
		if err != nil {
			return assembly.CheckInventoryInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component type")
		}
		lines = append(lines, assembly.CheckLineInput{
			ComponentType: componentType,
			Description:   line.Description,
			QtyPerDevice:  line.QtyPerDevice,
		})
	}
	return assembly.CheckInventoryInput{DeviceQty: r.DeviceQty, Lines: lines}, nil
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CreateAssembly reserves stock for a new assembly run.
func CreateAssembly(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		var payload createAssemblyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateAssembly(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// ListAssemblies serves the registry, newest first.
func ListAssemblies(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		list, err := svc.ListAssemblies(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// GetAssembly serves one registry row with its line items.
func GetAssembly(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		name, err := assemblyName(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetAssembly(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, record)
	}
}

// UpdateAssemblyStatus advances the build state machine.
func UpdateAssemblyStatus(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		name, err := assemblyName(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseBuildStatus(strings.TrimSpace(payload.Status))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid build status"))
			return
		}

		result, err := svc.UpdateStatus(r.Context(), assembly.UpdateStatusInput{Name: name, Status: status})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// DeleteAssembly tears down a run and restocks its pulled components.
func DeleteAssembly(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		name, err := assemblyName(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.DeleteAssembly(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// CheckInventory runs the read-only shortage evaluation for a prospective run.
func CheckInventory(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		var payload checkInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CheckInventoryLevels(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// RefreshStockStatus recomputes an assembly's buildable count from live stock.
func RefreshStockStatus(svc assembly.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "assembly service unavailable"))
			return
		}

		name, err := assemblyName(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RefreshStockStatus(r.Context(), name)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func assemblyName(r *http.Request) (string, error) {
	name := strings.TrimSpace(chi.URLParam(r, "name"))
	if name == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "assembly name required")
	}
	return name, nil
}

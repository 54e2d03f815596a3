package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/elektrolab/stockroom-backend/api/responses"
	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
)

// ListComponents serves the filtered inventory query for one component type.
func ListComponents(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		q := r.URL.Query()

		componentType, err := enums.ParseComponentType(strings.TrimSpace(q.Get("type")))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component type"))
			return
		}

		input := inventory.ListComponentsInput{
			ComponentType: componentType,
			VendorCode:    strings.TrimSpace(q.Get("vendor")),
			Search:        strings.TrimSpace(q.Get("search")),
			Cursor:        strings.TrimSpace(q.Get("cursor")),
		}

		if raw := strings.TrimSpace(q.Get("status")); raw != "" {
			status, parseErr := enums.ParseComponentStatus(raw)
			if parseErr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, parseErr, "invalid status filter"))
				return
			}
			input.Status = status
		}

		if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
			limit, parseErr := strconv.Atoi(raw)
			if parseErr != nil || limit < 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "limit must be a positive integer"))
				return
			}
			input.Limit = limit
		}

		result, err := svc.ListComponents(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetComponent serves one inventory row by type and part id.
func GetComponent(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		componentType, err := enums.ParseComponentType(chi.URLParam(r, "type"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid component type"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "id"))
		if id == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "component id required"))
			return
		}

		component, err := svc.GetComponent(r.Context(), componentType, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, component)
	}
}

// CriticalComponents serves every row below the critical threshold across
// all component tables.
func CriticalComponents(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		critical, err := svc.CriticalComponents(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, critical)
	}
}

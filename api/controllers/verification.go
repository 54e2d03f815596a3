package controllers

import (
	"net/http"

	"github.com/elektrolab/stockroom-backend/api/responses"
	"github.com/elektrolab/stockroom-backend/api/validators"
	"github.com/elektrolab/stockroom-backend/internal/verification"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
)

type verifyRequestBody struct {
	ComponentType    string `json:"component_type" validate:"required"`
	ID               string `json:"id" validate:"required"`
	IPN              string `json:"ipn" validate:"required"`
	Description      string `json:"description" validate:"required"`
	Mfg              string `json:"mfg" validate:"omitempty,max=128"`
	MfgPartNo        string `json:"mfg_part_no" validate:"omitempty,max=128"`
	Package          string `json:"package" validate:"omitempty,max=64"`
	VendorID         int    `json:"vendor_id" validate:"required,min=1"`
	Quantity         int    `json:"quantity" validate:"omitempty,min=0"`
	AvgPrice         string `json:"avg_price" validate:"omitempty"`
	Location         string `json:"location" validate:"omitempty,max=64"`
	RequestedByEmail string `json:"requested_by_email" validate:"required,email"`
}

func (r verifyRequestBody) toPending() verification.PendingComponent {
	return verification.PendingComponent{
		ComponentType:    r.ComponentType,
		ID:               r.ID,
		IPN:              r.IPN,
		Description:      r.Description,
		Mfg:              r.Mfg,
		MfgPartNo:        r.MfgPartNo,
		Package:          r.Package,
		VendorID:         r.VendorID,
		Quantity:         r.Quantity,
		AvgPrice:         r.AvgPrice,
		Location:         r.Location,
		RequestedByEmail: r.RequestedByEmail,
	}
}

type verifyConfirmBody struct {
	Token string `json:"token" validate:"required,min=16"`
}

// RequestComponentVerification parks a part-add form and issues a token.
func RequestComponentVerification(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "verification service unavailable"))
			return
		}

		var payload verifyRequestBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RequestAddComponent(r.Context(), payload.toPending())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusAccepted, result)
	}
}

// ConfirmComponentVerification consumes a token and inserts the part row.
func ConfirmComponentVerification(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "verification service unavailable"))
			return
		}

		var payload verifyConfirmBody
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		component, err := svc.ConfirmAddComponent(r.Context(), payload.Token)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, component)
	}
}

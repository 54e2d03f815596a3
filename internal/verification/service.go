package verification

import (
	"context"
	"fmt"

	"github.com/elektrolab/stockroom-backend/internal/inventory"
	"github.com/elektrolab/stockroom-backend/pkg/enums"
	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
	"github.com/elektrolab/stockroom-backend/pkg/logger"
)

// Service runs the two-step part-add flow: a request parks the form behind
// an expiring token, a confirm consumes the token and inserts the row.
type Service interface {
	RequestAddComponent(ctx context.Context, input PendingComponent) (*RequestResult, error)
	ConfirmAddComponent(ctx context.Context, token string) (*inventory.ComponentDTO, error)
}

// PendingComponent is the parked part-add form.
type PendingComponent struct {
	ComponentType    string `json:"component_type"`
	ID               string `json:"id"`
	IPN              string `json:"ipn"`
	Description      string `json:"description"`
	Mfg              string `json:"mfg"`
	MfgPartNo        string `json:"mfg_part_no"`
	Package          string `json:"package"`
	VendorID         int    `json:"vendor_id"`
	Quantity         int    `json:"quantity"`
	AvgPrice         string `json:"avg_price"`
	Location         string `json:"location"`
	RequestedByEmail string `json:"requested_by_email"`
}

// RequestResult carries the issued token back to the caller.
type RequestResult struct {
	Token string `json:"token"`
}

// Notifier delivers the confirmation token to the requester. Mail delivery
// lives outside this service; the default implementation just logs.
type Notifier interface {
	NotifyPendingComponent(ctx context.Context, email, token string) error
}

type logNotifier struct {
	logg *logger.Logger
}

// NewLogNotifier returns a Notifier that records the token in the log.
func NewLogNotifier(logg *logger.Logger) Notifier {
	return &logNotifier{logg: logg}
}

func (n *logNotifier) NotifyPendingComponent(ctx context.Context, email, token string) error {
	if n.logg == nil {
		return nil
	}
	ctx = n.logg.WithFields(ctx, map[string]any{"email": email, "token": token})
	n.logg.Info(ctx, "pending component verification token issued")
	return nil
}

type service struct {
	store     *TokenStore
	inventory inventory.Service
	notifier  Notifier
}

// NewService constructs a verification service instance.
func NewService(store *TokenStore, inventorySvc inventory.Service, notifier Notifier) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("token store required")
	}
	if inventorySvc == nil {
		return nil, fmt.Errorf("inventory service required")
	}
	if notifier == nil {
		return nil, fmt.Errorf("notifier required")
	}
	return &service{store: store, inventory: inventorySvc, notifier: notifier}, nil
}

func (s *service) RequestAddComponent(ctx context.Context, input PendingComponent) (*RequestResult, error) {
	componentType, err := enums.ParseComponentType(input.ComponentType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}
	if input.ID == "" || input.IPN == "" || input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id, ipn and description are required")
	}
	if input.Quantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity cannot be negative")
	}
	input.ComponentType = componentType.String()

	token, err := s.store.Put(ctx, input)
	if err != nil {
		return nil, err
	}
	if err := s.notifier.NotifyPendingComponent(ctx, input.RequestedByEmail, token); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "notify requester")
	}
	return &RequestResult{Token: token}, nil
}

func (s *service) ConfirmAddComponent(ctx context.Context, token string) (*inventory.ComponentDTO, error) {
	if token == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "token is required")
	}

	var pending PendingComponent
	if err := s.store.Take(ctx, token, &pending); err != nil {
		return nil, err
	}

	componentType, err := enums.ParseComponentType(pending.ComponentType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "parked request holds an unknown component type")
	}

	return s.inventory.AddComponent(ctx, inventory.AddComponentInput{
		ComponentType: componentType,
		ID:            pending.ID,
		IPN:           pending.IPN,
		Description:   pending.Description,
		Mfg:           pending.Mfg,
		MfgPartNo:     pending.MfgPartNo,
		Package:       pending.Package,
		VendorID:      pending.VendorID,
		Quantity:      pending.Quantity,
		AvgPrice:      pending.AvgPrice,
		Location:      pending.Location,
	})
}

package checkout

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/tiendaqr/backend/internal/cart"
	"github.com/tiendaqr/backend/pkg/config"
	"github.com/tiendaqr/backend/pkg/db/models"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type cartContainer interface {
	Get(ctx context.Context, deviceID string) (*cart.Cart, error)
	ClearCart(ctx context.Context, deviceID string) error
}

type orderCreator interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
}

// Service turns a device cart into a payment prompt and then an order.
type Service interface {
	Quote(ctx context.Context, deviceID string) (*Quote, error)
	Submit(ctx context.Context, deviceID string, form ContactForm) (*Receipt, error)
}

type service struct {
	carts   cartContainer
	orders  orderCreator
	payment config.PaymentConfig
	logg    *logger.Logger
}

// ServiceParams wires the checkout service dependencies.
type ServiceParams struct {
	Carts   cartContainer
	Orders  orderCreator
	Payment config.PaymentConfig
	Logger  *logger.Logger
}

// NewService builds the checkout service.
func NewService(params ServiceParams) (Service, error) {
	if params.Carts == nil {
		return nil, fmt.Errorf("cart container required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("order creator required")
	}
	if strings.TrimSpace(params.Payment.YappyRecipient) == "" {
		return nil, fmt.Errorf("yappy recipient required")
	}
	return &service{
		carts:   params.Carts,
		orders:  params.Orders,
		payment: params.Payment,
		logg:    params.Logger,
	}, nil
}

// Quote returns the current cart plus the Yappy payment QR for its total.
func (s *service) Quote(ctx context.Context, deviceID string) (*Quote, error) {
	current, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	payload := yappyPayload(s.payment.YappyRecipient, current.Total)
	image, err := yappyQRImage(payload, s.payment.QRSize)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build payment qr")
	}

	return &Quote{
		Items:     current.Items,
		Total:     current.Total,
		QRPayload: payload,
		QRImage:   image,
	}, nil
}

// Submit validates the contact form, persists the order, and clears the cart.
// The two steps are sequenced, not atomic: a failed submit leaves the cart
// untouched, and a failed clear after a persisted order is only logged.
func (s *service) Submit(ctx context.Context, deviceID string, form ContactForm) (*Receipt, error) {
	if err := validateForm(form); err != nil {
		return nil, err
	}

	current, err := s.carts.Get(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if len(current.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	order := &models.Order{
		CustomerName: strings.TrimSpace(form.Name),
		Address:      strings.TrimSpace(form.Address),
		Phone:        strings.TrimSpace(form.Phone),
		Email:        strings.TrimSpace(form.Email),
		Total:        current.Total,
		Items:        buildOrderItems(current.Items),
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, err
	}

	if err := s.carts.ClearCart(ctx, deviceID); err != nil && s.logg != nil {
		s.logg.Error(ctx, "cart clear after checkout failed", err)
	}

	return &Receipt{Order: created}, nil
}

func validateForm(form ContactForm) error {
	trimmed := ContactForm{
		Name:    strings.TrimSpace(form.Name),
		Address: strings.TrimSpace(form.Address),
		Phone:   strings.TrimSpace(form.Phone),
		Email:   strings.TrimSpace(form.Email),
	}
	if err := validate.Struct(trimmed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid contact form")
	}
	return nil
}

func buildOrderItems(items cart.Items) []models.OrderItem {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		out = append(out, models.OrderItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
		})
	}
	return out
}

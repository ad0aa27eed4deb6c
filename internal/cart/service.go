package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendaqr/backend/pkg/db/models"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/logger"
)

type productLoader interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// Cart is the materialized view returned to callers.
type Cart struct {
	Items Items           `json:"items"`
	Total decimal.Decimal `json:"total"`
	Count int             `json:"count"`
}

// Service composes the pure item transitions with snapshot persistence.
type Service interface {
	Get(ctx context.Context, deviceID string) (*Cart, error)
	AddToCart(ctx context.Context, deviceID string, productID uuid.UUID) (*Cart, error)
	RemoveFromCart(ctx context.Context, deviceID string, productID uuid.UUID) (*Cart, error)
	ClearCart(ctx context.Context, deviceID string) error
}

type service struct {
	store    SnapshotStore
	products productLoader
	logg     *logger.Logger
}

// ServiceParams wires the cart service dependencies.
type ServiceParams struct {
	Store    SnapshotStore
	Products productLoader
	Logger   *logger.Logger
}

// NewService builds a cart service backed by the provided stack.
func NewService(params ServiceParams) (Service, error) {
	if params.Store == nil {
		return nil, fmt.Errorf("snapshot store required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{
		store:    params.Store,
		products: params.Products,
		logg:     params.Logger,
	}, nil
}

type snapshot struct {
	Items Items `json:"items"`
}

// Get loads the device's cart. A missing or unreadable snapshot yields an
// empty cart, never an error.
func (s *service) Get(ctx context.Context, deviceID string) (*Cart, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	items := s.loadItems(ctx, deviceID)
	return materialize(items), nil
}

// AddToCart resolves the product, merges it into the snapshot, and writes the
// whole snapshot back.
func (s *service) AddToCart(ctx context.Context, deviceID string, productID uuid.UUID) (*Cart, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	product, err := s.products.Get(ctx, productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		if typed := pkgerrors.As(err); typed != nil {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	items := s.loadItems(ctx, deviceID).Add(LineItem{
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.Price,
	})
	if err := s.saveItems(ctx, deviceID, items); err != nil {
		return nil, err
	}
	return materialize(items), nil
}

// RemoveFromCart drops the product line from the snapshot. Removing an absent
// product is a no-op that still rewrites the snapshot.
func (s *service) RemoveFromCart(ctx context.Context, deviceID string, productID uuid.UUID) (*Cart, error) {
	if strings.TrimSpace(deviceID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}

	items := s.loadItems(ctx, deviceID).Remove(productID)
	if err := s.saveItems(ctx, deviceID, items); err != nil {
		return nil, err
	}
	return materialize(items), nil
}

// ClearCart deletes the stored snapshot.
func (s *service) ClearCart(ctx context.Context, deviceID string) error {
	if strings.TrimSpace(deviceID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "device id is required")
	}
	if err := s.store.Delete(ctx, deviceID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
	}
	return nil
}

func (s *service) loadItems(ctx context.Context, deviceID string) Items {
	raw, err := s.store.Load(ctx, deviceID)
	if err != nil {
		if !errors.Is(err, ErrSnapshotNotFound) && s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("cart snapshot load failed, starting empty: %v", err))
		}
		return Items{}
	}

	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		if s.logg != nil {
			s.logg.Warn(ctx, fmt.Sprintf("cart snapshot malformed, starting empty: %v", err))
		}
		return Items{}
	}
	if snap.Items == nil {
		return Items{}
	}
	return snap.Items
}

func (s *service) saveItems(ctx context.Context, deviceID string, items Items) error {
	payload, err := json.Marshal(snapshot{Items: items})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart snapshot")
	}
	if err := s.store.Save(ctx, deviceID, payload); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist cart snapshot")
	}
	return nil
}

func materialize(items Items) *Cart {
	return &Cart{
		Items: items,
		Total: items.Total(),
		Count: items.Count(),
	}
}

package orders

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
	pkgerrors "github.com/tiendaqr/backend/pkg/errors"
	"github.com/tiendaqr/backend/pkg/pagination"
)

// Service exposes the admin order manager plus the create path used by checkout.
type Service interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*models.Order, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Stats(ctx context.Context) (*Stats, error)
}

type service struct {
	repo Repository
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order is required")
	}
	if len(order.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order must contain at least one item")
	}
	if order.Status == "" {
		order.Status = enums.OrderStatusPending
	}
	created, err := s.repo.Create(ctx, order)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}
	return created, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	sortBy := params.SortBy
	if sortBy == "" {
		sortBy = SortByCreatedAt
	}
	if !sortBy.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unsupported sort field")
	}

	cursor, err := pagination.ParseCursor(params.Pagination.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	if cursor != nil && sortBy != SortByCreatedAt {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cursor pagination requires created_at sort")
	}

	limit := pagination.NormalizeLimit(params.Pagination.Limit)
	records, err := s.repo.List(ctx, ListQuery{
		Limit:      pagination.LimitWithBuffer(params.Pagination.Limit),
		Cursor:     cursor,
		SortBy:     sortBy,
		Descending: params.Descending,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}

	result := &ListResult{Orders: records}
	if len(records) > limit {
		result.Orders = records[:limit]
		if sortBy == SortByCreatedAt {
			last := result.Orders[limit-1]
			result.NextCursor = pagination.EncodeCursor(pagination.Cursor{
				CreatedAt: last.CreatedAt,
				ID:        last.ID,
			})
		}
	}
	return result, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// UpdateStatus parses and applies the new status. Unknown order ids surface
// as not-found, never as a silent no-op.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, rawStatus string) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	status, err := enums.ParseOrderStatus(rawStatus)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status")
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
	}
	return s.Get(ctx, id)
}

func (s *service) Delete(ctx context.Context, id uuid.UUID) error {
	if id == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
	}
	return nil
}

func (s *service) Stats(ctx context.Context) (*Stats, error) {
	counts, err := s.repo.CountByStatus(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count orders")
	}
	revenue, err := s.repo.RevenueSum(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum revenue")
	}

	stats := &Stats{
		Pendiente: counts[enums.OrderStatusPending],
		Pagado:    counts[enums.OrderStatusPaid],
		Entregado: counts[enums.OrderStatusDelivered],
		Revenue:   revenue,
	}
	stats.TotalCount = stats.Pendiente + stats.Pagado + stats.Entregado
	return stats, nil
}

package orders

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/enums"
	"github.com/tiendaqr/backend/pkg/pagination"
)

// Repository defines the order persistence surface.
type Repository interface {
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	List(ctx context.Context, query ListQuery) ([]models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
	CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error)
	RevenueSum(ctx context.Context) (decimal.Decimal, error)
}

// ListQuery carries the resolved list inputs down to SQL.
type ListQuery struct {
	Limit      int
	Cursor     *pagination.Cursor
	SortBy     SortField
	Descending bool
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	for i := range order.Items {
		if order.Items[i].ID == uuid.Nil {
			order.Items[i].ID = uuid.New()
		}
		order.Items[i].OrderID = order.ID
	}
	if err := r.db.WithContext(ctx).Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) List(ctx context.Context, query ListQuery) ([]models.Order, error) {
	tx := r.db.WithContext(ctx).Model(&models.Order{}).Preload("Items")

	direction := "ASC"
	if query.Descending {
		direction = "DESC"
	}
	switch query.SortBy {
	case SortByTotal:
		tx = tx.Order("total " + direction).Order("id " + direction)
	case SortByCustomerName:
		tx = tx.Order("customer_name " + direction).Order("id " + direction)
	default:
		tx = tx.Order("created_at " + direction).Order("id " + direction)
		if query.Cursor != nil {
			if query.Descending {
				tx = tx.Where("(created_at, id) < (?, ?)", query.Cursor.CreatedAt, query.Cursor.ID)
			} else {
				tx = tx.Where("(created_at, id) > (?, ?)", query.Cursor.CreatedAt, query.Cursor.ID)
			}
		}
	}

	if query.Limit > 0 {
		tx = tx.Limit(query.Limit)
	}

	var records []models.Order
	if err := tx.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.Order{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) CountByStatus(ctx context.Context) (map[enums.OrderStatus]int64, error) {
	type row struct {
		Status enums.OrderStatus
		Count  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[enums.OrderStatus]int64, len(rows))
	for _, entry := range rows {
		counts[entry.Status] = entry.Count
	}
	return counts, nil
}

// RevenueSum totals the orders that have been paid or delivered.
func (r *repository) RevenueSum(ctx context.Context) (decimal.Decimal, error) {
	var value decimal.NullDecimal
	err := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(total)").
		Where("status <> ?", enums.OrderStatusPending).
		Scan(&value).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !value.Valid {
		return decimal.Zero, nil
	}
	return value.Decimal, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tiendaqr/backend/pkg/enums"
)

// Order captures a submitted checkout. The contact fields and items are a
// snapshot taken at submission time; only Status may change afterwards.
type Order struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CustomerName string            `gorm:"column:customer_name;not null"`
	Address      string            `gorm:"column:address;not null"`
	Phone        string            `gorm:"column:phone;not null"`
	Email        string            `gorm:"column:email;not null"`
	Total        decimal.Decimal   `gorm:"column:total;type:numeric(12,2);not null"`
	Status       enums.OrderStatus `gorm:"column:status;type:text;not null;default:'pendiente'"`
	Items        []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}

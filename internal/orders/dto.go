package orders

import (
	"github.com/shopspring/decimal"

	"github.com/tiendaqr/backend/pkg/db/models"
	"github.com/tiendaqr/backend/pkg/pagination"
)

// SortField names a supported ordering column for the admin list.
type SortField string

const (
	SortByCreatedAt    SortField = "created_at"
	SortByTotal        SortField = "total"
	SortByCustomerName SortField = "customer_name"
)

// IsValid reports whether the sort field is one of the supported columns.
func (s SortField) IsValid() bool {
	switch s {
	case SortByCreatedAt, SortByTotal, SortByCustomerName:
		return true
	}
	return false
}

// ListParams captures the admin list knobs.
type ListParams struct {
	Pagination pagination.Params
	SortBy     SortField
	Descending bool
}

// ListResult is one page of orders plus the cursor for the next page.
type ListResult struct {
	Orders     []models.Order `json:"orders"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// Stats aggregates the admin dashboard tiles.
type Stats struct {
	Pendiente  int64           `json:"pendiente"`
	Pagado     int64           `json:"pagado"`
	Entregado  int64           `json:"entregado"`
	Revenue    decimal.Decimal `json:"revenue"`
	TotalCount int64           `json:"total_count"`
}

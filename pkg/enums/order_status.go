package enums

import "fmt"

// OrderStatus tracks where an order sits in its lifecycle. The wire values
// are the Spanish labels the storefront has always shown its admins.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pendiente"
	OrderStatusPaid      OrderStatus = "pagado"
	OrderStatusDelivered OrderStatus = "entregado"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusPaid,
	OrderStatusDelivered,
}

// String implements fmt.Stringer.
func (o OrderStatus) String() string {
	return string(o)
}

// IsValid reports whether the value is a known OrderStatus.
func (o OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == o {
			return true
		}
	}
	return false
}

// ParseOrderStatus converts raw input into an OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, error) {
	for _, candidate := range validOrderStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid order status %q", value)
}

package orders

import (
	"strings"

	"github.com/tiendaqr/backend/pkg/db/models"
)

// Search filters the already-fetched set with a case-insensitive substring
// match over the customer contact fields, status, and total.
func Search(records []models.Order, query string) []models.Order {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return records
	}

	matched := make([]models.Order, 0, len(records))
	for _, record := range records {
		if matchesOrder(record, query) {
			matched = append(matched, record)
		}
	}
	return matched
}

func matchesOrder(record models.Order, query string) bool {
	fields := []string{
		record.CustomerName,
		record.Email,
		record.Phone,
		record.Address,
		record.Status.String(),
		record.Total.StringFixed(2),
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

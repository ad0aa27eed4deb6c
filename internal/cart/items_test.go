package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItemsAddMergesByProductID(t *testing.T) {
	t.Parallel()

	productID := uuid.New()
	item := LineItem{ProductID: productID, Name: "Café molido", UnitPrice: decimal.RequireFromString("9.99")}

	items := Items{}.Add(item).Add(item).Add(item)

	require.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Quantity)
	assert.Equal(t, 3, items.Count())
}

func TestItemsAddAppendsNewProducts(t *testing.T) {
	t.Parallel()

	first := LineItem{ProductID: uuid.New(), Name: "Café", UnitPrice: decimal.RequireFromString("9.99")}
	second := LineItem{ProductID: uuid.New(), Name: "Azúcar", UnitPrice: decimal.RequireFromString("2.50")}

	items := Items{}.Add(first).Add(second)

	require.Len(t, items, 2)
	assert.Equal(t, first.ProductID, items[0].ProductID)
	assert.Equal(t, second.ProductID, items[1].ProductID)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1, items[1].Quantity)
}

func TestItemsAddDoesNotMutateReceiver(t *testing.T) {
	t.Parallel()

	item := LineItem{ProductID: uuid.New(), Name: "Café", UnitPrice: decimal.RequireFromString("9.99")}
	original := Items{}.Add(item)

	_ = original.Add(item)

	assert.Equal(t, 1, original[0].Quantity)
}

func TestItemsRemove(t *testing.T) {
	t.Parallel()

	keep := LineItem{ProductID: uuid.New(), Name: "Café", UnitPrice: decimal.RequireFromString("9.99")}
	drop := LineItem{ProductID: uuid.New(), Name: "Azúcar", UnitPrice: decimal.RequireFromString("2.50")}

	items := Items{}.Add(keep).Add(drop).Remove(drop.ProductID)

	require.Len(t, items, 1)
	assert.Equal(t, keep.ProductID, items[0].ProductID)
}

func TestItemsRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	item := LineItem{ProductID: uuid.New(), Name: "Café", UnitPrice: decimal.RequireFromString("9.99")}
	items := Items{}.Add(item)

	next := items.Remove(uuid.New())

	assert.Equal(t, items, next)

	// removing twice is equivalent to removing once
	assert.Equal(t, items.Remove(item.ProductID), items.Remove(item.ProductID).Remove(item.ProductID))
}

func TestItemsClear(t *testing.T) {
	t.Parallel()

	item := LineItem{ProductID: uuid.New(), Name: "Café", UnitPrice: decimal.RequireFromString("9.99")}
	items := Items{}.Add(item).Add(item).Clear()

	assert.Empty(t, items)
	assert.Equal(t, 0, items.Count())
	assert.True(t, items.Total().IsZero())
}

func TestItemsTotal(t *testing.T) {
	t.Parallel()

	items := Items{
		{ProductID: uuid.New(), Name: "Café", UnitPrice: decimal.RequireFromString("9.99"), Quantity: 2},
		{ProductID: uuid.New(), Name: "Azúcar", UnitPrice: decimal.RequireFromString("2.52"), Quantity: 1},
		{ProductID: uuid.New(), Name: "Pan", UnitPrice: decimal.RequireFromString("3.00"), Quantity: 1},
	}

	assert.True(t, items.Total().Equal(decimal.RequireFromString("25.50")), "got %s", items.Total())
}

func TestItemsTotalEmptyIsZero(t *testing.T) {
	t.Parallel()

	assert.True(t, Items{}.Total().IsZero())
}

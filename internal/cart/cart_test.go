package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(id int64, name string, price int64) Snapshot {
	return Snapshot{ProductID: id, Name: name, UnitPrice: price}
}

func TestAddMergesByProductID(t *testing.T) {
	c := New()
	c.Add(snap(7, "Keyboard", 4999))
	c.Add(snap(7, "Keyboard", 4999))

	require.Equal(t, 1, c.Len(), "same product twice must yield one line item")
	assert.Equal(t, 2, c.Items()[0].Quantity)
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	c := New()
	c.Add(snap(3, "Mouse", 1500))
	c.Add(snap(1, "Monitor", 19900))
	c.Add(snap(3, "Mouse", 1500))

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(3), items[0].ProductID)
	assert.Equal(t, int64(1), items[1].ProductID)
}

func TestRemoveMissingIsNoop(t *testing.T) {
	c := New()
	c.Add(snap(1, "Monitor", 19900))
	c.Remove(42)
	assert.Equal(t, 1, c.Len())
}

func TestChangeQuantity(t *testing.T) {
	c := New()
	c.Add(snap(5, "Webcam", 8900))
	c.ChangeQuantity(5, 2)
	assert.Equal(t, 3, c.Items()[0].Quantity)

	c.ChangeQuantity(5, -1)
	assert.Equal(t, 2, c.Items()[0].Quantity)

	// missing item is a no-op
	c.ChangeQuantity(99, 1)
	assert.Equal(t, 1, c.Len())
}

func TestChangeQuantityToZeroRemoves(t *testing.T) {
	c := New()
	c.Add(snap(5, "Webcam", 8900))
	c.Add(snap(5, "Webcam", 8900))
	c.ChangeQuantity(5, -2)
	assert.True(t, c.Empty(), "decrement by full quantity must remove the item")

	c.Add(snap(5, "Webcam", 8900))
	c.ChangeQuantity(5, -10)
	assert.True(t, c.Empty(), "decrement below zero must remove the item")
}

func TestTotalsAndCount(t *testing.T) {
	// [{price:10.00,qty:2},{price:5.50,qty:1}] => total 25.50, count 3
	c := New(
		LineItem{ProductID: 1, Name: "A", UnitPrice: 1000, Quantity: 2},
		LineItem{ProductID: 2, Name: "B", UnitPrice: 550, Quantity: 1},
	)
	assert.Equal(t, int64(2550), c.Total())
	assert.Equal(t, 3, c.ItemCount())
}

func TestClear(t *testing.T) {
	c := New(LineItem{ProductID: 1, Name: "A", UnitPrice: 100, Quantity: 2})
	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, int64(0), c.Total())
	assert.Equal(t, 0, c.ItemCount())
}

func TestProductIDsExpansion(t *testing.T) {
	c := New(
		LineItem{ProductID: 4, Name: "A", UnitPrice: 100, Quantity: 3},
		LineItem{ProductID: 9, Name: "B", UnitPrice: 200, Quantity: 1},
	)
	assert.Equal(t, []int64{4, 4, 4, 9}, c.ProductIDs())
}

func TestNewNormalizesInput(t *testing.T) {
	c := New(
		LineItem{ProductID: 1, Name: "A", UnitPrice: 100, Quantity: 1},
		LineItem{ProductID: 1, Name: "A", UnitPrice: 100, Quantity: 2},
		LineItem{ProductID: 2, Name: "B", UnitPrice: 200, Quantity: 0},
		LineItem{ProductID: 3, Name: "C", UnitPrice: 300, Quantity: -1},
	)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.ItemCount())
}

package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id int, title, price, category string) models.Product {
	return models.Product{
		ID:       id,
		Title:    title,
		Price:    decimal.RequireFromString(price),
		Category: category,
		Image:    "https://example.com/" + title + ".jpg",
	}
}

var (
	headphones = product(1, "Wireless Headphones", "199.99", "Electronics")
	watch      = product(2, "Smart Watch", "299.99", "Electronics")
	shoes      = product(4, "Running Shoes", "89.99", "Sports")
)

func TestCartService_AddSameProductTwice(t *testing.T) {
	cart := services.NewCartService()

	cart.Add(headphones)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, headphones.ID, lines[0].ProductID)
	assert.Equal(t, headphones.Title, lines[0].Title)
	assert.True(t, headphones.Price.Equal(lines[0].Price))
	assert.Equal(t, headphones.Image, lines[0].Image)

	cart.Add(headphones)
	lines = cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
}

func TestCartService_AddKeepsInsertionOrder(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(shoes)
	cart.Add(headphones)
	cart.Add(shoes)

	lines := cart.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, shoes.ID, lines[0].ProductID)
	assert.Equal(t, headphones.ID, lines[1].ProductID)
	assert.Equal(t, 3, cart.ItemCount())
}

func TestCartService_AddDoesNotOpenPanel(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(headphones)
	assert.False(t, cart.IsOpen())
}

func TestCartService_RemoveAfterAdd(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(headphones)
	cart.Add(headphones)
	cart.Add(headphones)

	cart.Remove(headphones.ID)
	assert.Empty(t, cart.Lines())
	assert.True(t, cart.TotalPrice().IsZero())
}

func TestCartService_RemoveUnknownIsNoop(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(headphones)

	cart.Remove(99)
	assert.Len(t, cart.Lines(), 1)
}

func TestCartService_UpdateQuantity(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(watch)

	cart.UpdateQuantity(watch.ID, 3)
	assert.Equal(t, 4, cart.Lines()[0].Quantity)

	cart.UpdateQuantity(watch.ID, -2)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestCartService_UpdateQuantityFloorIsNoop(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(watch)
	cart.Add(watch)

	// Bringing the quantity to zero leaves the line untouched rather than removing it.
	cart.UpdateQuantity(watch.ID, -2)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)

	cart.UpdateQuantity(watch.ID, -10)
	assert.Equal(t, 2, cart.Lines()[0].Quantity)
}

func TestCartService_UpdateQuantityUnknownIsNoop(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(watch)

	cart.UpdateQuantity(42, 1)
	lines := cart.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 1, lines[0].Quantity)
}

func TestCartService_TotalPrice(t *testing.T) {
	cart := services.NewCartService()
	assert.True(t, cart.TotalPrice().IsZero())

	cart.Add(headphones)
	cart.Add(headphones)
	cart.Add(shoes)

	// 2 x 199.99 + 89.99
	assert.Equal(t, "489.97", cart.TotalPrice().StringFixed(2))
}

func TestCartService_ToggleAndClear(t *testing.T) {
	cart := services.NewCartService()
	assert.True(t, cart.Toggle())
	assert.True(t, cart.IsOpen())

	cart.Add(shoes)
	cart.Clear()
	assert.Empty(t, cart.Lines())
	assert.False(t, cart.IsOpen())

	assert.True(t, cart.Toggle())
	assert.False(t, cart.Toggle())
}

func TestCartService_LinesAreCopies(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(shoes)

	lines := cart.Lines()
	lines[0].Quantity = 50

	assert.Equal(t, 1, cart.Lines()[0].Quantity)
}

func TestCartService_Snapshot(t *testing.T) {
	cart := services.NewCartService()
	cart.Add(shoes)
	cart.Add(shoes)
	cart.Add(watch)
	cart.Toggle()

	snap := cart.Snapshot()
	assert.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.ItemCount)
	assert.Equal(t, "479.97", snap.TotalPrice.StringFixed(2))
	assert.True(t, snap.IsOpen)
}

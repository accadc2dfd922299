package services_test

import (
	"testing"

	"storefront/internal/models"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var (
	lens    = product(3, "Camera Lens", "799.99", "Electronics")
	catalog = []models.Product{headphones, watch, lens, shoes}
)

func titles(products []models.Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.Title)
	}
	return out
}

func TestFilterProducts(t *testing.T) {
	ceiling := decimal.NewFromInt(1000)

	tests := []struct {
		name     string
		criteria models.FilterCriteria
		want     []string
	}{
		{
			name:     "empty criteria match everything",
			criteria: models.FilterCriteria{MaxPrice: ceiling},
			want:     []string{"Wireless Headphones", "Smart Watch", "Camera Lens", "Running Shoes"},
		},
		{
			name:     "search is case-insensitive substring",
			criteria: models.FilterCriteria{SearchText: "WATCH", MaxPrice: ceiling},
			want:     []string{"Smart Watch"},
		},
		{
			name:     "category filter",
			criteria: models.FilterCriteria{SelectedCategories: []string{"Sports"}, MaxPrice: ceiling},
			want:     []string{"Running Shoes"},
		},
		{
			name:     "several categories",
			criteria: models.FilterCriteria{SelectedCategories: []string{"Sports", "Electronics"}, MaxPrice: ceiling},
			want:     []string{"Wireless Headphones", "Smart Watch", "Camera Lens", "Running Shoes"},
		},
		{
			name:     "price ceiling is inclusive",
			criteria: models.FilterCriteria{MaxPrice: decimal.RequireFromString("199.99")},
			want:     []string{"Wireless Headphones", "Running Shoes"},
		},
		{
			name: "all criteria combined",
			criteria: models.FilterCriteria{
				SearchText:         "s",
				SelectedCategories: []string{"Electronics"},
				MaxPrice:           decimal.NewFromInt(300),
			},
			want: []string{"Wireless Headphones", "Smart Watch"},
		},
		{
			name:     "no match is an empty result",
			criteria: models.FilterCriteria{SearchText: "guitar", MaxPrice: ceiling},
			want:     []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.FilterProducts(catalog, tt.criteria)
			assert.Equal(t, tt.want, titles(got))
		})
	}
}

func TestFilterProducts_StricterCriteriaNeverGrow(t *testing.T) {
	base := models.FilterCriteria{MaxPrice: decimal.NewFromInt(1000)}
	baseLen := len(services.FilterProducts(catalog, base))

	stricter := []models.FilterCriteria{
		{SearchText: "a", MaxPrice: base.MaxPrice},
		{SearchText: "ar", MaxPrice: base.MaxPrice},
		{SearchText: "art", MaxPrice: base.MaxPrice},
		{SelectedCategories: []string{"Electronics"}, MaxPrice: base.MaxPrice},
		{MaxPrice: decimal.NewFromInt(250)},
		{MaxPrice: decimal.NewFromInt(50)},
	}

	prev := baseLen
	for i, c := range stricter {
		got := services.FilterProducts(catalog, c)
		assert.LessOrEqual(t, len(got), baseLen, "criteria %d", i)
		for _, p := range got {
			assert.Contains(t, catalog, p)
		}
		if i > 0 && i < 3 {
			assert.LessOrEqual(t, len(got), prev, "longer search text %q", c.SearchText)
		}
		prev = len(got)
	}
}

func TestFilterService(t *testing.T) {
	filter := services.NewFilterService(decimal.NewFromInt(1000))

	c := filter.Criteria()
	assert.Empty(t, c.SearchText)
	assert.Empty(t, c.SelectedCategories)
	assert.True(t, decimal.NewFromInt(1000).Equal(c.MaxPrice))

	filter.SetSearchQuery("shoe")
	assert.True(t, filter.ToggleCategory("Sports"))
	assert.True(t, filter.ToggleCategory("Books"))
	assert.False(t, filter.ToggleCategory("Sports"))
	filter.SetPriceRange(decimal.NewFromInt(100))

	c = filter.Criteria()
	assert.Equal(t, "shoe", c.SearchText)
	assert.Equal(t, []string{"Books"}, c.SelectedCategories)
	assert.True(t, decimal.NewFromInt(100).Equal(c.MaxPrice))

	// The returned criteria do not alias internal state.
	c.SelectedCategories[0] = "Clothing"
	assert.Equal(t, []string{"Books"}, filter.Criteria().SelectedCategories)
}

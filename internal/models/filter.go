package models

import "github.com/shopspring/decimal"

// FilterCriteria narrows the catalog shown on the product grid.
type FilterCriteria struct {
	SearchText         string          `json:"search_text"`
	SelectedCategories []string        `json:"selected_categories"`
	MaxPrice           decimal.Decimal `json:"max_price"`
}

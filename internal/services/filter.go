package services

import (
	"slices"
	"strings"
	"sync"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// FilterProducts returns, in catalog order, the products matching criteria.
// A product matches when its title contains the search text (case-insensitive),
// its category is selected (or no category is selected) and its price does
// not exceed the ceiling.
func FilterProducts(products []models.Product, criteria models.FilterCriteria) []models.Product {
	search := strings.ToLower(criteria.SearchText)
	filtered := make([]models.Product, 0, len(products))
	for _, p := range products {
		if !strings.Contains(strings.ToLower(p.Title), search) {
			continue
		}
		if len(criteria.SelectedCategories) > 0 && !slices.Contains(criteria.SelectedCategories, p.Category) {
			continue
		}
		if p.Price.GreaterThan(criteria.MaxPrice) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// FilterService holds the filter criteria a session has selected.
type FilterService struct {
	mu       sync.Mutex
	criteria models.FilterCriteria
}

// NewFilterService creates a filter with no search text, no category and
// the given price ceiling.
func NewFilterService(maxPrice decimal.Decimal) *FilterService {
	return &FilterService{
		criteria: models.FilterCriteria{MaxPrice: maxPrice},
	}
}

// Criteria returns a copy of the current criteria.
func (s *FilterService) Criteria() models.FilterCriteria {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.criteria
	c.SelectedCategories = append([]string{}, c.SelectedCategories...)
	return c
}

// SetSearchQuery replaces the search text.
func (s *FilterService) SetSearchQuery(query string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.SearchText = query
}

// ToggleCategory selects category if it is not selected and deselects it otherwise.
// It returns whether the category is selected afterwards.
func (s *FilterService) ToggleCategory(category string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := slices.Index(s.criteria.SelectedCategories, category); i >= 0 {
		s.criteria.SelectedCategories = slices.Delete(s.criteria.SelectedCategories, i, i+1)
		return false
	}
	s.criteria.SelectedCategories = append(s.criteria.SelectedCategories, category)
	return true
}

// SetPriceRange sets the price ceiling.
func (s *FilterService) SetPriceRange(maxPrice decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.criteria.MaxPrice = maxPrice
}

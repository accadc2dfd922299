package services

import (
	"sync"

	"storefront/internal/models"

	"github.com/shopspring/decimal"
)

// CartService holds the cart of a single session.
// Lines keep insertion order and never hold a quantity below 1.
type CartService struct {
	mu    sync.Mutex
	lines []models.CartLine
	open  bool
}

// NewCartService creates an empty, closed cart.
func NewCartService() *CartService {
	return &CartService{}
}

// Add puts one unit of product into the cart.
// It does not open the cart panel.
func (s *CartService) Add(product models.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(product.ID); i >= 0 {
		s.lines[i].Quantity++
		return
	}
	s.lines = append(s.lines, models.CartLine{
		ProductID: product.ID,
		Title:     product.Title,
		Price:     product.Price,
		Quantity:  1,
		Image:     product.Image,
	})
}

// Remove deletes the line for productID regardless of its quantity.
func (s *CartService) Remove(productID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i := s.find(productID); i >= 0 {
		s.lines = append(s.lines[:i], s.lines[i+1:]...)
	}
}

// UpdateQuantity adds delta to the line's quantity. A change that would
// leave the quantity at zero or below is ignored; use Remove instead.
func (s *CartService) UpdateQuantity(productID int, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.find(productID)
	if i < 0 {
		return
	}
	if q := s.lines[i].Quantity + delta; q > 0 {
		s.lines[i].Quantity = q
	}
}

// Clear empties the cart and closes the panel.
func (s *CartService) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lines = nil
	s.open = false
}

// Toggle flips the cart panel visibility and returns the new state.
func (s *CartService) Toggle() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.open = !s.open
	return s.open
}

// IsOpen reports whether the cart panel is open.
func (s *CartService) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// Lines returns a copy of the cart lines.
func (s *CartService) Lines() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartLine{}, s.lines...)
}

// TotalPrice returns the sum of price x quantity over all lines.
func (s *CartService) TotalPrice() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return totalOf(s.lines)
}

// ItemCount returns the number of units in the cart.
func (s *CartService) ItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, l := range s.lines {
		n += l.Quantity
	}
	return n
}

// Snapshot returns a consistent read-only view of the cart.
func (s *CartService) Snapshot() models.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart := models.Cart{
		Items:      append([]models.CartLine{}, s.lines...),
		TotalPrice: totalOf(s.lines),
		IsOpen:     s.open,
	}
	for _, l := range s.lines {
		cart.ItemCount += l.Quantity
	}
	return cart
}

// drain atomically takes every line out of the cart and closes the panel.
func (s *CartService) drain() []models.CartLine {
	s.mu.Lock()
	defer s.mu.Unlock()

	lines := s.lines
	s.lines = nil
	s.open = false
	return lines
}

// restore puts lines taken by drain back in front of anything added since.
func (s *CartService) restore(lines []models.CartLine) {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := append([]models.CartLine{}, lines...)
	for _, l := range s.lines {
		if i := indexOf(merged, l.ProductID); i >= 0 {
			merged[i].Quantity += l.Quantity
			continue
		}
		merged = append(merged, l)
	}
	s.lines = merged
}

func (s *CartService) find(productID int) int {
	return indexOf(s.lines, productID)
}

func indexOf(lines []models.CartLine, productID int) int {
	for i := range lines {
		if lines[i].ProductID == productID {
			return i
		}
	}
	return -1
}

func totalOf(lines []models.CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

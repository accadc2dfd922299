package services_test

import (
	"fmt"
	"testing"

	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll() ([]models.Product, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(id int) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func TestProductService_GetAllProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return(catalog, nil).Once()

	products, err := service.GetAllProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 4)
	assert.Equal(t, catalog, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful retrieval
	mockRepo.On("GetByID", 1).Return(&headphones, nil).Once()
	p, err := service.GetProductByID(1)
	assert.NoError(t, err)
	assert.Equal(t, &headphones, p)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", 99).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	p, err = service.GetProductByID(99)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Nil(t, p)
	mockRepo.AssertExpectations(t)
}

func TestProductService_FilterProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	mockRepo.On("GetAll").Return(catalog, nil).Once()
	products, err := service.FilterProducts(models.FilterCriteria{
		SelectedCategories: []string{"Electronics"},
		MaxPrice:           decimal.NewFromInt(500),
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Wireless Headphones", "Smart Watch"}, titles(products))
	mockRepo.AssertExpectations(t)

	// Repository failures are passed through
	mockRepo.On("GetAll").Return(nil, fmt.Errorf("database error")).Once()
	_, err = service.FilterProducts(models.FilterCriteria{})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

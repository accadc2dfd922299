package repositories_test

import (
	"fmt"
	"strings"
	"testing"

	"storefront/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// productRepositories returns one fresh repository per catalog backend.
func productRepositories(t *testing.T) map[string]repositories.ProductRepository {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	sqliteRepo, err := repositories.NewProductRepository(repositories.DriverSQLite, dsn)
	require.NoError(t, err)

	return map[string]repositories.ProductRepository{
		"memory": repositories.NewMemoryProductRepository(),
		"sqlite": sqliteRepo,
	}
}

func TestProductRepositories_SeedAndRead(t *testing.T) {
	for name, repo := range productRepositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repositories.SeedProducts(repo, repositories.SampleProducts()))

			products, err := repo.GetAll()
			require.NoError(t, err)
			require.Len(t, products, 4)
			for i, p := range products {
				assert.Equal(t, i+1, p.ID, "catalog order")
			}
			assert.Equal(t, "Wireless Headphones", products[0].Title)
			assert.Equal(t, "199.99", products[0].Price.StringFixed(2))
			assert.NotEmpty(t, products[0].Description)

			p, err := repo.GetByID(4)
			require.NoError(t, err)
			assert.Equal(t, "Running Shoes", p.Title)
			assert.Equal(t, "Sports", p.Category)

			_, err = repo.GetByID(99)
			assert.ErrorIs(t, err, repositories.ErrProductNotFound)
		})
	}
}

func TestProductRepositories_SeedIsIdempotent(t *testing.T) {
	for name, repo := range productRepositories(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, repositories.SeedProducts(repo, repositories.SampleProducts()))
			require.NoError(t, repositories.SeedProducts(repo, repositories.SampleProducts()))

			products, err := repo.GetAll()
			require.NoError(t, err)
			assert.Len(t, products, 4)
		})
	}
}

func TestNewProductRepository_Drivers(t *testing.T) {
	repo, err := repositories.NewProductRepository("", "")
	require.NoError(t, err)
	assert.IsType(t, &repositories.MemoryProductRepository{}, repo)

	_, err = repositories.NewProductRepository(repositories.DriverPostgres, "")
	assert.Error(t, err)

	_, err = repositories.NewProductRepository("mongo", "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown catalog driver")
}

package repositories

import "storefront/internal/models"

// UserRepository is the directory of identities registered in this process.
type UserRepository interface {
	Create(user *models.User) error
	GetByEmail(email string) (*models.User, error)
	GetByID(id string) (*models.User, error)
}

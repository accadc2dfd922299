package repositories

import (
	"fmt"
	"strings"
	"sync"

	"storefront/internal/models"

	"github.com/google/uuid"
)

// MemoryUserRepository is an in-memory implementation of UserRepository.
// Emails are matched case-insensitively.
type MemoryUserRepository struct {
	users   map[string]models.User // ID -> user
	byEmail map[string]string      // lowercased email -> ID
	mu      sync.RWMutex
}

// NewMemoryUserRepository creates a new instance of MemoryUserRepository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		users:   make(map[string]models.User),
		byEmail: make(map[string]string),
	}
}

// Create stores a user, replacing any earlier registration for the same email.
func (r *MemoryUserRepository) Create(user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	key := strings.ToLower(user.Email)
	if prevID, ok := r.byEmail[key]; ok {
		delete(r.users, prevID)
	}
	r.users[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

// GetByEmail retrieves a user by email.
func (r *MemoryUserRepository) GetByEmail(email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, fmt.Errorf("user with email %s: %w", email, ErrUserNotFound)
	}
	user := r.users[id]
	return &user, nil
}

// GetByID retrieves a user by ID.
func (r *MemoryUserRepository) GetByID(id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with ID %s: %w", id, ErrUserNotFound)
	}
	return &user, nil
}

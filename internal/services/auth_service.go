package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/google/uuid"
)

// AuthService tracks who is signed in to a session.
// Credentials are accepted as long as they are non-empty; nothing is verified.
type AuthService struct {
	users repositories.UserRepository

	mu      sync.RWMutex
	current *models.User
}

// NewAuthService creates a signed-out identity backed by the shared user directory.
func NewAuthService(users repositories.UserRepository) *AuthService {
	return &AuthService{
		users: users,
	}
}

// Login signs in with email and password. A previously registered identity
// for the email is reused; otherwise the name is taken from the email's
// local part.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("login: %w", ErrMissingCredentials)
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		if !errors.Is(err, repositories.ErrUserNotFound) {
			return nil, fmt.Errorf("login: %w", err)
		}
		user = &models.User{
			ID:    uuid.New().String(),
			Email: email,
			Name:  strings.SplitN(email, "@", 2)[0],
		}
	}

	s.signIn(user)
	return user, nil
}

// Register creates an identity and signs in with it.
func (s *AuthService) Register(name, email, password string) (*models.User, error) {
	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("register: %w", ErrMissingCredentials)
	}

	user := &models.User{
		ID:    uuid.New().String(),
		Email: email,
		Name:  name,
	}
	if err := s.users.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.signIn(user)
	return user, nil
}

// Logout clears the current identity.
func (s *AuthService) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = nil
}

// CurrentUser returns the signed-in user or nil.
func (s *AuthService) CurrentUser() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.current == nil {
		return nil
	}
	user := *s.current
	return &user
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthService) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current != nil
}

func (s *AuthService) signIn(user *models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u := *user
	s.current = &u
	log.Printf("User %s signed in as %s", u.ID, u.Email)
}

package services

import (
	"fmt"
	"log"
	"sync"
	"time"

	"storefront/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session bundles the state owned by one shopper: cart, orders, identity
// and filter criteria.
type Session struct {
	ID     string
	Cart   *CartService
	Orders *OrderService
	Auth   *AuthService
	Filter *FilterService

	mu       sync.Mutex
	lastSeen time.Time
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// SessionConfig configures a SessionManager.
type SessionConfig struct {
	JWTSecret       string
	TTL             time.Duration
	CleanupInterval time.Duration
	DefaultMaxPrice decimal.Decimal
}

// SessionManager creates sessions, issues their bearer tokens and expires
// sessions that have been idle longer than the TTL.
type SessionManager struct {
	users     repositories.UserRepository
	publisher EventPublisher
	jwtSecret []byte
	ttl       time.Duration
	maxPrice  decimal.Decimal

	mu       sync.RWMutex
	sessions map[string]*Session

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

// NewSessionManager creates a SessionManager and starts its cleanup loop.
// publisher may be nil.
func NewSessionManager(cfg SessionConfig, users repositories.UserRepository, publisher EventPublisher) *SessionManager {
	if cfg.TTL <= 0 {
		cfg.TTL = 24 * time.Hour
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = time.Minute
	}
	m := &SessionManager{
		users:       users,
		publisher:   publisher,
		jwtSecret:   []byte(cfg.JWTSecret),
		ttl:         cfg.TTL,
		maxPrice:    cfg.DefaultMaxPrice,
		sessions:    make(map[string]*Session),
		stopCleanup: make(chan struct{}),
	}

	m.wg.Add(1)
	go m.cleanupLoop(cfg.CleanupInterval)

	return m
}

// Create starts a new session and returns it with its signed token.
func (m *SessionManager) Create() (*Session, string, error) {
	cart := NewCartService()
	auth := NewAuthService(m.users)
	sess := &Session{
		ID:       uuid.New().String(),
		Cart:     cart,
		Auth:     auth,
		Orders:   NewOrderService(repositories.NewMemoryOrderRepository(), cart, auth, m.publisher),
		Filter:   NewFilterService(m.maxPrice),
		lastSeen: time.Now(),
	}

	token, err := m.issueToken(sess.ID)
	if err != nil {
		return nil, "", err
	}

	m.mu.Lock()
	m.sessions[sess.ID] = sess
	m.mu.Unlock()

	log.Printf("Session %s created", sess.ID)
	return sess, token, nil
}

// Resolve validates token and returns the live session it names.
func (m *SessionManager) Resolve(token string) (*Session, error) {
	sessionID, err := m.ValidateToken(token)
	if err != nil {
		return nil, err
	}
	return m.Get(sessionID)
}

// Get returns the live session with the given ID.
func (m *SessionManager) Get(sessionID string) (*Session, error) {
	m.mu.RLock()
	sess, ok := m.sessions[sessionID]
	m.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", sessionID, ErrSessionNotFound)
	}
	sess.touch(time.Now())
	return sess, nil
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// ValidateToken parses and validates a session token, returning the session ID.
func (m *SessionManager) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.jwtSecret, nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", ErrInvalidToken
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", fmt.Errorf("%w: missing session claim", ErrInvalidToken)
	}
	return sessionID, nil
}

// Close stops the cleanup loop and waits for it to finish.
func (m *SessionManager) Close() error {
	close(m.stopCleanup)
	m.wg.Wait()
	return nil
}

func (m *SessionManager) issueToken(sessionID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sid": sessionID,
		"iat": now.Unix(),
		"exp": now.Add(m.ttl).Unix(),
	})

	tokenString, err := token.SignedString(m.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

func (m *SessionManager) cleanupLoop(interval time.Duration) {
	defer m.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.expireSessions(time.Now())
		case <-m.stopCleanup:
			return
		}
	}
}

// expireSessions drops sessions idle for longer than the TTL.
func (m *SessionManager) expireSessions(now time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, sess := range m.sessions {
		if now.Sub(sess.idleSince()) > m.ttl {
			delete(m.sessions, id)
			log.Printf("Session %s expired", id)
		}
	}
}

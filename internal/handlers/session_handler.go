package handlers

import (
	"log"

	"storefront/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SessionHandler hands out shopping sessions.
type SessionHandler struct {
	sessions *services.SessionManager
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessions *services.SessionManager) *SessionHandler {
	return &SessionHandler{
		sessions: sessions,
	}
}

// RegisterRoutes registers the session routes with the Fiber app.
func (h *SessionHandler) RegisterRoutes(router fiber.Router) {
	router.Post("/sessions", h.HandleCreateSession)
}

// HandleCreateSession starts a new session and returns its bearer token.
func (h *SessionHandler) HandleCreateSession(c *fiber.Ctx) error {
	sess, token, err := h.sessions.Create()
	if err != nil {
		log.Printf("Error creating session: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not create session",
			"error":   err.Error(),
		})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"session_id": sess.ID,
		"token":      token,
	})
}

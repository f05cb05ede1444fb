// internal/interfaces/http/handlers/session.go
package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/techempire/storefront/internal/config"
)

// Sessions issues and reads the guest session cookie that keys the cart
// and the PC build in Redis
type Sessions struct {
	name   string
	maxAge int
	secure bool
}

// NewSessions creates the session cookie helper
func NewSessions(cfg *config.Config) *Sessions {
	name := cfg.Session.CookieName
	if name == "" {
		name = "session_id"
	}
	return &Sessions{
		name:   name,
		maxAge: cfg.Session.CookieMaxAge,
		secure: cfg.Session.SecureCookie,
	}
}

// GetOrCreate returns the session id from the cookie, issuing a new one
// when it is missing or malformed. The cookie is refreshed on every call.
func (s *Sessions) GetOrCreate(c *gin.Context) string {
	sessionID, err := c.Cookie(s.name)
	if err != nil {
		sessionID = ""
	}
	if _, err := uuid.Parse(sessionID); err != nil {
		sessionID = uuid.NewString()
	}

	c.SetCookie(s.name, sessionID, s.maxAge, "/", "", s.secure, true)
	return sessionID
}

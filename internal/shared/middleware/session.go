package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ContextKeySessionID = "cart_session_id"

// SessionConfig controls the anonymous cart session cookie
type SessionConfig struct {
	CookieName   string
	CookieMaxAge int // seconds
	CookieSecure bool
}

func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		CookieName:   "cart_session",
		CookieMaxAge: 30 * 24 * 60 * 60, // 30 days
		CookieSecure: true,
	}
}

var ErrNoSession = errors.New("no cart session in context")

// CartSession ensures every request carries a cart session id.
// A browser session maps 1:1 to a persisted cart; the id is an opaque
// uuid stored in a cookie, never derived from user identity.
func CartSession(cfg SessionConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cfg.CookieName)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			c.SetCookie(cfg.CookieName, sessionID, cfg.CookieMaxAge, "/", "", cfg.CookieSecure, true)
		}

		c.Set(ContextKeySessionID, sessionID)
		c.Next()
	}
}

// GetSessionID reads the cart session id set by CartSession
func GetSessionID(c *gin.Context) (string, error) {
	sessionID := c.GetString(ContextKeySessionID)
	if sessionID == "" {
		return "", ErrNoSession
	}
	return sessionID, nil
}

package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/nmm-portal/nmm-api/internal/models"
	"github.com/nmm-portal/nmm-api/pkg/jwt"
	"github.com/nmm-portal/nmm-api/pkg/logger"
	"go.uber.org/zap"
)

// UserSessionContextKey is the key used to store the session in context
const UserSessionContextKey = "user_session"

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionValidator turns a token into a session and names the cookie carrying it
type SessionValidator interface {
	ValidateSession(token string) (*models.UserSession, error)
	GetCookieName() string
	GetCookieDomain() string
	GetCookieSecure() bool
}

// SessionMiddleware requires a valid session token from the session cookie
// or an Authorization: Bearer header and adds the session to context
func SessionMiddleware(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, fromCookie := sessionToken(c, validator.GetCookieName())
		if token == "" {
			_ = c.Error(fmt.Errorf("missing session token")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		session, err := validator.ValidateSession(token)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			if fromCookie {
				ClearSessionCookie(c, validator.GetCookieName(), validator.GetCookieDomain(), validator.GetCookieSecure())
			}

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(UserSessionContextKey, session)
		c.Next()
	}
}

// OptionalSessionMiddleware adds the session to context when a valid token
// is present and lets anonymous requests through
func OptionalSessionMiddleware(validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, _ := sessionToken(c, validator.GetCookieName()); token != "" {
			if session, err := validator.ValidateSession(token); err == nil {
				c.Set(UserSessionContextKey, session)
			}
		}
		c.Next()
	}
}

// RequireRoles rejects sessions whose role is not in roles.
// Must run after SessionMiddleware.
func RequireRoles(roles ...models.Role) gin.HandlerFunc {
	allowed := make(map[models.Role]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		session, err := GetUserSession(c)
		if err != nil {
			_ = c.Error(err) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		if !allowed[session.Role] {
			logger.Warn("Role not allowed",
				zap.String("path", c.Request.URL.Path),
				zap.String("user_id", session.UserID),
				zap.String("role", string(session.Role)),
			)
			_ = c.Error(fmt.Errorf("role %s not allowed", session.Role)) //nolint:errcheck
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetUserSession extracts the session from context
func GetUserSession(c *gin.Context) (*models.UserSession, error) {
	val, exists := c.Get(UserSessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	session, ok := val.(*models.UserSession)
	if !ok {
		return nil, ErrInvalidSession
	}

	return session, nil
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, name, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, token, ttlSeconds, "/", domain, secure, true)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, name, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, "", -1, "/", domain, secure, true)
}

// sessionToken prefers the cookie; the bool reports whether it came from one
func sessionToken(c *gin.Context, cookieName string) (string, bool) {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, true
	}

	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:]), false
	}
	return "", false
}

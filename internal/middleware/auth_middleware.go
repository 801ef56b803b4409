package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	appauth "github.com/unipem/lms/internal/app/auth"
	"github.com/unipem/lms/internal/app/models"
	"github.com/unipem/lms/internal/app/models/dto"
	"github.com/unipem/lms/internal/pkg/auth"
)

// SessionMiddleware reads the session cookie and enforces the role gate
type SessionMiddleware struct {
	codec      auth.SessionCodec
	cookieName string
	maxAge     time.Duration
	secure     bool
	logger     zerolog.Logger
}

// NewSessionMiddleware creates a new SessionMiddleware
func NewSessionMiddleware(codec auth.SessionCodec, cookieName string, maxAge time.Duration, secure bool, logger zerolog.Logger) *SessionMiddleware {
	return &SessionMiddleware{
		codec:      codec,
		cookieName: cookieName,
		maxAge:     maxAge,
		secure:     secure,
		logger:     logger,
	}
}

// SetCookie writes the session cookie
func (m *SessionMiddleware) SetCookie(c *gin.Context, session auth.Session) error {
	value, err := m.codec.Encode(session)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, value, int(m.maxAge.Seconds()), "/", "", m.secure, true)
	return nil
}

// ClearCookie deletes the session cookie
func (m *SessionMiddleware) ClearCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(m.cookieName, "", -1, "/", "", m.secure, true)
}

// readSession decodes the cookie; an unreadable cookie is cleared and treated as absent
func (m *SessionMiddleware) readSession(c *gin.Context) *auth.Session {
	value, err := c.Cookie(m.cookieName)
	if err != nil || value == "" {
		return nil
	}

	session, err := m.codec.Decode(value)
	if err != nil {
		m.logger.Debug().Err(err).Str("path", c.Request.URL.Path).Msg("Discarding unreadable session cookie")
		m.ClearCookie(c)
		return nil
	}
	return session
}

// Gate redirects gated paths according to the session and stores the session on the context
func (m *SessionMiddleware) Gate() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if !appauth.IsGated(path) {
			c.Next()
			return
		}

		session := m.readSession(c)
		if decision := appauth.Decide(path, session); !decision.Allowed() {
			c.Redirect(http.StatusTemporaryRedirect, decision.Redirect)
			c.Abort()
			return
		}

		if session != nil {
			auth.SetSession(c, session)
		}
		c.Next()
	}
}

// RequireRoles rejects sessions without one of roles with 403
func (m *SessionMiddleware) RequireRoles(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := auth.SessionFromContext(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")))
			return
		}

		if !appauth.HasRole(session, roles...) {
			detail := dto.NewErrorDetail(dto.ErrorCodeForbidden, "Access denied").
				WithDetails("You don't have sufficient permissions for this operation")
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(detail))
			return
		}

		c.Next()
	}
}

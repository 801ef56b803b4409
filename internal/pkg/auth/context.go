package auth

import (
	"github.com/gin-gonic/gin"
)

// sessionContextKey is the gin context key holding the decoded *Session
const sessionContextKey = "session"

// SetSession stores the decoded session on the request context
func SetSession(c *gin.Context, session *Session) {
	c.Set(sessionContextKey, session)
}

// SessionFromContext returns the session stored by the session gate
func SessionFromContext(c *gin.Context) (*Session, bool) {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil, false
	}
	session, ok := v.(*Session)
	return session, ok && session != nil
}

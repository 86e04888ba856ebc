package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	authModel "mineral-catalog/internal/domains/auth/model"
)

const sessionKey = "session"

// SessionResolver looks up a session token.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*authModel.Session, error)
}

// Session resolves the session cookie, if any, and stores the session in
// the context. It never rejects a request.
func Session(resolver SessionResolver, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cookieName)
		if err == nil && token != "" {
			s, err := resolver.Session(c.Request.Context(), token)
			if err != nil {
				log.Warn().Err(err).Str("request_id", c.GetString(RequestIDKey)).Msg("Session lookup failed")
			} else if s != nil {
				c.Set(sessionKey, s)
			}
		}

		c.Next()
	}
}

// CurrentSession returns the session stored by Session, or nil.
func CurrentSession(c *gin.Context) *authModel.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	s, _ := v.(*authModel.Session)
	return s
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(c *gin.Context) bool {
	s := CurrentSession(c)
	return s != nil && s.IsAdmin
}

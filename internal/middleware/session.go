package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-api/internal/session"
)

const (
	HeaderXSessionID  = "X-Session-ID"
	ContextSession    = "session"
	DefaultCookieName = "hospital_session"
)

type SessionConfig struct {
	CookieName string
	// MaxAge of the session cookie in seconds; 0 makes it a browser-session cookie.
	MaxAge int
	Secure bool
}

// Session resolves the caller's session from the X-Session-ID header or
// the session cookie, creating one when neither names a live session. The
// session stays locked until the rest of the chain returns, so requests of
// one session never touch its registry concurrently.
func Session(store *session.Store, config SessionConfig) gin.HandlerFunc {
	if config.CookieName == "" {
		config.CookieName = DefaultCookieName
	}

	return func(c *gin.Context) {
		id := c.GetHeader(HeaderXSessionID)
		if id == "" {
			if cookie, err := c.Cookie(config.CookieName); err == nil {
				id = cookie
			}
		}

		sess, created := store.Acquire(id)

		c.Set(ContextSession, sess)
		c.Header(HeaderXSessionID, sess.ID)
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(config.CookieName, sess.ID, config.MaxAge, "/", "", config.Secure, true)

		logger := log.With().
			Str("request_id", c.GetString(ContextRequestID)).
			Str("session_id", sess.ID).
			Bool("new_session", created).
			Logger()
		c.Request = c.Request.WithContext(logger.WithContext(c.Request.Context()))

		sess.Lock()
		defer sess.Unlock()

		c.Next()
	}
}

// SessionFromContext returns the session attached by Session.
func SessionFromContext(c *gin.Context) (*session.Session, bool) {
	v, exists := c.Get(ContextSession)
	if !exists {
		return nil, false
	}
	sess, ok := v.(*session.Session)
	return sess, ok
}

package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/smallbiznis/comercio/internal/authctx"
)

const (
	headerRequestID  = "X-Request-ID"
	contextUserIDKey = "user_id"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := strings.TrimSpace(c.GetHeader(headerRequestID))
		if id == "" {
			id = uuid.NewString()
		}
		c.Header(headerRequestID, id)
		c.Set("request_id", id)
		c.Next()
	}
}

// AuthRequired resolves the session cookie into a user and stores the
// user ID in both gin and the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := s.sessions.ReadToken(c)
		if !ok {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		session, err := s.authsvc.Authenticate(c.Request.Context(), token)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextUserIDKey, session.UserID.String())
		c.Request = c.Request.WithContext(authctx.WithUserID(c.Request.Context(), session.UserID))
		c.Next()
	}
}

// requireAction gates a route on the casbin policy for the acting user.
func (s *Server) requireAction(object, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.GetString(contextUserIDKey)
		if actor == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		if err := s.authzSvc.Authorize(c.Request.Context(), actor, object, action); err != nil {
			AbortWithError(c, err)
			return
		}
		c.Next()
	}
}

package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/echojournal/internal/common"
	"github.com/dmitrijs2005/echojournal/internal/logging"
	"github.com/dmitrijs2005/echojournal/internal/server/auth"
	"github.com/dmitrijs2005/echojournal/internal/shared"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "requestID"
	authUserKey     = "authUserID"
)

func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = shared.RequestID()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func accessLog(l logging.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.Info(c.Request.Context(), "request",
			"request_id", c.GetString(requestIDKey),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", time.Since(start),
		)
	}
}

func timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// authenticate requires a bearer token and records its user id.
func authenticate(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.BearerToken(c.GetHeader("Authorization"))
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		userID, err := auth.GetUserIDFromToken(token, secret)
		if err != nil {
			msg := "Unauthorized"
			if errors.Is(err, common.ErrTokenExpired) {
				msg = "Token expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		c.Set(authUserKey, userID)
		c.Next()
	}
}

// resolveUser reconciles the user id named by the request with the
// authenticated one. It writes 403 and returns false on mismatch.
func resolveUser(c *gin.Context, supplied string) (string, bool) {
	authed := c.GetString(authUserKey)
	if authed == "" {
		return supplied, true
	}
	if supplied == "" {
		return authed, true
	}
	if supplied != authed {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
		return "", false
	}
	return supplied, true
}

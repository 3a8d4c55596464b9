package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-news-api/internal/application"
	"github.com/oksasatya/go-news-api/pkg/helpers"
	"github.com/oksasatya/go-news-api/pkg/response"
)

const CtxUserIDKey = "userID"

// tokenFromRequest reads the access token from the cookie or, failing
// that, from a Bearer Authorization header.
func tokenFromRequest(c *gin.Context) string {
	if token, err := c.Cookie("access_token"); err == nil && token != "" {
		return token
	}
	if h := c.GetHeader("Authorization"); strings.HasPrefix(h, "Bearer ") {
		return strings.TrimPrefix(h, "Bearer ")
	}
	return ""
}

// resolveUser validates the token and the Redis session, returning the
// user id. Zero return means no authenticated user.
func resolveUser(c *gin.Context, rdb *redis.Client, jwt *helpers.JWTManager) (int64, bool) {
	token := tokenFromRequest(c)
	if token == "" {
		return 0, false
	}
	claims, err := jwt.ParseAccessToken(token)
	if err != nil {
		return 0, false
	}
	uid, err := claims.UserID()
	if err != nil {
		return 0, false
	}
	if rdb != nil {
		data, err := rdb.HGetAll(c.Request.Context(), application.SessionKey(uid)).Result()
		if err != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return 0, false
		}
	}
	return uid, true
}

// Auth validates the access token and ensures an active session exists in
// Redis. It sets the user id in the Gin context on success and aborts
// with 401 otherwise.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid, ok := resolveUser(c, rdb, jwt)
		if !ok {
			response.Error[any](c, http.StatusUnauthorized, "missing or invalid access token", nil)
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, uid)
		c.Next()
	}
}

// OptionalAuth resolves the current user when valid credentials are
// present and passes the request through unauthenticated otherwise.
func OptionalAuth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uid, ok := resolveUser(c, rdb, jwt); ok {
			c.Set(CtxUserIDKey, uid)
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id, or nil when the
// request carries no authenticated user.
func CurrentUserID(c *gin.Context) *int64 {
	v, ok := c.Get(CtxUserIDKey)
	if !ok {
		return nil
	}
	uid, ok := v.(int64)
	if !ok {
		return nil
	}
	return &uid
}

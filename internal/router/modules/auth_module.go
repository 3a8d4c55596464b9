package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-news-api/internal/container"
	handlers "github.com/oksasatya/go-news-api/internal/interface/http"
	"github.com/oksasatya/go-news-api/internal/interface/middleware"
	"github.com/oksasatya/go-news-api/pkg/helpers"
)

// AuthModule wires account routes.
// Public: POST /api/register, POST /api/login, POST /api/refresh
// Protected: POST /api/logout
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     *helpers.JWTManager
}

func NewAuthModule(h *handlers.AuthHandler, jwt *helpers.JWTManager) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	var registerLimiter, loginLimiter gin.HandlerFunc
	if container.GetConfig().RateLimitEnabled {
		registerLimiter = middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIPAndPath())
		loginLimiter = middleware.RateLimit(container.GetRedis(), 10, time.Minute, middleware.KeyByIP())
	} else {
		pass := func(c *gin.Context) { c.Next() }
		registerLimiter, loginLimiter = pass, pass
	}

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.POST("/logout", m.Handler.Logout)
	}
}

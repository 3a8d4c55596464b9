package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-news-api/internal/container"
	handlers "github.com/oksasatya/go-news-api/internal/interface/http"
	"github.com/oksasatya/go-news-api/internal/interface/middleware"
	"github.com/oksasatya/go-news-api/pkg/helpers"
)

// NewsModule wires article routes.
// Public: GET /api/news, GET /api/latest_news, GET /api/news/:id
// Optional auth: POST /api/news (anonymous posting allowed)
// Protected: PATCH /api/news/:id, DELETE /api/news/:id
type NewsModule struct {
	Handler *handlers.NewsHandler
	JWT     *helpers.JWTManager
}

func NewNewsModule(h *handlers.NewsHandler, jwt *helpers.JWTManager) *NewsModule {
	return &NewsModule{Handler: h, JWT: jwt}
}

func (m *NewsModule) Register(rg *gin.RouterGroup) {
	rg.GET("/news", m.Handler.Index)
	rg.GET("/latest_news", m.Handler.Latest)
	rg.GET("/news/:id", m.Handler.Show)

	rg.POST("/news", middleware.OptionalAuth(container.GetRedis(), m.JWT), m.Handler.Create)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(container.GetRedis(), m.JWT))
	{
		auth.PATCH("/news/:id", m.Handler.Edit)
		auth.DELETE("/news/:id", m.Handler.Delete)
	}
}

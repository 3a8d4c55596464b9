package router

import (
	"github.com/oksasatya/go-news-api/internal/application"
	"github.com/oksasatya/go-news-api/internal/container"
	pginfra "github.com/oksasatya/go-news-api/internal/infrastructure/postgres"
	handlers "github.com/oksasatya/go-news-api/internal/interface/http"
	"github.com/oksasatya/go-news-api/internal/router/modules"
)

func buildAuthModule() *modules.AuthModule {
	cfg := container.GetConfig()
	repo := pginfra.NewUserRepository(container.GetPGPool())
	svc := application.NewUserService(repo, container.GetJWT(), container.GetRedis(), container.GetLogger(), cfg.SessionTTL)
	handler := handlers.NewAuthHandler(svc, container.GetLogger(), cfg.CookieDomain, cfg.CookieSecure)
	return modules.NewAuthModule(handler, container.GetJWT())
}

func buildNewsModule() *modules.NewsModule {
	cfg := container.GetConfig()
	repo := pginfra.NewArticleRepository(container.GetPGPool())
	svc := application.NewArticleService(repo, container.GetRedis(), container.GetLogger(), cfg.LatestNewsCacheTTL)
	handler := handlers.NewNewsHandler(svc, container.GetLogger())
	return modules.NewNewsModule(handler, container.GetJWT())
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry) {
	r.Add(buildAuthModule())
	r.Add(buildNewsModule())
}

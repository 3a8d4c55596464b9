package repository

import (
	"context"

	"github.com/oksasatya/go-news-api/internal/domain/entity"
)

// ArticleRepository defines the interface for article database operations.
// List returns the store's natural order; ListLatest orders by UpdatedAt
// descending with ties broken by natural order.
type ArticleRepository interface {
	Create(ctx context.Context, a *entity.Article) error
	GetByID(ctx context.Context, id int64) (*entity.Article, error)
	List(ctx context.Context) ([]*entity.Article, error)
	ListLatest(ctx context.Context, limit int) ([]*entity.Article, error)
	Update(ctx context.Context, a *entity.Article) error
	Delete(ctx context.Context, id int64) error
}

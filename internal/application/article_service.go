package application

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-news-api/internal/domain/entity"
	repo "github.com/oksasatya/go-news-api/internal/domain/repository"
	"github.com/oksasatya/go-news-api/pkg/helpers"
)

var (
	ErrArticleNotFound  = errors.New("article not found")
	ErrNotArticleAuthor = errors.New("not the article author")
)

// latestNewsLimit caps the /latest_news feed.
const latestNewsLimit = 10

const latestNewsCacheKey = "news:latest"

// ArticleService implements the article operations. Authorization is
// identity-based: only the author of an article may edit or delete it,
// and an absent caller never matches any author.
type ArticleService struct {
	Repo     repo.ArticleRepository
	Redis    *redis.Client
	Logger   *logrus.Logger
	CacheTTL time.Duration
}

func NewArticleService(r repo.ArticleRepository, rdb *redis.Client, logger *logrus.Logger, cacheTTL time.Duration) *ArticleService {
	return &ArticleService{Repo: r, Redis: rdb, Logger: logger, CacheTTL: cacheTTL}
}

// ArticleRecord is the read shape shared by listing and single reads.
// Description carries the article content; Author is the author's
// username, empty for anonymous articles.
type ArticleRecord struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Author      string    `json:"author"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toRecord(a *entity.Article) ArticleRecord {
	return ArticleRecord{
		ID:          a.ID,
		Title:       a.Title,
		Description: a.Content,
		Author:      a.AuthorUsername,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}

func toRecords(articles []*entity.Article) []ArticleRecord {
	out := make([]ArticleRecord, 0, len(articles))
	for _, a := range articles {
		out = append(out, toRecord(a))
	}
	return out
}

// List returns all articles in the store's natural order.
func (s *ArticleService) List(ctx context.Context) ([]ArticleRecord, error) {
	articles, err := s.Repo.List(ctx)
	if err != nil {
		return nil, err
	}
	return toRecords(articles), nil
}

// Latest returns at most 10 articles ordered by most recent update.
// Results are cached in Redis for a short TTL; cache failures fall
// through to the store.
func (s *ArticleService) Latest(ctx context.Context) ([]ArticleRecord, error) {
	if s.Redis != nil {
		var cached []ArticleRecord
		if hit, err := helpers.RedisGetJSON(ctx, s.Redis, latestNewsCacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}
	articles, err := s.Repo.ListLatest(ctx, latestNewsLimit)
	if err != nil {
		return nil, err
	}
	records := toRecords(articles)
	if s.Redis != nil {
		if err := helpers.RedisSetJSON(ctx, s.Redis, latestNewsCacheKey, records, s.CacheTTL); err != nil && s.Logger != nil {
			s.Logger.WithError(err).Warn("latest news cache set failed")
		}
	}
	return records, nil
}

// Get returns one article by id.
func (s *ArticleService) Get(ctx context.Context, id int64) (ArticleRecord, error) {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ArticleRecord{}, ErrArticleNotFound
		}
		return ArticleRecord{}, err
	}
	return toRecord(a), nil
}

type CreateArticleInput struct {
	Title   string
	Content string
}

// Create persists a new article with both timestamps set to now.
// The author may be absent; the article is then anonymous and can never
// be edited or deleted afterwards.
func (s *ArticleService) Create(ctx context.Context, in CreateArticleInput, authorID *int64) (int64, error) {
	now := time.Now()
	a := &entity.Article{
		Title:     in.Title,
		Content:   in.Content,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.Repo.Create(ctx, a); err != nil {
		return 0, err
	}
	s.invalidateLatest(ctx)
	if s.Logger != nil {
		s.Logger.WithField("article_id", a.ID).Info("article created")
	}
	return a.ID, nil
}

// UpdateArticleInput carries the PATCH semantics: a nil field keeps the
// article's prior value.
type UpdateArticleInput struct {
	Title   *string
	Content *string
}

// Update edits an article's title and/or content. Existence is checked
// before ownership. UpdatedAt is refreshed unconditionally on success.
func (s *ArticleService) Update(ctx context.Context, id int64, in UpdateArticleInput, callerID *int64) error {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if !a.OwnedBy(callerID) {
		return ErrNotArticleAuthor
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Content != nil {
		a.Content = *in.Content
	}
	a.UpdatedAt = time.Now()
	if err := s.Repo.Update(ctx, a); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	s.invalidateLatest(ctx)
	return nil
}

// Delete removes an article permanently after the same existence and
// ownership checks as Update.
func (s *ArticleService) Delete(ctx context.Context, id int64, callerID *int64) error {
	a, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	if !a.OwnedBy(callerID) {
		return ErrNotArticleAuthor
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrArticleNotFound
		}
		return err
	}
	s.invalidateLatest(ctx)
	if s.Logger != nil {
		s.Logger.WithField("article_id", id).Info("article deleted")
	}
	return nil
}

func (s *ArticleService) invalidateLatest(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := helpers.RedisDel(ctx, s.Redis, latestNewsCacheKey); err != nil && s.Logger != nil {
		s.Logger.WithError(err).Warn("latest news cache invalidation failed")
	}
}

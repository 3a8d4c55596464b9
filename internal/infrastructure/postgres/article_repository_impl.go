package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-news-api/internal/domain/entity"
	"github.com/oksasatya/go-news-api/internal/domain/repository"
)

// articleColumns joins the author's username so read paths return the
// display identity in one query. COALESCE keeps anonymous articles at "".
const articleColumns = `
	a.id, a.title, a.content, a.author_id, COALESCE(u.username, ''),
	a.created_at, a.updated_at
`

type ArticleRepository struct {
	pool *pgxpool.Pool
}

func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

func (r *ArticleRepository) Create(ctx context.Context, a *entity.Article) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO articles (title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, a.Title, a.Content, a.AuthorID, a.CreatedAt, a.UpdatedAt)

	return row.Scan(&a.ID)
}

func (r *ArticleRepository) GetByID(ctx context.Context, id int64) (*entity.Article, error) {
	a := &entity.Article{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		LEFT JOIN users u ON u.id = a.author_id
		WHERE a.id = $1
	`, id)

	if err := scanArticle(row, a); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (r *ArticleRepository) List(ctx context.Context) ([]*entity.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		LEFT JOIN users u ON u.id = a.author_id
		ORDER BY a.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectArticles(rows)
}

func (r *ArticleRepository) ListLatest(ctx context.Context, limit int) ([]*entity.Article, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles a
		LEFT JOIN users u ON u.id = a.author_id
		ORDER BY a.updated_at DESC, a.id
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectArticles(rows)
}

func (r *ArticleRepository) Update(ctx context.Context, a *entity.Article) error {
	res, err := r.pool.Exec(ctx, `
		UPDATE articles
		SET title = $1, content = $2, updated_at = $3
		WHERE id = $4
	`, a.Title, a.Content, a.UpdatedAt, a.ID)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.pool.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanArticle(row pgx.Row, a *entity.Article) error {
	return row.Scan(&a.ID, &a.Title, &a.Content, &a.AuthorID, &a.AuthorUsername,
		&a.CreatedAt, &a.UpdatedAt)
}

func collectArticles(rows pgx.Rows) ([]*entity.Article, error) {
	out := make([]*entity.Article, 0)
	for rows.Next() {
		a := &entity.Article{}
		if err := scanArticle(rows, a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

var _ repository.ArticleRepository = (*ArticleRepository)(nil)

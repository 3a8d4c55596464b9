package application

import (
	"context"
	"sort"

	"github.com/oksasatya/go-news-api/internal/domain/entity"
	"github.com/oksasatya/go-news-api/internal/domain/repository"
)

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	nextID int64
	users  map[int64]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, users: map[int64]*entity.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return repository.ErrDuplicate
		}
	}
	u.ID = f.nextID
	f.nextID++
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, repository.ErrNotFound
}

// fakeArticleRepo is an in-memory ArticleRepository preserving insertion
// order as the store's natural order.
type fakeArticleRepo struct {
	nextID   int64
	articles []*entity.Article
	authors  map[int64]string // user id -> username for the join field
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{nextID: 1, authors: map[int64]string{}}
}

func (f *fakeArticleRepo) withJoin(a *entity.Article) *entity.Article {
	cp := *a
	if cp.AuthorID != nil {
		cp.AuthorUsername = f.authors[*cp.AuthorID]
	}
	return &cp
}

func (f *fakeArticleRepo) Create(_ context.Context, a *entity.Article) error {
	a.ID = f.nextID
	f.nextID++
	cp := *a
	f.articles = append(f.articles, &cp)
	return nil
}

func (f *fakeArticleRepo) GetByID(_ context.Context, id int64) (*entity.Article, error) {
	for _, a := range f.articles {
		if a.ID == id {
			return f.withJoin(a), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeArticleRepo) List(_ context.Context) ([]*entity.Article, error) {
	out := make([]*entity.Article, 0, len(f.articles))
	for _, a := range f.articles {
		out = append(out, f.withJoin(a))
	}
	return out, nil
}

func (f *fakeArticleRepo) ListLatest(_ context.Context, limit int) ([]*entity.Article, error) {
	sorted := make([]*entity.Article, len(f.articles))
	copy(sorted, f.articles)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UpdatedAt.After(sorted[j].UpdatedAt)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	out := make([]*entity.Article, 0, len(sorted))
	for _, a := range sorted {
		out = append(out, f.withJoin(a))
	}
	return out, nil
}

func (f *fakeArticleRepo) Update(_ context.Context, a *entity.Article) error {
	for i, existing := range f.articles {
		if existing.ID == a.ID {
			cp := *a
			f.articles[i] = &cp
			return nil
		}
	}
	return repository.ErrNotFound
}

func (f *fakeArticleRepo) Delete(_ context.Context, id int64) error {
	for i, a := range f.articles {
		if a.ID == id {
			f.articles = append(f.articles[:i], f.articles[i+1:]...)
			return nil
		}
	}
	return repository.ErrNotFound
}

package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64p(v int64) *int64 { return &v }

func strp(s string) *string { return &s }

func newTestArticleService(repo *fakeArticleRepo) *ArticleService {
	return NewArticleService(repo, nil, nil, 30*time.Second)
}

func TestCreate_SetsTimestampsAndAuthor(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.authors[7] = "alice"
	svc := newTestArticleService(repo)

	id, err := svc.Create(context.Background(), CreateArticleInput{Title: "A", Content: "B"}, int64p(7))
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	rec, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "A", rec.Title)
	assert.Equal(t, "B", rec.Description)
	assert.Equal(t, "alice", rec.Author)
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
}

func TestCreate_AnonymousAuthor(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)

	id, err := svc.Create(context.Background(), CreateArticleInput{Title: "A"}, nil)
	require.NoError(t, err)

	rec, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, rec.Author)

	// an anonymous article belongs to nobody
	err = svc.Update(context.Background(), id, UpdateArticleInput{Title: strp("x")}, int64p(7))
	assert.ErrorIs(t, err, ErrNotArticleAuthor)
}

func TestGet_NotFound(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	_, err := svc.Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestUpdate_NotFound(t *testing.T) {
	svc := newTestArticleService(newFakeArticleRepo())

	err := svc.Update(context.Background(), 42, UpdateArticleInput{Title: strp("x")}, int64p(1))
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestUpdate_NotAuthor(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)

	id, err := svc.Create(context.Background(), CreateArticleInput{Title: "A", Content: "B"}, int64p(1))
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, UpdateArticleInput{Title: strp("x")}, int64p(2))
	require.ErrorIs(t, err, ErrNotArticleAuthor)

	err = svc.Update(context.Background(), id, UpdateArticleInput{Title: strp("x")}, nil)
	require.ErrorIs(t, err, ErrNotArticleAuthor)

	rec, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "A", rec.Title, "article must be unchanged after rejected edits")
	assert.Equal(t, "B", rec.Description)
}

func TestUpdate_PartialFields(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)

	id, err := svc.Create(context.Background(), CreateArticleInput{Title: "A", Content: "B"}, int64p(1))
	require.NoError(t, err)
	before, err := svc.Get(context.Background(), id)
	require.NoError(t, err)

	err = svc.Update(context.Background(), id, UpdateArticleInput{Title: strp("New title")}, int64p(1))
	require.NoError(t, err)

	after, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "New title", after.Title)
	assert.Equal(t, "B", after.Description, "omitted content keeps prior value")
	assert.True(t, after.UpdatedAt.After(before.UpdatedAt), "updated_at must be refreshed")
	assert.Equal(t, before.CreatedAt, after.CreatedAt)
	assert.False(t, after.UpdatedAt.Before(after.CreatedAt))

	// explicit empty string is a real replacement, not an omission
	err = svc.Update(context.Background(), id, UpdateArticleInput{Content: strp("")}, int64p(1))
	require.NoError(t, err)
	final, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, final.Description)
	assert.Equal(t, "New title", final.Title)
}

func TestDelete_OwnershipAndRemoval(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)

	id, err := svc.Create(context.Background(), CreateArticleInput{Title: "A"}, int64p(1))
	require.NoError(t, err)

	err = svc.Delete(context.Background(), id, int64p(2))
	require.ErrorIs(t, err, ErrNotArticleAuthor)
	_, err = svc.Get(context.Background(), id)
	require.NoError(t, err, "article must survive a rejected delete")

	err = svc.Delete(context.Background(), id, int64p(1))
	require.NoError(t, err)

	_, err = svc.Get(context.Background(), id)
	assert.ErrorIs(t, err, ErrArticleNotFound)

	err = svc.Delete(context.Background(), id, int64p(1))
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

func TestLatest_LimitAndOrder(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)

	for i := 0; i < 15; i++ {
		_, err := svc.Create(context.Background(), CreateArticleInput{Title: fmt.Sprintf("n%d", i)}, int64p(1))
		require.NoError(t, err)
	}

	records, err := svc.Latest(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 10)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i-1].UpdatedAt.Before(records[i].UpdatedAt),
			"latest must be ordered by updated_at descending")
	}
	// the most recently created article leads the feed
	assert.Equal(t, "n14", records[0].Title)
}

func TestList_NaturalOrder(t *testing.T) {
	repo := newFakeArticleRepo()
	svc := newTestArticleService(repo)

	for _, title := range []string{"first", "second", "third"} {
		_, err := svc.Create(context.Background(), CreateArticleInput{Title: title}, nil)
		require.NoError(t, err)
	}

	records, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "first", records[0].Title)
	assert.Equal(t, "third", records[2].Title)
}

// Full lifecycle: create as u1, reject edit by u2, partial edit by u1,
// delete by u1, read after delete.
func TestArticleLifecycle(t *testing.T) {
	repo := newFakeArticleRepo()
	repo.authors[1] = "u1"
	repo.authors[2] = "u2"
	svc := newTestArticleService(repo)
	ctx := context.Background()

	id, err := svc.Create(ctx, CreateArticleInput{Title: "A", Content: "B"}, int64p(1))
	require.NoError(t, err)
	created, err := svc.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, created.CreatedAt, created.UpdatedAt)
	t0 := created.UpdatedAt

	err = svc.Update(ctx, id, UpdateArticleInput{Content: strp("C")}, int64p(2))
	require.ErrorIs(t, err, ErrNotArticleAuthor)

	err = svc.Update(ctx, id, UpdateArticleInput{Content: strp("C")}, int64p(1))
	require.NoError(t, err)
	edited, err := svc.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "A", edited.Title)
	assert.Equal(t, "C", edited.Description)
	assert.True(t, edited.UpdatedAt.After(t0))

	require.NoError(t, svc.Delete(ctx, id, int64p(1)))

	_, err = svc.Get(ctx, id)
	assert.ErrorIs(t, err, ErrArticleNotFound)
}

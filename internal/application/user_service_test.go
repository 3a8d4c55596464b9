package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-news-api/pkg/helpers"
)

func newTestUserService(repo *fakeUserRepo) *UserService {
	jwt := helpers.NewJWTManager("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
	return NewUserService(repo, jwt, nil, nil, 24*time.Hour)
}

func TestRegister_EmptyFields(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
	}{
		{"empty username", "", "secret"},
		{"empty password", "alice", ""},
		{"both empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			svc := newTestUserService(repo)

			u, err := svc.Register(context.Background(), tt.username, tt.password)
			require.ErrorIs(t, err, ErrEmptyCredentials)
			assert.Nil(t, u)
			assert.Empty(t, repo.users, "nothing may be persisted on validation failure")
		})
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	u, err := svc.Register(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice", u.Username)
	assert.Len(t, repo.users, 1)

	stored := repo.users[u.ID]
	assert.NotEqual(t, "s3cret", stored.Password)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "s3cret"))
}

func TestRegister_DuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "alice", "other")
	require.ErrorIs(t, err, ErrUsernameTaken)
	assert.Len(t, repo.users, 1)
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	u, err := svc.Authenticate(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", u.Username)

	_, err = svc.Authenticate(context.Background(), "alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_IssuesTokenPair(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestUserService(repo)

	_, err := svc.Register(context.Background(), "alice", "s3cret")
	require.NoError(t, err)

	res, pair, err := svc.Login(context.Background(), "alice", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "alice", res.Username)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.JWT.ParseAccessToken(pair.AccessToken)
	require.NoError(t, err)
	uid, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, res.UserID, uid)
	assert.NotEmpty(t, claims.SessionID)
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc := newTestUserService(newFakeUserRepo())

	_, _, err := svc.Refresh(context.Background(), "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

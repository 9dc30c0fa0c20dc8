package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]models.User // keyed by email
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			return u, nil
		}
	}
	return models.User{}, db.ErrNotFound
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (models.User, error) {
	u, ok := f.users[email]
	if !ok {
		return models.User{}, db.ErrNotFound
	}
	return u, nil
}

type fakeTokenRepo struct {
	users  *fakeUserRepo
	tokens map[string]models.AuthToken // keyed by hash
}

func (f *fakeTokenRepo) Create(_ context.Context, t *models.AuthToken) error {
	f.tokens[t.TokenHash] = *t
	return nil
}

func (f *fakeTokenRepo) FindValid(_ context.Context, hash string, now time.Time) (models.User, error) {
	t, ok := f.tokens[hash]
	if !ok || !t.ExpiresAt.After(now) {
		return models.User{}, db.ErrNotFound
	}
	u, err := f.users.GetByID(nil, t.UserID)
	if err != nil || !u.IsActive {
		return models.User{}, db.ErrNotFound
	}
	return u, nil
}

func (f *fakeTokenRepo) DeleteByHash(_ context.Context, hash string) error {
	delete(f.tokens, hash)
	return nil
}

func newTestService(t *testing.T, ttl time.Duration) (*Service, *fakeTokenRepo) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret"), bcrypt.MinCost)
	require.NoError(t, err)
	users := &fakeUserRepo{users: map[string]models.User{
		"admin@example.com": {
			ID:           "user-1",
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Role:         "admin",
			IsActive:     true,
		},
	}}
	tokens := &fakeTokenRepo{users: users, tokens: map[string]models.AuthToken{}}
	return NewService(users, tokens, ttl), tokens
}

func TestLoginAndAuthenticate(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	token, user, err := svc.Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "user-1", user.ID)

	principal, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	require.Equal(t, "user-1", principal.ID)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestLoginRejections(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)
	ctx := context.Background()

	_, _, err := svc.Login(ctx, "admin@example.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestExpiredTokenRejected(t *testing.T) {
	svc, tokens := newTestService(t, time.Hour)
	ctx := context.Background()

	token, _, err := svc.Login(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	rec := tokens.tokens[HashToken(token)]
	rec.ExpiresAt = time.Now().Add(-time.Minute)
	tokens.tokens[HashToken(token)] = rec

	_, err = svc.Authenticate(ctx, token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestRequireAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newTestService(t, time.Hour)
	token, _, err := svc.Login(context.Background(), "admin@example.com", "secret")
	require.NoError(t, err)

	r := gin.New()
	r.GET("/guarded", RequireAuth(svc), func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": u.ID})
	})
	r.GET("/admin", RequireAuth(svc), RequireRole("owner"), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	// No credential.
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// Bearer header.
	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Cookie fallback.
	req = httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// Wrong role.
	req = httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

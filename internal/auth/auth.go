package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials covers unknown emails, wrong passwords and
	// inactive accounts without distinguishing them to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken covers missing, unknown and expired tokens.
	ErrInvalidToken = errors.New("invalid token")
)

// Service verifies credentials and resolves bearer tokens to principals.
// Only the plain token leaves the process; the store holds its SHA-256.
type Service struct {
	users  db.UserRepository
	tokens db.TokenRepository
	ttl    time.Duration
}

// NewService wires the guard to its repositories. ttl bounds token lifetime.
func NewService(users db.UserRepository, tokens db.TokenRepository, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Service{users: users, tokens: tokens, ttl: ttl}
}

// Login checks the password and issues a fresh bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, models.User, error) {
	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "", models.User{}, ErrInvalidCredentials
		}
		return "", models.User{}, err
	}
	if !u.IsActive {
		return "", models.User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return "", models.User{}, ErrInvalidCredentials
	}

	token, err := newToken()
	if err != nil {
		return "", models.User{}, err
	}
	rec := models.AuthToken{
		UserID:    u.ID,
		TokenHash: HashToken(token),
		ExpiresAt: time.Now().Add(s.ttl),
	}
	if err := s.tokens.Create(ctx, &rec); err != nil {
		return "", models.User{}, err
	}
	return token, u, nil
}

// Authenticate resolves a presented token to its user principal.
func (s *Service) Authenticate(ctx context.Context, token string) (models.User, error) {
	if token == "" {
		return models.User{}, ErrInvalidToken
	}
	u, err := s.tokens.FindValid(ctx, HashToken(token), time.Now())
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return models.User{}, ErrInvalidToken
		}
		return models.User{}, err
	}
	return u, nil
}

// Logout revokes the presented token. Unknown tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.tokens.DeleteByHash(ctx, HashToken(token))
}

// HashToken returns the hex SHA-256 digest stored in place of the token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

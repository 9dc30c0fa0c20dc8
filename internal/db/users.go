package db

import (
	"context"
	"time"

	"github.com/yourorg/service-admin/internal/models"
	"gorm.io/gorm"
)

// UserRepository resolves principals for the access guard. Nothing in the
// entity handlers mutates users.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByEmail(ctx context.Context, email string) (models.User, error)
}

// TokenRepository stores hashed bearer tokens.
type TokenRepository interface {
	Create(ctx context.Context, t *models.AuthToken) error
	// FindValid resolves a token hash to its owning user, skipping expired
	// tokens and inactive users.
	FindValid(ctx context.Context, tokenHash string, now time.Time) (models.User, error)
	DeleteByHash(ctx context.Context, tokenHash string) error
}

// NewUserRepo returns a repository bound to the gorm handle.
func NewUserRepo(db *gorm.DB) UserRepository { return &userRepo{db: db} }

// NewTokenRepo returns a repository bound to the gorm handle.
func NewTokenRepo(db *gorm.DB) TokenRepository { return &tokenRepo{db: db} }

type userRepo struct{ db *gorm.DB }
type tokenRepo struct{ db *gorm.DB }

func (r *userRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return models.User{}, mapGormErr(err)
	}
	return u, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, "email = ?", email).Error; err != nil {
		return models.User{}, mapGormErr(err)
	}
	return u, nil
}

func (r *tokenRepo) Create(ctx context.Context, t *models.AuthToken) error {
	return mapGormErr(r.db.WithContext(ctx).Create(t).Error)
}

func (r *tokenRepo) FindValid(ctx context.Context, tokenHash string, now time.Time) (models.User, error) {
	var t models.AuthToken
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("token_hash = ? AND expires_at > ?", tokenHash, now).
		First(&t).Error
	if err != nil {
		return models.User{}, mapGormErr(err)
	}
	if t.User == nil || !t.User.IsActive {
		return models.User{}, ErrNotFound
	}
	return *t.User, nil
}

func (r *tokenRepo) DeleteByHash(ctx context.Context, tokenHash string) error {
	return r.db.WithContext(ctx).
		Where("token_hash = ?", tokenHash).
		Delete(&models.AuthToken{}).Error
}

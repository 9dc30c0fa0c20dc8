package db

import (
	"context"

	"github.com/yourorg/service-admin/internal/models"
	"gorm.io/gorm"
)

// TemplateRepository handles message templates.
type TemplateRepository interface {
	List(ctx context.Context) ([]models.MessageTemplate, error)
	Get(ctx context.Context, id string) (models.MessageTemplate, error)
	Create(ctx context.Context, t *models.MessageTemplate) error
	Save(ctx context.Context, t *models.MessageTemplate) error
	Delete(ctx context.Context, id string) error
}

// NewTemplateRepo returns a repository bound to the gorm handle.
func NewTemplateRepo(db *gorm.DB) TemplateRepository { return &templateRepo{db: db} }

type templateRepo struct{ db *gorm.DB }

func (r *templateRepo) List(ctx context.Context) ([]models.MessageTemplate, error) {
	var out []models.MessageTemplate
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *templateRepo) Get(ctx context.Context, id string) (models.MessageTemplate, error) {
	var t models.MessageTemplate
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		return models.MessageTemplate{}, mapGormErr(err)
	}
	return t, nil
}

func (r *templateRepo) Create(ctx context.Context, t *models.MessageTemplate) error {
	return mapGormErr(r.db.WithContext(ctx).Create(t).Error)
}

func (r *templateRepo) Save(ctx context.Context, t *models.MessageTemplate) error {
	return mapGormErr(r.db.WithContext(ctx).Save(t).Error)
}

func (r *templateRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.MessageTemplate{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

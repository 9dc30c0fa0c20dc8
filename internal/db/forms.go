package db

import (
	"context"

	"github.com/yourorg/service-admin/internal/models"
	"gorm.io/gorm"
)

// FormRepository handles the flat form records.
type FormRepository interface {
	List(ctx context.Context) ([]models.Form, error)
	Get(ctx context.Context, id string) (models.Form, error)
	// NameOrURLTaken checks both unique keys with a single query.
	NameOrURLTaken(ctx context.Context, name, url, excludeID string) (bool, error)
	Create(ctx context.Context, f *models.Form) error
	Save(ctx context.Context, f *models.Form) error
	Delete(ctx context.Context, id string) error
}

// NewFormRepo returns a repository bound to the gorm handle.
func NewFormRepo(db *gorm.DB) FormRepository { return &formRepo{db: db} }

type formRepo struct{ db *gorm.DB }

func (r *formRepo) List(ctx context.Context) ([]models.Form, error) {
	var out []models.Form
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *formRepo) Get(ctx context.Context, id string) (models.Form, error) {
	var f models.Form
	if err := r.db.WithContext(ctx).First(&f, "id = ?", id).Error; err != nil {
		return models.Form{}, mapGormErr(err)
	}
	return f, nil
}

func (r *formRepo) NameOrURLTaken(ctx context.Context, name, url, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.Form{}).
		Where("name = ? OR url = ?", name, url)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *formRepo) Create(ctx context.Context, f *models.Form) error {
	return mapGormErr(r.db.WithContext(ctx).Create(f).Error)
}

func (r *formRepo) Save(ctx context.Context, f *models.Form) error {
	return mapGormErr(r.db.WithContext(ctx).Save(f).Error)
}

func (r *formRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Form{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

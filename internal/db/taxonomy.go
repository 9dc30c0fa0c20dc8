package db

import (
	"context"
	"errors"

	"github.com/yourorg/service-admin/internal/models"
	"gorm.io/gorm"
)

// TaxonomyRepository manages form categories and their subcategories.
type TaxonomyRepository interface {
	ListCategories(ctx context.Context) ([]models.FormCategory, error)
	GetCategory(ctx context.Context, id string) (models.FormCategory, error)
	// CategoryNameTaken reports whether another category (excluding excludeID,
	// which may be empty) already uses the exact name.
	CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error)
	CreateCategory(ctx context.Context, c *models.FormCategory) error
	SaveCategory(ctx context.Context, c *models.FormCategory) error
	DeleteCategory(ctx context.Context, id string) error
	CountSubcategories(ctx context.Context, categoryID string) (int64, error)

	// ListSubcategories returns all subcategories, optionally scoped to one
	// category when categoryID is non-empty.
	ListSubcategories(ctx context.Context, categoryID string) ([]models.FormSubCategory, error)
	GetSubcategory(ctx context.Context, id string) (models.FormSubCategory, error)
	SubcategoryNameTaken(ctx context.Context, name, categoryID, excludeID string) (bool, error)
	CreateSubcategory(ctx context.Context, s *models.FormSubCategory) error
	SaveSubcategory(ctx context.Context, s *models.FormSubCategory) error
	DeleteSubcategory(ctx context.Context, id string) error
}

// NewTaxonomyRepo returns a repository bound to the gorm handle.
func NewTaxonomyRepo(db *gorm.DB) TaxonomyRepository { return &taxonomyRepo{db: db} }

type taxonomyRepo struct{ db *gorm.DB }

func (r *taxonomyRepo) ListCategories(ctx context.Context) ([]models.FormCategory, error) {
	var out []models.FormCategory
	err := r.db.WithContext(ctx).
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Order("created_at DESC").
		Find(&out).Error
	return out, err
}

func (r *taxonomyRepo) GetCategory(ctx context.Context, id string) (models.FormCategory, error) {
	var c models.FormCategory
	err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error
	if err != nil {
		return models.FormCategory{}, mapGormErr(err)
	}
	return c, nil
}

func (r *taxonomyRepo) CategoryNameTaken(ctx context.Context, name, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).Model(&models.FormCategory{}).Where("name = ?", name)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *taxonomyRepo) CreateCategory(ctx context.Context, c *models.FormCategory) error {
	return mapGormErr(r.db.WithContext(ctx).Create(c).Error)
}

func (r *taxonomyRepo) SaveCategory(ctx context.Context, c *models.FormCategory) error {
	// Column-scoped update so preloaded associations are not upserted.
	return mapGormErr(r.db.WithContext(ctx).
		Model(&models.FormCategory{ID: c.ID}).
		Select("Name", "Description", "IsActive", "UpdatedByID").
		Updates(c).Error)
}

func (r *taxonomyRepo) DeleteCategory(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.FormCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *taxonomyRepo) CountSubcategories(ctx context.Context, categoryID string) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&models.FormSubCategory{}).
		Where("category_id = ?", categoryID).
		Count(&n).Error
	return n, err
}

func (r *taxonomyRepo) ListSubcategories(ctx context.Context, categoryID string) ([]models.FormSubCategory, error) {
	q := r.db.WithContext(ctx).
		Preload("Category").
		Preload("CreatedBy").
		Preload("UpdatedBy").
		Order("created_at DESC")
	if categoryID != "" {
		q = q.Where("category_id = ?", categoryID)
	}
	var out []models.FormSubCategory
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	for i := range out {
		if out[i].Category != nil {
			out[i].CategoryName = out[i].Category.Name
		}
	}
	return out, nil
}

func (r *taxonomyRepo) GetSubcategory(ctx context.Context, id string) (models.FormSubCategory, error) {
	var s models.FormSubCategory
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("CreatedBy").
		Preload("UpdatedBy").
		First(&s, "id = ?", id).Error
	if err != nil {
		return models.FormSubCategory{}, mapGormErr(err)
	}
	if s.Category != nil {
		s.CategoryName = s.Category.Name
	}
	return s, nil
}

func (r *taxonomyRepo) SubcategoryNameTaken(ctx context.Context, name, categoryID, excludeID string) (bool, error) {
	q := r.db.WithContext(ctx).
		Model(&models.FormSubCategory{}).
		Where("name = ? AND category_id = ?", name, categoryID)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *taxonomyRepo) CreateSubcategory(ctx context.Context, s *models.FormSubCategory) error {
	return mapGormErr(r.db.WithContext(ctx).Create(s).Error)
}

func (r *taxonomyRepo) SaveSubcategory(ctx context.Context, s *models.FormSubCategory) error {
	// Save would try to upsert the preloaded associations; persist columns only.
	return mapGormErr(r.db.WithContext(ctx).
		Model(&models.FormSubCategory{ID: s.ID}).
		Select("Name", "CategoryID", "Description", "IsActive", "Fields", "UpdatedByID").
		Updates(s).Error)
}

func (r *taxonomyRepo) DeleteSubcategory(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.FormSubCategory{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// mapGormErr maps driver errors to the repository's sentinel errors.
func mapGormErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrConflict
	}
	return err
}

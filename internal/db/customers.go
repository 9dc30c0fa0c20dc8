package db

import (
	"context"

	"github.com/yourorg/service-admin/internal/models"
	"gorm.io/gorm"
)

// CustomerRepository handles the customer directory.
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	Get(ctx context.Context, id string) (models.Customer, error)
	// Search matches the query case-insensitively as a substring of name,
	// phone, email, address line1, city or state, capped at limit rows.
	Search(ctx context.Context, query string, limit int) ([]models.Customer, error)
	// ContactConflict returns the name of a contact field (phone, email)
	// already used by another customer, or "" when there is no collision.
	ContactConflict(ctx context.Context, phone, email, excludeID string) (string, error)
	Create(ctx context.Context, c *models.Customer) error
	Save(ctx context.Context, c *models.Customer) error
	Delete(ctx context.Context, id string) error
}

// NewCustomerRepo returns a repository bound to the gorm handle.
func NewCustomerRepo(db *gorm.DB) CustomerRepository { return &customerRepo{db: db} }

type customerRepo struct{ db *gorm.DB }

func (r *customerRepo) List(ctx context.Context) ([]models.Customer, error) {
	var out []models.Customer
	err := r.db.WithContext(ctx).Order("created_at DESC").Find(&out).Error
	return out, err
}

func (r *customerRepo) Get(ctx context.Context, id string) (models.Customer, error) {
	var c models.Customer
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		return models.Customer{}, mapGormErr(err)
	}
	return c, nil
}

func (r *customerRepo) Search(ctx context.Context, query string, limit int) ([]models.Customer, error) {
	if limit <= 0 {
		limit = 10
	}
	pattern := "%" + query + "%"
	var out []models.Customer
	err := r.db.WithContext(ctx).
		Where(
			"name ILIKE ? OR phone ILIKE ? OR email ILIKE ? OR address_line1 ILIKE ? OR address_city ILIKE ? OR address_state ILIKE ?",
			pattern, pattern, pattern, pattern, pattern, pattern,
		).
		Limit(limit).
		Find(&out).Error
	return out, err
}

func (r *customerRepo) ContactConflict(ctx context.Context, phone, email, excludeID string) (string, error) {
	for _, key := range []struct{ field, value string }{
		{"phone", phone},
		{"email", email},
	} {
		q := r.db.WithContext(ctx).
			Model(&models.Customer{}).
			Where(key.field+" = ?", key.value)
		if excludeID != "" {
			q = q.Where("id <> ?", excludeID)
		}
		var n int64
		if err := q.Count(&n).Error; err != nil {
			return "", err
		}
		if n > 0 {
			return key.field, nil
		}
	}
	return "", nil
}

func (r *customerRepo) Create(ctx context.Context, c *models.Customer) error {
	return mapGormErr(r.db.WithContext(ctx).Create(c).Error)
}

func (r *customerRepo) Save(ctx context.Context, c *models.Customer) error {
	return mapGormErr(r.db.WithContext(ctx).Save(c).Error)
}

func (r *customerRepo) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&models.Customer{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

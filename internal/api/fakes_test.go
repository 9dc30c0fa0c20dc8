package api

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"go.uber.org/zap"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func testLogger() *zap.Logger { return zap.NewNop() }

// ---- taxonomy ----

type fakeTaxonomyRepo struct {
	categories map[string]models.FormCategory
	subs       map[string]models.FormSubCategory
}

func newFakeTaxonomyRepo() *fakeTaxonomyRepo {
	return &fakeTaxonomyRepo{
		categories: map[string]models.FormCategory{},
		subs:       map[string]models.FormSubCategory{},
	}
}

func (f *fakeTaxonomyRepo) ListCategories(context.Context) ([]models.FormCategory, error) {
	out := make([]models.FormCategory, 0, len(f.categories))
	for _, c := range f.categories {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTaxonomyRepo) GetCategory(_ context.Context, id string) (models.FormCategory, error) {
	c, ok := f.categories[id]
	if !ok {
		return models.FormCategory{}, db.ErrNotFound
	}
	return c, nil
}

func (f *fakeTaxonomyRepo) CategoryNameTaken(_ context.Context, name, excludeID string) (bool, error) {
	for _, c := range f.categories {
		if c.Name == name && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaxonomyRepo) CreateCategory(_ context.Context, c *models.FormCategory) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeTaxonomyRepo) SaveCategory(_ context.Context, c *models.FormCategory) error {
	c.UpdatedAt = time.Now()
	f.categories[c.ID] = *c
	return nil
}

func (f *fakeTaxonomyRepo) DeleteCategory(_ context.Context, id string) error {
	if _, ok := f.categories[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeTaxonomyRepo) CountSubcategories(_ context.Context, categoryID string) (int64, error) {
	var n int64
	for _, s := range f.subs {
		if s.CategoryID == categoryID {
			n++
		}
	}
	return n, nil
}

func (f *fakeTaxonomyRepo) ListSubcategories(_ context.Context, categoryID string) ([]models.FormSubCategory, error) {
	out := make([]models.FormSubCategory, 0, len(f.subs))
	for _, s := range f.subs {
		if categoryID == "" || s.CategoryID == categoryID {
			out = append(out, f.annotate(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTaxonomyRepo) GetSubcategory(_ context.Context, id string) (models.FormSubCategory, error) {
	s, ok := f.subs[id]
	if !ok {
		return models.FormSubCategory{}, db.ErrNotFound
	}
	return f.annotate(s), nil
}

func (f *fakeTaxonomyRepo) annotate(s models.FormSubCategory) models.FormSubCategory {
	if c, ok := f.categories[s.CategoryID]; ok {
		s.CategoryName = c.Name
	}
	return s
}

func (f *fakeTaxonomyRepo) SubcategoryNameTaken(_ context.Context, name, categoryID, excludeID string) (bool, error) {
	for _, s := range f.subs {
		if s.Name == name && s.CategoryID == categoryID && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaxonomyRepo) CreateSubcategory(_ context.Context, s *models.FormSubCategory) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	f.subs[s.ID] = *s
	return nil
}

func (f *fakeTaxonomyRepo) SaveSubcategory(_ context.Context, s *models.FormSubCategory) error {
	s.UpdatedAt = time.Now()
	f.subs[s.ID] = *s
	return nil
}

func (f *fakeTaxonomyRepo) DeleteSubcategory(_ context.Context, id string) error {
	if _, ok := f.subs[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.subs, id)
	return nil
}

// ---- forms ----

type fakeFormRepo struct {
	forms map[string]models.Form
}

func newFakeFormRepo() *fakeFormRepo { return &fakeFormRepo{forms: map[string]models.Form{}} }

func (f *fakeFormRepo) List(context.Context) ([]models.Form, error) {
	out := make([]models.Form, 0, len(f.forms))
	for _, v := range f.forms {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeFormRepo) Get(_ context.Context, id string) (models.Form, error) {
	v, ok := f.forms[id]
	if !ok {
		return models.Form{}, db.ErrNotFound
	}
	return v, nil
}

func (f *fakeFormRepo) NameOrURLTaken(_ context.Context, name, url, excludeID string) (bool, error) {
	for _, v := range f.forms {
		if (v.Name == name || v.URL == url) && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeFormRepo) Create(_ context.Context, v *models.Form) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	f.forms[v.ID] = *v
	return nil
}

func (f *fakeFormRepo) Save(_ context.Context, v *models.Form) error {
	v.UpdatedAt = time.Now()
	f.forms[v.ID] = *v
	return nil
}

func (f *fakeFormRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.forms[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.forms, id)
	return nil
}

// ---- customers ----

type fakeCustomerRepo struct {
	customers map[string]models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]models.Customer{}}
}

func (f *fakeCustomerRepo) List(context.Context) ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.customers))
	for _, v := range f.customers {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeCustomerRepo) Get(_ context.Context, id string) (models.Customer, error) {
	v, ok := f.customers[id]
	if !ok {
		return models.Customer{}, db.ErrNotFound
	}
	return v, nil
}

func (f *fakeCustomerRepo) Search(_ context.Context, query string, limit int) ([]models.Customer, error) {
	q := strings.ToLower(query)
	matches := func(c models.Customer) bool {
		for _, s := range []string{c.Name, c.Phone, c.Email, c.Address.Line1, c.Address.City, c.Address.State} {
			if strings.Contains(strings.ToLower(s), q) {
				return true
			}
		}
		return false
	}
	var out []models.Customer
	for _, v := range f.customers {
		if matches(v) {
			out = append(out, v)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

func (f *fakeCustomerRepo) ContactConflict(_ context.Context, phone, email, excludeID string) (string, error) {
	for _, v := range f.customers {
		if v.ID == excludeID {
			continue
		}
		if v.Phone == phone {
			return "phone", nil
		}
		if v.Email == email {
			return "email", nil
		}
	}
	return "", nil
}

func (f *fakeCustomerRepo) Create(_ context.Context, v *models.Customer) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	f.customers[v.ID] = *v
	return nil
}

func (f *fakeCustomerRepo) Save(_ context.Context, v *models.Customer) error {
	v.UpdatedAt = time.Now()
	f.customers[v.ID] = *v
	return nil
}

func (f *fakeCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.customers[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.customers, id)
	return nil
}

// ---- templates ----

type fakeTemplateRepo struct {
	templates map[string]models.MessageTemplate
}

func newFakeTemplateRepo() *fakeTemplateRepo {
	return &fakeTemplateRepo{templates: map[string]models.MessageTemplate{}}
}

func (f *fakeTemplateRepo) List(context.Context) ([]models.MessageTemplate, error) {
	out := make([]models.MessageTemplate, 0, len(f.templates))
	for _, v := range f.templates {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (f *fakeTemplateRepo) Get(_ context.Context, id string) (models.MessageTemplate, error) {
	v, ok := f.templates[id]
	if !ok {
		return models.MessageTemplate{}, db.ErrNotFound
	}
	return v, nil
}

func (f *fakeTemplateRepo) Create(_ context.Context, v *models.MessageTemplate) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.Type == "" {
		v.Type = models.TemplateAlert
	}
	v.CreatedAt = time.Now()
	v.UpdatedAt = v.CreatedAt
	f.templates[v.ID] = *v
	return nil
}

func (f *fakeTemplateRepo) Save(_ context.Context, v *models.MessageTemplate) error {
	v.UpdatedAt = time.Now()
	f.templates[v.ID] = *v
	return nil
}

func (f *fakeTemplateRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.templates[id]; !ok {
		return db.ErrNotFound
	}
	delete(f.templates, id)
	return nil
}

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yourorg/service-admin/internal/models"
)

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func newCategoryRouter(repo *fakeTaxonomyRepo) *gin.Engine {
	r := newTestRouter()
	h := NewCategoryHandler(repo, testLogger())
	r.GET("/categories", h.List)
	r.POST("/categories", h.Create)
	r.PUT("/categories/:id", h.Update)
	r.DELETE("/categories/:id", h.Delete)
	return r
}

func TestCreateCategoryDuplicateName(t *testing.T) {
	repo := newFakeTaxonomyRepo()
	r := newCategoryRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Plumbing"})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Plumbing"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Different case is a different name.
	w = doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "plumbing"})
	require.Equal(t, http.StatusOK, w.Code)
}

func TestCreateCategoryRequiresName(t *testing.T) {
	repo := newFakeTaxonomyRepo()
	r := newCategoryRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "   "})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, repo.categories)
}

func TestUpdateCategory(t *testing.T) {
	repo := newFakeTaxonomyRepo()
	r := newCategoryRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Plumbing"})
	require.Equal(t, http.StatusOK, w.Code)
	var created models.FormCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Electrical"})

	// Rename onto an existing name collides.
	w = doJSON(t, r, http.MethodPut, "/categories/"+created.ID, gin.H{"name": "Electrical"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	// Keeping the same name does not collide with itself.
	active := false
	w = doJSON(t, r, http.MethodPut, "/categories/"+created.ID, gin.H{"name": "Plumbing", "isActive": active})
	require.Equal(t, http.StatusOK, w.Code)
	require.False(t, repo.categories[created.ID].IsActive)

	w = doJSON(t, r, http.MethodPut, "/categories/missing", gin.H{"name": "X"})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteCategoryWithDependents(t *testing.T) {
	repo := newFakeTaxonomyRepo()
	r := newCategoryRouter(repo)

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Plumbing"})
	var created models.FormCategory
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	sub := models.FormSubCategory{Name: "Repairs", CategoryID: created.ID}
	require.NoError(t, repo.CreateSubcategory(nil, &sub))

	w = doJSON(t, r, http.MethodDelete, "/categories/"+created.ID, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	require.NoError(t, repo.DeleteSubcategory(nil, sub.ID))
	w = doJSON(t, r, http.MethodDelete, "/categories/"+created.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, "/categories/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

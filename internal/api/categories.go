package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/auth"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"go.uber.org/zap"
)

// CategoryHandler serves the top level of the form taxonomy.
type CategoryHandler struct {
	repo db.TaxonomyRepository
	log  *zap.Logger
}

func NewCategoryHandler(repo db.TaxonomyRepository, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{repo: repo, log: log}
}

type createCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
}

type updateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	IsActive    *bool  `json:"isActive"`
}

func (h *CategoryHandler) List(c *gin.Context) {
	categories, err := h.repo.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if categories == nil {
		categories = []models.FormCategory{}
	}
	c.JSON(http.StatusOK, categories)
}

func (h *CategoryHandler) Create(c *gin.Context) {
	var req createCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	taken, err := h.repo.CategoryNameTaken(c.Request.Context(), name, "")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category name already exists"})
		return
	}

	actor, _ := auth.CurrentUser(c)
	category := models.FormCategory{
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		CreatedByID: actor.ID,
	}
	if err := h.repo.CreateCategory(c.Request.Context(), &category); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, category)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	category, err := h.repo.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req updateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if name != category.Name {
		taken, err := h.repo.CategoryNameTaken(c.Request.Context(), name, id)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "category name already exists"})
			return
		}
	}

	actor, _ := auth.CurrentUser(c)
	category.Name = name
	category.Description = strings.TrimSpace(req.Description)
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	category.UpdatedByID = &actor.ID

	if err := h.repo.SaveCategory(c.Request.Context(), &category); err != nil {
		respondError(c, h.log, err)
		return
	}
	updated, err := h.repo.GetCategory(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if _, err := h.repo.GetCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}

	n, err := h.repo.CountSubcategories(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if n > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category has subcategories and cannot be deleted"})
		return
	}

	if err := h.repo.DeleteCategory(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/auth"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/fieldschema"
	"github.com/yourorg/service-admin/internal/models"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

// SubcategoryHandler serves subcategories and their embedded field schemas.
type SubcategoryHandler struct {
	repo db.TaxonomyRepository
	log  *zap.Logger
}

func NewSubcategoryHandler(repo db.TaxonomyRepository, log *zap.Logger) *SubcategoryHandler {
	return &SubcategoryHandler{repo: repo, log: log}
}

type subcategoryRequest struct {
	Name        string                        `json:"name" binding:"required"`
	CategoryID  string                        `json:"categoryId" binding:"required"`
	Description string                        `json:"description"`
	Fields      []fieldschema.FieldDefinition `json:"fields"`
	IsActive    *bool                         `json:"isActive"`
}

func (h *SubcategoryHandler) List(c *gin.Context) {
	subs, err := h.repo.ListSubcategories(c.Request.Context(), c.Query("categoryId"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if subs == nil {
		subs = []models.FormSubCategory{}
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubcategoryHandler) Get(c *gin.Context) {
	sub, err := h.repo.GetSubcategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, sub)
}

func (h *SubcategoryHandler) Create(c *gin.Context) {
	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	ctx := c.Request.Context()
	if _, err := h.repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = db.ErrCategoryNotFound
		}
		respondError(c, h.log, err)
		return
	}

	taken, err := h.repo.SubcategoryNameTaken(ctx, name, req.CategoryID, "")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "subcategory name already exists in this category"})
		return
	}

	if err := fieldschema.Validate(req.Fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := marshalFields(req.Fields)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	actor, _ := auth.CurrentUser(c)
	sub := models.FormSubCategory{
		Name:        name,
		CategoryID:  req.CategoryID,
		Description: strings.TrimSpace(req.Description),
		IsActive:    true,
		Fields:      fields,
		CreatedByID: actor.ID,
	}
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}
	if err := h.repo.CreateSubcategory(ctx, &sub); err != nil {
		respondError(c, h.log, err)
		return
	}
	created, err := h.repo.GetSubcategory(ctx, sub.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, created)
}

func (h *SubcategoryHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	sub, err := h.repo.GetSubcategory(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req subcategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if _, err := h.repo.GetCategory(ctx, req.CategoryID); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			err = db.ErrCategoryNotFound
		}
		respondError(c, h.log, err)
		return
	}

	if name != sub.Name || req.CategoryID != sub.CategoryID {
		taken, err := h.repo.SubcategoryNameTaken(ctx, name, req.CategoryID, id)
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		if taken {
			c.JSON(http.StatusBadRequest, gin.H{"error": "subcategory name already exists in this category"})
			return
		}
	}

	// Full replacement of the field list, re-validated as on create.
	if err := fieldschema.Validate(req.Fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	fields, err := marshalFields(req.Fields)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	actor, _ := auth.CurrentUser(c)
	sub.Name = name
	sub.CategoryID = req.CategoryID
	sub.Description = strings.TrimSpace(req.Description)
	sub.Fields = fields
	if req.IsActive != nil {
		sub.IsActive = *req.IsActive
	}
	sub.UpdatedByID = &actor.ID

	if err := h.repo.SaveSubcategory(ctx, &sub); err != nil {
		respondError(c, h.log, err)
		return
	}
	updated, err := h.repo.GetSubcategory(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete removes a subcategory unconditionally. Form records carry no
// subcategory reference, so there is no dependent check to make here.
func (h *SubcategoryHandler) Delete(c *gin.Context) {
	if err := h.repo.DeleteSubcategory(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "subcategory deleted"})
}

func marshalFields(fields []fieldschema.FieldDefinition) (datatypes.JSON, error) {
	if fields == nil {
		fields = []fieldschema.FieldDefinition{}
	}
	b, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(b), nil
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"go.uber.org/zap"
)

// TemplateHandler serves reusable message templates.
type TemplateHandler struct {
	repo db.TemplateRepository
	log  *zap.Logger
}

func NewTemplateHandler(repo db.TemplateRepository, log *zap.Logger) *TemplateHandler {
	return &TemplateHandler{repo: repo, log: log}
}

type createTemplateRequest struct {
	Name    string `json:"name"`
	Subject string `json:"subject"`
	Content string `json:"content"`
	Type    string `json:"type"`
}

// updateTemplateRequest uses pointers so an absent field is distinguishable
// from one set to the empty string.
type updateTemplateRequest struct {
	Name    *string `json:"name"`
	Subject *string `json:"subject"`
	Content *string `json:"content"`
	Type    *string `json:"type"`
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if templates == nil {
		templates = []models.MessageTemplate{}
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Create(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Content) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, subject and content are required"})
		return
	}

	tmplType := models.TemplateAlert
	if req.Type != "" {
		tmplType = models.TemplateType(req.Type)
		if !tmplType.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template type"})
			return
		}
	}

	tmpl := models.MessageTemplate{
		Name:    strings.TrimSpace(req.Name),
		Subject: req.Subject,
		Content: req.Content,
		Type:    tmplType,
	}
	if err := h.repo.Create(c.Request.Context(), &tmpl); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, tmpl)
}

func (h *TemplateHandler) Update(c *gin.Context) {
	id := c.Param("id")
	tmpl, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req updateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		tmpl.Name = *req.Name
	}
	if req.Subject != nil {
		tmpl.Subject = *req.Subject
	}
	if req.Content != nil {
		tmpl.Content = *req.Content
	}
	if req.Type != nil {
		t := models.TemplateType(*req.Type)
		if !t.Valid() {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template type"})
			return
		}
		tmpl.Type = t
	}

	if err := h.repo.Save(c.Request.Context(), &tmpl); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tmpl)
}

func (h *TemplateHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

// SendTest echoes the template back as confirmation. Actual delivery is an
// external collaborator; nothing is dispatched from here.
func (h *TemplateHandler) SendTest(c *gin.Context) {
	tmpl, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "test message prepared",
		"subject": tmpl.Subject,
		"content": tmpl.Content,
	})
}

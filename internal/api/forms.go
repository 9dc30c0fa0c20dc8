package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"go.uber.org/zap"
)

// FormHandler serves the flat form registry.
type FormHandler struct {
	repo db.FormRepository
	log  *zap.Logger
}

func NewFormHandler(repo db.FormRepository, log *zap.Logger) *FormHandler {
	return &FormHandler{repo: repo, log: log}
}

type formRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

func (h *FormHandler) List(c *gin.Context) {
	forms, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if forms == nil {
		forms = []models.Form{}
	}
	c.JSON(http.StatusOK, forms)
}

func (h *FormHandler) Create(c *gin.Context) {
	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if name == "" || url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and url are required"})
		return
	}

	taken, err := h.repo.NameOrURLTaken(c.Request.Context(), name, url, "")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a form with this name or url already exists"})
		return
	}

	form := models.Form{Name: name, URL: url}
	if err := h.repo.Create(c.Request.Context(), &form); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) Update(c *gin.Context) {
	id := c.Param("id")
	form, err := h.repo.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req formRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	name := strings.TrimSpace(req.Name)
	url := strings.TrimSpace(req.URL)
	if name == "" || url == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and url are required"})
		return
	}

	taken, err := h.repo.NameOrURLTaken(c.Request.Context(), name, url, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if taken {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a form with this name or url already exists"})
		return
	}

	form.Name = name
	form.URL = url
	if err := h.repo.Save(c.Request.Context(), &form); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, form)
}

func (h *FormHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "form deleted"})
}

package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/models"
	"github.com/yourorg/service-admin/internal/normalize"
	"go.uber.org/zap"
)

const searchLimit = 10

// CustomerHandler serves the customer directory.
type CustomerHandler struct {
	repo db.CustomerRepository
	log  *zap.Logger
}

func NewCustomerHandler(repo db.CustomerRepository, log *zap.Logger) *CustomerHandler {
	return &CustomerHandler{repo: repo, log: log}
}

type customerRequest struct {
	Name               string         `json:"name"`
	Phone              string         `json:"phone"`
	Email              string         `json:"email"`
	Address            models.Address `json:"address"`
	ServiceCategoryURL string         `json:"serviceCategoryUrl"`
}

// validate returns a per-field message map for constraint violations.
func (r customerRequest) validate() map[string]string {
	fields := map[string]string{}
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(r.Phone) == "" {
		fields["phone"] = "phone is required"
	}
	email := strings.TrimSpace(r.Email)
	if email == "" {
		fields["email"] = "email is required"
	} else if !strings.Contains(email, "@") {
		fields["email"] = "email is invalid"
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.repo.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if customers == nil {
		customers = []models.Customer{}
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.repo.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}
	matches, err := h.repo.Search(c.Request.Context(), query, searchLimit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	out := make([]models.CustomerSummary, 0, len(matches))
	for _, m := range matches {
		out = append(out, models.CustomerSummary{
			Name:    m.Name,
			Phone:   m.Phone,
			Email:   m.Email,
			Address: m.Address,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := req.validate(); fields != nil {
		respondError(c, h.log, db.ValidationError{Fields: fields})
		return
	}

	ctx := c.Request.Context()
	customer := req.toModel()
	if field, err := h.repo.ContactConflict(ctx, customer.Phone, customer.Email, ""); err != nil {
		respondError(c, h.log, err)
		return
	} else if field != "" {
		respondError(c, h.log, db.DuplicateKeyError{Field: field})
		return
	}

	if err := h.repo.Create(ctx, &customer); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	id := c.Param("id")
	ctx := c.Request.Context()

	customer, err := h.repo.Get(ctx, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req customerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if fields := req.validate(); fields != nil {
		respondError(c, h.log, db.ValidationError{Fields: fields})
		return
	}

	next := req.toModel()
	if field, err := h.repo.ContactConflict(ctx, next.Phone, next.Email, id); err != nil {
		respondError(c, h.log, err)
		return
	} else if field != "" {
		respondError(c, h.log, db.DuplicateKeyError{Field: field})
		return
	}

	customer.Name = next.Name
	customer.Phone = next.Phone
	customer.Email = next.Email
	customer.Address = next.Address
	customer.ServiceCategoryURL = next.ServiceCategoryURL

	if err := h.repo.Save(ctx, &customer); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "customer deleted"})
}

func (r customerRequest) toModel() models.Customer {
	customer := models.Customer{
		Name:    strings.TrimSpace(r.Name),
		Phone:   strings.TrimSpace(r.Phone),
		Email:   strings.TrimSpace(r.Email),
		Address: r.Address,
	}
	if u := normalize.ServiceCategoryURL(r.ServiceCategoryURL); u != "" {
		customer.ServiceCategoryURL = &u
	}
	return customer
}

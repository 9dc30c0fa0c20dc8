package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourorg/service-admin/internal/auth"
	"github.com/yourorg/service-admin/internal/db"
	"github.com/yourorg/service-admin/internal/metrics"
	"go.uber.org/zap"
)

// Handlers bundles the per-entity handlers for route registration.
type Handlers struct {
	Auth          *AuthHandler
	Categories    *CategoryHandler
	Subcategories *SubcategoryHandler
	Forms         *FormHandler
	Customers     *CustomerHandler
	Templates     *TemplateHandler
	Import        *ImportHandler
}

// NewHandlers wires every handler against the given gorm handle.
func NewHandlers(database *db.Database, authSvc *auth.Service, log *zap.Logger) Handlers {
	g := database.DB
	return Handlers{
		Auth:          NewAuthHandler(authSvc, log),
		Categories:    NewCategoryHandler(db.NewTaxonomyRepo(g), log),
		Subcategories: NewSubcategoryHandler(db.NewTaxonomyRepo(g), log),
		Forms:         NewFormHandler(db.NewFormRepo(g), log),
		Customers:     NewCustomerHandler(db.NewCustomerRepo(g), log),
		Templates:     NewTemplateHandler(db.NewTemplateRepo(g), log),
		Import:        NewImportHandler(db.NewCustomerRepo(g), log),
	}
}

// RegisterRoutes mounts the whole HTTP surface on the engine. Reads are
// open; every mutation runs behind the access guard.
func RegisterRoutes(r *gin.Engine, h Handlers, authSvc *auth.Service) {
	r.Use(metrics.RequestCounter())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	r.POST("/auth/login", h.Auth.Login)
	r.POST("/auth/logout", h.Auth.Logout)
	r.GET("/auth/me", auth.RequireAuth(authSvc), h.Auth.Me)

	guarded := auth.RequireAuth(authSvc)

	r.GET("/categories", h.Categories.List)
	r.POST("/categories", guarded, h.Categories.Create)
	r.PUT("/categories/:id", guarded, h.Categories.Update)
	r.DELETE("/categories/:id", guarded, h.Categories.Delete)

	r.GET("/subcategories", h.Subcategories.List)
	r.GET("/subcategories/:id", h.Subcategories.Get)
	r.POST("/subcategories", guarded, h.Subcategories.Create)
	r.PUT("/subcategories/:id", guarded, h.Subcategories.Update)
	r.DELETE("/subcategories/:id", guarded, h.Subcategories.Delete)

	r.GET("/forms", h.Forms.List)
	r.POST("/forms", guarded, h.Forms.Create)
	r.PUT("/forms/:id", guarded, h.Forms.Update)
	r.DELETE("/forms/:id", guarded, h.Forms.Delete)

	r.GET("/customers", h.Customers.List)
	r.GET("/customers/search", h.Customers.Search)
	r.GET("/customers/:id", h.Customers.Get)
	r.POST("/customers", guarded, h.Customers.Create)
	r.POST("/customers/import", guarded, h.Import.ImportCustomers)
	r.PUT("/customers/:id", guarded, h.Customers.Update)
	r.DELETE("/customers/:id", guarded, h.Customers.Delete)

	r.GET("/message-templates", h.Templates.List)
	r.POST("/message-templates", guarded, h.Templates.Create)
	r.PUT("/message-templates/:id", guarded, h.Templates.Update)
	r.DELETE("/message-templates/:id", guarded, h.Templates.Delete)
	r.POST("/message-templates/:id/test", guarded, h.Templates.SendTest)
}

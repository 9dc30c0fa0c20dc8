package db

import (
	"encoding/json"
	"fmt"

	"github.com/yourorg/service-admin/internal/fieldschema"
	"github.com/yourorg/service-admin/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed inserts a starter admin user and taxonomy for non-production
// environments. It is idempotent: existing records are left alone. Callers
// gate it behind an explicit flag; it must never run as an import side
// effect.
func Seed(db *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hashing seed password: %w", err)
	}

	admin := models.User{
		Name:         "Admin",
		Email:        "admin@example.com",
		PasswordHash: string(hash),
		Role:         "admin",
		IsActive:     true,
	}
	if err := db.Where("email = ?", admin.Email).FirstOrCreate(&admin).Error; err != nil {
		return fmt.Errorf("seeding admin user: %w", err)
	}

	category := models.FormCategory{
		Name:        "General Services",
		Description: "Default category for service intake forms",
		IsActive:    true,
		CreatedByID: admin.ID,
	}
	if err := db.Where("name = ?", category.Name).FirstOrCreate(&category).Error; err != nil {
		return fmt.Errorf("seeding category: %w", err)
	}

	fields, err := json.Marshal([]fieldschema.FieldDefinition{
		{Name: "Full Name", FieldType: fieldschema.TypeText, Required: true},
		{Name: "Preferred Date", FieldType: fieldschema.TypeDate},
		{Name: "Contact Method", FieldType: fieldschema.TypeRadio, Options: []string{"Phone", "Email"}},
	})
	if err != nil {
		return fmt.Errorf("marshalling seed fields: %w", err)
	}
	sub := models.FormSubCategory{
		Name:        "Service Request",
		CategoryID:  category.ID,
		Description: "Basic intake form",
		IsActive:    true,
		Fields:      datatypes.JSON(fields),
		CreatedByID: admin.ID,
	}
	err = db.Where("name = ? AND category_id = ?", sub.Name, sub.CategoryID).
		FirstOrCreate(&sub).Error
	if err != nil {
		return fmt.Errorf("seeding subcategory: %w", err)
	}

	tmpl := models.MessageTemplate{
		Name:    "Appointment Reminder",
		Subject: "Your upcoming appointment",
		Content: "Hi {{name}}, this is a reminder about your appointment.",
		Type:    models.TemplateNotification,
	}
	err = db.Where("name = ?", tmpl.Name).FirstOrCreate(&tmpl).Error
	if err != nil {
		return fmt.Errorf("seeding message template: %w", err)
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TemplateType classifies a message template.
type TemplateType string

const (
	TemplateAlert        TemplateType = "ALERT"
	TemplateNotification TemplateType = "NOTIFICATION"
	TemplatePromotional  TemplateType = "PROMOTIONAL"
)

// Valid reports whether the type is one of the enumerated values.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateAlert, TemplateNotification, TemplatePromotional:
		return true
	}
	return false
}

// MessageTemplate is a reusable message body with a type tag. Updates are
// partial; absent fields are left untouched.
type MessageTemplate struct {
	ID        string       `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string       `json:"name" gorm:"not null"`
	Subject   string       `json:"subject" gorm:"not null"`
	Content   string       `json:"content" gorm:"not null"`
	Type      TemplateType `json:"type" gorm:"default:ALERT"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

func (m *MessageTemplate) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Type == "" {
		m.Type = TemplateAlert
	}
	return nil
}

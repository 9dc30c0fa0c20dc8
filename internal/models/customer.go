package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is embedded into Customer; line1, city and state participate in
// free-text search.
type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
}

// Customer is a directory record. Phone and email are unique contact keys.
// ServiceCategoryURL is stored normalized (absolute, https-prefixed) and is
// nil when the client supplied an empty value.
type Customer struct {
	ID                 string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name               string    `json:"name" gorm:"not null"`
	Phone              string    `json:"phone" gorm:"uniqueIndex;not null"`
	Email              string    `json:"email" gorm:"uniqueIndex;not null"`
	Address            Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	ServiceCategoryURL *string   `json:"serviceCategoryUrl,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// CustomerSummary is the projection returned by search.
type CustomerSummary struct {
	Name    string  `json:"name"`
	Phone   string  `json:"phone"`
	Email   string  `json:"email"`
	Address Address `json:"address"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FormCategory is the top level of the form taxonomy. Names are unique
// across all categories (case-sensitive).
type FormCategory struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description,omitempty"`
	IsActive    bool      `json:"isActive" gorm:"default:true"`
	CreatedByID string    `json:"-" gorm:"type:uuid;not null"`
	UpdatedByID *string   `json:"-" gorm:"type:uuid"`
	CreatedBy   *User     `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedBy   *User     `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (c *FormCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// FormSubCategory belongs to exactly one category and embeds its ordered
// field definitions as a JSON document. The (Name, CategoryID) pair is
// unique; the same name may recur under different categories.
type FormSubCategory struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null;uniqueIndex:idx_subcategory_name_category"`
	CategoryID  string         `json:"categoryId" gorm:"type:uuid;not null;uniqueIndex:idx_subcategory_name_category"`
	Category    *FormCategory  `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Description string         `json:"description,omitempty"`
	IsActive    bool           `json:"isActive" gorm:"default:true"`
	Fields      datatypes.JSON `json:"fields" gorm:"type:jsonb"`
	CreatedByID string         `json:"-" gorm:"type:uuid;not null"`
	UpdatedByID *string        `json:"-" gorm:"type:uuid"`
	CreatedBy   *User          `json:"createdBy,omitempty" gorm:"foreignKey:CreatedByID"`
	UpdatedBy   *User          `json:"updatedBy,omitempty" gorm:"foreignKey:UpdatedByID"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`

	// CategoryName annotates list/get responses with the parent's name.
	CategoryName string `json:"categoryName,omitempty" gorm:"-"`
}

func (s *FormSubCategory) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

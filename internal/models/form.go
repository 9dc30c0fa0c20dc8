package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Form is a named, URL-keyed form record. Name and URL are each unique and
// the two are checked for collision jointly on create/update.
type Form struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	URL       string    `json:"url" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (f *Form) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

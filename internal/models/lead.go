// internal/models/lead.go
package models

import (
	"github.com/google/uuid"
)

type Lead struct {
	BaseModel
	FirstName   string       `json:"first_name" gorm:"size:255;not null"`
	LastName    string       `json:"last_name" gorm:"size:255;not null"`
	Company     string       `json:"company" gorm:"size:255"`
	Email       string       `json:"email" gorm:"size:255"`
	Phone       string       `json:"phone" gorm:"size:50"`
	Website     string       `json:"website" gorm:"size:255"`
	Description string       `json:"description" gorm:"type:text"`
	Status      LeadStatus   `json:"status" gorm:"type:varchar(20);default:'new';index"`
	Priority    LeadPriority `json:"priority" gorm:"type:varchar(20);default:'medium'"`
	CreatedByID uuid.UUID    `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	CreatedBy User `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

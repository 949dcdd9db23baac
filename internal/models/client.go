// internal/models/client.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	BaseModel
	FirstName         string       `json:"first_name" gorm:"size:255;not null"`
	LastName          string       `json:"last_name" gorm:"size:255;not null"`
	Company           string       `json:"company" gorm:"size:255"`
	Email             string       `json:"email" gorm:"size:255;not null"`
	Phone             string       `json:"phone" gorm:"size:50"`
	Address           string       `json:"address" gorm:"size:255"`
	City              string       `json:"city" gorm:"size:255"`
	Zipcode           string       `json:"zipcode" gorm:"size:255"`
	Country           string       `json:"country" gorm:"size:255"`
	Website           string       `json:"website" gorm:"size:255"`
	Description       string       `json:"description" gorm:"type:text"`
	Status            ClientStatus `json:"status" gorm:"type:varchar(20)"`
	DueDate           *time.Time   `json:"due_date"`
	ConvertedFromLead *uuid.UUID   `json:"converted_from_lead" gorm:"type:uuid;index"`
	CreatedByID       uuid.UUID    `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	CreatedBy User            `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Lead      *Lead           `json:"lead,omitempty" gorm:"foreignKey:ConvertedFromLead"`
	Comments  []ClientComment `json:"comments,omitempty" gorm:"foreignKey:ClientID"`
	Files     []ClientFile    `json:"files,omitempty" gorm:"foreignKey:ClientID"`
	Purchases []Purchase      `json:"purchases,omitempty" gorm:"foreignKey:ClientID"`
}

type ClientComment struct {
	BaseModel
	ClientID    uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	Content     string    `json:"content" gorm:"type:text;not null"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client    Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	CreatedBy User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

type ClientFile struct {
	BaseModel
	ClientID    uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	FileName    string    `json:"file_name" gorm:"size:255;not null"`
	FileURL     string    `json:"file_url" gorm:"size:512;not null"`
	FileKey     string    `json:"file_key" gorm:"size:512"`
	Size        int64     `json:"size"`
	MimeType    string    `json:"mime_type" gorm:"size:100"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client    Client `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	CreatedBy User   `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

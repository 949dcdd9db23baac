// internal/models/team.go
package models

import (
	"github.com/google/uuid"
)

type Team struct {
	BaseModel
	Name        string     `json:"name" gorm:"size:255;uniqueIndex;not null"`
	IsActive    bool       `json:"is_active" gorm:"default:true"`
	ClientID    *uuid.UUID `json:"client_id" gorm:"type:uuid;index"`
	CreatedByID uuid.UUID  `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client      *Client          `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	CreatedBy   User             `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	Memberships []TeamMembership `json:"memberships,omitempty" gorm:"foreignKey:TeamID"`
}

type TeamMembership struct {
	BaseModel
	TeamID   uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_user"`
	UserID   uuid.UUID `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_team_user"`
	Role     TeamRole  `json:"role" gorm:"type:varchar(20);default:'member'"`
	IsActive bool      `json:"is_active" gorm:"default:true"`

	// Relationships
	Team Team `json:"team,omitempty" gorm:"foreignKey:TeamID"`
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

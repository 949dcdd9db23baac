// internal/models/project.go
package models

import (
	"github.com/google/uuid"
)

type Project struct {
	BaseModel
	Name        string        `json:"name" gorm:"size:255;not null"`
	Description string        `json:"description" gorm:"type:text"`
	Status      ProjectStatus `json:"status" gorm:"type:varchar(20);default:'planned';index"`
	IsActive    bool          `json:"is_active" gorm:"default:true"`
	ClientID    *uuid.UUID    `json:"client_id" gorm:"type:uuid;index"`
	LeadID      *uuid.UUID    `json:"lead_id" gorm:"type:uuid;index"`
	CreatedByID uuid.UUID     `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client          *Client                 `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Lead            *Lead                   `json:"lead,omitempty" gorm:"foreignKey:LeadID"`
	CreatedBy       User                    `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
	TeamAssignments []ProjectTeamAssignment `json:"team_assignments,omitempty" gorm:"foreignKey:ProjectID"`
}

type ProjectTeamAssignment struct {
	BaseModel
	ProjectID uuid.UUID `json:"project_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_team"`
	TeamID    uuid.UUID `json:"team_id" gorm:"type:uuid;not null;uniqueIndex:idx_project_team"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`

	// Relationships
	Project Project `json:"project,omitempty" gorm:"foreignKey:ProjectID"`
	Team    Team    `json:"team,omitempty" gorm:"foreignKey:TeamID"`
}

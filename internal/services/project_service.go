// internal/services/project_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
	"github.com/nexcrm/crm-backend/internal/utils"
)

type ProjectService struct {
	db *gorm.DB
}

type CreateProjectRequest struct {
	Name        string     `json:"name" validate:"required,min=1,max=255"`
	Description string     `json:"description,omitempty"`
	ClientID    *uuid.UUID `json:"client_id,omitempty"`
	LeadID      *uuid.UUID `json:"lead_id,omitempty"`
}

type UpdateProjectRequest struct {
	Name        string               `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description string               `json:"description,omitempty"`
	Status      models.ProjectStatus `json:"status,omitempty"`
	IsActive    *bool                `json:"is_active,omitempty"`
	ClientID    *uuid.UUID           `json:"client_id,omitempty"`
	LeadID      *uuid.UUID           `json:"lead_id,omitempty"`
}

type AssignTeamRequest struct {
	TeamID uuid.UUID `json:"team_id" validate:"required"`
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

func (s *ProjectService) CreateProject(creatorID uuid.UUID, req *CreateProjectRequest) (*models.Project, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.ClientID != nil {
		var client models.Client
		if err := s.db.First(&client, *req.ClientID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("client not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	if req.LeadID != nil {
		var lead models.Lead
		if err := s.db.First(&lead, *req.LeadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errors.New("lead not found")
			}
			return nil, fmt.Errorf("database error: %w", err)
		}
	}

	project := &models.Project{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatusPlanned,
		IsActive:    true,
		ClientID:    req.ClientID,
		LeadID:      req.LeadID,
		CreatedByID: creatorID,
	}

	if err := s.db.Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) GetProject(id uuid.UUID) (*models.Project, error) {
	var project models.Project
	if err := s.db.Preload("TeamAssignments").Preload("TeamAssignments.Team").
		First(&project, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("project not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &project, nil
}

func (s *ProjectService) UpdateProject(id uuid.UUID, req *UpdateProjectRequest) (*models.Project, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, errors.New("invalid project status")
		}
		updates["status"] = req.Status
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.ClientID != nil {
		updates["client_id"] = req.ClientID
	}
	if req.LeadID != nil {
		updates["lead_id"] = req.LeadID
	}

	if err := s.db.Model(project).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

func (s *ProjectService) DeleteProject(id uuid.UUID) error {
	project, err := s.GetProject(id)
	if err != nil {
		return err
	}

	// Soft delete
	if err := s.db.Delete(project).Error; err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}

func (s *ProjectService) ListProjects(params utils.PaginationParams) ([]models.Project, int64, error) {
	query := s.db.Model(&models.Project{})

	if params.Status != "" {
		status := models.ProjectStatus(params.Status)
		if !status.IsValid() {
			return nil, 0, errors.New("invalid project status")
		}
		query = query.Where("status = ?", status)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count projects: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "status"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var projects []models.Project
	if err := query.Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch projects: %w", err)
	}

	return projects, total, nil
}

func (s *ProjectService) AssignTeam(projectID uuid.UUID, req *AssignTeamRequest) (*models.ProjectTeamAssignment, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if _, err := s.GetProject(projectID); err != nil {
		return nil, err
	}

	var team models.Team
	if err := s.db.First(&team, req.TeamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("team not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if !team.IsActive {
		return nil, errors.New("team is not active")
	}

	// An earlier unassignment leaves an inactive row behind the unique index;
	// reactivate it instead of inserting a duplicate.
	var existing models.ProjectTeamAssignment
	err := s.db.Where("project_id = ? AND team_id = ?", projectID, req.TeamID).
		First(&existing).Error
	if err == nil {
		if existing.IsActive {
			return nil, errors.New("team is already assigned to this project")
		}
		if err := s.db.Model(&existing).Update("is_active", true).Error; err != nil {
			return nil, fmt.Errorf("failed to assign team: %w", err)
		}
		existing.IsActive = true
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	assignment := &models.ProjectTeamAssignment{
		ProjectID: projectID,
		TeamID:    req.TeamID,
		IsActive:  true,
	}

	if err := s.db.Create(assignment).Error; err != nil {
		return nil, fmt.Errorf("failed to assign team: %w", err)
	}

	return assignment, nil
}

// UnassignTeam deactivates the assignment; the row stays for assignment history.
func (s *ProjectService) UnassignTeam(projectID, teamID uuid.UUID) error {
	var assignment models.ProjectTeamAssignment
	if err := s.db.Where("project_id = ? AND team_id = ? AND is_active = ?", projectID, teamID, true).
		First(&assignment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("assignment not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Model(&assignment).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to unassign team: %w", err)
	}

	return nil
}

// internal/services/team_service.go
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

type TeamService struct {
	db *gorm.DB
}

type CreateTeamRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=255"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
}

type UpdateTeamRequest struct {
	Name     string     `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	IsActive *bool      `json:"is_active,omitempty"`
	ClientID *uuid.UUID `json:"client_id,omitempty"`
}

type AddTeamMemberRequest struct {
	UserID uuid.UUID       `json:"user_id" validate:"required"`
	Role   models.TeamRole `json:"role,omitempty"`
}

type UpdateTeamMemberRequest struct {
	Role     models.TeamRole `json:"role,omitempty"`
	IsActive *bool           `json:"is_active,omitempty"`
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

// CreateTeam creates the team and enrolls the creator as its owner in one
// transaction.
func (s *TeamService) CreateTeam(creatorID uuid.UUID, req *CreateTeamRequest) (*models.Team, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var team *models.Team

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Team{}).Where("name = ?", req.Name).Count(&existing).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if existing > 0 {
			return errors.New("team name already taken")
		}

		team = &models.Team{
			Name:        req.Name,
			IsActive:    true,
			ClientID:    req.ClientID,
			CreatedByID: creatorID,
		}

		if err := tx.Create(team).Error; err != nil {
			return fmt.Errorf("failed to create team: %w", err)
		}

		membership := &models.TeamMembership{
			TeamID:   team.ID,
			UserID:   creatorID,
			Role:     models.TeamRoleOwner,
			IsActive: true,
		}
		if err := tx.Create(membership).Error; err != nil {
			return fmt.Errorf("failed to create team membership: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return team, nil
}

func (s *TeamService) GetTeam(id uuid.UUID) (*models.Team, error) {
	var team models.Team
	if err := s.db.Preload("Memberships").Preload("Memberships.User").
		First(&team, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("team not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &team, nil
}

func (s *TeamService) UpdateTeam(id uuid.UUID, actorID uuid.UUID, req *UpdateTeamRequest) (*models.Team, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	team, err := s.GetTeam(id)
	if err != nil {
		return nil, err
	}

	if err := s.requireTeamAdmin(id, actorID); err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.ClientID != nil {
		updates["client_id"] = req.ClientID
	}

	if err := s.db.Model(team).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update team: %w", err)
	}

	return team, nil
}

func (s *TeamService) DeleteTeam(id uuid.UUID, actorID uuid.UUID) error {
	team, err := s.GetTeam(id)
	if err != nil {
		return err
	}

	if err := s.requireTeamRole(id, actorID, models.TeamRoleOwner); err != nil {
		return err
	}

	// Soft delete
	if err := s.db.Delete(team).Error; err != nil {
		return fmt.Errorf("failed to delete team: %w", err)
	}

	return nil
}

func (s *TeamService) ListTeams(params utils.PaginationParams) ([]models.Team, int64, error) {
	query := s.db.Model(&models.Team{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ?", searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count teams: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var teams []models.Team
	if err := query.Find(&teams).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch teams: %w", err)
	}

	return teams, total, nil
}

func (s *TeamService) AddMember(teamID uuid.UUID, actorID uuid.UUID, req *AddTeamMemberRequest) (*models.TeamMembership, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	role := req.Role
	if role == "" {
		role = models.TeamRoleMember
	}
	if !role.IsValid() {
		return nil, errors.New("invalid team role")
	}

	if err := s.requireTeamAdmin(teamID, actorID); err != nil {
		return nil, err
	}

	// Verify target user exists and is active
	var user models.User
	if err := s.db.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	if user.Status != models.UserStatusActive {
		return nil, errors.New("user account is not active")
	}

	var existing int64
	if err := s.db.Model(&models.TeamMembership{}).
		Where("team_id = ? AND user_id = ?", teamID, req.UserID).
		Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if existing > 0 {
		return nil, errors.New("user is already a team member")
	}

	membership := &models.TeamMembership{
		TeamID:   teamID,
		UserID:   req.UserID,
		Role:     role,
		IsActive: true,
	}

	if err := s.db.Create(membership).Error; err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	return membership, nil
}

// UpdateMember changes a member's role or activation. Demoting or deactivating
// the last active owner is rejected.
func (s *TeamService) UpdateMember(teamID, userID uuid.UUID, actorID uuid.UUID, req *UpdateTeamMemberRequest) (*models.TeamMembership, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if req.Role != "" && !req.Role.IsValid() {
		return nil, errors.New("invalid team role")
	}

	if err := s.requireTeamAdmin(teamID, actorID); err != nil {
		return nil, err
	}

	var membership models.TeamMembership
	if err := s.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("membership not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	losesOwner := membership.Role == models.TeamRoleOwner &&
		((req.Role != "" && req.Role != models.TeamRoleOwner) ||
			(req.IsActive != nil && !*req.IsActive))
	if losesOwner {
		var owners int64
		if err := s.db.Model(&models.TeamMembership{}).
			Where("team_id = ? AND role = ? AND is_active = ?", teamID, models.TeamRoleOwner, true).
			Count(&owners).Error; err != nil {
			return nil, fmt.Errorf("database error: %w", err)
		}
		if owners <= 1 {
			return nil, errors.New("cannot demote the last team owner")
		}
	}

	updates := make(map[string]interface{})
	if req.Role != "" {
		updates["role"] = req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if len(updates) == 0 {
		return &membership, nil
	}

	if err := s.db.Model(&membership).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update team member: %w", err)
	}

	return &membership, nil
}

func (s *TeamService) RemoveMember(teamID, userID uuid.UUID, actorID uuid.UUID) error {
	if err := s.requireTeamAdmin(teamID, actorID); err != nil {
		return err
	}

	var membership models.TeamMembership
	if err := s.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("membership not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// The last owner cannot leave the team ownerless
	if membership.Role == models.TeamRoleOwner {
		var owners int64
		if err := s.db.Model(&models.TeamMembership{}).
			Where("team_id = ? AND role = ? AND is_active = ?", teamID, models.TeamRoleOwner, true).
			Count(&owners).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if owners <= 1 {
			return errors.New("cannot remove the last team owner")
		}
	}

	if err := s.db.Delete(&membership).Error; err != nil {
		return fmt.Errorf("failed to remove team member: %w", err)
	}

	return nil
}

func (s *TeamService) requireTeamAdmin(teamID, userID uuid.UUID) error {
	var membership models.TeamMembership
	if err := s.db.Where("team_id = ? AND user_id = ? AND is_active = ?", teamID, userID, true).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("not a team member")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if membership.Role != models.TeamRoleOwner && membership.Role != models.TeamRoleAdmin {
		return errors.New("insufficient team role")
	}

	return nil
}

func (s *TeamService) requireTeamRole(teamID, userID uuid.UUID, role models.TeamRole) error {
	var membership models.TeamMembership
	if err := s.db.Where("team_id = ? AND user_id = ? AND role = ? AND is_active = ?", teamID, userID, role, true).
		First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("insufficient team role")
		}
		return fmt.Errorf("database error: %w", err)
	}
	return nil
}

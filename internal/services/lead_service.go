// internal/services/lead_service.go
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

type LeadService struct {
	db *gorm.DB
}

type CreateLeadRequest struct {
	FirstName   string              `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string              `json:"last_name" validate:"required,min=1,max=100"`
	Company     string              `json:"company,omitempty" validate:"omitempty,max=255"`
	Email       string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string              `json:"phone,omitempty" validate:"omitempty,max=50"`
	Website     string              `json:"website,omitempty" validate:"omitempty,max=255"`
	Description string              `json:"description,omitempty"`
	Priority    models.LeadPriority `json:"priority,omitempty"`
}

type UpdateLeadRequest struct {
	FirstName   string              `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    string              `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Company     string              `json:"company,omitempty" validate:"omitempty,max=255"`
	Email       string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string              `json:"phone,omitempty" validate:"omitempty,max=50"`
	Website     string              `json:"website,omitempty" validate:"omitempty,max=255"`
	Description string              `json:"description,omitempty"`
	Priority    models.LeadPriority `json:"priority,omitempty"`
}

type UpdateLeadStatusRequest struct {
	Status models.LeadStatus `json:"status" validate:"required"`
}

type ConvertLeadRequest struct {
	ClientStatus models.ClientStatus `json:"client_status,omitempty"`
}

func NewLeadService(db *gorm.DB) *LeadService {
	return &LeadService{db: db}
}

func (s *LeadService) CreateLead(ownerID uuid.UUID, req *CreateLeadRequest) (*models.Lead, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	priority := req.Priority
	if priority == "" {
		priority = models.LeadPriorityMedium
	}
	if !priority.IsValid() {
		return nil, errors.New("invalid lead priority")
	}

	lead := &models.Lead{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Website:     req.Website,
		Description: req.Description,
		Status:      models.LeadStatusNew,
		Priority:    priority,
		CreatedByID: ownerID,
	}

	if err := s.db.Create(lead).Error; err != nil {
		return nil, fmt.Errorf("failed to create lead: %w", err)
	}

	return lead, nil
}

func (s *LeadService) GetLead(id uuid.UUID, ownerID uuid.UUID) (*models.Lead, error) {
	var lead models.Lead
	if err := s.db.Where("id = ? AND created_by_id = ?", id, ownerID).First(&lead).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("lead not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &lead, nil
}

func (s *LeadService) UpdateLead(id uuid.UUID, ownerID uuid.UUID, req *UpdateLeadRequest) (*models.Lead, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	lead, err := s.GetLead(id, ownerID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.FirstName != "" {
		updates["first_name"] = req.FirstName
	}
	if req.LastName != "" {
		updates["last_name"] = req.LastName
	}
	if req.Company != "" {
		updates["company"] = req.Company
	}
	if req.Email != "" {
		updates["email"] = req.Email
	}
	if req.Phone != "" {
		updates["phone"] = req.Phone
	}
	if req.Website != "" {
		updates["website"] = req.Website
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Priority != "" {
		if !req.Priority.IsValid() {
			return nil, errors.New("invalid lead priority")
		}
		updates["priority"] = req.Priority
	}

	if err := s.db.Model(lead).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead: %w", err)
	}

	return lead, nil
}

func (s *LeadService) UpdateLeadStatus(id uuid.UUID, ownerID uuid.UUID, req *UpdateLeadStatusRequest) (*models.Lead, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	if !req.Status.IsValid() {
		return nil, errors.New("invalid lead status")
	}

	lead, err := s.GetLead(id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(lead).Update("status", req.Status).Error; err != nil {
		return nil, fmt.Errorf("failed to update lead status: %w", err)
	}

	return lead, nil
}

func (s *LeadService) DeleteLead(id uuid.UUID, ownerID uuid.UUID) error {
	lead, err := s.GetLead(id, ownerID)
	if err != nil {
		return err
	}

	// Soft delete
	if err := s.db.Delete(lead).Error; err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}

	return nil
}

func (s *LeadService) ListLeads(ownerID uuid.UUID, params utils.PaginationParams) ([]models.Lead, int64, error) {
	query := s.db.Model(&models.Lead{}).Where("created_by_id = ?", ownerID)

	if params.Status != "" {
		status := models.LeadStatus(params.Status)
		if !status.IsValid() {
			return nil, 0, errors.New("invalid lead status")
		}
		query = query.Where("status = ?", status)
	}

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where(
			"LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ? OR LOWER(company) LIKE ? OR LOWER(email) LIKE ?",
			searchTerm, searchTerm, searchTerm, searchTerm,
		)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count leads: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "first_name", "last_name", "company", "status", "priority"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var leads []models.Lead
	if err := query.Find(&leads).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch leads: %w", err)
	}

	return leads, total, nil
}

// ConvertLead marks the lead won and creates a client carrying over its
// contact details, in one transaction. Converting an already-won lead fails
// if a client already references it.
func (s *LeadService) ConvertLead(id uuid.UUID, ownerID uuid.UUID, req *ConvertLeadRequest) (*models.Client, error) {
	clientStatus := req.ClientStatus
	if clientStatus == "" {
		clientStatus = models.ClientStatusDirect
	}
	if !clientStatus.IsValid() {
		return nil, errors.New("invalid client status")
	}

	var client *models.Client

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var lead models.Lead
		if err := tx.Where("id = ? AND created_by_id = ?", id, ownerID).First(&lead).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("lead not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var existing int64
		if err := tx.Model(&models.Client{}).
			Where("converted_from_lead = ?", lead.ID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if existing > 0 {
			return errors.New("lead has already been converted")
		}

		if err := tx.Model(&lead).Update("status", models.LeadStatusWon).Error; err != nil {
			return fmt.Errorf("failed to update lead status: %w", err)
		}

		leadID := lead.ID
		client = &models.Client{
			FirstName:         lead.FirstName,
			LastName:          lead.LastName,
			Company:           lead.Company,
			Email:             lead.Email,
			Phone:             lead.Phone,
			Website:           lead.Website,
			Description:       lead.Description,
			Status:            clientStatus,
			ConvertedFromLead: &leadID,
			CreatedByID:       ownerID,
		}

		if err := tx.Create(client).Error; err != nil {
			return fmt.Errorf("failed to create client: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return client, nil
}

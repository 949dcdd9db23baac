// internal/services/client_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
	"github.com/nexcrm/crm-backend/internal/utils"
)

type ClientService struct {
	db             *gorm.DB
	storageService *StorageService
}

type CreateClientRequest struct {
	FirstName   string              `json:"first_name" validate:"required,min=1,max=100"`
	LastName    string              `json:"last_name" validate:"required,min=1,max=100"`
	Company     string              `json:"company,omitempty" validate:"omitempty,max=255"`
	Email       string              `json:"email" validate:"required,email"`
	Phone       string              `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address     string              `json:"address,omitempty" validate:"omitempty,max=255"`
	City        string              `json:"city,omitempty" validate:"omitempty,max=255"`
	Zipcode     string              `json:"zipcode,omitempty" validate:"omitempty,max=255"`
	Country     string              `json:"country,omitempty" validate:"omitempty,max=255"`
	Website     string              `json:"website,omitempty" validate:"omitempty,max=255"`
	Description string              `json:"description,omitempty"`
	Status      models.ClientStatus `json:"status,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
}

type UpdateClientRequest struct {
	FirstName   string              `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName    string              `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
	Company     string              `json:"company,omitempty" validate:"omitempty,max=255"`
	Email       string              `json:"email,omitempty" validate:"omitempty,email"`
	Phone       string              `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address     string              `json:"address,omitempty" validate:"omitempty,max=255"`
	City        string              `json:"city,omitempty" validate:"omitempty,max=255"`
	Zipcode     string              `json:"zipcode,omitempty" validate:"omitempty,max=255"`
	Country     string              `json:"country,omitempty" validate:"omitempty,max=255"`
	Website     string              `json:"website,omitempty" validate:"omitempty,max=255"`
	Description string              `json:"description,omitempty"`
	Status      models.ClientStatus `json:"status,omitempty"`
	DueDate     *time.Time          `json:"due_date,omitempty"`
}

type AddClientCommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}

func NewClientService(db *gorm.DB, storageService *StorageService) *ClientService {
	return &ClientService{
		db:             db,
		storageService: storageService,
	}
}

func (s *ClientService) CreateClient(ownerID uuid.UUID, req *CreateClientRequest) (*models.Client, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	status := req.Status
	if status == "" {
		status = models.ClientStatusDirect
	}
	if !status.IsValid() {
		return nil, errors.New("invalid client status")
	}

	client := &models.Client{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Company:     req.Company,
		Email:       req.Email,
		Phone:       req.Phone,
		Address:     req.Address,
		City:        req.City,
		Zipcode:     req.Zipcode,
		Country:     req.Country,
		Website:     req.Website,
		Description: req.Description,
		Status:      status,
		DueDate:     req.DueDate,
		CreatedByID: ownerID,
	}

	if err := s.db.Create(client).Error; err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	return client, nil
}

func (s *ClientService) GetClient(id uuid.UUID, ownerID uuid.UUID) (*models.Client, error) {
	var client models.Client
	if err := s.db.Preload("Comments").Preload("Files").
		Where("id = ? AND created_by_id = ?", id, ownerID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &client, nil
}

func (s *ClientService) UpdateClient(id uuid.UUID, ownerID uuid.UUID, req *UpdateClientRequest) (*models.Client, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var client models.Client
	if err := s.db.Where("id = ? AND created_by_id = ?", id, ownerID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
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
	if req.Address != "" {
		updates["address"] = req.Address
	}
	if req.City != "" {
		updates["city"] = req.City
	}
	if req.Zipcode != "" {
		updates["zipcode"] = req.Zipcode
	}
	if req.Country != "" {
		updates["country"] = req.Country
	}
	if req.Website != "" {
		updates["website"] = req.Website
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Status != "" {
		if !req.Status.IsValid() {
			return nil, errors.New("invalid client status")
		}
		updates["status"] = req.Status
	}
	if req.DueDate != nil {
		updates["due_date"] = req.DueDate
	}

	if err := s.db.Model(&client).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update client: %w", err)
	}

	return &client, nil
}

func (s *ClientService) DeleteClient(id uuid.UUID, ownerID uuid.UUID) error {
	var client models.Client
	if err := s.db.Where("id = ? AND created_by_id = ?", id, ownerID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("client not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	// Soft delete
	if err := s.db.Delete(&client).Error; err != nil {
		return fmt.Errorf("failed to delete client: %w", err)
	}

	return nil
}

func (s *ClientService) ListClients(ownerID uuid.UUID, params utils.PaginationParams) ([]models.Client, int64, error) {
	query := s.db.Model(&models.Client{}).Where("created_by_id = ?", ownerID)

	if params.Status != "" {
		status := models.ClientStatus(params.Status)
		if !status.IsValid() {
			return nil, 0, errors.New("invalid client status")
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
		return nil, 0, fmt.Errorf("failed to count clients: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "first_name", "last_name", "company", "status", "due_date"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var clients []models.Client
	if err := query.Find(&clients).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch clients: %w", err)
	}

	return clients, total, nil
}

func (s *ClientService) AddComment(clientID uuid.UUID, ownerID uuid.UUID, req *AddClientCommentRequest) (*models.ClientComment, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Verify client ownership
	var client models.Client
	if err := s.db.Where("id = ? AND created_by_id = ?", clientID, ownerID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	comment := &models.ClientComment{
		ClientID:    clientID,
		Content:     req.Content,
		CreatedByID: ownerID,
	}

	if err := s.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return comment, nil
}

func (s *ClientService) DeleteComment(clientID, commentID uuid.UUID, ownerID uuid.UUID) error {
	var comment models.ClientComment
	if err := s.db.Where("id = ? AND client_id = ? AND created_by_id = ?", commentID, clientID, ownerID).
		First(&comment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("comment not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if err := s.db.Delete(&comment).Error; err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}

	return nil
}

func (s *ClientService) UploadFile(clientID uuid.UUID, ownerID uuid.UUID, file multipart.File, header *multipart.FileHeader) (*models.ClientFile, error) {
	// Verify client ownership
	var client models.Client
	if err := s.db.Where("id = ? AND created_by_id = ?", clientID, ownerID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("client not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	result, err := s.storageService.UploadFile(file, header, s.storageService.ClientFileUploadOptions())
	if err != nil {
		return nil, fmt.Errorf("failed to upload file: %w", err)
	}

	clientFile := &models.ClientFile{
		ClientID:    clientID,
		FileName:    header.Filename,
		FileURL:     result.URL,
		FileKey:     result.Key,
		Size:        result.Size,
		MimeType:    result.MimeType,
		CreatedByID: ownerID,
	}

	if err := s.db.Create(clientFile).Error; err != nil {
		// Clean up the stored object if the record could not be written
		s.storageService.DeleteFile(result.Key)
		return nil, fmt.Errorf("failed to save file record: %w", err)
	}

	return clientFile, nil
}

func (s *ClientService) DeleteFile(clientID, fileID uuid.UUID, ownerID uuid.UUID) error {
	var clientFile models.ClientFile
	if err := s.db.Where("id = ? AND client_id = ? AND created_by_id = ?", fileID, clientID, ownerID).
		First(&clientFile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("file not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	if clientFile.FileKey != "" {
		if err := s.storageService.DeleteFile(clientFile.FileKey); err != nil {
			return fmt.Errorf("failed to delete stored file: %w", err)
		}
	}

	if err := s.db.Delete(&clientFile).Error; err != nil {
		return fmt.Errorf("failed to delete file record: %w", err)
	}

	return nil
}

// internal/services/purchase_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
	"github.com/nexcrm/crm-backend/internal/utils"
)

type PurchaseService struct {
	db *gorm.DB
}

type CreatePurchaseRequest struct {
	ClientID  uuid.UUID `json:"client_id" validate:"required"`
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
	Notes     string    `json:"notes,omitempty"`
}

func NewPurchaseService(db *gorm.DB) *PurchaseService {
	return &PurchaseService{db: db}
}

// CreatePurchase records the purchase and bumps the product's sold counter in
// the same transaction. The counter update is a relative SQL expression, so
// concurrent purchases of one product never lose increments.
func (s *PurchaseService) CreatePurchase(ownerID uuid.UUID, req *CreatePurchaseRequest) (*models.Purchase, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var purchase *models.Purchase

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// Verify client ownership
		var client models.Client
		if err := tx.Where("id = ? AND created_by_id = ?", req.ClientID, ownerID).First(&client).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("client not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		var product models.Product
		if err := tx.First(&product, req.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("product not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		purchase = &models.Purchase{
			ClientID:    req.ClientID,
			ProductID:   req.ProductID,
			Quantity:    req.Quantity,
			Notes:       req.Notes,
			CreatedByID: ownerID,
		}

		if err := tx.Create(purchase).Error; err != nil {
			return fmt.Errorf("failed to create purchase: %w", err)
		}

		if err := tx.Model(&product).UpdateColumn("sold_quantity",
			gorm.Expr("sold_quantity + ?", req.Quantity)).Error; err != nil {
			return fmt.Errorf("failed to update sold quantity: %w", err)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	// Load full purchase data
	s.db.Preload("Client").Preload("Product").First(purchase, purchase.ID)

	return purchase, nil
}

func (s *PurchaseService) GetPurchase(id uuid.UUID, ownerID uuid.UUID) (*models.Purchase, error) {
	var purchase models.Purchase
	if err := s.db.Preload("Client").Preload("Product").
		Where("id = ? AND created_by_id = ?", id, ownerID).
		First(&purchase).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("purchase not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &purchase, nil
}

func (s *PurchaseService) DeletePurchase(id uuid.UUID, ownerID uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var purchase models.Purchase
		if err := tx.Where("id = ? AND created_by_id = ?", id, ownerID).First(&purchase).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errors.New("purchase not found")
			}
			return fmt.Errorf("database error: %w", err)
		}

		if err := tx.Delete(&purchase).Error; err != nil {
			return fmt.Errorf("failed to delete purchase: %w", err)
		}

		// Roll the sold counter back with the purchase
		if err := tx.Model(&models.Product{}).Where("id = ?", purchase.ProductID).
			UpdateColumn("sold_quantity", gorm.Expr("sold_quantity - ?", purchase.Quantity)).Error; err != nil {
			return fmt.Errorf("failed to update sold quantity: %w", err)
		}

		return nil
	})
}

func (s *PurchaseService) ListPurchases(ownerID uuid.UUID, params utils.PaginationParams) ([]models.Purchase, int64, error) {
	query := s.db.Model(&models.Purchase{}).Where("created_by_id = ?", ownerID)

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "quantity"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var purchases []models.Purchase
	if err := query.Preload("Client").Preload("Product").Find(&purchases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	return purchases, total, nil
}

func (s *PurchaseService) ListClientPurchases(clientID uuid.UUID, ownerID uuid.UUID, params utils.PaginationParams) ([]models.Purchase, int64, error) {
	// Verify client ownership
	var client models.Client
	if err := s.db.Where("id = ? AND created_by_id = ?", clientID, ownerID).First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, errors.New("client not found")
		}
		return nil, 0, fmt.Errorf("database error: %w", err)
	}

	query := s.db.Model(&models.Purchase{}).Where("client_id = ?", clientID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count purchases: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "quantity"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var purchases []models.Purchase
	if err := query.Preload("Product").Find(&purchases).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch purchases: %w", err)
	}

	return purchases, total, nil
}

// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/nexcrm/crm-backend/internal/models"
	"github.com/nexcrm/crm-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=255"`
	NetPrice    string `json:"net_price" validate:"required"`
	Description string `json:"description,omitempty"`
}

type UpdateProductRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	NetPrice    string `json:"net_price,omitempty"`
	Description string `json:"description,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// parseNetPrice accepts decimal strings like "19.99" so prices never pass
// through float64 on the way in.
func parseNetPrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, errors.New("net_price must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, errors.New("net_price must not be negative")
	}
	return price.Round(2), nil
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	price, err := parseNetPrice(req.NetPrice)
	if err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		NetPrice:    price,
		Description: req.Description,
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.NetPrice != "" {
		price, err := parseNetPrice(req.NetPrice)
		if err != nil {
			return nil, err
		}
		updates["net_price"] = price
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	// Products with recorded purchases stay in the catalog so history keeps
	// resolving names and prices.
	var purchaseCount int64
	if err := s.db.Model(&models.Purchase{}).Where("product_id = ?", id).Count(&purchaseCount).Error; err != nil {
		return fmt.Errorf("failed to check purchases: %w", err)
	}
	if purchaseCount > 0 {
		return errors.New("cannot delete product with recorded purchases")
	}

	// Soft delete
	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

func (s *ProductService) ListProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "net_price", "sold_quantity"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// internal/models/product.go
package models

import (
	"github.com/shopspring/decimal"
)

type Product struct {
	BaseModel
	Name         string          `json:"name" gorm:"size:255;not null;index"`
	NetPrice     decimal.Decimal `json:"net_price" gorm:"type:decimal(10,2);not null"`
	SoldQuantity int             `json:"sold_quantity" gorm:"default:0"`
	Description  string          `json:"description" gorm:"type:text"`

	// Relationships
	Purchases []Purchase `json:"purchases,omitempty" gorm:"foreignKey:ProductID"`
}

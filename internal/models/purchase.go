// internal/models/purchase.go
package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Purchase struct {
	BaseModel
	ClientID    uuid.UUID `json:"client_id" gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID `json:"product_id" gorm:"type:uuid;not null;index"`
	Quantity    int       `json:"quantity" gorm:"not null;default:1"`
	Notes       string    `json:"notes" gorm:"type:text"`
	CreatedByID uuid.UUID `json:"created_by_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Client    Client  `json:"client,omitempty" gorm:"foreignKey:ClientID"`
	Product   Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	CreatedBy User    `json:"created_by,omitempty" gorm:"foreignKey:CreatedByID"`
}

// UnitPrice is the product's current net price. Prices are not snapshotted at
// purchase time, so a later price change shows up in historical totals as well.
func (p *Purchase) UnitPrice() decimal.Decimal {
	return p.Product.NetPrice
}

// LineTotal is quantity times the product's current net price.
func (p *Purchase) LineTotal() decimal.Decimal {
	return p.Product.NetPrice.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

package models

import "github.com/shopspring/decimal"

// Product represents a purchasable item in the catalog.
type Product struct {
	ID          int             `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Title       string          `json:"title" gorm:"type:varchar(200)" validate:"required"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2)"`
	Image       string          `json:"image" validate:"omitempty,uri"`
	Category    string          `json:"category" gorm:"index;type:varchar(100)" validate:"required"`
	Description string          `json:"description,omitempty" validate:"omitempty,max=500"`
}

// Categories are the categories offered by the filter sidebar, in display order.
var Categories = []string{
	"Electronics",
	"Clothing",
	"Books",
	"Home & Garden",
	"Sports",
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CategoryAll is the query-only meta category that matches every product.
// It is never stored on a Product.
const CategoryAll = "All"

// Product represents a sellable catalog item and its stock counter
type Product struct {
	ID        int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null;default:0" json:"unit_price"`
	Stock     int             `gorm:"not null;default:0" json:"stock"`
	Category  string          `gorm:"size:100;index" json:"category"`
	CreatedAt time.Time       `json:"-"`
	UpdatedAt time.Time       `json:"-"`
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// InStock reports whether at least one unit can be sold.
func (p *Product) InStock() bool {
	return p.Stock > 0
}

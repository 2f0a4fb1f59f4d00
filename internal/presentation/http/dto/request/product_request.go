package request

import "github.com/shopspring/decimal"

// CreateProductRequest represents a product creation request. ID is optional;
// the next free id is used when it is left out.
type CreateProductRequest struct {
	ID        int64            `json:"id" binding:"omitempty,min=1"`
	Name      string           `json:"name" binding:"required,max=255"`
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
	Stock     int              `json:"stock" binding:"min=0"`
	Category  string           `json:"category" binding:"omitempty,max=100"`
}

// RestockRequest adds units to an existing product
type RestockRequest struct {
	Amount int `json:"amount" binding:"required,min=1"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	Search   string `form:"search"`
	Category string `form:"category"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}

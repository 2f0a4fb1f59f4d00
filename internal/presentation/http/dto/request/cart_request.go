package request

import "github.com/shopspring/decimal"

// AddCartItemRequest adds one unit of a product to the cart
type AddCartItemRequest struct {
	ProductID int64 `json:"product_id" binding:"required,min=1"`
}

// SetQuantityRequest sets a line's quantity. Anything below 1 removes the line.
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// SetPriceRequest overrides a line's unit price
type SetPriceRequest struct {
	UnitPrice *decimal.Decimal `json:"unit_price" binding:"required"`
}

// SetDiscountRequest sets the cart discount; values outside 0..100 are clamped
type SetDiscountRequest struct {
	Percent *decimal.Decimal `json:"percent" binding:"required"`
}

type SetCustomerRequest struct {
	Name  string `json:"name" binding:"max=255"`
	Phone string `json:"phone" binding:"max=50"`
}

type SetPaymentMethodRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
}

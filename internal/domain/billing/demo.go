package billing

import (
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DemoProducts is the starter catalog a fresh terminal is loaded with.
func DemoProducts() []entity.Product {
	return []entity.Product{
		{ID: 1, Name: "Product A", UnitPrice: decimal.NewFromInt(100), Stock: 50, Category: "Electronics"},
		{ID: 2, Name: "Product B", UnitPrice: decimal.NewFromInt(50), Stock: 100, Category: "Accessories"},
		{ID: 3, Name: "Product C", UnitPrice: decimal.NewFromInt(200), Stock: 30, Category: "Electronics"},
		{ID: 4, Name: "Product D", UnitPrice: decimal.NewFromInt(75), Stock: 80, Category: "Accessories"},
		{ID: 5, Name: "Product E", UnitPrice: decimal.NewFromInt(150), Stock: 20, Category: "Electronics"},
	}
}

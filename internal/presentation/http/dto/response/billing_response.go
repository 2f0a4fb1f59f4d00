package response

import (
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Money amounts are exact inside the engine and rounded to two places here.
func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

type ProductResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	UnitPrice string `json:"unit_price"`
	Stock     int    `json:"stock"`
	Category  string `json:"category"`
	InStock   bool   `json:"in_stock"`
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		UnitPrice: money(p.UnitPrice),
		Stock:     p.Stock,
		Category:  p.Category,
		InStock:   p.InStock(),
	}
}

func NewProductListResponse(products []entity.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, NewProductResponse(&products[i]))
	}
	return out
}

type LineItemResponse struct {
	ID        uuid.UUID `json:"id"`
	ProductID int64     `json:"product_id"`
	Name      string    `json:"name"`
	UnitPrice string    `json:"unit_price"`
	Quantity  int       `json:"quantity"`
	LineTotal string    `json:"line_total"`
}

func NewLineItemResponse(li *entity.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:        li.ID,
		ProductID: li.ProductID,
		Name:      li.Name,
		UnitPrice: money(li.UnitPrice),
		Quantity:  li.Quantity,
		LineTotal: money(li.LineTotal()),
	}
}

func newLineItemList(items []entity.LineItem) []LineItemResponse {
	out := make([]LineItemResponse, 0, len(items))
	for i := range items {
		out = append(out, NewLineItemResponse(&items[i]))
	}
	return out
}

// TotalsResponse is the priced breakdown shown under the cart and on bills
type TotalsResponse struct {
	Subtotal        string `json:"subtotal"`
	TaxRate         string `json:"tax_rate"`
	TaxAmount       string `json:"tax_amount"`
	DiscountPercent string `json:"discount_percent"`
	DiscountAmount  string `json:"discount_amount"`
	Total           string `json:"total"`
}

type CartResponse struct {
	Items         []LineItemResponse `json:"items"`
	ItemCount     int                `json:"item_count"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	PaymentMethod string             `json:"payment_method"`
	Totals        TotalsResponse     `json:"totals"`
}

func NewCartResponse(v billing.CartView) CartResponse {
	count := 0
	for _, item := range v.Items {
		count += item.Quantity
	}
	return CartResponse{
		Items:         newLineItemList(v.Items),
		ItemCount:     count,
		CustomerName:  v.CustomerName,
		CustomerPhone: v.CustomerPhone,
		PaymentMethod: v.PaymentMethod.String(),
		Totals: TotalsResponse{
			Subtotal:        money(v.Totals.Subtotal),
			TaxRate:         v.TaxRate.String(),
			TaxAmount:       money(v.Totals.TaxAmount),
			DiscountPercent: v.DiscountPercent.String(),
			DiscountAmount:  money(v.Totals.DiscountAmount),
			Total:           money(v.Totals.Total),
		},
	}
}

type BillResponse struct {
	ID            uuid.UUID          `json:"id"`
	BillNumber    string             `json:"bill_number"`
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone,omitempty"`
	PaymentMethod string             `json:"payment_method"`
	Items         []LineItemResponse `json:"items"`
	Totals        TotalsResponse     `json:"totals"`
	CreatedAt     time.Time          `json:"created_at"`
}

func NewBillResponse(b *entity.Bill) BillResponse {
	return BillResponse{
		ID:            b.ID,
		BillNumber:    b.BillNumber,
		CustomerName:  b.CustomerName,
		CustomerPhone: b.CustomerPhone,
		PaymentMethod: b.PaymentMethod.String(),
		Items:         newLineItemList(b.Items),
		Totals: TotalsResponse{
			Subtotal:        money(b.Subtotal),
			TaxRate:         b.TaxRate.String(),
			TaxAmount:       money(b.TaxAmount),
			DiscountPercent: b.DiscountPercent.String(),
			DiscountAmount:  money(b.DiscountAmount),
			Total:           money(b.Total),
		},
		CreatedAt: b.CreatedAt,
	}
}

// BillSummaryResponse is one row of the bill history
type BillSummaryResponse struct {
	BillNumber    string    `json:"bill_number"`
	CustomerName  string    `json:"customer_name"`
	PaymentMethod string    `json:"payment_method"`
	ItemCount     int       `json:"item_count"`
	Total         string    `json:"total"`
	CreatedAt     time.Time `json:"created_at"`
}

func NewBillSummaryList(bills []entity.Bill) []BillSummaryResponse {
	out := make([]BillSummaryResponse, 0, len(bills))
	for i := range bills {
		b := &bills[i]
		out = append(out, BillSummaryResponse{
			BillNumber:    b.BillNumber,
			CustomerName:  b.CustomerName,
			PaymentMethod: b.PaymentMethod.String(),
			ItemCount:     b.TotalQuantity(),
			Total:         money(b.Total),
			CreatedAt:     b.CreatedAt,
		})
	}
	return out
}

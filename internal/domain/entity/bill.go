package entity

import (
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one product's entry in the cart. Name and UnitPrice are
// snapshots taken when the product was added; UnitPrice may be overridden by
// the operator afterwards. Once a bill is committed its line items are stored
// with BillID set.
type LineItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	BillID    uuid.UUID       `gorm:"type:uuid;index" json:"-"`
	Line      int             `gorm:"not null;default:0" json:"-"`
	ProductID int64           `gorm:"not null;index" json:"product_id"`
	Name      string          `gorm:"size:255;not null" json:"name"`
	UnitPrice decimal.Decimal `gorm:"type:numeric;not null" json:"unit_price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
}

// TableName returns the table name for committed line items
func (LineItem) TableName() string {
	return "bill_items"
}

// LineTotal returns unit price times quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// Bill is a finalized, immutable sale record
type Bill struct {
	ID              uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	Sequence        int64              `gorm:"uniqueIndex;not null" json:"sequence"`
	BillNumber      string             `gorm:"size:50;uniqueIndex;not null" json:"bill_number"`
	Items           []LineItem         `gorm:"foreignKey:BillID" json:"items"`
	Subtotal        decimal.Decimal    `gorm:"type:numeric;not null" json:"subtotal"`
	TaxRate         decimal.Decimal    `gorm:"type:numeric;not null" json:"tax_rate"`
	TaxAmount       decimal.Decimal    `gorm:"type:numeric;not null" json:"tax_amount"`
	DiscountPercent decimal.Decimal    `gorm:"type:numeric;not null" json:"discount_percent"`
	DiscountAmount  decimal.Decimal    `gorm:"type:numeric;not null" json:"discount_amount"`
	Total           decimal.Decimal    `gorm:"type:numeric;not null" json:"total"`
	CustomerName    string             `gorm:"size:255;not null" json:"customer_name"`
	CustomerPhone   string             `gorm:"size:50" json:"customer_phone"`
	PaymentMethod   enum.PaymentMethod `gorm:"size:20;not null" json:"payment_method"`
	CreatedAt       time.Time          `gorm:"not null;index" json:"created_at"`
}

// TableName returns the table name for the Bill model
func (Bill) TableName() string {
	return "bills"
}

// Clone returns a deep copy so callers cannot mutate ledger entries.
func (b *Bill) Clone() Bill {
	c := *b
	c.Items = make([]LineItem, len(b.Items))
	copy(c.Items, b.Items)
	return c
}

// TotalQuantity returns the number of units across all line items.
func (b *Bill) TotalQuantity() int {
	n := 0
	for _, item := range b.Items {
		n += item.Quantity
	}
	return n
}

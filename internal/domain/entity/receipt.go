package entity

import "github.com/shopspring/decimal"

// ReceiptHeader holds the store header printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	Phone     string `json:"phone,omitempty"`
	TaxID     string `json:"tax_id,omitempty"`
}

// ReceiptItem represents a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is a printable view of a committed bill, composed at print time.
type Receipt struct {
	Header          ReceiptHeader   `json:"header"`
	BillNumber      string          `json:"bill_number"`
	Date            string          `json:"date"`
	Cashier         string          `json:"cashier,omitempty"`
	Customer        string          `json:"customer,omitempty"`
	CustomerPhone   string          `json:"customer_phone,omitempty"`
	PaymentMethod   string          `json:"payment_method,omitempty"`
	Items           []ReceiptItem   `json:"items"`
	SubTotal        decimal.Decimal `json:"sub_total"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Tax             decimal.Decimal `json:"tax"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Discount        decimal.Decimal `json:"discount"`
	Total           decimal.Decimal `json:"total"`
}

// NewReceipt builds a receipt from a committed bill.
func NewReceipt(header ReceiptHeader, bill *Bill, cashier string) *Receipt {
	r := &Receipt{
		Header:          header,
		BillNumber:      bill.BillNumber,
		Date:            bill.CreatedAt.Format("2006-01-02 15:04"),
		Cashier:         cashier,
		Customer:        bill.CustomerName,
		CustomerPhone:   bill.CustomerPhone,
		PaymentMethod:   bill.PaymentMethod.String(),
		Items:           make([]ReceiptItem, 0, len(bill.Items)),
		SubTotal:        bill.Subtotal,
		TaxRate:         bill.TaxRate,
		Tax:             bill.TaxAmount,
		DiscountPercent: bill.DiscountPercent,
		Discount:        bill.DiscountAmount,
		Total:           bill.Total,
	}
	for _, item := range bill.Items {
		r.Items = append(r.Items, ReceiptItem{
			Name:      item.Name,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
			Total:     item.LineTotal(),
		})
	}
	return r
}

package billing

import (
	"strings"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartSnapshot is the serializable state of the open cart.
type CartSnapshot struct {
	Items           []entity.LineItem  `json:"items"`
	DiscountPercent decimal.Decimal    `json:"discount_percent"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	PaymentMethod   enum.PaymentMethod `json:"payment_method"`
}

// Snapshot is the full engine state. Ledger is newest first.
type Snapshot struct {
	Catalog []entity.Product `json:"catalog"`
	Cart    CartSnapshot     `json:"cart"`
	Ledger  []entity.Bill    `json:"ledger"`
}

// Snapshot captures the engine state in one consistent read.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	return Snapshot{
		Catalog: e.catalog.List(ProductFilter{}),
		Cart: CartSnapshot{
			Items:           e.cart.Items(),
			DiscountPercent: e.cart.DiscountPercent(),
			CustomerName:    e.cart.CustomerName(),
			CustomerPhone:   e.cart.CustomerPhone(),
			PaymentMethod:   e.cart.PaymentMethod(),
		},
		Ledger: e.ledger.All(),
	}
}

// Restore rebuilds an engine from a snapshot. The snapshot must satisfy the
// same rules the engine enforces at runtime, otherwise ErrInvalidSnapshot
// (or the underlying catalog error) is returned.
func Restore(s Snapshot, opts ...Option) (*Engine, error) {
	catalog, err := NewCatalog(s.Catalog...)
	if err != nil {
		return nil, err
	}

	ledger := NewLedger()
	numbers := make(map[string]struct{}, len(s.Ledger))
	sequences := make(map[int64]struct{}, len(s.Ledger))
	for i := len(s.Ledger) - 1; i >= 0; i-- {
		bill := s.Ledger[i]
		if bill.BillNumber == "" {
			return nil, ErrInvalidSnapshot.Withf("Bill at position %d has no number", i)
		}
		if bill.Sequence < 1 {
			return nil, ErrInvalidSnapshot.Withf("Bill %s has no sequence", bill.BillNumber)
		}
		if !matchesSequence(bill.BillNumber, bill.Sequence) {
			return nil, ErrInvalidSnapshot.Withf("Bill %s does not match sequence %d", bill.BillNumber, bill.Sequence)
		}
		if _, dup := numbers[bill.BillNumber]; dup {
			return nil, ErrInvalidSnapshot.Withf("Duplicate bill number %s", bill.BillNumber)
		}
		if _, dup := sequences[bill.Sequence]; dup {
			return nil, ErrInvalidSnapshot.Withf("Duplicate bill sequence %d", bill.Sequence)
		}
		if !bill.Total.Equal(bill.Subtotal.Add(bill.TaxAmount).Sub(bill.DiscountAmount)) {
			return nil, ErrInvalidSnapshot.Withf("Bill %s totals do not add up", bill.BillNumber)
		}
		numbers[bill.BillNumber] = struct{}{}
		sequences[bill.Sequence] = struct{}{}
		ledger.Append(bill)
	}

	e := NewEngine(catalog, ledger, opts...)
	if err := restoreCart(e.cart, catalog, s.Cart); err != nil {
		return nil, err
	}
	return e, nil
}

func restoreCart(cart *Cart, catalog *Catalog, s CartSnapshot) error {
	products := make(map[int64]struct{}, len(s.Items))
	lines := make(map[uuid.UUID]struct{}, len(s.Items))
	for _, item := range s.Items {
		if item.ID == uuid.Nil {
			return ErrInvalidSnapshot.Withf("Line item for product %d has no id", item.ProductID)
		}
		if _, dup := lines[item.ID]; dup {
			return ErrInvalidSnapshot.Withf("Duplicate line item %s", item.ID)
		}
		if _, dup := products[item.ProductID]; dup {
			return ErrInvalidSnapshot.Withf("Product %d appears on more than one line", item.ProductID)
		}
		if item.Quantity < 1 {
			return ErrInvalidSnapshot.Withf("Line item %s has quantity %d", item.ID, item.Quantity)
		}
		if item.UnitPrice.IsNegative() {
			return ErrInvalidSnapshot.Withf("Line item %s has a negative price", item.ID)
		}
		if item.Quantity > catalog.AvailableStock(item.ProductID) {
			return ErrInvalidSnapshot.Withf("Line item %s exceeds available stock", item.ID)
		}
		lines[item.ID] = struct{}{}
		products[item.ProductID] = struct{}{}
	}

	payment := s.PaymentMethod
	if payment == "" {
		payment = enum.DefaultPaymentMethod
	}
	if err := cart.SetPaymentMethod(payment); err != nil {
		return ErrInvalidSnapshot.Withf("Unknown payment method %q", string(payment))
	}

	cart.items = append([]entity.LineItem(nil), s.Items...)
	cart.SetDiscountPercent(s.DiscountPercent)
	cart.SetCustomer(s.CustomerName, s.CustomerPhone)
	return nil
}

// matchesSequence reports whether number is FormatBillNumber of seq under
// some non-empty prefix.
func matchesSequence(number string, seq int64) bool {
	i := strings.LastIndex(number, "-")
	if i < 1 {
		return false
	}
	return FormatBillNumber(number[:i], seq) == number
}

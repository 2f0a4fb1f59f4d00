package billing

import (
	"strings"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StockLookup resolves the current state of a product. *Catalog satisfies it.
type StockLookup interface {
	FindByID(productID int64) (entity.Product, bool)
}

// Cart is the bill being assembled for the current customer. It is not safe
// for concurrent use on its own; Engine serializes access.
type Cart struct {
	stock StockLookup
	newID func() uuid.UUID

	items           []entity.LineItem
	discountPercent decimal.Decimal
	customerName    string
	customerPhone   string
	paymentMethod   enum.PaymentMethod
}

// NewCart creates an empty cart validating quantities against stock.
func NewCart(stock StockLookup) *Cart {
	return &Cart{
		stock:         stock,
		newID:         uuid.New,
		paymentMethod: enum.DefaultPaymentMethod,
	}
}

func (c *Cart) indexOf(lineItemID uuid.UUID) int {
	for i := range c.items {
		if c.items[i].ID == lineItemID {
			return i
		}
	}
	return -1
}

func (c *Cart) indexOfProduct(productID int64) int {
	for i := range c.items {
		if c.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// AddProduct puts one unit of product in the cart. A product already in the
// cart has its quantity bumped instead of getting a second line.
func (c *Cart) AddProduct(product entity.Product) (entity.LineItem, error) {
	if product.Stock <= 0 {
		return entity.LineItem{}, ErrOutOfStock.Withf("%s is out of stock", product.Name)
	}

	if i := c.indexOfProduct(product.ID); i >= 0 {
		if c.items[i].Quantity+1 > product.Stock {
			return entity.LineItem{}, ErrStockExceeded.Withf("Only %d units of %s available", product.Stock, product.Name)
		}
		c.items[i].Quantity++
		return c.items[i], nil
	}

	item := entity.LineItem{
		ID:        c.newID(),
		ProductID: product.ID,
		Name:      product.Name,
		UnitPrice: product.UnitPrice,
		Quantity:  1,
	}
	c.items = append(c.items, item)
	return item, nil
}

// SetQuantity replaces a line item's quantity. A quantity below 1 removes
// the line. The ceiling is the product's current stock.
func (c *Cart) SetQuantity(lineItemID uuid.UUID, quantity int) error {
	if quantity < 1 {
		c.RemoveItem(lineItemID)
		return nil
	}

	i := c.indexOf(lineItemID)
	if i < 0 {
		return ErrLineItemNotFound
	}

	product, ok := c.stock.FindByID(c.items[i].ProductID)
	if !ok {
		return ErrProductNotFound.Withf("Product %d is no longer in the catalog", c.items[i].ProductID)
	}
	if quantity > product.Stock {
		return ErrStockExceeded.Withf("Only %d units of %s available", product.Stock, product.Name)
	}

	c.items[i].Quantity = quantity
	return nil
}

// SetPrice overrides the unit price of one line item. The catalog price is
// not touched.
func (c *Cart) SetPrice(lineItemID uuid.UUID, price decimal.Decimal) error {
	if price.IsNegative() {
		return ErrInvalidPrice
	}
	i := c.indexOf(lineItemID)
	if i < 0 {
		return ErrLineItemNotFound
	}
	c.items[i].UnitPrice = price
	return nil
}

// RemoveItem deletes a line item. Unknown ids are ignored.
func (c *Cart) RemoveItem(lineItemID uuid.UUID) {
	if i := c.indexOf(lineItemID); i >= 0 {
		c.items = append(c.items[:i], c.items[i+1:]...)
	}
}

// Clear empties the cart and zeroes the discount.
func (c *Cart) Clear() {
	c.items = nil
	c.discountPercent = decimal.Zero
}

// Reset returns the cart to its initial state after a committed bill.
func (c *Cart) Reset() {
	c.Clear()
	c.customerName = ""
	c.customerPhone = ""
	c.paymentMethod = enum.DefaultPaymentMethod
}

// Subtotal sums unit price times quantity over all line items.
func (c *Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, item := range c.items {
		sum = sum.Add(item.LineTotal())
	}
	return sum
}

// SetDiscountPercent stores p clamped to 0..100.
func (c *Cart) SetDiscountPercent(p decimal.Decimal) decimal.Decimal {
	c.discountPercent = ClampPercent(p)
	return c.discountPercent
}

func (c *Cart) SetCustomer(name, phone string) {
	c.customerName = name
	c.customerPhone = phone
}

func (c *Cart) SetPaymentMethod(m enum.PaymentMethod) error {
	if !m.IsValid() {
		return ErrInvalidPaymentMethod.Withf("Unknown payment method %q", string(m))
	}
	c.paymentMethod = m
	return nil
}

// Items returns a copy of the line items in insertion order.
func (c *Cart) Items() []entity.LineItem {
	out := make([]entity.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Cart) Len() int                          { return len(c.items) }
func (c *Cart) IsEmpty() bool                     { return len(c.items) == 0 }
func (c *Cart) DiscountPercent() decimal.Decimal  { return c.discountPercent }
func (c *Cart) CustomerName() string              { return c.customerName }
func (c *Cart) CustomerPhone() string             { return c.customerPhone }
func (c *Cart) PaymentMethod() enum.PaymentMethod { return c.paymentMethod }

func (c *Cart) hasCustomer() bool {
	return strings.TrimSpace(c.customerName) != ""
}

// quantities sums line quantities per product.
func (c *Cart) quantities() map[int64]int {
	out := make(map[int64]int, len(c.items))
	for _, item := range c.items {
		out[item.ProductID] += item.Quantity
	}
	return out
}

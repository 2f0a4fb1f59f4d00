package billing

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	DefaultBillPrefix = "BILL"
)

// DefaultTaxRate is the flat tax applied to every bill.
var DefaultTaxRate = decimal.RequireFromString("0.18")

// Journal persists engine changes before they become visible in memory. A
// Journal error aborts the operation and leaves the engine untouched.
type Journal interface {
	RecordBill(ctx context.Context, bill *entity.Bill) error
	SaveProduct(ctx context.Context, product entity.Product) error
}

// Option configures an Engine.
type Option func(*Engine)

func WithTaxRate(rate decimal.Decimal) Option {
	return func(e *Engine) { e.taxRate = rate }
}

func WithBillPrefix(prefix string) Option {
	return func(e *Engine) {
		if prefix = strings.TrimSpace(prefix); prefix != "" {
			e.prefix = prefix
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithJournal(j Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// Engine ties the catalog, the open cart and the ledger together. Every
// method holds the engine lock for its whole duration, so a bill commit is
// never observed half done.
type Engine struct {
	mu      sync.Mutex
	catalog *Catalog
	cart    *Cart
	ledger  *Ledger

	taxRate decimal.Decimal
	prefix  string
	seq     int64
	now     func() time.Time
	journal Journal
}

// NewEngine creates an engine with an empty cart. Bill numbering continues
// from the highest sequence already in ledger.
func NewEngine(catalog *Catalog, ledger *Ledger, opts ...Option) *Engine {
	if ledger == nil {
		ledger = NewLedger()
	}
	e := &Engine{
		catalog: catalog,
		cart:    NewCart(catalog),
		ledger:  ledger,
		taxRate: DefaultTaxRate,
		prefix:  DefaultBillPrefix,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.seq = ledger.LastSequence()
	return e
}

// FormatBillNumber renders a bill sequence as a human-readable number.
func FormatBillNumber(prefix string, seq int64) string {
	return fmt.Sprintf("%s-%06d", prefix, seq)
}

// Catalog returns a read-only view of the engine's catalog. Stock changes go
// through the engine so they are journaled and serialized with commits.
func (e *Engine) Catalog() CatalogView { return CatalogView{c: e.catalog} }

func (e *Engine) Ledger() *Ledger          { return e.ledger }
func (e *Engine) TaxRate() decimal.Decimal { return e.taxRate }

// AddProduct adds a new product to the catalog. A zero ID is replaced with
// the next free one.
func (e *Engine) AddProduct(ctx context.Context, p entity.Product) (entity.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if p.ID == 0 {
		p.ID = e.catalog.nextID()
	}

	var stored entity.Product
	err := e.catalog.add(p, func(valid entity.Product) error {
		stored = valid
		if e.journal == nil {
			return nil
		}
		return e.journal.SaveProduct(ctx, valid)
	})
	if err != nil {
		return entity.Product{}, err
	}
	return stored, nil
}

// Restock increases a product's stock.
func (e *Engine) Restock(ctx context.Context, productID int64, amount int) (entity.Product, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var hook func(entity.Product) error
	if e.journal != nil {
		hook = func(updated entity.Product) error {
			return e.journal.SaveProduct(ctx, updated)
		}
	}
	return e.catalog.restock(productID, amount, hook)
}

// AddToCart puts one unit of a catalog product in the cart.
func (e *Engine) AddToCart(productID int64) (entity.LineItem, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	product, ok := e.catalog.FindByID(productID)
	if !ok {
		return entity.LineItem{}, ErrProductNotFound.Withf("Product %d not found", productID)
	}
	return e.cart.AddProduct(product)
}

func (e *Engine) SetQuantity(lineItemID uuid.UUID, quantity int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.SetQuantity(lineItemID, quantity)
}

func (e *Engine) SetPrice(lineItemID uuid.UUID, price decimal.Decimal) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.SetPrice(lineItemID, price)
}

func (e *Engine) RemoveItem(lineItemID uuid.UUID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.RemoveItem(lineItemID)
}

func (e *Engine) ClearCart() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.Clear()
}

// SetDiscountPercent stores the cart discount and returns the clamped value.
func (e *Engine) SetDiscountPercent(p decimal.Decimal) decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.SetDiscountPercent(p)
}

func (e *Engine) SetCustomer(name, phone string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cart.SetCustomer(name, phone)
}

func (e *Engine) SetPaymentMethod(m enum.PaymentMethod) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cart.SetPaymentMethod(m)
}

// CartView is a consistent read of the open cart with its live totals.
type CartView struct {
	Items           []entity.LineItem
	DiscountPercent decimal.Decimal
	CustomerName    string
	CustomerPhone   string
	PaymentMethod   enum.PaymentMethod
	TaxRate         decimal.Decimal
	Totals          Totals
}

func (e *Engine) CartView() CartView {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cartView()
}

func (e *Engine) cartView() CartView {
	return CartView{
		Items:           e.cart.Items(),
		DiscountPercent: e.cart.DiscountPercent(),
		CustomerName:    e.cart.CustomerName(),
		CustomerPhone:   e.cart.CustomerPhone(),
		PaymentMethod:   e.cart.PaymentMethod(),
		TaxRate:         e.taxRate,
		Totals:          Calculate(e.cart.Subtotal(), e.taxRate, e.cart.DiscountPercent()),
	}
}

// GenerateBill turns the open cart into a committed bill. Stock for every
// line is decremented, the bill is appended to the ledger and the cart is
// reset, all as one step. On any error nothing changes.
func (e *Engine) GenerateBill(ctx context.Context) (entity.Bill, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.cart.IsEmpty() {
		return entity.Bill{}, ErrEmptyBill
	}
	if !e.cart.hasCustomer() {
		return entity.Bill{}, ErrMissingCustomer
	}

	seq := e.seq + 1
	number := FormatBillNumber(e.prefix, seq)
	if _, exists := e.ledger.FindByNumber(number); exists {
		return entity.Bill{}, ErrDuplicateBill.Withf("Bill %s already exists", number)
	}

	totals := Calculate(e.cart.Subtotal(), e.taxRate, e.cart.DiscountPercent())
	bill := entity.Bill{
		ID:              uuid.New(),
		Sequence:        seq,
		BillNumber:      number,
		Items:           e.cart.Items(),
		Subtotal:        totals.Subtotal,
		TaxRate:         e.taxRate,
		TaxAmount:       totals.TaxAmount,
		DiscountPercent: e.cart.DiscountPercent(),
		DiscountAmount:  totals.DiscountAmount,
		Total:           totals.Total,
		CustomerName:    strings.TrimSpace(e.cart.CustomerName()),
		CustomerPhone:   strings.TrimSpace(e.cart.CustomerPhone()),
		PaymentMethod:   e.cart.PaymentMethod(),
		CreatedAt:       e.now(),
	}
	for i := range bill.Items {
		bill.Items[i].BillID = bill.ID
		bill.Items[i].Line = i + 1
	}

	var hook func() error
	if e.journal != nil {
		hook = func() error { return e.journal.RecordBill(ctx, &bill) }
	}
	if err := e.catalog.decrementBatch(e.cart.quantities(), hook); err != nil {
		return entity.Bill{}, err
	}

	e.seq = seq
	e.ledger.Append(bill)
	e.cart.Reset()
	return bill.Clone(), nil
}

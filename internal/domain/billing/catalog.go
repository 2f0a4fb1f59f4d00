package billing

import (
	"sort"
	"strings"
	"sync"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
)

// Catalog holds the sellable products and their stock counters. Every method
// is safe for concurrent use and each read-then-write happens under a single
// lock, so stock can never be observed below zero.
type Catalog struct {
	mu       sync.RWMutex
	products map[int64]*entity.Product
	order    []int64
}

// ProductFilter narrows a catalog listing. An empty Category or CategoryAll
// matches every product; Search is a case-insensitive name substring.
type ProductFilter struct {
	Search   string
	Category string
}

// NewCatalog creates a catalog preloaded with products.
func NewCatalog(products ...entity.Product) (*Catalog, error) {
	c := &Catalog{products: make(map[int64]*entity.Product, len(products))}
	for _, p := range products {
		if err := c.Add(p); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add registers a new product.
func (c *Catalog) Add(p entity.Product) error {
	return c.add(p, nil)
}

func (c *Catalog) add(p entity.Product, beforeApply func(entity.Product) error) error {
	if err := validateProduct(&p); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.products[p.ID]; exists {
		return ErrDuplicateProduct.Withf("Product %d already exists", p.ID)
	}
	if beforeApply != nil {
		if err := beforeApply(p); err != nil {
			return err
		}
	}
	c.products[p.ID] = &p
	c.order = append(c.order, p.ID)
	return nil
}

func validateProduct(p *entity.Product) error {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	switch {
	case p.ID <= 0:
		return ErrInvalidProduct.Withf("Product id must be positive")
	case p.Name == "":
		return ErrInvalidProduct.Withf("Product name is required")
	case p.UnitPrice.IsNegative():
		return ErrInvalidPrice
	case p.Stock < 0:
		return ErrInvalidProduct.Withf("Stock cannot be negative")
	case strings.EqualFold(p.Category, entity.CategoryAll):
		return ErrInvalidProduct.Withf("%q is reserved for filtering", entity.CategoryAll)
	}
	return nil
}

// FindByID returns a copy of the product, or false when the id is unknown.
func (c *Catalog) FindByID(productID int64) (entity.Product, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	p, ok := c.products[productID]
	if !ok {
		return entity.Product{}, false
	}
	return *p, true
}

// AvailableStock returns the product's stock, or 0 for an unknown id.
func (c *Catalog) AvailableStock(productID int64) int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if p, ok := c.products[productID]; ok {
		return p.Stock
	}
	return 0
}

// DecrementStock removes amount units from a product.
func (c *Catalog) DecrementStock(productID int64, amount int) error {
	return c.DecrementBatch(map[int64]int{productID: amount})
}

// DecrementBatch removes stock for several products at once. Either every
// decrement is applied or none is.
func (c *Catalog) DecrementBatch(decrements map[int64]int) error {
	return c.decrementBatch(decrements, nil)
}

// decrementBatch pre-checks every decrement, runs beforeApply (if any) while
// still holding the lock, then applies. An error from either step leaves the
// catalog untouched.
func (c *Catalog) decrementBatch(decrements map[int64]int, beforeApply func() error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := make([]int64, 0, len(decrements))
	for id := range decrements {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		amount := decrements[id]
		if amount < 0 {
			return ErrInvalidQuantity
		}
		p, ok := c.products[id]
		if !ok {
			return ErrProductNotFound.Withf("Product %d not found", id)
		}
		if amount > p.Stock {
			return ErrInsufficientStock.Withf("Insufficient stock for %s: requested %d, available %d", p.Name, amount, p.Stock)
		}
	}

	if beforeApply != nil {
		if err := beforeApply(); err != nil {
			return err
		}
	}

	for _, id := range ids {
		c.products[id].Stock -= decrements[id]
	}
	return nil
}

// Restock adds amount units to a product (deliveries, returns).
func (c *Catalog) Restock(productID int64, amount int) (entity.Product, error) {
	return c.restock(productID, amount, nil)
}

func (c *Catalog) restock(productID int64, amount int, beforeApply func(entity.Product) error) (entity.Product, error) {
	if amount <= 0 {
		return entity.Product{}, ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p, ok := c.products[productID]
	if !ok {
		return entity.Product{}, ErrProductNotFound.Withf("Product %d not found", productID)
	}
	updated := *p
	updated.Stock += amount
	if beforeApply != nil {
		if err := beforeApply(updated); err != nil {
			return entity.Product{}, err
		}
	}
	*p = updated
	return updated, nil
}

// List returns matching products in the order they were added.
func (c *Catalog) List(filter ProductFilter) []entity.Product {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	category := strings.TrimSpace(filter.Category)
	if strings.EqualFold(category, entity.CategoryAll) {
		category = ""
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]entity.Product, 0, len(c.order))
	for _, id := range c.order {
		p := c.products[id]
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		out = append(out, *p)
	}
	return out
}

// Categories returns the distinct stored categories, sorted.
func (c *Catalog) Categories() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := make(map[string]struct{})
	for _, p := range c.products {
		if p.Category != "" {
			seen[p.Category] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for cat := range seen {
		out = append(out, cat)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.order)
}

// nextID returns one past the highest product id.
func (c *Catalog) nextID() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var max int64
	for id := range c.products {
		if id > max {
			max = id
		}
	}
	return max + 1
}

// CatalogView exposes the read side of a Catalog.
type CatalogView struct {
	c *Catalog
}

func (v CatalogView) FindByID(productID int64) (entity.Product, bool) {
	return v.c.FindByID(productID)
}

func (v CatalogView) AvailableStock(productID int64) int {
	return v.c.AvailableStock(productID)
}

func (v CatalogView) List(filter ProductFilter) []entity.Product {
	return v.c.List(filter)
}

func (v CatalogView) Categories() []string {
	return v.c.Categories()
}

func (v CatalogView) Len() int {
	return v.c.Len()
}

package repository

import (
	"context"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	CreateBatch(ctx context.Context, products []entity.Product) error
	// Save inserts the product or overwrites the stored row with the same ID
	Save(ctx context.Context, product *entity.Product) error
	// ListAll returns every product ordered by ID
	ListAll(ctx context.Context) ([]entity.Product, error)
	Count(ctx context.Context) (int64, error)
	// AtomicDecrementBatch atomically decrements stock for multiple products.
	// Returns the product IDs that failed (insufficient stock) and any error.
	// If any product fails, the entire transaction is rolled back.
	AtomicDecrementBatch(ctx context.Context, decrements map[int64]int) (failedIDs []int64, err error)
}

package repository

import (
	"context"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
)

// BillRepository defines the interface for committed bill storage.
// Bills are never updated or deleted.
type BillRepository interface {
	// Create stores the bill together with its line items
	Create(ctx context.Context, bill *entity.Bill) error
	GetByBillNumber(ctx context.Context, billNumber string) (*entity.Bill, error)
	// ListAll returns every bill with its items, oldest first
	ListAll(ctx context.Context) ([]entity.Bill, error)
}

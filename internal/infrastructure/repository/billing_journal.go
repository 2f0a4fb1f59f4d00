package repository

import (
	"context"
	"fmt"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/pkg/apperror"
	"gorm.io/gorm"
)

type billingJournal struct {
	db *gorm.DB
}

// NewBillingJournal persists engine changes to Postgres. A committed bill and
// its stock decrements are written in one transaction.
func NewBillingJournal(db *gorm.DB) billing.Journal {
	return &billingJournal{db: db}
}

func (j *billingJournal) RecordBill(ctx context.Context, bill *entity.Bill) error {
	decrements := make(map[int64]int, len(bill.Items))
	for _, item := range bill.Items {
		decrements[item.ProductID] += item.Quantity
	}

	return j.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bills := NewBillRepository(tx)
		existing, err := bills.GetByBillNumber(ctx, bill.BillNumber)
		if err != nil {
			return err
		}
		if existing != nil {
			return apperror.NewConflictError("Bill " + bill.BillNumber + " is already stored")
		}

		failed, err := NewProductRepository(tx).AtomicDecrementBatch(ctx, decrements)
		if err != nil {
			return err
		}
		if len(failed) > 0 {
			return billing.ErrInsufficientStock.Withf("Stored stock is short for products %v", failed)
		}
		if err := bills.Create(ctx, bill); err != nil {
			return fmt.Errorf("store bill %s: %w", bill.BillNumber, err)
		}
		return nil
	})
}

func (j *billingJournal) SaveProduct(ctx context.Context, product entity.Product) error {
	return NewProductRepository(j.db).Save(ctx, &product)
}

// LoadEngine rebuilds the billing engine from the stored catalog and bills.
// The returned engine journals every later change back to db.
func LoadEngine(ctx context.Context, db *gorm.DB, opts ...billing.Option) (*billing.Engine, error) {
	products, err := NewProductRepository(db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	stored, err := NewBillRepository(db).ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load bills: %w", err)
	}

	// The snapshot ledger is newest first.
	ledger := make([]entity.Bill, len(stored))
	for i, b := range stored {
		ledger[len(stored)-1-i] = b
	}

	opts = append(opts, billing.WithJournal(NewBillingJournal(db)))
	return billing.Restore(billing.Snapshot{Catalog: products, Ledger: ledger}, opts...)
}

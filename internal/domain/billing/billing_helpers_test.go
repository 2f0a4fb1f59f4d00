package billing

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func product(id int64, name, price string, stock int, category string) entity.Product {
	return entity.Product{ID: id, Name: name, UnitPrice: dec(price), Stock: stock, Category: category}
}

func demoProducts() []entity.Product {
	return DemoProducts()
}

var fixedNow = time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

// recordingJournal captures journal calls and can be told to fail.
type recordingJournal struct {
	mu       sync.Mutex
	bills    []entity.Bill
	products []entity.Product
	fail     error
}

func (j *recordingJournal) RecordBill(_ context.Context, bill *entity.Bill) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail != nil {
		return j.fail
	}
	j.bills = append(j.bills, bill.Clone())
	return nil
}

func (j *recordingJournal) SaveProduct(_ context.Context, p entity.Product) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.fail != nil {
		return j.fail
	}
	j.products = append(j.products, p)
	return nil
}

var errJournalDown = errors.New("journal unavailable")

// stockMap is a StockLookup over a plain map.
type stockMap map[int64]entity.Product

func (m stockMap) FindByID(id int64) (entity.Product, bool) {
	p, ok := m[id]
	return p, ok
}

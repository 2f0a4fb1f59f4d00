package billing

import (
	"sync"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
)

// Ledger is the append-only history of committed bills. Reads return copies
// so entries stay frozen once appended.
type Ledger struct {
	mu    sync.RWMutex
	bills []entity.Bill // oldest first
	index map[string]int
}

func NewLedger() *Ledger {
	return &Ledger{index: make(map[string]int)}
}

// Append records a bill.
func (l *Ledger) Append(bill entity.Bill) {
	bill = bill.Clone()

	l.mu.Lock()
	defer l.mu.Unlock()

	l.index[bill.BillNumber] = len(l.bills)
	l.bills = append(l.bills, bill)
}

// All returns every bill, newest first.
func (l *Ledger) All() []entity.Bill {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]entity.Bill, 0, len(l.bills))
	for i := len(l.bills) - 1; i >= 0; i-- {
		out = append(out, l.bills[i].Clone())
	}
	return out
}

func (l *Ledger) Count() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.bills)
}

// FindByNumber looks a bill up by its bill number.
func (l *Ledger) FindByNumber(billNumber string) (entity.Bill, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	i, ok := l.index[billNumber]
	if !ok {
		return entity.Bill{}, false
	}
	return l.bills[i].Clone(), true
}

// Page returns one page of bills, newest first, and the total count. Pages
// start at 1; a page past the end is empty.
func (l *Ledger) Page(page, perPage int) ([]entity.Bill, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 1
	}

	l.mu.RLock()
	defer l.mu.RUnlock()

	total := len(l.bills)
	offset := (page - 1) * perPage
	if offset >= total {
		return []entity.Bill{}, total
	}
	end := offset + perPage
	if end > total {
		end = total
	}

	out := make([]entity.Bill, 0, end-offset)
	for i := offset; i < end; i++ {
		out = append(out, l.bills[total-1-i].Clone())
	}
	return out, total
}

// LastSequence returns the highest bill sequence recorded, or 0.
func (l *Ledger) LastSequence() int64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var last int64
	for i := range l.bills {
		if l.bills[i].Sequence > last {
			last = l.bills[i].Sequence
		}
	}
	return last
}

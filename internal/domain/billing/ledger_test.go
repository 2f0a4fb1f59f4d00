package billing

import (
	"testing"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ledgerWith(n int) *Ledger {
	l := NewLedger()
	for i := 1; i <= n; i++ {
		l.Append(entity.Bill{
			ID:         uuid.New(),
			Sequence:   int64(i),
			BillNumber: FormatBillNumber("BILL", int64(i)),
			Items:      []entity.LineItem{{ID: uuid.New(), ProductID: 1, Name: "A", UnitPrice: dec("1"), Quantity: i}},
		})
	}
	return l
}

func TestLedger_AllIsNewestFirst(t *testing.T) {
	l := ledgerWith(3)

	all := l.All()
	require.Len(t, all, 3)
	assert.Equal(t, "BILL-000003", all[0].BillNumber)
	assert.Equal(t, "BILL-000001", all[2].BillNumber)
	assert.Equal(t, 3, l.Count())
}

func TestLedger_EntriesAreFrozen(t *testing.T) {
	l := NewLedger()
	bill := entity.Bill{
		BillNumber: "BILL-000001",
		Items:      []entity.LineItem{{Name: "A", Quantity: 1}},
	}
	l.Append(bill)

	bill.Items[0].Quantity = 50
	all := l.All()
	all[0].Items[0].Name = "changed"

	stored, ok := l.FindByNumber("BILL-000001")
	require.True(t, ok)
	assert.Equal(t, 1, stored.Items[0].Quantity)
	assert.Equal(t, "A", stored.Items[0].Name)
}

func TestLedger_FindByNumber(t *testing.T) {
	l := ledgerWith(2)

	b, ok := l.FindByNumber("BILL-000002")
	require.True(t, ok)
	assert.Equal(t, int64(2), b.Sequence)

	_, ok = l.FindByNumber("BILL-999999")
	assert.False(t, ok)
}

func TestLedger_Page(t *testing.T) {
	l := ledgerWith(5)

	page, total := l.Page(1, 2)
	assert.Equal(t, 5, total)
	require.Len(t, page, 2)
	assert.Equal(t, "BILL-000005", page[0].BillNumber)
	assert.Equal(t, "BILL-000004", page[1].BillNumber)

	page, _ = l.Page(3, 2)
	require.Len(t, page, 1)
	assert.Equal(t, "BILL-000001", page[0].BillNumber)

	page, _ = l.Page(4, 2)
	assert.Empty(t, page)

	page, _ = l.Page(0, 0)
	require.Len(t, page, 1)
	assert.Equal(t, "BILL-000005", page[0].BillNumber)
}

func TestLedger_LastSequence(t *testing.T) {
	assert.Equal(t, int64(0), NewLedger().LastSequence())
	assert.Equal(t, int64(4), ledgerWith(4).LastSequence())
}

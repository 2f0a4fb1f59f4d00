package billing

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot_RestoreThroughJSON(t *testing.T) {
	e := newTestEngine(t, demoProducts())
	_, err := e.AddToCart(1)
	require.NoError(t, err)
	e.SetCustomer("Asha", "")
	_, err = e.GenerateBill(context.Background())
	require.NoError(t, err)

	item, err := e.AddToCart(5)
	require.NoError(t, err)
	require.NoError(t, e.SetQuantity(item.ID, 2))
	e.SetDiscountPercent(dec("7.5"))
	e.SetCustomer("Dev", "123")
	require.NoError(t, e.SetPaymentMethod(enum.PaymentMethodNetBanking))

	raw, err := json.Marshal(e.Snapshot())
	require.NoError(t, err)

	var snap Snapshot
	require.NoError(t, json.Unmarshal(raw, &snap))

	restored, err := Restore(snap, WithClock(fixedClock))
	require.NoError(t, err)

	assert.Equal(t, 49, restored.Catalog().AvailableStock(1))
	assert.Equal(t, 1, restored.Ledger().Count())

	view := restored.CartView()
	require.Len(t, view.Items, 1)
	assert.Equal(t, item.ID, view.Items[0].ID)
	assert.Equal(t, 2, view.Items[0].Quantity)
	assert.True(t, view.DiscountPercent.Equal(dec("7.5")))
	assert.Equal(t, "Dev", view.CustomerName)
	assert.Equal(t, enum.PaymentMethodNetBanking, view.PaymentMethod)

	bill, err := restored.GenerateBill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BILL-000002", bill.BillNumber)
}

func TestRestore_RejectsInconsistentState(t *testing.T) {
	valid := func() Snapshot {
		return Snapshot{
			Catalog: []entity.Product{product(1, "A", "10", 2, "")},
			Cart: CartSnapshot{
				Items: []entity.LineItem{{ID: uuid.New(), ProductID: 1, Name: "A", UnitPrice: dec("10"), Quantity: 1}},
			},
		}
	}

	tests := []struct {
		name   string
		mutate func(s *Snapshot)
	}{
		{"quantity above stock", func(s *Snapshot) { s.Cart.Items[0].Quantity = 3 }},
		{"zero quantity", func(s *Snapshot) { s.Cart.Items[0].Quantity = 0 }},
		{"negative price", func(s *Snapshot) { s.Cart.Items[0].UnitPrice = dec("-1") }},
		{"unknown product", func(s *Snapshot) { s.Cart.Items[0].ProductID = 8 }},
		{"missing line id", func(s *Snapshot) { s.Cart.Items[0].ID = uuid.Nil }},
		{"duplicate product line", func(s *Snapshot) {
			s.Cart.Items = append(s.Cart.Items, entity.LineItem{ID: uuid.New(), ProductID: 1, Quantity: 1})
		}},
		{"unknown payment method", func(s *Snapshot) { s.Cart.PaymentMethod = "Barter" }},
		{"bill totals do not add up", func(s *Snapshot) {
			s.Ledger = []entity.Bill{{Sequence: 1, BillNumber: "BILL-000001", Subtotal: dec("10"), Total: dec("11")}}
		}},
		{"duplicate bill number", func(s *Snapshot) {
			s.Ledger = []entity.Bill{{Sequence: 1, BillNumber: "BILL-000001"}, {Sequence: 1, BillNumber: "BILL-000001"}}
		}},
		{"bill without sequence", func(s *Snapshot) {
			s.Ledger = []entity.Bill{{BillNumber: "BILL-000001"}}
		}},
		{"duplicate bill sequence", func(s *Snapshot) {
			s.Ledger = []entity.Bill{{Sequence: 1, BillNumber: "INV-000001"}, {Sequence: 1, BillNumber: "BILL-000001"}}
		}},
		{"bill number does not match sequence", func(s *Snapshot) {
			s.Ledger = []entity.Bill{{Sequence: 2, BillNumber: "BILL-000001"}}
		}},
		{"bill number without prefix", func(s *Snapshot) {
			s.Ledger = []entity.Bill{{Sequence: 1, BillNumber: "000001"}}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid()
			tt.mutate(&s)
			_, err := Restore(s)
			assert.ErrorIs(t, err, ErrInvalidSnapshot)
		})
	}

	_, err := Restore(valid())
	assert.NoError(t, err)
}

func TestRestore_RejectsInvalidCatalog(t *testing.T) {
	_, err := Restore(Snapshot{Catalog: []entity.Product{product(1, "A", "1", 1, ""), product(1, "B", "1", 1, "")}})
	assert.ErrorIs(t, err, ErrDuplicateProduct)
}

func TestRestore_BillWithoutSequenceFromJSON(t *testing.T) {
	raw := `{
		"catalog": [{"id": 1, "name": "A", "unit_price": "10", "stock": 5}],
		"cart": {"items": [], "payment_method": ""},
		"ledger": [{"bill_number": "BILL-000001", "subtotal": "10", "tax_amount": "0", "discount_amount": "0", "total": "10", "customer_name": "Asha"}]
	}`

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	_, err := Restore(snap)
	assert.ErrorIs(t, err, ErrInvalidSnapshot)
}

func TestRestore_EmptyPaymentMethodDefaultsToCash(t *testing.T) {
	raw := `{"catalog": [], "cart": {"items": [], "payment_method": ""}, "ledger": []}`

	var snap Snapshot
	require.NoError(t, json.Unmarshal([]byte(raw), &snap))

	e, err := Restore(snap)
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodCash, e.CartView().PaymentMethod)
}

func TestRestore_ContinuesNumberingAcrossPrefixes(t *testing.T) {
	snap := Snapshot{
		Catalog: []entity.Product{product(1, "A", "10", 5, "")},
		Ledger: []entity.Bill{
			{Sequence: 2, BillNumber: "BILL-000002"},
			{Sequence: 1, BillNumber: "INV-000001"},
		},
	}

	e, err := Restore(snap, WithClock(fixedClock))
	require.NoError(t, err)

	_, err = e.AddToCart(1)
	require.NoError(t, err)
	e.SetCustomer("Bob", "")
	bill, err := e.GenerateBill(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "BILL-000003", bill.BillNumber)
	assert.Equal(t, 3, e.Ledger().Count())
}

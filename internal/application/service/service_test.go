package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/config"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/FRANKLIN09020/smart-billing/pkg/apperror"
	"github.com/FRANKLIN09020/smart-billing/pkg/pagination"
	"github.com/FRANKLIN09020/smart-billing/pkg/printer"
	"github.com/FRANKLIN09020/smart-billing/pkg/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

type services struct {
	engine  *billing.Engine
	catalog *CatalogService
	cart    *CartService
	bills   *BillService
}

func newServices(t *testing.T) services {
	t.Helper()
	catalog, err := billing.NewCatalog(billing.DemoProducts()...)
	require.NoError(t, err)

	now := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
	engine := billing.NewEngine(catalog, billing.NewLedger(), billing.WithClock(func() time.Time { return now }))
	log := zap.NewNop()

	return services{
		engine:  engine,
		catalog: NewCatalogService(engine, log),
		cart:    NewCartService(engine),
		bills:   NewBillService(engine, log),
	}
}

// commit puts one unit of productID in the cart and generates a bill.
func (s services) commit(t *testing.T, productID int64, customer string) string {
	t.Helper()
	ctx := context.Background()
	_, _, err := s.cart.AddItem(ctx, productID)
	require.NoError(t, err)
	s.cart.SetCustomer(ctx, customer, "")
	bill, err := s.bills.Generate(ctx)
	require.NoError(t, err)
	return bill.BillNumber
}

func TestCatalogService_ListProducts(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	products, meta := s.catalog.ListProducts(ctx, &ListProductsInput{
		Category:   "Electronics",
		Pagination: pagination.Params{Page: 1, PerPage: 2},
	})
	require.Len(t, products, 2)
	assert.Equal(t, int64(3), meta.Total)
	assert.True(t, meta.HasNext)

	products, _ = s.catalog.ListProducts(ctx, &ListProductsInput{Search: "product b"})
	require.Len(t, products, 1)
	assert.Equal(t, int64(2), products[0].ID)
}

func TestCatalogService_Categories(t *testing.T) {
	s := newServices(t)
	assert.Equal(t, []string{"All", "Accessories", "Electronics"}, s.catalog.Categories(context.Background()))
}

func TestCatalogService_CreateAndRestock(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	p, err := s.catalog.CreateProduct(ctx, &CreateProductInput{
		Name:      "Product F",
		UnitPrice: decimal.NewFromInt(20),
		Stock:     5,
		Category:  "Accessories",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(6), p.ID)

	_, err = s.catalog.CreateProduct(ctx, &CreateProductInput{ID: 6, Name: "Dup", Stock: 1})
	assert.ErrorIs(t, err, billing.ErrDuplicateProduct)

	p, err = s.catalog.Restock(ctx, 6, 10)
	require.NoError(t, err)
	assert.Equal(t, 15, p.Stock)

	_, err = s.catalog.GetProduct(ctx, 99)
	assert.ErrorIs(t, err, billing.ErrProductNotFound)
}

func TestCatalogService_ConcurrentCreateWithoutID(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.catalog.CreateProduct(ctx, &CreateProductInput{
				Name:      "Bulk",
				UnitPrice: decimal.NewFromInt(1),
				Stock:     1,
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	products, _ := s.catalog.ListProducts(ctx, &ListProductsInput{Search: "bulk"})
	assert.Len(t, products, 10)
}

func TestCartService_Flow(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	item, view, err := s.cart.AddItem(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.NewFromInt(100)))

	view, err = s.cart.SetQuantity(ctx, item.ID, 3)
	require.NoError(t, err)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.NewFromInt(300)))

	view, err = s.cart.SetPrice(ctx, item.ID, decimal.NewFromInt(90))
	require.NoError(t, err)
	assert.True(t, view.Totals.Subtotal.Equal(decimal.NewFromInt(270)))

	view = s.cart.SetDiscount(ctx, decimal.NewFromInt(150))
	assert.True(t, view.DiscountPercent.Equal(decimal.NewFromInt(100)))

	view, err = s.cart.SetPaymentMethod(ctx, "upi")
	require.NoError(t, err)
	assert.Equal(t, enum.PaymentMethodUPI, view.PaymentMethod)

	_, err = s.cart.SetPaymentMethod(ctx, "cheque")
	assert.ErrorIs(t, err, billing.ErrInvalidPaymentMethod)

	view = s.cart.RemoveItem(ctx, item.ID)
	assert.Empty(t, view.Items)
	assert.Equal(t, enum.PaymentMethodUPI, view.PaymentMethod)

	view = s.cart.Clear(ctx)
	assert.Empty(t, view.Items)
}

func TestBillService_GenerateAndLookup(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()

	_, err := s.bills.Generate(ctx)
	assert.ErrorIs(t, err, billing.ErrEmptyBill)

	first := s.commit(t, 1, "Asha")
	second := s.commit(t, 2, "Ravi")
	assert.Equal(t, "BILL-000001", first)
	assert.Equal(t, "BILL-000002", second)
	assert.Equal(t, 2, s.bills.Count(ctx))

	bill, err := s.bills.GetByNumber(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, "Asha", bill.CustomerName)

	_, err = s.bills.GetByNumber(ctx, "BILL-999999")
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, 404, appErr.Code)

	bills, meta := s.bills.List(ctx, pagination.Params{Page: 1, PerPage: 1})
	require.Len(t, bills, 1)
	assert.Equal(t, second, bills[0].BillNumber)
	assert.Equal(t, 2, meta.TotalPages)
}

func TestAuthService_Login(t *testing.T) {
	jwt := utils.NewJWTManager("secret", time.Hour, "smart-billing")
	svc, err := NewAuthService(config.OperatorConfig{Username: "cashier", Password: "s3cret"}, jwt)
	require.NoError(t, err)
	assert.Equal(t, "cashier", svc.Operator().DisplayName)

	out, err := svc.Login(context.Background(), &LoginInput{Username: "cashier", Password: "s3cret"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.AccessToken)

	claims, err := jwt.ValidateAccessToken(out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "cashier", claims.Username)

	_, err = svc.Login(context.Background(), &LoginInput{Username: "cashier", Password: "wrong"})
	assert.ErrorIs(t, err, apperror.ErrInvalidCredentials)

	_, err = NewAuthService(config.OperatorConfig{Username: " "}, jwt)
	assert.Error(t, err)
}

func TestPrinterService_PrintBill(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	number := s.commit(t, 1, "Asha")

	recorder := printer.NewRecorder()
	svc := NewPrinterService(recorder, s.bills, config.StoreConfig{Name: "Corner Store"}, printer.Width58mm, zap.NewNop())

	receipt, err := svc.PrintBill(ctx, number, "Cashier")
	require.NoError(t, err)
	assert.Equal(t, number, receipt.BillNumber)
	assert.Equal(t, "Corner Store", receipt.Header.StoreName)

	jobs := recorder.Jobs()
	require.Len(t, jobs, 1)
	assert.Contains(t, string(jobs[0]), number)
	assert.Contains(t, string(jobs[0]), "1x Product A")
	assert.Contains(t, string(jobs[0]), "118.00")
	assert.Contains(t, string(jobs[0]), "Tax (18%):")

	_, err = svc.PrintBill(ctx, "BILL-404404", "Cashier")
	assert.Error(t, err)

	status := svc.GetStatus(ctx)
	assert.False(t, status.Configured)
	assert.Equal(t, printer.KindNone, status.Type)
}

func TestExportService_ExportBills(t *testing.T) {
	s := newServices(t)
	ctx := context.Background()
	s.commit(t, 1, "Asha")
	s.commit(t, 3, "Ravi")

	var buf bytes.Buffer
	require.NoError(t, NewExportService(s.bills, "Bills").ExportBills(ctx, &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Bills")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Bill Number", rows[0][0])
	assert.Equal(t, "BILL-000002", rows[1][0])
	assert.Equal(t, "Ravi", rows[1][2])

	items, err := f.GetRows("Items")
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Product C", items[1][3])
}

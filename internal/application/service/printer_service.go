package service

import (
	"context"
	"fmt"
	"time"

	"github.com/FRANKLIN09020/smart-billing/internal/config"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/FRANKLIN09020/smart-billing/pkg/printer"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	transport printer.Transport
	bills     *BillService
	header    entity.ReceiptHeader
	width     int
	log       *zap.Logger
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	transport printer.Transport,
	bills *BillService,
	store config.StoreConfig,
	width int,
	log *zap.Logger,
) *PrinterService {
	return &PrinterService{
		transport: transport,
		bills:     bills,
		header: entity.ReceiptHeader{
			StoreName: store.Name,
			Address:   store.Address,
			Phone:     store.Phone,
			TaxID:     store.TaxID,
		},
		width: width,
		log:   log,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.transport.Kind() != printer.KindNone,
		Connected:  s.transport.Ready(ctx),
		Type:       s.transport.Kind(),
	}
}

// TestPrint sends a sample receipt to the printer.
// The receipt is returned even when printing fails so the caller can show it.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.Receipt, error) {
	sample := &entity.Bill{
		ID:            uuid.New(),
		BillNumber:    "TEST-000000",
		CustomerName:  "Printer Test",
		PaymentMethod: enum.PaymentMethodCash,
		CreatedAt:     time.Now(),
		Items: []entity.LineItem{
			{Name: "Test Item 1", UnitPrice: decimal.NewFromInt(10), Quantity: 1},
			{Name: "Test Item 2", UnitPrice: decimal.NewFromInt(5), Quantity: 2},
		},
		Subtotal: decimal.NewFromInt(20),
		Total:    decimal.NewFromInt(20),
	}

	receipt := entity.NewReceipt(s.header, sample, "System")
	if err := s.transport.Send(ctx, FormatReceipt(receipt, s.width)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// PrintBill prints the receipt of a committed bill.
func (s *PrinterService) PrintBill(ctx context.Context, billNumber, cashier string) (*entity.Receipt, error) {
	bill, err := s.bills.GetByNumber(ctx, billNumber)
	if err != nil {
		return nil, err
	}

	receipt := entity.NewReceipt(s.header, bill, cashier)
	if err := s.transport.Send(ctx, FormatReceipt(receipt, s.width)); err != nil {
		s.log.Warn("printer error", zap.String("bill_number", billNumber), zap.Error(err))
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}

	s.log.Info("receipt printed", zap.String("bill_number", billNumber), zap.String("printer", s.transport.Kind()))
	return receipt, nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, width int) []byte {
	doc := printer.NewDocument(width)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.SizeDouble).
		Line(r.Header.StoreName).
		Size(printer.SizeNormal).
		Bold(false)

	if r.Header.Address != "" {
		doc.Line(r.Header.Address)
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}
	if r.Header.TaxID != "" {
		doc.Linef("Tax ID: %s", r.Header.TaxID)
	}

	doc.Align(printer.AlignLeft).
		Rule('-').
		Columns("Bill:", r.BillNumber).
		Columns("Date:", r.Date)

	if r.Cashier != "" {
		doc.Columns("Cashier:", r.Cashier)
	}
	if r.Customer != "" {
		doc.Columns("Customer:", r.Customer)
	}
	if r.CustomerPhone != "" {
		doc.Columns("Phone:", r.CustomerPhone)
	}
	if r.PaymentMethod != "" {
		doc.Columns("Payment:", r.PaymentMethod)
	}

	doc.Rule('-')

	for _, item := range r.Items {
		doc.Item(item.Quantity, item.Name, money(item.Total))
		if item.Quantity > 1 {
			doc.Linef("  @ %s each", money(item.UnitPrice))
		}
	}

	doc.Rule('-').
		Columns("Subtotal:", money(r.SubTotal))
	if r.Tax.IsPositive() {
		doc.Columns(fmt.Sprintf("Tax (%s%%):", r.TaxRate.Shift(2).String()), money(r.Tax))
	}
	if r.Discount.IsPositive() {
		doc.Columns(fmt.Sprintf("Discount (%s%%):", r.DiscountPercent.String()), "-"+money(r.Discount))
	}
	doc.Bold(true).
		Columns("TOTAL:", money(r.Total)).
		Bold(false).
		Rule('-')

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line("Thank you for your business!").
		Feed(1).
		Align(printer.AlignLeft).
		Feed(3).
		Cut(true)

	return doc.Bytes()
}

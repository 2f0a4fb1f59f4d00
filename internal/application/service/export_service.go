package service

import (
	"context"
	"fmt"
	"io"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/xuri/excelize/v2"
)

const itemsSheet = "Items"

var (
	billColumns = []interface{}{
		"Bill Number", "Date", "Customer", "Phone", "Payment Method", "Items",
		"Subtotal", "Tax Rate", "Tax", "Discount %", "Discount", "Total",
	}
	itemColumns = []interface{}{
		"Bill Number", "Line", "Product ID", "Product", "Unit Price", "Quantity", "Line Total",
	}
)

// ExportService writes the bill ledger as an Excel workbook
type ExportService struct {
	bills     *BillService
	billSheet string
}

// NewExportService creates a new export service
func NewExportService(bills *BillService, billSheet string) *ExportService {
	if billSheet == "" || billSheet == itemsSheet {
		billSheet = "Bills"
	}
	return &ExportService{bills: bills, billSheet: billSheet}
}

// ExportBills writes every bill (newest first) and its line items to w
func (s *ExportService) ExportBills(ctx context.Context, w io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.billSheet); err != nil {
		return err
	}
	if _, err := f.NewSheet(itemsSheet); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	if err := writeHeader(f, s.billSheet, billColumns, headerStyle); err != nil {
		return err
	}
	if err := writeHeader(f, itemsSheet, itemColumns, headerStyle); err != nil {
		return err
	}

	itemRow := 2
	for i, bill := range s.bills.All(ctx) {
		if err := setRow(f, s.billSheet, i+2, billRow(&bill)); err != nil {
			return err
		}
		for line, item := range bill.Items {
			if err := setRow(f, itemsSheet, itemRow, lineRow(bill.BillNumber, line+1, &item)); err != nil {
				return err
			}
			itemRow++
		}
	}

	return f.Write(w)
}

func writeHeader(f *excelize.File, sheet string, columns []interface{}, style int) error {
	if err := setRow(f, sheet, 1, columns); err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func setRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("write %s row %d: %w", sheet, row, err)
	}
	return nil
}

func billRow(b *entity.Bill) []interface{} {
	return []interface{}{
		b.BillNumber,
		b.CreatedAt.Format("2006-01-02 15:04:05"),
		b.CustomerName,
		b.CustomerPhone,
		b.PaymentMethod.String(),
		b.TotalQuantity(),
		b.Subtotal.Round(2).InexactFloat64(),
		b.TaxRate.InexactFloat64(),
		b.TaxAmount.Round(2).InexactFloat64(),
		b.DiscountPercent.InexactFloat64(),
		b.DiscountAmount.Round(2).InexactFloat64(),
		b.Total.Round(2).InexactFloat64(),
	}
}

func lineRow(billNumber string, line int, item *entity.LineItem) []interface{} {
	return []interface{}{
		billNumber,
		line,
		item.ProductID,
		item.Name,
		item.UnitPrice.Round(2).InexactFloat64(),
		item.Quantity,
		item.LineTotal().Round(2).InexactFloat64(),
	}
}

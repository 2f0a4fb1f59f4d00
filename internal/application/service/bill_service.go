package service

import (
	"context"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/pkg/apperror"
	"github.com/FRANKLIN09020/smart-billing/pkg/pagination"
	"go.uber.org/zap"
)

// BillService commits bills and serves the bill history
type BillService struct {
	engine *billing.Engine
	log    *zap.Logger
}

// NewBillService creates a new bill service
func NewBillService(engine *billing.Engine, log *zap.Logger) *BillService {
	return &BillService{engine: engine, log: log}
}

// Generate commits the open cart as a bill
func (s *BillService) Generate(ctx context.Context) (*entity.Bill, error) {
	bill, err := s.engine.GenerateBill(ctx)
	if err != nil {
		if apperror.IsAppError(err) {
			s.log.Debug("bill rejected", zap.Error(err))
		} else {
			s.log.Error("bill commit failed", zap.Error(err))
		}
		return nil, err
	}

	s.log.Info("bill generated",
		zap.String("bill_number", bill.BillNumber),
		zap.String("customer", bill.CustomerName),
		zap.String("payment_method", bill.PaymentMethod.String()),
		zap.Int("items", len(bill.Items)),
		zap.String("total", bill.Total.StringFixed(2)),
	)
	return &bill, nil
}

// List returns one page of bills, newest first
func (s *BillService) List(_ context.Context, params pagination.Params) ([]entity.Bill, *pagination.Meta) {
	params.Validate()
	bills, total := s.engine.Ledger().Page(params.Page, params.PerPage)
	return bills, pagination.NewMeta(params, int64(total))
}

// GetByNumber retrieves a bill by its bill number
func (s *BillService) GetByNumber(_ context.Context, number string) (*entity.Bill, error) {
	bill, ok := s.engine.Ledger().FindByNumber(number)
	if !ok {
		return nil, apperror.NewNotFoundError("Bill " + number)
	}
	return &bill, nil
}

func (s *BillService) Count(_ context.Context) int {
	return s.engine.Ledger().Count()
}

// All returns every bill, newest first
func (s *BillService) All(_ context.Context) []entity.Bill {
	return s.engine.Ledger().All()
}

// Snapshot returns the full terminal state
func (s *BillService) Snapshot(_ context.Context) billing.Snapshot {
	return s.engine.Snapshot()
}

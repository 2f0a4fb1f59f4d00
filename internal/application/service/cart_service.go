package service

import (
	"context"

	"github.com/FRANKLIN09020/smart-billing/internal/domain/billing"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/entity"
	"github.com/FRANKLIN09020/smart-billing/internal/domain/enum"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CartService drives the open bill on the counter. Every mutation returns
// the cart as it stands afterwards.
type CartService struct {
	engine *billing.Engine
}

// NewCartService creates a new cart service
func NewCartService(engine *billing.Engine) *CartService {
	return &CartService{engine: engine}
}

func (s *CartService) View(_ context.Context) billing.CartView {
	return s.engine.CartView()
}

// AddItem adds one unit of a product and returns the affected line
func (s *CartService) AddItem(_ context.Context, productID int64) (entity.LineItem, billing.CartView, error) {
	item, err := s.engine.AddToCart(productID)
	if err != nil {
		return entity.LineItem{}, billing.CartView{}, err
	}
	return item, s.engine.CartView(), nil
}

func (s *CartService) SetQuantity(_ context.Context, lineItemID uuid.UUID, quantity int) (billing.CartView, error) {
	if err := s.engine.SetQuantity(lineItemID, quantity); err != nil {
		return billing.CartView{}, err
	}
	return s.engine.CartView(), nil
}

func (s *CartService) SetPrice(_ context.Context, lineItemID uuid.UUID, price decimal.Decimal) (billing.CartView, error) {
	if err := s.engine.SetPrice(lineItemID, price); err != nil {
		return billing.CartView{}, err
	}
	return s.engine.CartView(), nil
}

func (s *CartService) RemoveItem(_ context.Context, lineItemID uuid.UUID) billing.CartView {
	s.engine.RemoveItem(lineItemID)
	return s.engine.CartView()
}

func (s *CartService) Clear(_ context.Context) billing.CartView {
	s.engine.ClearCart()
	return s.engine.CartView()
}

func (s *CartService) SetDiscount(_ context.Context, percent decimal.Decimal) billing.CartView {
	s.engine.SetDiscountPercent(percent)
	return s.engine.CartView()
}

func (s *CartService) SetCustomer(_ context.Context, name, phone string) billing.CartView {
	s.engine.SetCustomer(name, phone)
	return s.engine.CartView()
}

// SetPaymentMethod accepts any casing of a known method
func (s *CartService) SetPaymentMethod(_ context.Context, method string) (billing.CartView, error) {
	m, err := enum.ParsePaymentMethod(method)
	if err != nil {
		return billing.CartView{}, billing.ErrInvalidPaymentMethod.Withf("Unknown payment method %q", method)
	}
	if err := s.engine.SetPaymentMethod(m); err != nil {
		return billing.CartView{}, err
	}
	return s.engine.CartView(), nil
}

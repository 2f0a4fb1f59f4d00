package billing

import (
	"net/http"

	"github.com/FRANKLIN09020/smart-billing/pkg/apperror"
)

// Business-rule failures. Each one is recoverable: the caller surfaces the
// message and all engine state is left unchanged. Match with errors.Is; the
// returned errors usually carry a more specific message.
var (
	ErrOutOfStock        = apperror.NewReasonError(http.StatusConflict, "OutOfStock", "Product out of stock")
	ErrStockExceeded     = apperror.NewReasonError(http.StatusConflict, "StockExceeded", "Cannot exceed available stock")
	ErrInvalidPrice      = apperror.NewReasonError(http.StatusUnprocessableEntity, "InvalidPrice", "Price cannot be negative")
	ErrEmptyBill         = apperror.NewReasonError(http.StatusUnprocessableEntity, "EmptyBill", "Please add items to the bill")
	ErrMissingCustomer   = apperror.NewReasonError(http.StatusUnprocessableEntity, "MissingCustomer", "Please enter customer name")
	ErrInsufficientStock = apperror.NewReasonError(http.StatusConflict, "InsufficientStock", "Insufficient stock")

	ErrLineItemNotFound     = apperror.NewReasonError(http.StatusNotFound, "LineItemNotFound", "Line item not found")
	ErrProductNotFound      = apperror.NewReasonError(http.StatusNotFound, "ProductNotFound", "Product not found")
	ErrInvalidPaymentMethod = apperror.NewReasonError(http.StatusUnprocessableEntity, "InvalidPaymentMethod", "Invalid payment method")
	ErrInvalidProduct       = apperror.NewReasonError(http.StatusUnprocessableEntity, "InvalidProduct", "Invalid product")
	ErrDuplicateProduct     = apperror.NewReasonError(http.StatusConflict, "DuplicateProduct", "Product already exists")
	ErrInvalidQuantity      = apperror.NewReasonError(http.StatusUnprocessableEntity, "InvalidQuantity", "Quantity must be positive")
	ErrDuplicateBill        = apperror.NewReasonError(http.StatusConflict, "DuplicateBill", "Bill number already used")
	ErrInvalidSnapshot      = apperror.NewReasonError(http.StatusUnprocessableEntity, "InvalidSnapshot", "Snapshot is inconsistent")
)

package service

import "github.com/palmbay/resort/api/internal/model"

// Centralized service layer errors.
// Not-found errors are shared sentinels so handlers can match them with
// errors.Is; conflict and validation errors carry per-call detail and are
// constructed at the point of detection.
var (
	ErrPaymentNotFound  = model.NewNotFoundError("PAYMENT_NOT_FOUND", "payment")
	ErrShiftNotFound    = model.NewNotFoundError("SHIFT_NOT_FOUND", "shift")
	ErrSwapNotFound     = model.NewNotFoundError("SWAP_REQUEST_NOT_FOUND", "swap request")
	ErrPackageNotFound  = model.NewNotFoundError("PACKAGE_NOT_FOUND", "package")
	ErrPoolNotFound     = model.NewNotFoundError("POOL_NOT_FOUND", "pool")
	ErrTicketNotFound   = model.NewNotFoundError("TICKET_NOT_FOUND", "pool ticket")
	ErrItemNotFound     = model.NewNotFoundError("ITEM_NOT_FOUND", "snack item")
	ErrOrderNotFound    = model.NewNotFoundError("ORDER_NOT_FOUND", "snack order")
	ErrDocumentNotFound = model.NewNotFoundError("DOCUMENT_NOT_FOUND", "document")
)

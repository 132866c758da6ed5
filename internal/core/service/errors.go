package service

import "errors"

var (
	ErrStockExhausted   = errors.New("requested amount out of stock")
	ErrProductNotInCart = errors.New("product not in cart")
	ErrInvalidAmount    = errors.New("amount must be at least 1")
	// ErrLookupFailed wraps any stock oracle failure, including unknown products.
	ErrLookupFailed  = errors.New("stock oracle lookup failed")
	ErrPersistFailed = errors.New("cart persistence failed")
)

// outcome is the metrics and log label for an operation result.
func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrStockExhausted):
		return "stock_exhausted"
	case errors.Is(err, ErrProductNotInCart):
		return "not_in_cart"
	case errors.Is(err, ErrInvalidAmount):
		return "invalid_amount"
	case errors.Is(err, ErrLookupFailed):
		return "lookup_failed"
	case errors.Is(err, ErrPersistFailed):
		return "persist_failed"
	default:
		return "error"
	}
}

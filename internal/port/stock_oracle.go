package port

import (
	"context"
	"errors"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

// ErrUnknownProduct is returned by oracles when the catalog has no such product.
var ErrUnknownProduct = errors.New("unknown product")

type StockOracle interface {
	// GetProduct returns the catalog record for productID
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)

	// GetStock returns the units currently available for productID
	GetStock(ctx context.Context, productID int64) (*domain.Stock, error)
}

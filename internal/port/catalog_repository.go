package port

import (
	"context"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

type CatalogRepository interface {
	// GetProduct returns nil without error when the product does not exist
	GetProduct(ctx context.Context, productID int64) (*domain.Product, error)

	// GetStock returns nil without error when no stock is recorded for the product
	GetStock(ctx context.Context, productID int64) (*domain.Stock, error)
}

type CatalogWriter interface {
	SetProduct(ctx context.Context, product domain.Product) error
	SetStock(ctx context.Context, productID int64, amount int) error
}

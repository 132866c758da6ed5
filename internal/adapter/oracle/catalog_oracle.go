package oracle

import (
	"context"
	"fmt"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

// CatalogOracle answers stock oracle queries straight from a catalog
// repository, without going through the stock API.
type CatalogOracle struct {
	repo port.CatalogRepository
}

func NewCatalogOracle(repo port.CatalogRepository) *CatalogOracle {
	return &CatalogOracle{repo: repo}
}

func (o *CatalogOracle) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	product, err := o.repo.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("product %d: %w", productID, port.ErrUnknownProduct)
	}
	return product, nil
}

func (o *CatalogOracle) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	stock, err := o.repo.GetStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		return nil, fmt.Errorf("stock %d: %w", productID, port.ErrUnknownProduct)
	}
	return stock, nil
}

package oracle

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

type fakeCatalog struct {
	products map[int64]domain.Product
	stock    map[int64]int
	err      error
}

func (f fakeCatalog) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p, ok := f.products[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f fakeCatalog) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	if f.err != nil {
		return nil, f.err
	}
	amount, ok := f.stock[productID]
	if !ok {
		return nil, nil
	}
	return &domain.Stock{ID: productID, Amount: amount}, nil
}

func TestCatalogOracle(t *testing.T) {
	o := NewCatalogOracle(fakeCatalog{
		products: map[int64]domain.Product{1: {ID: 1, Title: "Tênis"}},
		stock:    map[int64]int{1: 2},
	})

	product, err := o.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Tênis", product.Title)

	stock, err := o.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 2, stock.Amount)
}

func TestCatalogOracle_Missing(t *testing.T) {
	o := NewCatalogOracle(fakeCatalog{})

	_, err := o.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, port.ErrUnknownProduct)

	_, err = o.GetStock(context.Background(), 1)
	assert.ErrorIs(t, err, port.ErrUnknownProduct)
}

func TestCatalogOracle_RepositoryError(t *testing.T) {
	boom := errors.New("redis down")
	o := NewCatalogOracle(fakeCatalog{err: boom})

	_, err := o.GetProduct(context.Background(), 1)
	assert.ErrorIs(t, err, boom)
}

package handler

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

type stubCatalog struct {
	products map[int64]domain.Product
	stock    map[int64]int
}

func (s stubCatalog) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	p, ok := s.products[productID]
	if !ok {
		return nil, port.ErrUnknownProduct
	}
	return &p, nil
}

func (s stubCatalog) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	amount, ok := s.stock[productID]
	if !ok {
		return nil, port.ErrUnknownProduct
	}
	return &domain.Stock{ID: productID, Amount: amount}, nil
}

type memoryStorage struct {
	mu   sync.Mutex
	cart domain.Cart
}

func (m *memoryStorage) LoadCart(ctx context.Context) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart, nil
}

func (m *memoryStorage) SaveCart(ctx context.Context, cart domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = cart
	return nil
}

// newTestCartService returns a cart with product 1 (stock 3) and product 2
// (stock 1) in the catalog.
func newTestCartService(t *testing.T, items ...domain.LineItem) *service.CartService {
	t.Helper()
	catalog := stubCatalog{
		products: map[int64]domain.Product{
			1: {ID: 1, Title: "Tênis", Price: 100, Image: "t.jpg"},
			2: {ID: 2, Title: "Chinelo", Price: 30, Image: "c.jpg"},
		},
		stock: map[int64]int{1: 3, 2: 1},
	}
	svc := service.NewCartService(catalog, &memoryStorage{cart: domain.NewCart(items...)})
	require.NoError(t, svc.Load(context.Background()))
	return svc
}

package port

import (
	"context"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

type CartStorage interface {
	// LoadCart reads the durable slot, returning an empty cart when it was never written
	LoadCart(ctx context.Context) (domain.Cart, error)

	// SaveCart overwrites the durable slot with the whole snapshot
	SaveCart(ctx context.Context, cart domain.Cart) error
}

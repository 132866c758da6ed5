package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

// CatalogSeed is the layout of a catalog seed file:
// {"products": [...], "stock": [...]}.
type CatalogSeed struct {
	Products []domain.Product `json:"products"`
	Stock    []domain.Stock   `json:"stock"`
}

func LoadSeedFile(path string) (CatalogSeed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return CatalogSeed{}, fmt.Errorf("read seed file: %w", err)
	}

	var seed CatalogSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return CatalogSeed{}, fmt.Errorf("decode seed file %s: %w", path, err)
	}
	return seed, nil
}

// SeedCatalog writes every product and stock entry of seed.
func SeedCatalog(ctx context.Context, w port.CatalogWriter, seed CatalogSeed) error {
	for _, p := range seed.Products {
		if err := w.SetProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %d: %w", p.ID, err)
		}
	}
	for _, s := range seed.Stock {
		if err := w.SetStock(ctx, s.ID, s.Amount); err != nil {
			return fmt.Errorf("seed stock %d: %w", s.ID, err)
		}
	}
	return nil
}

package oracle

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

// HTTPOracle queries the stock API: GET /products/{id} and GET /stock/{id}.
type HTTPOracle struct {
	client *resty.Client
}

func NewHTTPOracle(baseURL string, timeout time.Duration) *HTTPOracle {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("Accept", "application/json")
	return &HTTPOracle{client: client}
}

func (o *HTTPOracle) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	var product domain.Product
	if err := o.get(ctx, "/products/{id}", productID, &product); err != nil {
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	return &product, nil
}

func (o *HTTPOracle) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	var stock domain.Stock
	if err := o.get(ctx, "/stock/{id}", productID, &stock); err != nil {
		return nil, fmt.Errorf("get stock %d: %w", productID, err)
	}
	return &stock, nil
}

func (o *HTTPOracle) get(ctx context.Context, path string, productID int64, result any) error {
	resp, err := o.client.R().
		SetContext(ctx).
		SetPathParam("id", strconv.FormatInt(productID, 10)).
		SetResult(result).
		Get(path)
	if err != nil {
		return err
	}

	switch {
	case resp.StatusCode() == http.StatusNotFound:
		return port.ErrUnknownProduct
	case resp.IsError():
		return fmt.Errorf("unexpected status %d", resp.StatusCode())
	}
	return nil
}

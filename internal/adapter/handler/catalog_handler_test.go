package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

type repoCatalog struct {
	product *domain.Product
	stock   *domain.Stock
	err     error
}

func (r repoCatalog) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	return r.product, r.err
}

func (r repoCatalog) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	return r.stock, r.err
}

func serveCatalog(repo repoCatalog, path string) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewCatalogHandler(repo).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCatalogGetProduct(t *testing.T) {
	repo := repoCatalog{product: &domain.Product{ID: 1, Title: "Tênis", Price: 100, Image: "t.jpg"}}

	w := serveCatalog(repo, "/products/1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"title":"Tênis","price":100,"image":"t.jpg"}`, w.Body.String())
}

func TestCatalogGetStock(t *testing.T) {
	repo := repoCatalog{stock: &domain.Stock{ID: 1, Amount: 3}}

	w := serveCatalog(repo, "/stock/1")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":1,"amount":3}`, w.Body.String())
}

func TestCatalog_NotFound(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, serveCatalog(repoCatalog{}, "/products/7").Code)
	assert.Equal(t, http.StatusNotFound, serveCatalog(repoCatalog{}, "/stock/7").Code)
}

func TestCatalog_BadRequest(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serveCatalog(repoCatalog{}, "/products/x").Code)
}

func TestCatalog_RepositoryError(t *testing.T) {
	repo := repoCatalog{err: errors.New("redis down")}

	assert.Equal(t, http.StatusInternalServerError, serveCatalog(repo, "/stock/1").Code)
}

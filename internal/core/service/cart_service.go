package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/port"
)

const tracerName = "github.com/rl1809/rocketshoes-cart/internal/core/service"

// CartService owns the shopper's cart. Every mutation checks the stock
// oracle, writes the new snapshot to storage and only then publishes it.
// Mutations are serialized; Cart never blocks on them.
type CartService struct {
	oracle  port.StockOracle
	storage port.CartStorage
	metrics port.CartMetrics
	logger  logrus.FieldLogger
	tracer  trace.Tracer

	mu       sync.Mutex
	snapshot atomic.Pointer[domain.Cart]
}

type Option func(*CartService)

func WithLogger(logger logrus.FieldLogger) Option {
	return func(s *CartService) { s.logger = logger }
}

func WithMetrics(metrics port.CartMetrics) Option {
	return func(s *CartService) { s.metrics = metrics }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *CartService) { s.tracer = tracer }
}

func NewCartService(oracle port.StockOracle, storage port.CartStorage, opts ...Option) *CartService {
	s := &CartService{
		oracle:  oracle,
		storage: storage,
		metrics: nopMetrics{},
		logger:  logrus.StandardLogger(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.snapshot.Store(&domain.Cart{})
	return s
}

// Load replaces the in-memory cart with the one held by storage.
func (s *CartService) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, err := s.storage.LoadCart(ctx)
	if err != nil {
		return fmt.Errorf("load cart: %w", err)
	}
	if err := cart.Validate(); err != nil {
		return fmt.Errorf("stored cart is invalid: %w", err)
	}

	s.snapshot.Store(&cart)
	s.metrics.SetCartSize(cart.Len(), cart.Units())
	s.logger.WithField("lines", cart.Len()).Info("cart loaded")
	return nil
}

// Cart returns the last committed snapshot.
func (s *CartService) Cart() domain.Cart {
	return *s.snapshot.Load()
}

// AddProduct puts one more unit of productID in the cart, or a new line
// with a single unit when the product is not there yet.
func (s *CartService) AddProduct(ctx context.Context, productID int64) (err error) {
	ctx, done := s.begin(ctx, OpAddProduct, productID)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.Cart()
	existing, found := current.Find(productID)

	// The catalog record is fetched on every add, even when only the
	// amount of an existing line changes.
	product, err := s.oracle.GetProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: get product %d: %w", ErrLookupFailed, productID, err)
	}

	if !found {
		// The line is keyed by the requested id; the catalog record may
		// carry a different or missing one.
		item := domain.NewLineItem(*product)
		item.ID = productID
		return s.commit(ctx, current.Append(item))
	}

	stock, err := s.oracle.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: get stock %d: %w", ErrLookupFailed, productID, err)
	}
	if existing.Amount >= stock.Amount {
		return fmt.Errorf("%w: product %d has %d units available", ErrStockExhausted, productID, stock.Amount)
	}

	return s.commit(ctx, current.WithAmount(productID, incrementWithin(existing.Amount, stock.Amount)))
}

// RemoveProduct drops the line for productID. Removing a product that is
// not in the cart still rewrites the same snapshot.
func (s *CartService) RemoveProduct(ctx context.Context, productID int64) (err error) {
	ctx, done := s.begin(ctx, OpRemoveProduct, productID)
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, s.Cart().Remove(productID))
}

// UpdateProductAmount sets the amount of an existing line to exactly amount.
func (s *CartService) UpdateProductAmount(ctx context.Context, productID int64, amount int) (err error) {
	ctx, done := s.begin(ctx, OpUpdateProductAmount, productID)
	defer func() { done(err) }()

	if amount < 1 {
		return fmt.Errorf("%w: got %d", ErrInvalidAmount, amount)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.Cart()
	if _, found := current.Find(productID); !found {
		return fmt.Errorf("%w: product %d", ErrProductNotInCart, productID)
	}

	stock, err := s.oracle.GetStock(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: get stock %d: %w", ErrLookupFailed, productID, err)
	}
	if amount > stock.Amount {
		return fmt.Errorf("%w: product %d has %d units available", ErrStockExhausted, productID, stock.Amount)
	}

	return s.commit(ctx, current.WithAmount(productID, amount))
}

// incrementWithin adds one unit unless amount already sits at the ceiling.
func incrementWithin(amount, ceiling int) int {
	if amount == ceiling {
		return amount
	}
	return amount + 1
}

// commit must be called with s.mu held. The snapshot is published only
// after storage accepted it.
func (s *CartService) commit(ctx context.Context, next domain.Cart) error {
	if err := s.storage.SaveCart(ctx, next); err != nil {
		return fmt.Errorf("%w: %w", ErrPersistFailed, err)
	}
	s.snapshot.Store(&next)
	s.metrics.SetCartSize(next.Len(), next.Units())
	return nil
}

func (s *CartService) begin(ctx context.Context, op Operation, productID int64) (context.Context, func(error)) {
	start := time.Now()
	ctx, span := s.tracer.Start(ctx, "CartService."+string(op), trace.WithAttributes(
		attribute.Int64("product.id", productID),
	))
	log := s.logger.WithFields(logrus.Fields{
		"op":         op,
		"product_id": productID,
		"op_id":      uuid.NewString(),
	})

	return ctx, func(err error) {
		result := outcome(err)
		s.metrics.ObserveOperation(string(op), result, time.Since(start))
		span.SetAttributes(attribute.String("cart.outcome", result))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, result)
			log.WithError(err).WithField("outcome", result).Warn("cart operation rejected")
		} else {
			log.WithField("outcome", result).Debug("cart operation committed")
		}
		span.End()
	}
}

type nopMetrics struct{}

func (nopMetrics) ObserveOperation(string, string, time.Duration) {}
func (nopMetrics) SetCartSize(int, int)                           {}

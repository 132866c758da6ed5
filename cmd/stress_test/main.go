package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/oracle"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
)

const (
	redisAddr     = "localhost:6379"
	cartKey       = "stress:cart"
	productID     = 1001
	stockCeiling  = 20
	totalRequests = 50
)

func main() {
	ctx := context.Background()

	// Initialize Redis
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	defer rdb.Close()

	// Clear previous test data
	rdb.Del(ctx, cartKey)

	adapter := storage.NewRedisAdapter(rdb, cartKey)
	product := domain.Product{ID: productID, Title: "Tênis de Corrida", Price: 199.9}
	if err := adapter.SetProduct(ctx, product); err != nil {
		log.Fatalf("failed to set product: %v", err)
	}
	if err := adapter.SetStock(ctx, productID, stockCeiling); err != nil {
		log.Fatalf("failed to set stock: %v", err)
	}

	quiet := logrus.New()
	quiet.SetLevel(logrus.ErrorLevel)
	cartService := service.NewCartService(oracle.NewCatalogOracle(adapter), adapter, service.WithLogger(quiet))
	if err := cartService.Load(ctx); err != nil {
		log.Fatalf("failed to load cart: %v", err)
	}

	var successCount atomic.Int32
	var exhaustedCount atomic.Int32
	var failCount atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < totalRequests; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			err := cartService.AddProduct(ctx, productID)
			switch {
			case err == nil:
				successCount.Add(1)
			case errors.Is(err, service.ErrStockExhausted):
				exhaustedCount.Add(1)
			default:
				failCount.Add(1)
			}
		}()
	}

	wg.Wait()
	elapsed := time.Since(start)

	success := successCount.Load()
	exhausted := exhaustedCount.Load()

	fmt.Println("========== STRESS TEST RESULTS ==========")
	fmt.Printf("Stock Ceiling:    %d\n", stockCeiling)
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Successful:       %d\n", success)
	fmt.Printf("Stock Exhausted:  %d\n", exhausted)
	fmt.Printf("Other Failures:   %d\n", failCount.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("==========================================")

	if success == stockCeiling && exhausted == totalRequests-stockCeiling {
		fmt.Printf("PASS: Exactly %d adds succeeded, %d hit the ceiling\n", stockCeiling, totalRequests-stockCeiling)
	} else {
		fmt.Printf("FAIL: Expected %d success/%d exhausted, got %d/%d\n",
			stockCeiling, totalRequests-stockCeiling, success, exhausted)
	}

	// Verify the persisted slot
	persisted, err := adapter.LoadCart(ctx)
	if err != nil {
		log.Fatalf("failed to reload cart: %v", err)
	}
	item, _ := persisted.Find(productID)
	fmt.Printf("Persisted Amount: %d\n", item.Amount)

	if item.Amount == stockCeiling {
		fmt.Println("PASS: Persisted amount equals the ceiling")
	} else {
		fmt.Printf("FAIL: Expected amount %d, got %d\n", stockCeiling, item.Amount)
	}
}

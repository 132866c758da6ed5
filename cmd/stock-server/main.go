package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/config"
	"github.com/rl1809/rocketshoes-cart/internal/logger"
	"github.com/rl1809/rocketshoes-cart/internal/port"
	"github.com/rl1809/rocketshoes-cart/internal/telemetry"
)

type catalog interface {
	port.CatalogRepository
	port.CatalogWriter
}

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	serviceName := "stock-service"
	log := logger.New(logger.Options{Service: serviceName, Level: cfg.LogLevel, Format: cfg.LogFormat})

	shutdownTracer, err := telemetry.InitTracer(ctx, serviceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}

	repo, closeRepo := openCatalog(ctx, cfg, log)

	if cfg.CatalogSeedFile != "" {
		seed, err := storage.LoadSeedFile(cfg.CatalogSeedFile)
		if err != nil {
			log.Fatalf("failed to read seed: %v", err)
		}
		if err := storage.SeedCatalog(ctx, repo, seed); err != nil {
			log.Fatalf("failed to seed catalog: %v", err)
		}
		log.WithFields(logrus.Fields{
			"products": len(seed.Products),
			"stock":    len(seed.Stock),
		}).Info("catalog seeded")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	handler.NewCatalogHandler(repo).Register(router)

	httpServer := &http.Server{
		Addr:              cfg.StockHTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("stock API listening on %s", cfg.StockHTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("HTTP server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	httpServer.Shutdown(shutdownCtx)
	closeRepo()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warnf("tracer shutdown: %v", err)
	}
	log.Info("stock API stopped")
}

func openCatalog(ctx context.Context, cfg config.Config, log *logrus.Entry) (catalog, func()) {
	if cfg.CatalogSource == config.StorageMySQL {
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		adapter := storage.NewMySQLAdapter(db, cfg.CartSlotKey)
		if err := adapter.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare mysql schema: %v", err)
		}
		log.Info("catalog in mysql")
		return adapter, func() { db.Close() }
	}

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr, PoolSize: 20})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Fatalf("failed to connect redis: %v", err)
	}
	log.Info("catalog in redis")
	return storage.NewRedisAdapter(rdb, cfg.CartSlotKey), func() { rdb.Close() }
}

package main

import (
	"context"
	"database/sql"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"google.golang.org/grpc"

	"github.com/rl1809/rocketshoes-cart/internal/adapter/handler"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/metrics"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/oracle"
	"github.com/rl1809/rocketshoes-cart/internal/adapter/storage"
	"github.com/rl1809/rocketshoes-cart/internal/config"
	"github.com/rl1809/rocketshoes-cart/internal/core/service"
	"github.com/rl1809/rocketshoes-cart/internal/logger"
	"github.com/rl1809/rocketshoes-cart/internal/port"
	"github.com/rl1809/rocketshoes-cart/internal/telemetry"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("invalid config: %v", err)
	}
	log := logger.New(logger.Options{Service: cfg.ServiceName, Level: cfg.LogLevel, Format: cfg.LogFormat})

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.ServiceName, cfg.OTLPEndpoint)
	if err != nil {
		log.Fatalf("failed to init tracer: %v", err)
	}

	cartStorage, closeStorage := openCartStorage(ctx, cfg, log)

	stockOracle := oracle.NewHTTPOracle(cfg.StockAPIURL, cfg.StockAPITimeout)
	log.WithField("url", cfg.StockAPIURL).Info("using stock api")

	cartService := service.NewCartService(stockOracle, cartStorage,
		service.WithLogger(log),
		service.WithMetrics(metrics.NewCartMetrics(prometheus.DefaultRegisterer)),
	)
	if err := cartService.Load(ctx); err != nil {
		log.Fatalf("failed to load cart: %v", err)
	}

	// Initialize gRPC server
	grpcServer := grpc.NewServer()
	handler.RegisterCartServiceServer(grpcServer, handler.NewGRPCHandler(cartService))

	lis, err := net.Listen("tcp", cfg.CartGRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Infof("gRPC server listening on %s", cfg.CartGRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Errorf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), otelgin.Middleware(cfg.ServiceName))
	handler.NewHTTPHandler(cartService).Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	httpServer := &http.Server{
		Addr:              cfg.CartHTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on %s", cfg.CartHTTPAddr)
		if err := httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Info("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Info("gRPC server stopped")

	closeStorage()
	if err := shutdownTracer(shutdownCtx); err != nil {
		log.Warnf("tracer shutdown: %v", err)
	}
	log.Info("connections closed")
}

func openCartStorage(ctx context.Context, cfg config.Config, log *logrus.Entry) (port.CartStorage, func()) {
	switch cfg.CartStorage {
	case config.StorageMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		adapter := storage.NewMySQLAdapter(db, cfg.CartSlotKey)
		if err := adapter.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare mysql schema: %v", err)
		}
		log.WithField("slot", cfg.CartSlotKey).Info("cart slot in mysql")
		return adapter, func() { db.Close() }

	default:
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		log.WithField("slot", cfg.CartSlotKey).Info("cart slot in redis")
		return storage.NewRedisAdapter(rdb, cfg.CartSlotKey), func() { rdb.Close() }
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/cloud-wave-best-zizon/product-inventory/internal/events"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/handler"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/intercept"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/observability"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/repository"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/service"
	"github.com/cloud-wave-best-zizon/product-inventory/internal/validation"
	"github.com/cloud-wave-best-zizon/product-inventory/pkg/config"
	"github.com/cloud-wave-best-zizon/product-inventory/pkg/logger"
	"github.com/cloud-wave-best-zizon/product-inventory/pkg/middleware"
	"github.com/cloud-wave-best-zizon/product-inventory/pkg/tls"
)

const svidWatchInterval = 5 * time.Minute

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Config 로드
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// OpenTelemetry 초기화 (OTEL_ENDPOINT 없으면 생략)
	otelShutdown, err := observability.Setup(ctx, cfg)
	if err != nil {
		log.Fatal("Failed to set up OpenTelemetry:", err)
	}

	// Logger 초기화
	appLogger, err := logger.New(cfg.LogLevel, observability.ZapCore(cfg))
	if err != nil {
		log.Fatal("Failed to create logger:", err)
	}
	defer appLogger.Sync()

	if err := run(ctx, cfg, appLogger); err != nil {
		appLogger.Error("Server stopped with error", zap.Error(err))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := otelShutdown(shutdownCtx); err != nil {
		appLogger.Error("OpenTelemetry shutdown failed", zap.Error(err))
	}

	appLogger.Info("Server exited")
}

func run(ctx context.Context, cfg *config.Config, appLogger *zap.Logger) error {
	// Store 초기화
	store, closeStore, err := repository.NewStore(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			appLogger.Error("Failed to close product store", zap.Error(err))
		}
	}()

	// 이벤트 발행 (KAFKA_BROKERS 없으면 Nop)
	var publisher events.Publisher = events.NopPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		publisher = events.NewKafkaProducer(cfg.KafkaBrokers, cfg.ProductEventsTopic, appLogger)
		appLogger.Info("Product events enabled",
			zap.Strings("brokers", cfg.KafkaBrokers),
			zap.String("topic", cfg.ProductEventsTopic))
	}
	defer publisher.Close()

	// Store, Service, Handler 초기화 (각 경계는 intercept 로 감쌈)
	productStore := intercept.Store(store, appLogger)
	productService := intercept.Service(service.NewProductService(productStore, appLogger), appLogger)
	productHandler := handler.NewProductHandler(productService, validation.New(), publisher, appLogger)

	// Gin Router 설정
	router := gin.New()
	router.Use(handler.ErrorTranslator(appLogger))
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(appLogger))

	productHandler.RegisterRoutes(router.Group("/api/v1"), intercept.Handler(appLogger))

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// mTLS (SPIRE)
	source, err := tls.Load(ctx, cfg.TLSConfig, appLogger)
	if err != nil {
		return err
	}
	if source != nil {
		defer source.Close()
		srv.TLSConfig = source.ServerConfig()
		go source.Watch(ctx, svidWatchInterval)
	}

	serveErr := make(chan error, 1)
	go func() {
		appLogger.Info("Starting server",
			zap.String("port", cfg.Port),
			zap.Bool("tls", source != nil))

		var err error
		if source != nil {
			err = srv.ListenAndServeTLS("", "")
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	// Graceful Shutdown
	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	appLogger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func init() {
	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
}

// Package app собирает зависимости демо-сервиса и управляет его жизненным
// циклом.
package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/orderdemo/internal/broadcast"
	healthcheck "github.com/vladislavdragonenkov/orderdemo/internal/health"
	"github.com/vladislavdragonenkov/orderdemo/internal/messaging"
	"github.com/vladislavdragonenkov/orderdemo/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/orderdemo/internal/messaging/noop"
	"github.com/vladislavdragonenkov/orderdemo/internal/metrics"
	"github.com/vladislavdragonenkov/orderdemo/internal/service/order"
	"github.com/vladislavdragonenkov/orderdemo/internal/service/simulation"
	"github.com/vladislavdragonenkov/orderdemo/internal/storage/memory"
	"github.com/vladislavdragonenkov/orderdemo/internal/transport/httpapi"
	"github.com/vladislavdragonenkov/orderdemo/internal/version"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	// HTTPAddr — адрес REST API и push-канала.
	HTTPAddr string
	// AdminAddr — адрес метрик и health checks.
	AdminAddr string
	// StatusInterval — период между переходами статусов заказа.
	StatusInterval time.Duration
	// KafkaBrokers — опциональный список брокеров для зеркалирования
	// событий; пустой список отключает Kafka.
	KafkaBrokers []string
}

// DefaultConfig возвращает базовые адреса и период прогрессии.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:       ":3000",
		AdminAddr:      ":9090",
		StatusInterval: simulation.DefaultInterval,
	}
}

func Run(ctx context.Context, cfg Config) error {
	logger := log.WithField("component", "app")

	menuRepo := memory.NewMenuRepository()
	orderRepo := memory.NewOrderRepository()
	m := metrics.New()

	hub := broadcast.NewHub(m, log.WithField("component", "broadcast-hub"))
	go hub.Run(ctx)

	// Инициализация Kafka producer (опционально)
	var publisher messaging.Publisher = noop.Publisher{}
	var kafkaProducer *kafka.Producer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := kafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			logger.WithError(err).Warn("failed to create kafka producer, continuing without kafka")
		} else {
			kafkaProducer = producer
			publisher = producer
			logger.WithField("brokers", cfg.KafkaBrokers).Info("kafka producer initialized")
		}
	}

	sim := simulation.New(orderRepo, hub, publisher, m,
		log.WithField("component", "status-simulator"), cfg.StatusInterval)
	orderSvc := order.NewService(menuRepo, orderRepo, sim, publisher, m,
		log.WithField("component", "order-service"))

	router := httpapi.NewRouter(
		httpapi.NewMenuHandler(menuRepo),
		httpapi.NewOrderHandler(orderSvc, log.WithField("component", "order-handler")),
		hub.Handler(),
		log.WithField("component", "http"),
	)

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	healthHandler.RegisterChecker("menu-store", healthcheck.NewSimpleChecker("menu-store", func() error {
		if len(menuRepo.List()) == 0 {
			return errors.New("menu catalog is empty")
		}
		return nil
	}))
	healthHandler.RegisterChecker("broadcast-hub", healthcheck.NewSimpleChecker("broadcast-hub", func() error {
		if !hub.Running() {
			return errors.New("broadcast hub stopped")
		}
		return nil
	}))

	adminSrv := startAdminServer(ctx, cfg.AdminAddr, logger, healthHandler)

	apiSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}
	errCh := make(chan error, 1)
	go func() {
		logger.Infof("HTTP API слушает %s", cfg.HTTPAddr)
		errCh <- apiSrv.ListenAndServe()
	}()

	closeKafka := func() {
		if kafkaProducer == nil {
			return
		}
		if err := kafkaProducer.Close(); err != nil {
			logger.WithError(err).Warn("failed to close kafka producer")
		} else {
			logger.Info("kafka producer closed")
		}
	}

	select {
	case <-ctx.Done():
		logger.Info("получен сигнал остановки, останавливаем HTTP сервер")
		shutdownHTTP(apiSrv, logger)
		shutdownHTTP(adminSrv, logger)
		closeKafka()
		return ctx.Err()

	case err := <-errCh:
		shutdownHTTP(adminSrv, logger)
		closeKafka()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// startAdminServer запускает HTTP-обработчики /metrics и health checks.
func startAdminServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez", addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("admin server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("http shutdown with error")
	}
}

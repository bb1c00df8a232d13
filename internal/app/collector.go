// internal/app/collector.go
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/YaganovValera/market-stream/internal/config"
	"github.com/YaganovValera/market-stream/internal/metrics"
	"github.com/YaganovValera/market-stream/internal/processor"
	"github.com/YaganovValera/market-stream/pkg/backoff"
	"github.com/YaganovValera/market-stream/pkg/binance"
	"github.com/YaganovValera/market-stream/pkg/httpserver"
	"github.com/YaganovValera/market-stream/pkg/kafka"
	"github.com/YaganovValera/market-stream/pkg/logger"
	"github.com/YaganovValera/market-stream/pkg/telemetry"
)

// Run собирает и запускает сервис: телеметрия, Kafka-продьюсер, HTTP
// с метриками и WS-конвейер. Возвращается после остановки всех частей.
func Run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	backoff.SetServiceLabel(cfg.ServiceName)
	kafka.SetServiceLabel(cfg.ServiceName)
	metrics.Register()

	shutdownTracer, err := telemetry.InitTracer(ctx, cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer shutdownSafe(context.Background(), "telemetry", shutdownTracer, log)

	producer, err := kafka.NewProducer(ctx, cfg.Kafka.Config, log)
	if err != nil {
		return fmt.Errorf("kafka: %w", err)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			log.Error("kafka close failed", zap.Error(err))
		}
	}()

	router := processor.NewDispatchRouter(log,
		processor.NewTradeProcessor(producer, cfg.Kafka.RawTopic, log),
		processor.NewDepthProcessor(producer, cfg.Kafka.OrderBookTopic, log),
	)

	readiness := func() error { return producer.Ping(ctx) }
	httpSrv, err := httpserver.New(cfg.HTTP, readiness, log)
	if err != nil {
		return fmt.Errorf("httpserver: %w", err)
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := httpSrv.Start(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		return runStreamLoop(ctx, cfg, router, log)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info("service stopped")
	return nil
}

// runStreamLoop держит WS-соединение живым: сам клиент синхронный и без
// ретраев, реконнекты с back-off — здесь.
func runStreamLoop(ctx context.Context, cfg *config.Config, router *processor.DispatchRouter, log *logger.Logger) error {
	client := binance.NewWithConfig(cfg.Binance.Config,
		func(evt binance.CombinedStreamEvent) error {
			return router.Dispatch(ctx, evt)
		},
		log,
	)

	for {
		if ctx.Err() != nil {
			return nil
		}

		connect := func(ctx context.Context) error {
			return client.ConnectMultiple(ctx, cfg.Binance.Streams)
		}
		if err := backoff.Execute(ctx, cfg.Binance.Backoff, log, connect); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("ws connect: %w", err)
		}

		err := client.EventLoop(ctx)
		if derr := client.Disconnect(); derr != nil && !errors.Is(derr, binance.ErrNotConnected) {
			log.Warn("ws disconnect failed", zap.Error(derr))
		}

		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			log.Warn("ws stream interrupted, reconnecting", zap.Error(err))
		}
		metrics.ReconnectsTotal.Inc()
	}
}

// shutdownSafe вызывает fn с таймаутом и логирует результат.
func shutdownSafe(ctx context.Context, name string, fn func(context.Context) error, log *logger.Logger) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := fn(ctx); err != nil {
		log.Error("shutdown failed", zap.String("component", name), zap.Error(err))
		return
	}
	log.Info("shutdown complete", zap.String("component", name))
}

// internal/processor/trade.go
package processor

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/YaganovValera/market-stream/internal/metrics"
	"github.com/YaganovValera/market-stream/pkg/binance"
	"github.com/YaganovValera/market-stream/pkg/kafka"
	"github.com/YaganovValera/market-stream/pkg/logger"
	"github.com/YaganovValera/market-stream/pkg/telemetry"
)

// tradePayload — поля трейда, нужные для ключа и логов. Полный payload
// уходит в Kafka как есть.
type tradePayload struct {
	EventType string `json:"e"`
	EventTime int64  `json:"E"`
	Symbol    string `json:"s"`
	TradeID   int64  `json:"t"`
	Price     string `json:"p"`
	Quantity  string `json:"q"`
}

// TradeProcessor публикует сырые трейды в Kafka, ключ — символ.
type TradeProcessor struct {
	producer kafka.Producer
	topic    string
	log      *logger.Logger
}

func NewTradeProcessor(producer kafka.Producer, topic string, log *logger.Logger) *TradeProcessor {
	return &TradeProcessor{
		producer: producer,
		topic:    topic,
		log:      log.Named("trade"),
	}
}

func (p *TradeProcessor) EventType() string { return binance.EventTypeTrade }

func (p *TradeProcessor) Process(ctx context.Context, evt binance.CombinedStreamEvent) error {
	var trade tradePayload
	if err := json.Unmarshal(evt.Data, &trade); err != nil {
		metrics.ParseErrors.WithLabelValues(binance.EventTypeTrade).Inc()
		return fmt.Errorf("trade: decode %q: %w", evt.Stream, err)
	}

	ctx, span := telemetry.Tracer().Start(ctx, "ProcessTrade",
		trace.WithAttributes(
			attribute.String("symbol", trade.Symbol),
			attribute.Int64("trade_id", trade.TradeID),
		))
	defer span.End()

	start := time.Now()
	if err := p.producer.Publish(ctx, p.topic, []byte(trade.Symbol), evt.Data); err != nil {
		metrics.PublishErrors.WithLabelValues(binance.EventTypeTrade).Inc()
		span.RecordError(err)
		return fmt.Errorf("trade: publish %s: %w", trade.Symbol, err)
	}
	metrics.PublishLatency.WithLabelValues(binance.EventTypeTrade).Observe(time.Since(start).Seconds())

	p.log.Debug("trade published",
		zap.String("symbol", trade.Symbol),
		zap.Int64("trade_id", trade.TradeID),
		zap.String("price", trade.Price),
	)
	return nil
}
